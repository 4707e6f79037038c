package health

import (
	"context"
	"errors"
	"slices"

	"github.com/garrettladley/wellness/internal/analytics"
	"github.com/garrettladley/wellness/internal/storage"
)

func (s *Service) prepareMetric(m analytics.Metric) analytics.Metric {
	if m.ID == "" {
		m.ID = s.newID()
	}
	if m.Date.IsZero() {
		m.Date = s.timestamp()
	}
	return m
}

// AddMetric appends a metric. It becomes the latest metric regardless of its
// date.
func (s *Service) AddMetric(ctx context.Context, userID string, m analytics.Metric) (analytics.Metric, error) {
	m.ID = ""
	m = s.prepareMetric(m)

	_, err := s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
		p.PhysicalMetrics = append(p.PhysicalMetrics, m)
		return nil
	})
	if err != nil {
		return analytics.Metric{}, mapStoreErr(err, "add metric")
	}
	return m, nil
}

func (s *Service) ListMetrics(ctx context.Context, userID string) ([]analytics.Metric, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.PhysicalMetrics == nil {
		return []analytics.Metric{}, nil
	}
	return p.PhysicalMetrics, nil
}

func (s *Service) LatestMetric(ctx context.Context, userID string) (analytics.Metric, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return analytics.Metric{}, err
	}
	latest := p.LatestMetric()
	if latest == nil {
		return analytics.Metric{}, ErrNoMetrics
	}
	return *latest, nil
}

func (s *Service) GetMetric(ctx context.Context, userID string, metricID string) (analytics.Metric, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return analytics.Metric{}, err
	}
	i := indexMetric(p.PhysicalMetrics, metricID)
	if i < 0 {
		return analytics.Metric{}, ErrMetricNotFound
	}
	return p.PhysicalMetrics[i], nil
}

// UpdateMetric replaces a metric in place, keeping its id and position.
func (s *Service) UpdateMetric(ctx context.Context, userID string, metricID string, m analytics.Metric) (analytics.Metric, error) {
	var updated analytics.Metric
	_, err := s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
		i := indexMetric(p.PhysicalMetrics, metricID)
		if i < 0 {
			return ErrMetricNotFound
		}
		m.ID = metricID
		if m.Date.IsZero() {
			m.Date = p.PhysicalMetrics[i].Date
		}
		p.PhysicalMetrics[i] = m
		updated = m
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMetricNotFound) {
			return analytics.Metric{}, err
		}
		return analytics.Metric{}, mapStoreErr(err, "update metric")
	}
	return updated, nil
}

func (s *Service) DeleteMetric(ctx context.Context, userID string, metricID string) error {
	_, err := s.store.UpdateProfile(ctx, userID, func(p *storage.Profile) error {
		i := indexMetric(p.PhysicalMetrics, metricID)
		if i < 0 {
			return ErrMetricNotFound
		}
		p.PhysicalMetrics = slices.Delete(p.PhysicalMetrics, i, i+1)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrMetricNotFound) {
			return err
		}
		return mapStoreErr(err, "delete metric")
	}
	return nil
}

func indexMetric(metrics []analytics.Metric, id string) int {
	return slices.IndexFunc(metrics, func(m analytics.Metric) bool { return m.ID == id })
}
