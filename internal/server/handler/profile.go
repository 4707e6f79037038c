package handler

import (
	"net/http"
	"time"

	"github.com/garrettladley/wellness/internal/service/health"
	"github.com/garrettladley/wellness/internal/validator"
	"github.com/garrettladley/wellness/internal/xerrors"
	"github.com/garrettladley/wellness/internal/xhttp"
	"github.com/garrettladley/wellness/internal/xslog"
)

const profilePath = "/api/health-profile"

type Profiles struct {
	service *health.Service
	now     func() time.Time
}

func NewProfiles(service *health.Service) *Profiles {
	return &Profiles{service: service, now: time.Now}
}

// decodeProfile reads and validates a profile body, writing the error
// response itself when it fails.
func (h *Profiles) decodeProfile(w http.ResponseWriter, r *http.Request) (*profileRequest, bool) {
	req := profileRequest{now: h.now()}
	if err := xhttp.DecodeJSON(w, r, &req); err != nil {
		xerrors.WriteError(r.Context(), w, xerrors.BadRequest(xerrors.WithMessage("invalid JSON body"), xerrors.WithCause(err)))
		return nil, false
	}
	if verr := validator.Validate(&req); verr != nil {
		xerrors.WriteError(r.Context(), w, verr)
		return nil, false
	}
	return &req, true
}

// HandleCreate handles POST /api/health-profile requests.
func (h *Profiles) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}

	profile, err := h.service.CreateProfile(ctx, userID, req.input(), req.PhysicalMetrics)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to create health profile")
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "created health profile",
		xslog.UserID(userID),
		xslog.Count(len(profile.PhysicalMetrics)))

	xhttp.WriteCreated(w, profilePath, profile)
}

// HandleGet handles GET /api/health-profile requests.
func (h *Profiles) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err, "failed to fetch health profile")
		return
	}
	xhttp.WriteOK(w, profile)
}

// HandleUpdate handles PUT /api/health-profile requests. Metric, score and
// insight histories are left untouched.
func (h *Profiles) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}
	if len(req.PhysicalMetrics) > 0 {
		xerrors.WriteError(ctx, w, xerrors.Validation(map[string]string{
			"physical_metrics": "use the metrics endpoints to change metric history",
		}))
		return
	}

	profile, err := h.service.UpdateProfile(ctx, userID, req.input())
	if err != nil {
		writeServiceError(ctx, w, err, "failed to update health profile")
		return
	}
	xhttp.WriteOK(w, profile)
}

// HandleDelete handles DELETE /api/health-profile requests.
func (h *Profiles) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProfile(ctx, userID); err != nil {
		writeServiceError(ctx, w, err, "failed to delete health profile")
		return
	}

	xslog.FromContext(ctx).InfoContext(ctx, "deleted health profile", xslog.UserID(userID))
	xhttp.WriteNoContent(w)
}
