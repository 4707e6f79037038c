package analytics

import "math"

type BMICategory string

const (
	BMICategoryUnderweight BMICategory = "underweight"
	BMICategoryNormal      BMICategory = "normal"
	BMICategoryOverweight  BMICategory = "overweight"
	BMICategoryObese       BMICategory = "obese"
)

const (
	bmiNormalLowerBound     = 18.5
	bmiOverweightLowerBound = 25.0
	bmiObeseLowerBound      = 30.0
)

type BMIResult struct {
	Value    float64     `json:"bmi"`
	Category BMICategory `json:"category"`
}

// BMIReading is a BMI result together with the normalized inputs it was
// computed from.
type BMIReading struct {
	BMIResult
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// CalculateBMI computes body mass index rounded half-up to one decimal place
// and categorizes the rounded value.
func CalculateBMI(weightKg, heightCm float64) (BMIResult, error) {
	if err := checkPositive("weight_kg", weightKg); err != nil {
		return BMIResult{}, err
	}
	if err := checkPositive("height_cm", heightCm); err != nil {
		return BMIResult{}, err
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	rounded := roundHalfUp(bmi, 1)

	return BMIResult{
		Value:    rounded,
		Category: CategorizeBMI(rounded),
	}, nil
}

// CategorizeBMI maps a BMI value onto half-open ranges, lower bound inclusive.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < bmiNormalLowerBound:
		return BMICategoryUnderweight
	case bmi < bmiOverweightLowerBound:
		return BMICategoryNormal
	case bmi < bmiObeseLowerBound:
		return BMICategoryOverweight
	default:
		return BMICategoryObese
	}
}

// MetricBMI computes the BMI for a single metric. ok is false when the metric
// lacks height or weight.
func MetricBMI(m *Metric) (reading BMIReading, ok bool, err error) {
	if m == nil || m.Height == nil || m.Weight == nil {
		return BMIReading{}, false, nil
	}

	weightKg := m.Weight.Kilograms()
	heightCm := m.Height.Centimeters()

	result, err := CalculateBMI(weightKg, heightCm)
	if err != nil {
		return BMIReading{}, false, err
	}

	return BMIReading{
		BMIResult: result,
		HeightCm:  heightCm,
		WeightKg:  weightKg,
	}, true, nil
}

// LatestBMI computes the BMI of the most recent metric. It returns nil without
// an error when there is nothing to compute from.
func LatestBMI(r HealthRecord) (*BMIReading, error) {
	reading, ok, err := MetricBMI(r.LatestMetric())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &reading, nil
}

func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &InvalidInputError{Field: field, Value: v, Reason: "must be a finite number"}
	}
	if v <= 0 {
		return &InvalidInputError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

func roundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}
