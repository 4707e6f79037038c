package analytics

const (
	kilogramsPerPound  = 0.453592
	centimetersPerInch = 2.54
)

type LengthUnit string

const (
	LengthUnitCentimeters LengthUnit = "cm"
	LengthUnitInches      LengthUnit = "in"
)

// Valid reports whether u is a known unit. The empty unit means centimeters.
func (u LengthUnit) Valid() bool {
	switch u {
	case "", LengthUnitCentimeters, LengthUnitInches:
		return true
	default:
		return false
	}
}

type MassUnit string

const (
	MassUnitKilograms MassUnit = "kg"
	MassUnitPounds    MassUnit = "lb"
)

// Valid reports whether u is a known unit. The empty unit means kilograms.
func (u MassUnit) Valid() bool {
	switch u {
	case "", MassUnitKilograms, MassUnitPounds:
		return true
	default:
		return false
	}
}

type Length struct {
	Value float64    `json:"value"`
	Unit  LengthUnit `json:"unit"`
}

func (l Length) Centimeters() float64 {
	return NormalizeHeight(l.Value, l.Unit)
}

type Mass struct {
	Value float64  `json:"value"`
	Unit  MassUnit `json:"unit"`
}

func (m Mass) Kilograms() float64 {
	return NormalizeWeight(m.Value, m.Unit)
}

// NormalizeWeight converts a weight to kilograms. Anything other than pounds
// is already canonical.
func NormalizeWeight(value float64, unit MassUnit) float64 {
	if unit == MassUnitPounds {
		return value * kilogramsPerPound
	}
	return value
}

// NormalizeHeight converts a length to centimeters. Anything other than inches
// is already canonical.
func NormalizeHeight(value float64, unit LengthUnit) float64 {
	if unit == LengthUnitInches {
		return value * centimetersPerInch
	}
	return value
}
