package clinical

import "math"

// Abnormal flag values.
const (
	FlagNormal       = "Normal"
	FlagHigh         = "High"
	FlagLow          = "Low"
	FlagCriticalHigh = "Critical High"
	FlagCriticalLow  = "Critical Low"
)

// AbnormalFlag classifies a lab value against its reference range. Values
// beyond 20% of the range bound are Critical.
func AbnormalFlag(value, low, high float64) string {
	switch {
	case value > high*1.2:
		return FlagCriticalHigh
	case value > high:
		return FlagHigh
	case value < low*0.8:
		return FlagCriticalLow
	case value < low:
		return FlagLow
	default:
		return FlagNormal
	}
}

// FallRiskLevel maps a fall risk score to its level band.
func FallRiskLevel(score int) string {
	switch {
	case score <= 3:
		return "Low"
	case score <= 6:
		return "Moderate"
	default:
		return "High"
	}
}

// BMI computes body mass index from weight in kilograms and height in
// centimeters, rounded to one decimal.
func BMI(weightKg, heightCm float64) float64 {
	m := heightCm / 100
	return math.Round(weightKg/(m*m)*10) / 10
}

// OnRoomAir reports whether a patient at the given oxygen saturation
// breathes without supplemental oxygen.
func OnRoomAir(spo2 int) bool {
	return spo2 > 93
}
