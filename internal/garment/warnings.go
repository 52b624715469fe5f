package garment

import "fmt"

// Warning codes produced by CheckMeasurements.
const (
	WarnWaistExceedsBust    = "WAIST_EXCEEDS_BUST"
	WarnShoulderExceedsBust = "SHOULDER_EXCEEDS_BUST"
	WarnHipBelowWaist       = "HIP_BELOW_WAIST"
)

// Warning is a non-blocking sanity finding for the form layer to display.
type Warning struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckMeasurements inspects optimizer output for measurement combinations
// that are unlikely on a real body. It never changes the parameters.
func CheckMeasurements(p DenseParameters) []Warning {
	var out []Warning
	if p.Waist > p.Bust+10 {
		out = append(out, Warning{
			Code:    WarnWaistExceedsBust,
			Field:   FieldWaist,
			Message: fmt.Sprintf("waist %.0fcm is more than 10cm above bust %.0fcm", p.Waist, p.Bust),
		})
	}
	if p.Shoulder > p.Bust {
		out = append(out, Warning{
			Code:    WarnShoulderExceedsBust,
			Field:   FieldShoulder,
			Message: fmt.Sprintf("shoulder %.1fcm is larger than bust %.0fcm", p.Shoulder, p.Bust),
		})
	}
	if p.Hip < p.Waist {
		out = append(out, Warning{
			Code:    WarnHipBelowWaist,
			Field:   FieldHip,
			Message: fmt.Sprintf("hip %.0fcm is smaller than waist %.0fcm", p.Hip, p.Waist),
		})
	}
	return out
}
