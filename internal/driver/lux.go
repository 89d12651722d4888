// internal/driver/lux.go
package driver

import "math"

// ApproxLux converts a broadband/infrared channel pair to lux using the
// standard two-channel photodiode approximation: the infrared ratio
// selects one of four linear segments. Channel counts are assumed to be
// taken at nominal gain and integration time.
//
// Shared by drivers whose sensor head does not compute lux on its own.
func ApproxLux(broadband, ir uint16) float64 {
	if broadband == 0 {
		return 0
	}

	ch0 := float64(broadband)
	ch1 := float64(ir)
	ratio := ch1 / ch0

	var lux float64
	switch {
	case ratio <= 0.50:
		lux = 0.0304*ch0 - 0.062*ch0*math.Pow(ratio, 1.4)
	case ratio <= 0.61:
		lux = 0.0224*ch0 - 0.031*ch1
	case ratio <= 0.80:
		lux = 0.0128*ch0 - 0.0153*ch1
	case ratio <= 1.30:
		lux = 0.00146*ch0 - 0.00112*ch1
	default:
		lux = 0
	}

	if lux < 0 {
		return 0
	}
	return lux
}
