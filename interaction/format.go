package interaction

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

const (
	errorBanner = "COMPILATION:ERROR"
	unknownMag  = "?.???"
)

// channel returns the sign character and the five character magnitude of v.
func channel(v float32) (sign byte, mag string) {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return '?', unknownMag
	}
	sign = '+'
	if v < 0 {
		sign = '-'
	}
	mag = fmt.Sprintf("%1.3f", math32.Abs(v))
	if len(mag) > 5 {
		mag = mag[:5]
	}
	return sign, mag
}

// FormatPixel renders a picked RGB value as the info overlay line and as a
// GLSL vec4 literal for the clipboard.
func FormatPixel(px [3]float32) (info, clip string) {
	var ib, cb strings.Builder
	ib.WriteString("INFO")
	cb.WriteString("vec4(")
	for i, name := range [3]byte{'R', 'G', 'B'} {
		sign, mag := channel(px[i])
		ib.WriteByte('/')
		ib.WriteByte(name)
		ib.WriteByte(sign)
		ib.WriteString(mag)
		if sign != '?' {
			cb.WriteByte(sign)
		}
		cb.WriteString(mag)
		cb.WriteString(", ")
	}
	cb.WriteString("1.0)")
	return ib.String(), cb.String()
}

// ErrorText is the overlay line shown while the last build failed.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return errorBanner + " " + line
		}
	}
	return errorBanner
}
