// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchunit

import (
	"fmt"
	"math"
	"strconv"
)

// A Scaler formats numbers at a fixed SI scale.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Value of one Prefix (e.g., 1 m => 0.001)
	Prefix string  // SI prefix
}

// Format formats val at scale s followed by the SI prefix.
func (s Scaler) Format(val float64) string {
	return string(s.append(nil, val))
}

// FormatUnit formats val at scale s, a space, and the prefixed unit,
// as in "1.23 ms".
func (s Scaler) FormatUnit(val float64, unit string) string {
	buf := strconv.AppendFloat(nil, val/s.Factor, 'f', s.Prec, 64)
	buf = append(buf, ' ')
	buf = append(buf, s.Prefix...)
	buf = append(buf, unit...)
	return string(buf)
}

func (s Scaler) append(buf []byte, val float64) []byte {
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	return append(buf, s.Prefix...)
}

// siScale is one SI prefix with the smallest values that print with
// 0, 1, and 2 digits after the decimal point.
type siScale struct {
	factor        float64
	prefix        string
	t100, t10, t1 float64
}

var siScales = func() []siScale {
	// Parse the thresholds from their printed form so they round
	// exactly the way formatting does.
	var scales []siScale
	exp := 12
	for _, p := range []string{"T", "G", "M", "k", "", "m", "µ", "n"} {
		parse := func(mant string) float64 {
			v, _ := strconv.ParseFloat(fmt.Sprintf("%se%d", mant, exp), 64)
			return v
		}
		scales = append(scales, siScale{
			factor: math.Pow(10, float64(exp)),
			prefix: p,
			t100:   parse("99.95"),
			t10:    parse("9.995"),
			t1:     parse(".9995"),
		})
		exp -= 3
	}
	return scales
}()

// Scale formats val with at least three significant digits and an SI
// prefix.
func Scale(val float64) string {
	return CommonScale(val).Format(val)
}

// CommonScale returns a Scaler that shows every value in vals with at
// least three significant digits. The scale is picked by the non-zero
// value closest to zero.
func CommonScale(vals ...float64) Scaler {
	var min float64
	for _, v := range vals {
		v = math.Abs(v)
		if v != 0 && !math.IsInf(v, 0) && (min == 0 || v < min) {
			min = v
		}
	}
	if min == 0 {
		return Scaler{2, 1, ""}
	}
	for i, sc := range siScales {
		switch {
		case min >= sc.t100:
			return Scaler{0, sc.factor, sc.prefix}
		case min >= sc.t10:
			return Scaler{1, sc.factor, sc.prefix}
		case min >= sc.t1 || i == len(siScales)-1:
			return Scaler{2, sc.factor, sc.prefix}
		}
	}
	panic("not reachable")
}

// FormatTime formats a duration in seconds, as in "1.23 ms".
func FormatTime(sec float64) string {
	return CommonScale(sec).FormatUnit(sec, "s")
}

// FormatTimes formats durations in seconds at a common scale, such as
// the bounds and point estimate of a confidence interval.
func FormatTimes(secs ...float64) []string {
	s := CommonScale(secs...)
	out := make([]string, len(secs))
	for i, v := range secs {
		out[i] = s.FormatUnit(v, "s")
	}
	return out
}

// FormatPercent formats a relative change, as in "+1.23%".
func FormatPercent(x float64) string {
	return fmt.Sprintf("%+.2f%%", 100*x)
}
