package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatCount renders a count compactly for axis labels ("31.5M", "950k").
func FormatCount(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.Abs(v) < 1000 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := humanize.SIWithDigits(v, 1, "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.Replace(s, ".0", "", 1)
}

// FormatYear renders an x-axis value as a whole year.
func FormatYear(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

// FormatTotal renders an exact count with thousands separators.
func FormatTotal(v int64) string {
	return humanize.Comma(v)
}
