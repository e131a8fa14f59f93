package lcapy

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the SI unit a quantity kind is measured in.
func (k Kind) Unit() string {
	switch k {
	case KindVoltage:
		return "V"
	case KindCurrent:
		return "A"
	case KindImpedance:
		return "ohm"
	case KindAdmittance:
		return "S"
	}
	return ""
}

var engPrefixes = []struct {
	exp    int
	prefix string
}{
	{-15, "f"}, {-12, "p"}, {-9, "n"}, {-6, "u"}, {-3, "m"},
	{0, ""}, {3, "k"}, {6, "M"}, {9, "G"}, {12, "T"},
}

// EngFormat renders a value in engineering notation with an SI prefix:
// 1.5e-9 with unit "F" gives "1.5nF".  Values outside the prefix table
// fall back to scientific notation.
func EngFormat(value float64, unit string) string {
	if value == 0 {
		return "0" + unit
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%g%s", value, unit)
	}
	mag := math.Abs(value)
	exp := int(math.Floor(math.Log10(mag)/3)) * 3
	for _, p := range engPrefixes {
		if p.exp == exp {
			scaled := value / math.Pow(10, float64(exp))
			return trimZeros(strconv.FormatFloat(scaled, 'f', 4, 64)) + p.prefix + unit
		}
	}
	return fmt.Sprintf("%.4g%s", value, unit)
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FormatValue evaluates the expression at a point and renders it with the
// unit of its kind.  Complex results show both parts.
func (e Expr) FormatValue(x float64) (string, error) {
	c, err := e.Evaluate(x)
	if err != nil {
		return "", err
	}
	unit := e.kind.Unit()
	if imag(c) == 0 {
		return EngFormat(real(c), unit), nil
	}
	return fmt.Sprintf("%s + j%s", EngFormat(real(c), unit), EngFormat(imag(c), unit)), nil
}
