package page

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money renders an amount as $1,234.56.
func Money(v float64) string {
	return MoneyDecimal(decimal.NewFromFloat(v))
}

// MoneyDecimal renders an exact amount as $1,234.56.
func MoneyDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + groupThousands(d.StringFixed(2))
}

// Number renders v with up to two decimals and thousands separators.
func Number(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + groupThousands(d.String())
}

// Percent renders v (already in percent) with one decimal.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// PercentDecimal renders an exact percentage with one decimal.
func PercentDecimal(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// OrDash returns "-" for nil or empty strings.
func OrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
