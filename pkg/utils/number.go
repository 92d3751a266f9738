package utils

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitsToAmount converte centavos (scale 2) ou micros (scale 6) para a
// unidade monetária sem erro de ponto flutuante na divisão.
func MinorUnitsToAmount(value int64, scale int32) float64 {
	amount, _ := decimal.New(value, -scale).Float64()
	return amount
}

// FormatThousands formata um valor com separador de milhar e sem casas
// decimais, ex: 12500.4 -> "12,500".
func FormatThousands(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "∞"
	}

	digits := decimal.NewFromFloat(f).Round(0).String()

	negative := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
