package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseRating lê a nota do formulário como float.
// Valor que não é número devolve nil (vai como null no JSON).
func ParseRating(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
