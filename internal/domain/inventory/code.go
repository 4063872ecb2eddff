package inventory

import (
	"fmt"
	"math/rand/v2"
	"time"
)

var monthAbbr = [...]string{"JAN", "FEV", "MAR", "ABR", "MAI", "JUN", "JUL", "AGO", "SET", "OUT", "NOV", "DEZ"}

// GenerateCode arma el código legible INV-{mes}-{aaaammdd}-{5 dígitos aleatorios}.
// No se deduplica contra códigos existentes.
func GenerateCode(now time.Time) string {
	return formatCode(now, rand.IntN(100000))
}

func formatCode(now time.Time, suffix int) string {
	return fmt.Sprintf("INV-%s-%04d%02d%02d-%05d",
		monthAbbr[now.Month()-1], now.Year(), int(now.Month()), now.Day(), suffix)
}
