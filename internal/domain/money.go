package domain

// Conversion holds the fixed coin↔fiat exchange rate and the fiat
// tolerance used to decide when a coin remainder is too small to matter.
// There is no per-order pricing; every settlement converts at Rate.
type Conversion struct {
	Rate          float64 // fiat units per coin
	FiatTolerance float64 // fiat amount below which a remainder is treated as zero
}

// ToFiat converts a coin amount into fiat at the fixed rate.
func (c Conversion) ToFiat(coins float64) float64 {
	return coins * c.Rate
}

// ToCoins converts a fiat amount into coins at the fixed rate.
func (c Conversion) ToCoins(fiat float64) float64 {
	return fiat / c.Rate
}

// CoinEpsilon returns the coin-denominated tolerance derived from
// FiatTolerance. Order remainders at or below this value are considered
// fully settled, which keeps floating-point drift from leaving dust
// orders on the book.
func (c Conversion) CoinEpsilon() float64 {
	return c.FiatTolerance / c.Rate
}
