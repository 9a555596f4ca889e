package domain

// OrderSide indicates whether an order sells coins for fiat or buys
// coins with fiat. The numeric values are part of the persisted format.
type OrderSide uint32

const (
	OrderSideSell OrderSide = 0
	OrderSideBuy  OrderSide = 1
)

// String returns the lowercase wire representation of the side.
func (s OrderSide) String() string {
	if s == OrderSideBuy {
		return "buy"
	}
	return "sell"
}

// Valid reports whether the side is one of the two defined values.
func (s OrderSide) Valid() bool {
	return s == OrderSideSell || s == OrderSideBuy
}

// ParseOrderSide converts the wire representation of a side back into
// its typed value. ok is false for anything but "buy" and "sell".
func ParseOrderSide(s string) (side OrderSide, ok bool) {
	switch s {
	case "sell":
		return OrderSideSell, true
	case "buy":
		return OrderSideBuy, true
	}
	return 0, false
}

// Opposite returns the other side.
func (s OrderSide) Opposite() OrderSide {
	if s == OrderSideBuy {
		return OrderSideSell
	}
	return OrderSideBuy
}

// Order is an instruction to exchange coins at the global conversion
// rate. It lives in the order book only while unmatched; its CoinAmount
// is reduced as matches consume it and is always > 0 while resting.
type Order struct {
	Side       OrderSide
	WalletID   uint32
	CoinAmount float64
}
