package domain

import "testing"

func TestOrderSide_String(t *testing.T) {
	if OrderSideSell.String() != "sell" {
		t.Errorf("sell side String = %q", OrderSideSell.String())
	}
	if OrderSideBuy.String() != "buy" {
		t.Errorf("buy side String = %q", OrderSideBuy.String())
	}
}

func TestOrderSide_Opposite(t *testing.T) {
	if OrderSideSell.Opposite() != OrderSideBuy {
		t.Error("opposite of sell should be buy")
	}
	if OrderSideBuy.Opposite() != OrderSideSell {
		t.Error("opposite of buy should be sell")
	}
}

func TestParseOrderSide(t *testing.T) {
	if side, ok := ParseOrderSide("sell"); !ok || side != OrderSideSell {
		t.Errorf("ParseOrderSide(sell) = %v, %v", side, ok)
	}
	if side, ok := ParseOrderSide("buy"); !ok || side != OrderSideBuy {
		t.Errorf("ParseOrderSide(buy) = %v, %v", side, ok)
	}
	if _, ok := ParseOrderSide("hold"); ok {
		t.Error("ParseOrderSide(hold) should fail")
	}
	if _, ok := ParseOrderSide("SELL"); ok {
		t.Error("ParseOrderSide is case sensitive")
	}
}

func TestOrderSide_Valid(t *testing.T) {
	if !OrderSideSell.Valid() || !OrderSideBuy.Valid() {
		t.Error("defined sides should be valid")
	}
	if OrderSide(7).Valid() {
		t.Error("side 7 should be invalid")
	}
}

func TestTransaction_IsMint(t *testing.T) {
	mint := Transaction{SenderID: SystemWalletID, ReceiverID: 0, CoinAmount: 1}
	if !mint.IsMint() {
		t.Error("system-sent transaction should be a mint")
	}
	settle := Transaction{SenderID: 0, ReceiverID: 1, CoinAmount: 1}
	if settle.IsMint() {
		t.Error("wallet-to-wallet transaction should not be a mint")
	}
}
