package service

import (
	"github.com/fmicoin/market/internal/domain"
	"github.com/fmicoin/market/internal/engine"
)

// SubmitOrderRequest represents the input for order submission.
type SubmitOrderRequest struct {
	Side       domain.OrderSide
	WalletID   uint32
	CoinAmount float64
}

// SubmitOrder validates the request, checks the funding preconditions,
// and runs the matching engine. A sell requires the wallet's computed
// coin balance to cover the amount; a buy requires the fiat balance to
// cover the amount at the conversion rate. The engine itself does not
// re-check these.
func (s *MarketService) SubmitOrder(req SubmitOrderRequest) (*engine.ExecutionResult, error) {
	if !req.Side.Valid() {
		return nil, &domain.ValidationError{Message: "side must be one of: buy, sell"}
	}
	if req.CoinAmount <= 0 {
		return nil, &domain.ValidationError{Message: "coin_amount must be > 0"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets.Lookup(req.WalletID)
	if !ok {
		return nil, domain.ErrWalletNotFound
	}

	if req.Side == domain.OrderSideSell {
		if s.ledger.ComputeBalance(req.WalletID) < req.CoinAmount {
			return nil, domain.ErrInsufficientCoins
		}
	} else {
		if w.FiatBalance < s.conv.ToFiat(req.CoinAmount) {
			return nil, domain.ErrInsufficientFiat
		}
	}

	return s.matcher.ExecuteOrder(w, req.Side, req.CoinAmount)
}

// RestingOrders returns a copy of the order book in FIFO position.
func (s *MarketService) RestingOrders() []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]domain.Order, s.book.Len())
	copy(orders, s.book.All())
	return orders
}

// Conversion exposes the market's fixed conversion parameters, used by
// the handler layer to report fiat equivalents.
func (s *MarketService) Conversion() domain.Conversion {
	return s.conv
}
