package service

import (
	"fmt"
	"time"

	"github.com/google/btree"

	"github.com/fmicoin/market/internal/domain"
)

// CreateWalletRequest represents the input for wallet creation.
type CreateWalletRequest struct {
	Owner       string
	InitialFiat float64
}

// CreateWallet validates the request, assigns the next wallet id, and
// seeds the wallet's coin balance with a mint transaction from the
// system account. The mint is appended to the ledger before the wallet
// is committed to the registry, so a wallet never exists without its
// seeding transaction.
func (s *MarketService) CreateWallet(req CreateWalletRequest) (domain.Wallet, error) {
	if req.Owner == "" {
		return domain.Wallet{}, &domain.ValidationError{Message: "owner must not be empty"}
	}
	if len(req.Owner) > domain.OwnerNameSize {
		return domain.Wallet{}, &domain.ValidationError{
			Message: fmt.Sprintf("owner must be at most %d bytes", domain.OwnerNameSize),
		}
	}
	if req.InitialFiat < 0 {
		return domain.Wallet{}, &domain.ValidationError{Message: "initial_fiat must be >= 0"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w := domain.Wallet{
		Owner:       req.Owner,
		ID:          s.wallets.NextID(),
		FiatBalance: req.InitialFiat,
	}
	s.ledger.Append(domain.Transaction{
		Timestamp:  time.Now().Unix(),
		SenderID:   domain.SystemWalletID,
		ReceiverID: w.ID,
		CoinAmount: s.conv.ToCoins(req.InitialFiat),
	})
	s.wallets.Append(w)
	return w, nil
}

// WalletInfo aggregates a wallet's balances and its ledger activity.
type WalletInfo struct {
	Wallet           domain.Wallet
	CoinBalance      float64
	TransactionCount int
	FirstTransaction *int64 // nil when the wallet has no transactions
	LastTransaction  *int64
}

// GetWalletInfo returns the wallet's fiat balance plus its coin
// balance and transaction activity computed by replaying the ledger.
func (s *MarketService) GetWalletInfo(walletID uint32) (*WalletInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets.Lookup(walletID)
	if !ok {
		return nil, domain.ErrWalletNotFound
	}

	info := &WalletInfo{Wallet: *w}
	for _, tx := range s.ledger.All() {
		switch walletID {
		case tx.ReceiverID:
			info.CoinBalance += tx.CoinAmount
		case tx.SenderID:
			info.CoinBalance -= tx.CoinAmount
		default:
			continue
		}
		info.TransactionCount++
		ts := tx.Timestamp
		if info.FirstTransaction == nil || ts < *info.FirstTransaction {
			first := ts
			info.FirstTransaction = &first
		}
		if info.LastTransaction == nil || ts > *info.LastTransaction {
			last := ts
			info.LastTransaction = &last
		}
	}
	return info, nil
}

// Investor is one entry in the top-investors ranking.
type Investor struct {
	WalletID         uint32
	Owner            string
	Coins            float64
	TransactionCount int
	FirstTransaction int64
	LastTransaction  int64
}

// investorLess orders investors by coin balance descending, with the
// lower wallet id winning ties, so Ascend visits the wealthiest first.
func investorLess(a, b Investor) bool {
	if a.Coins != b.Coins {
		return a.Coins > b.Coins
	}
	return a.WalletID < b.WalletID
}

// TopInvestors returns up to limit wallets ranked by coin balance,
// wealthiest first. Only wallets with a positive coin balance rank.
// All balances come from a single replay of the ledger.
func (s *MarketService) TopInvestors(limit int) []Investor {
	if limit <= 0 {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[uint32]*Investor, s.wallets.Len())
	for _, w := range s.wallets.All() {
		byID[w.ID] = &Investor{WalletID: w.ID, Owner: w.Owner}
	}

	tally := func(inv *Investor, ts int64) {
		if inv.TransactionCount == 0 || ts < inv.FirstTransaction {
			inv.FirstTransaction = ts
		}
		if ts > inv.LastTransaction {
			inv.LastTransaction = ts
		}
		inv.TransactionCount++
	}
	for _, tx := range s.ledger.All() {
		if recv, ok := byID[tx.ReceiverID]; ok {
			recv.Coins += tx.CoinAmount
			tally(recv, tx.Timestamp)
		}
		if !tx.IsMint() {
			if send, ok := byID[tx.SenderID]; ok {
				send.Coins -= tx.CoinAmount
				tally(send, tx.Timestamp)
			}
		}
	}

	const degree = 32
	tree := btree.NewG[Investor](degree, investorLess)
	for _, inv := range byID {
		if inv.Coins > 0 {
			tree.ReplaceOrInsert(*inv)
		}
	}

	ranked := make([]Investor, 0, limit)
	tree.Ascend(func(inv Investor) bool {
		ranked = append(ranked, inv)
		return len(ranked) < limit
	})
	return ranked
}
