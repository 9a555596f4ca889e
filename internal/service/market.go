package service

import (
	"sync"

	"github.com/fmicoin/market/internal/domain"
	"github.com/fmicoin/market/internal/engine"
	"github.com/fmicoin/market/internal/storage"
	"github.com/fmicoin/market/internal/store"
)

// MarketService owns the market state and serializes access to it.
// The engine is a single logical actor: every operation holds the
// service lock for its full duration, so the stores underneath carry
// no locking of their own.
type MarketService struct {
	mu      sync.RWMutex
	ledger  *store.LedgerStore
	wallets *store.WalletRegistry
	book    *store.OrderBook
	matcher *engine.Matcher
	files   *storage.Store
	conv    domain.Conversion
}

// NewMarketService creates a MarketService with the given dependencies.
func NewMarketService(
	ledger *store.LedgerStore,
	wallets *store.WalletRegistry,
	book *store.OrderBook,
	matcher *engine.Matcher,
	files *storage.Store,
	conv domain.Conversion,
) *MarketService {
	return &MarketService{
		ledger:  ledger,
		wallets: wallets,
		book:    book,
		matcher: matcher,
		files:   files,
		conv:    conv,
	}
}

// Load reads persisted state into the stores. A load failure is
// critical: the caller must not serve requests against unknown state.
func (s *MarketService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.files.Load()
	if err != nil {
		return err
	}
	s.wallets.Load(snap.Wallets)
	s.ledger.Load(snap.Transactions)
	s.book.Load(snap.Orders)
	return nil
}

// Save persists the current state: wallets and orders in full, the
// ledger as its new suffix only. On success the suffix is marked
// persisted so the next save starts after it. Save failures are
// reported to the caller but leave the in-memory state untouched.
func (s *MarketService) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.files.Save(s.wallets.All(), s.ledger.NewSinceLoad(), s.book.All()); err != nil {
		return err
	}
	s.ledger.MarkPersisted()
	return nil
}

// Snapshot is a point-in-time copy of the full market state.
// CoinBalances maps wallet id to the coin balance computed by replaying
// the ledger at snapshot time.
type Snapshot struct {
	Wallets      []domain.Wallet
	Transactions []domain.Transaction
	Orders       []domain.Order
	CoinBalances map[uint32]float64
}

// MarketSnapshot returns a copy of all wallets, transactions, and
// resting orders, plus every wallet's computed coin balance.
func (s *MarketService) MarketSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Wallets:      make([]domain.Wallet, s.wallets.Len()),
		Transactions: make([]domain.Transaction, s.ledger.Len()),
		Orders:       make([]domain.Order, s.book.Len()),
		CoinBalances: make(map[uint32]float64, s.wallets.Len()),
	}
	copy(snap.Wallets, s.wallets.All())
	copy(snap.Transactions, s.ledger.All())
	copy(snap.Orders, s.book.All())
	for _, tx := range snap.Transactions {
		snap.CoinBalances[tx.ReceiverID] += tx.CoinAmount
		if !tx.IsMint() {
			snap.CoinBalances[tx.SenderID] -= tx.CoinAmount
		}
	}
	return snap
}
