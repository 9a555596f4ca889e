package store

import "github.com/fmicoin/market/internal/domain"

// LedgerStore is the append-only log of all coin movements and the
// source of truth for coin balances. Records are never rewritten or
// deleted once appended.
//
// The store tracks how many records were already persisted when it was
// loaded so that saving only has to write the suffix appended since.
//
// Stores carry no locks; the service layer serializes all access.
type LedgerStore struct {
	txns      []domain.Transaction
	persisted int // records already durable in the transactions file
}

// NewLedgerStore creates an empty LedgerStore.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{}
}

// Load replaces the store's contents with transactions read from disk
// and marks all of them as already persisted.
func (s *LedgerStore) Load(txns []domain.Transaction) {
	s.txns = txns
	s.persisted = len(txns)
}

// Append adds a transaction to the ledger, growing the backing storage
// by capacity doubling when full. The new backing array is fully built
// before it replaces the old one, so the store is never left in a
// partially grown state.
func (s *LedgerStore) Append(tx domain.Transaction) {
	s.ensureSpace(1)
	s.txns = append(s.txns, tx)
}

// EnsureSpace pre-grows the store so that n more transactions can be
// appended without reallocation. The matching engine reserves space for
// a whole pass up front so settlement never reallocates mid-pass.
func (s *LedgerStore) EnsureSpace(n int) {
	s.ensureSpace(n)
}

func (s *LedgerStore) ensureSpace(n int) {
	need := len(s.txns) + n
	if need <= cap(s.txns) {
		return
	}
	newCap := growCapacity(cap(s.txns))
	for need > newCap {
		newCap = growCapacity(newCap)
	}
	grown := make([]domain.Transaction, len(s.txns), newCap)
	copy(grown, s.txns)
	s.txns = grown
}

// ComputeBalance replays the full ledger and returns the wallet's coin
// balance: +amount where the wallet is the receiver, -amount where it
// is the sender. O(n) in ledger size, computed fresh on every call.
func (s *LedgerStore) ComputeBalance(walletID uint32) float64 {
	var total float64
	for _, tx := range s.txns {
		if tx.ReceiverID == walletID {
			total += tx.CoinAmount
		} else if tx.SenderID == walletID {
			total -= tx.CoinAmount
		}
	}
	return total
}

// All returns the full ledger in append order. The returned slice is
// the store's backing storage and must not be modified.
func (s *LedgerStore) All() []domain.Transaction {
	return s.txns
}

// NewSinceLoad returns the suffix of transactions appended after the
// last load or MarkPersisted call. These are the only records the
// storage layer has to write on save.
func (s *LedgerStore) NewSinceLoad() []domain.Transaction {
	return s.txns[s.persisted:]
}

// MarkPersisted records that every transaction currently in the store
// has been written to disk.
func (s *LedgerStore) MarkPersisted() {
	s.persisted = len(s.txns)
}

// Len returns the number of transactions in the ledger.
func (s *LedgerStore) Len() int {
	return len(s.txns)
}
