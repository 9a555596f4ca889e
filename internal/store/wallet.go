package store

import (
	"fmt"

	"github.com/fmicoin/market/internal/domain"
)

// WalletRegistry owns all wallet records and assigns their ids. Ids are
// dense, start at 0, and are never reused. Lookup goes through an
// explicit id→slot index so storage order is not load-bearing, even
// though today wallets are only ever appended.
type WalletRegistry struct {
	wallets []domain.Wallet
	index   map[uint32]int
	nextID  uint32
}

// NewWalletRegistry creates an empty WalletRegistry.
func NewWalletRegistry() *WalletRegistry {
	return &WalletRegistry{
		index: make(map[uint32]int),
	}
}

// Load replaces the registry's contents with wallets read from disk and
// initializes the next id from the highest id present.
func (r *WalletRegistry) Load(wallets []domain.Wallet) {
	r.wallets = wallets
	r.index = make(map[uint32]int, len(wallets))
	r.nextID = 0
	for i, w := range wallets {
		r.index[w.ID] = i
		if w.ID >= r.nextID {
			r.nextID = w.ID + 1
		}
	}
}

// NextID returns the id the next created wallet will receive. The id is
// only consumed when Append commits the wallet, which lets the caller
// write the seeding mint transaction first and abandon the id if that
// fails.
func (r *WalletRegistry) NextID() uint32 {
	return r.nextID
}

// Append commits a wallet to the registry, growing backing storage by
// capacity doubling when full.
func (r *WalletRegistry) Append(w domain.Wallet) {
	if len(r.wallets) == cap(r.wallets) {
		grown := make([]domain.Wallet, len(r.wallets), growCapacity(cap(r.wallets)))
		copy(grown, r.wallets)
		r.wallets = grown
	}
	r.index[w.ID] = len(r.wallets)
	r.wallets = append(r.wallets, w)
	if w.ID >= r.nextID {
		r.nextID = w.ID + 1
	}
}

// Lookup returns a pointer to the wallet with the given id, or false if
// no such wallet exists. The pointer stays valid until the next Append.
// Settlements mutate the wallet's fiat balance through it.
func (r *WalletRegistry) Lookup(id uint32) (*domain.Wallet, bool) {
	i, ok := r.index[id]
	if !ok {
		return nil, false
	}
	w := &r.wallets[i]
	if w.ID != id {
		// Slot identity is a structural invariant, not a runtime error.
		panic(fmt.Sprintf("store: wallet slot %d holds id %d, want %d", i, w.ID, id))
	}
	return w, true
}

// All returns every wallet in id order. The returned slice is the
// registry's backing storage and must not be modified.
func (r *WalletRegistry) All() []domain.Wallet {
	return r.wallets
}

// Len returns the number of registered wallets.
func (r *WalletRegistry) Len() int {
	return len(r.wallets)
}
