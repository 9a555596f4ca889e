package store

import (
	"testing"

	"github.com/fmicoin/market/internal/domain"
)

func TestWalletRegistry_Append_and_Lookup(t *testing.T) {
	r := NewWalletRegistry()

	id := r.NextID()
	if id != 0 {
		t.Fatalf("NextID on empty registry = %d, want 0", id)
	}

	r.Append(domain.Wallet{Owner: "alice", ID: id, FiatBalance: 100})

	w, ok := r.Lookup(0)
	if !ok {
		t.Fatal("expected wallet 0 to exist")
	}
	if w.Owner != "alice" || w.FiatBalance != 100 {
		t.Errorf("got %+v, want alice with 100 fiat", w)
	}
	if r.NextID() != 1 {
		t.Errorf("NextID after append = %d, want 1", r.NextID())
	}
}

func TestWalletRegistry_Lookup_NotFound(t *testing.T) {
	r := NewWalletRegistry()
	if _, ok := r.Lookup(0); ok {
		t.Error("expected lookup miss on empty registry")
	}
}

func TestWalletRegistry_Lookup_MutatesInPlace(t *testing.T) {
	r := NewWalletRegistry()
	r.Append(domain.Wallet{Owner: "alice", ID: 0, FiatBalance: 100})

	w, _ := r.Lookup(0)
	w.FiatBalance -= 25

	again, _ := r.Lookup(0)
	if again.FiatBalance != 75 {
		t.Errorf("FiatBalance = %v, want 75", again.FiatBalance)
	}
}

func TestWalletRegistry_Load_InitializesNextID(t *testing.T) {
	r := NewWalletRegistry()
	r.Load([]domain.Wallet{
		{Owner: "alice", ID: 0},
		{Owner: "bob", ID: 1},
		{Owner: "carol", ID: 2},
	})

	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	if r.NextID() != 3 {
		t.Errorf("NextID after load = %d, want 3", r.NextID())
	}

	w, ok := r.Lookup(1)
	if !ok || w.Owner != "bob" {
		t.Errorf("Lookup(1) = %+v, %v, want bob", w, ok)
	}
}

func TestWalletRegistry_CapacityDoubling(t *testing.T) {
	r := NewWalletRegistry()
	for i := 0; i <= initialCapacity; i++ {
		r.Append(domain.Wallet{Owner: "w", ID: uint32(i)})
	}
	if cap(r.wallets) != 2*initialCapacity {
		t.Errorf("cap after overflow = %d, want %d", cap(r.wallets), 2*initialCapacity)
	}
	// Pointers from before a growth are stale; lookups after growth
	// must still resolve through the index.
	w, ok := r.Lookup(uint32(initialCapacity))
	if !ok || w.ID != uint32(initialCapacity) {
		t.Errorf("Lookup after growth = %+v, %v", w, ok)
	}
}
