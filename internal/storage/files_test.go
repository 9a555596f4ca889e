package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fmicoin/market/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(t.TempDir(), logger)
}

func TestStore_Load_EmptyDir(t *testing.T) {
	s := newTestStore(t)

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Wallets) != 0 || len(snap.Transactions) != 0 || len(snap.Orders) != 0 {
		t.Errorf("fresh dir should load empty, got %+v", snap)
	}
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	wallets := []domain.Wallet{
		{Owner: "alice", ID: 0, FiatBalance: 81.25},
		{Owner: "bob", ID: 1, FiatBalance: 18.75},
	}
	txns := []domain.Transaction{
		{Timestamp: 100, SenderID: domain.SystemWalletID, ReceiverID: 0, CoinAmount: 0.25},
		{Timestamp: 101, SenderID: 0, ReceiverID: 1, CoinAmount: 0.05},
	}
	orders := []domain.Order{
		{Side: domain.OrderSideSell, WalletID: 0, CoinAmount: 0.05},
	}

	if err := s.Save(wallets, txns, orders); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Wallets) != 2 || snap.Wallets[1].Owner != "bob" {
		t.Errorf("wallets = %+v", snap.Wallets)
	}
	if len(snap.Transactions) != 2 || snap.Transactions[1].CoinAmount != 0.05 {
		t.Errorf("transactions = %+v", snap.Transactions)
	}
	if len(snap.Orders) != 1 || snap.Orders[0].Side != domain.OrderSideSell {
		t.Errorf("orders = %+v", snap.Orders)
	}
}

func TestStore_Save_TransactionsAppendOnly(t *testing.T) {
	s := newTestStore(t)

	first := []domain.Transaction{{Timestamp: 1, SenderID: 0, ReceiverID: 1, CoinAmount: 1}}
	if err := s.Save(nil, first, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Second save passes only the new suffix; the file must end up with
	// both records.
	second := []domain.Transaction{{Timestamp: 2, SenderID: 1, ReceiverID: 0, CoinAmount: 2}}
	if err := s.Save(nil, second, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(snap.Transactions))
	}
	if snap.Transactions[0].Timestamp != 1 || snap.Transactions[1].Timestamp != 2 {
		t.Errorf("transactions out of order: %+v", snap.Transactions)
	}
}

func TestStore_Save_WalletsRewritten(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save([]domain.Wallet{{Owner: "alice", ID: 0}, {Owner: "bob", ID: 1}}, nil, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A smaller second save must truncate, not leave stale records.
	if err := s.Save([]domain.Wallet{{Owner: "alice", ID: 0, FiatBalance: 5}}, nil, nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Wallets) != 1 || snap.Wallets[0].FiatBalance != 5 {
		t.Errorf("wallets = %+v, want single alice with 5 fiat", snap.Wallets)
	}
}

func TestStore_Load_MisalignedFileTreatedAsEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	s := NewStore(dir, logger)

	if err := os.WriteFile(filepath.Join(dir, orderFile), []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("misaligned file should be contained, got error: %v", err)
	}
	if len(snap.Orders) != 0 {
		t.Errorf("orders = %+v, want empty", snap.Orders)
	}
}

func TestStore_Save_FailedSaveRetriesWithoutDuplicatingLedger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := t.TempDir()
	s := NewStore(dir, logger)

	wallets := []domain.Wallet{{Owner: "alice", ID: 0, FiatBalance: 10}}
	txns := []domain.Transaction{
		{Timestamp: 100, SenderID: domain.SystemWalletID, ReceiverID: 0, CoinAmount: 1},
	}
	orders := []domain.Order{{Side: domain.OrderSideSell, WalletID: 0, CoinAmount: 1}}

	// A directory squatting on the orders path makes that write fail
	// before the ledger suffix is appended.
	if err := os.Mkdir(filepath.Join(dir, orderFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(wallets, txns, orders); err == nil {
		t.Fatal("save should fail when the orders file is unwritable")
	}

	if err := os.Remove(filepath.Join(dir, orderFile)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(wallets, txns, orders); err != nil {
		t.Fatalf("retry save: %v", err)
	}

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Transactions) != 1 {
		t.Errorf("transactions = %+v, want single record after retry", snap.Transactions)
	}
	if len(snap.Orders) != 1 {
		t.Errorf("orders = %+v", snap.Orders)
	}
}
