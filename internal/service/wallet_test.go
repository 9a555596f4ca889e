package service

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/fmicoin/market/internal/domain"
)

func TestCreateWallet_AssignsSequentialIDs(t *testing.T) {
	s := newTestMarket(t)

	a, err := s.CreateWallet(CreateWalletRequest{Owner: "alice", InitialFiat: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := s.CreateWallet(CreateWalletRequest{Owner: "bob", InitialFiat: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.ID != 0 || b.ID != 1 {
		t.Errorf("ids = %d, %d, want 0, 1", a.ID, b.ID)
	}
}

func TestCreateWallet_SeedsWithMint(t *testing.T) {
	s := newTestMarket(t)

	a, err := s.CreateWallet(CreateWalletRequest{Owner: "alice", InitialFiat: 100})
	if err != nil {
		t.Fatal(err)
	}

	info, err := s.GetWalletInfo(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := 100.0 / 375
	if math.Abs(info.CoinBalance-want) > 1e-12 {
		t.Errorf("coin balance = %v, want %v", info.CoinBalance, want)
	}
	if info.TransactionCount != 1 {
		t.Errorf("transaction count = %d, want 1", info.TransactionCount)
	}
	if info.FirstTransaction == nil || info.LastTransaction == nil {
		t.Error("expected first/last transaction timestamps")
	}
}

func TestCreateWallet_Validation(t *testing.T) {
	s := newTestMarket(t)

	var validationErr *domain.ValidationError

	_, err := s.CreateWallet(CreateWalletRequest{Owner: "", InitialFiat: 10})
	if !errors.As(err, &validationErr) {
		t.Errorf("empty owner: got %v, want validation error", err)
	}

	_, err = s.CreateWallet(CreateWalletRequest{Owner: strings.Repeat("x", domain.OwnerNameSize+1), InitialFiat: 10})
	if !errors.As(err, &validationErr) {
		t.Errorf("overlong owner: got %v, want validation error", err)
	}

	_, err = s.CreateWallet(CreateWalletRequest{Owner: "alice", InitialFiat: -1})
	if !errors.As(err, &validationErr) {
		t.Errorf("negative fiat: got %v, want validation error", err)
	}

	// Nothing committed by the failed attempts.
	if s.wallets.Len() != 0 || s.ledger.Len() != 0 {
		t.Errorf("failed creates left state: %d wallets, %d txns", s.wallets.Len(), s.ledger.Len())
	}
}

func TestGetWalletInfo_NotFound(t *testing.T) {
	s := newTestMarket(t)

	_, err := s.GetWalletInfo(3)
	if !errors.Is(err, domain.ErrWalletNotFound) {
		t.Errorf("got %v, want ErrWalletNotFound", err)
	}
}

func TestGetWalletInfo_NoActivity(t *testing.T) {
	s := newTestMarket(t)
	a, _ := s.CreateWallet(CreateWalletRequest{Owner: "alice", InitialFiat: 0})

	info, err := s.GetWalletInfo(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	// The zero-fiat mint still counts as a transaction.
	if info.TransactionCount != 1 {
		t.Errorf("transaction count = %d, want 1", info.TransactionCount)
	}
	if info.CoinBalance != 0 {
		t.Errorf("coin balance = %v, want 0", info.CoinBalance)
	}
}

func TestTopInvestors_RanksByCoinsDescending(t *testing.T) {
	s := newTestMarket(t)

	// Coin balances: carol 3, alice 2, bob 1 (fiat = coins * 375).
	a, _ := s.CreateWallet(CreateWalletRequest{Owner: "alice", InitialFiat: 750})
	b, _ := s.CreateWallet(CreateWalletRequest{Owner: "bob", InitialFiat: 375})
	c, _ := s.CreateWallet(CreateWalletRequest{Owner: "carol", InitialFiat: 1125})

	ranked := s.TopInvestors(10)
	wantOrder := []uint32{c.ID, a.ID, b.ID}
	if len(ranked) != 3 {
		t.Fatalf("ranked = %d entries, want 3", len(ranked))
	}
	for i, want := range wantOrder {
		if ranked[i].WalletID != want {
			t.Errorf("rank %d = wallet %d, want %d", i, ranked[i].WalletID, want)
		}
	}
}

func TestTopInvestors_LimitAndZeroBalances(t *testing.T) {
	s := newTestMarket(t)

	s.CreateWallet(CreateWalletRequest{Owner: "rich", InitialFiat: 750})
	s.CreateWallet(CreateWalletRequest{Owner: "richer", InitialFiat: 1500})
	s.CreateWallet(CreateWalletRequest{Owner: "broke", InitialFiat: 0})

	ranked := s.TopInvestors(1)
	if len(ranked) != 1 || ranked[0].Owner != "richer" {
		t.Fatalf("ranked = %+v, want single richer", ranked)
	}

	// Zero-balance wallets never rank regardless of limit.
	all := s.TopInvestors(10)
	for _, inv := range all {
		if inv.Owner == "broke" {
			t.Error("zero-balance wallet ranked")
		}
	}

	if got := s.TopInvestors(0); got != nil {
		t.Errorf("TopInvestors(0) = %+v, want nil", got)
	}
}
