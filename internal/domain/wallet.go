package domain

import "math"

// OwnerNameSize is the maximum length in bytes of a wallet owner name.
// Persisted wallet records reserve exactly this many bytes for it.
const OwnerNameSize = 256

// SystemWalletID is the reserved sender id used to seed coins into newly
// created wallets (mint transactions). It is never assigned by the registry.
const SystemWalletID uint32 = math.MaxUint32

// Wallet represents a market participant's account. The coin balance is
// not stored here; it is computed on demand by replaying the ledger.
type Wallet struct {
	Owner       string
	ID          uint32
	FiatBalance float64
}
