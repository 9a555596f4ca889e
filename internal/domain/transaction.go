package domain

// Transaction records a single coin movement between two wallets.
// Once appended to the ledger a transaction is never modified.
type Transaction struct {
	Timestamp  int64 // unix seconds
	SenderID   uint32
	ReceiverID uint32
	CoinAmount float64
}

// IsMint reports whether the transaction is a seeding mint from the
// system account rather than a settlement between two wallets.
func (t Transaction) IsMint() bool {
	return t.SenderID == SystemWalletID
}
