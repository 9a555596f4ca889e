package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fmicoin/market/internal/domain"
)

// File names under the data directory.
const (
	walletFile      = "wallets.dat"
	transactionFile = "transactions.dat"
	orderFile       = "orders.dat"
)

// Store persists market state as three flat binary files. Wallets and
// orders are truncated and fully rewritten on every save because their
// records mutate or churn; the transactions file is append-only, so a
// save writes only the ledger suffix created since the last save.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates a Store rooted at dir. The directory is created on
// the first save if it does not exist.
func NewStore(dir string, logger *slog.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// Snapshot is the persisted market state as read from disk.
type Snapshot struct {
	Wallets      []domain.Wallet
	Transactions []domain.Transaction
	Orders       []domain.Order
}

// Load reads all three files. Missing files yield empty slices (a fresh
// market). A file whose length is not a multiple of its record size is
// corrupt; it is reported and treated as empty rather than letting a
// misaligned read propagate. Read errors are returned and should be
// treated as fatal by the caller, since starting against unknown state
// would risk overwriting it.
func (s *Store) Load() (*Snapshot, error) {
	walletData, err := s.readRecords(walletFile, walletRecordSizeV1)
	if err != nil {
		return nil, err
	}
	txData, err := s.readRecords(transactionFile, transactionRecordSizeV1)
	if err != nil {
		return nil, err
	}
	orderData, err := s.readRecords(orderFile, orderRecordSizeV1)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Wallets:      make([]domain.Wallet, 0, len(walletData)/walletRecordSizeV1),
		Transactions: make([]domain.Transaction, 0, len(txData)/transactionRecordSizeV1),
		Orders:       make([]domain.Order, 0, len(orderData)/orderRecordSizeV1),
	}
	for off := 0; off < len(walletData); off += walletRecordSizeV1 {
		snap.Wallets = append(snap.Wallets, decodeWalletV1(walletData[off:off+walletRecordSizeV1]))
	}
	for off := 0; off < len(txData); off += transactionRecordSizeV1 {
		snap.Transactions = append(snap.Transactions, decodeTransactionV1(txData[off:off+transactionRecordSizeV1]))
	}
	for off := 0; off < len(orderData); off += orderRecordSizeV1 {
		snap.Orders = append(snap.Orders, decodeOrderV1(orderData[off:off+orderRecordSizeV1]))
	}
	return snap, nil
}

// readRecords reads a whole file and validates its alignment against
// the record size.
func (s *Store) readRecords(name string, recordSize int) ([]byte, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data)%recordSize != 0 {
		s.logger.Error("persisted file is misaligned, treating as empty",
			slog.String("file", name),
			slog.Int("size", len(data)),
			slog.Int("record_size", recordSize),
		)
		return nil, nil
	}
	return data, nil
}

// Save writes the full wallet and order state and appends the new
// ledger suffix, syncing each file before returning. On success the
// caller should mark the appended transactions as persisted.
//
// The transactions file is written last: the truncate-rewrite files
// are idempotent across retries, the append is not, so a save that
// fails before the append can be retried with the same suffix.
func (s *Store) Save(wallets []domain.Wallet, newTxns []domain.Transaction, orders []domain.Order) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	walletBuf := make([]byte, len(wallets)*walletRecordSizeV1)
	for i, w := range wallets {
		encodeWalletV1(walletBuf[i*walletRecordSizeV1:], w)
	}
	if err := s.writeFile(walletFile, walletBuf, os.O_TRUNC); err != nil {
		return err
	}

	orderBuf := make([]byte, len(orders)*orderRecordSizeV1)
	for i, o := range orders {
		encodeOrderV1(orderBuf[i*orderRecordSizeV1:], o)
	}
	if err := s.writeFile(orderFile, orderBuf, os.O_TRUNC); err != nil {
		return err
	}

	txBuf := make([]byte, len(newTxns)*transactionRecordSizeV1)
	for i, tx := range newTxns {
		encodeTransactionV1(txBuf[i*transactionRecordSizeV1:], tx)
	}
	return s.writeFile(transactionFile, txBuf, os.O_APPEND)
}

// writeFile opens the named file for writing with the given disposition
// flag (truncate or append), writes data, and syncs before closing.
func (s *Store) writeFile(name string, data []byte, flag int) error {
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|flag, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	return f.Close()
}
