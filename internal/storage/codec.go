package storage

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/fmicoin/market/internal/domain"
)

// Record encodings, version 1. Every record is a fixed-width
// little-endian byte sequence; a file is a flat array of records with
// no header, so record count is implied by file size.
const (
	// owner name (NUL padded) + id u32 + fiat balance f64
	walletRecordSizeV1 = domain.OwnerNameSize + 4 + 8
	// timestamp i64 + sender u32 + receiver u32 + coin amount f64
	transactionRecordSizeV1 = 8 + 4 + 4 + 8
	// side u32 + wallet id u32 + coin amount f64
	orderRecordSizeV1 = 4 + 4 + 8
)

func encodeWalletV1(buf []byte, w domain.Wallet) {
	owner := buf[:domain.OwnerNameSize]
	for i := range owner {
		owner[i] = 0
	}
	copy(owner, w.Owner)
	binary.LittleEndian.PutUint32(buf[domain.OwnerNameSize:], w.ID)
	binary.LittleEndian.PutUint64(buf[domain.OwnerNameSize+4:], math.Float64bits(w.FiatBalance))
}

func decodeWalletV1(buf []byte) domain.Wallet {
	owner := buf[:domain.OwnerNameSize]
	if i := bytes.IndexByte(owner, 0); i >= 0 {
		owner = owner[:i]
	}
	return domain.Wallet{
		Owner:       string(owner),
		ID:          binary.LittleEndian.Uint32(buf[domain.OwnerNameSize:]),
		FiatBalance: math.Float64frombits(binary.LittleEndian.Uint64(buf[domain.OwnerNameSize+4:])),
	}
}

func encodeTransactionV1(buf []byte, tx domain.Transaction) {
	binary.LittleEndian.PutUint64(buf[0:], uint64(tx.Timestamp))
	binary.LittleEndian.PutUint32(buf[8:], tx.SenderID)
	binary.LittleEndian.PutUint32(buf[12:], tx.ReceiverID)
	binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(tx.CoinAmount))
}

func decodeTransactionV1(buf []byte) domain.Transaction {
	return domain.Transaction{
		Timestamp:  int64(binary.LittleEndian.Uint64(buf[0:])),
		SenderID:   binary.LittleEndian.Uint32(buf[8:]),
		ReceiverID: binary.LittleEndian.Uint32(buf[12:]),
		CoinAmount: math.Float64frombits(binary.LittleEndian.Uint64(buf[16:])),
	}
}

func encodeOrderV1(buf []byte, o domain.Order) {
	binary.LittleEndian.PutUint32(buf[0:], uint32(o.Side))
	binary.LittleEndian.PutUint32(buf[4:], o.WalletID)
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(o.CoinAmount))
}

func decodeOrderV1(buf []byte) domain.Order {
	return domain.Order{
		Side:       domain.OrderSide(binary.LittleEndian.Uint32(buf[0:])),
		WalletID:   binary.LittleEndian.Uint32(buf[4:]),
		CoinAmount: math.Float64frombits(binary.LittleEndian.Uint64(buf[8:])),
	}
}
