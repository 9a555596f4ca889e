package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/fmicoin/market/internal/domain"
	"github.com/fmicoin/market/internal/store"
)

// SettlementLeg describes one coin-for-fiat exchange between exactly
// two wallets performed during a matching pass.
type SettlementLeg struct {
	SenderID   uint32
	ReceiverID uint32
	CoinAmount float64
}

// ExecutionResult reports what one order execution did.
type ExecutionResult struct {
	Legs    []SettlementLeg
	Resting float64 // residual amount left resting on the book, 0 when fully matched
	LogFile string  // empty when writing the execution log failed
}

// Matcher is the order-matching engine. Matching is price-less and
// strictly first come, first served: an incoming order consumes resting
// orders of the opposite side from the front of the book until it is
// exhausted or the book is, and every conversion happens at the fixed
// global rate.
//
// The matcher performs no precondition checks: the caller has already
// verified the wallet exists, the amount is positive, and the balance
// covers it. Settlement is applied incrementally per leg; there is no
// batched rollback.
type Matcher struct {
	ledger  *store.LedgerStore
	wallets *store.WalletRegistry
	book    *store.OrderBook
	conv    domain.Conversion
	logDir  string

	// overridable in tests
	now     func() int64
	openLog func(dir string, walletID uint32, now int64) (*execLog, error)
}

// NewMatcher creates a Matcher writing execution logs into logDir.
func NewMatcher(
	ledger *store.LedgerStore,
	wallets *store.WalletRegistry,
	book *store.OrderBook,
	conv domain.Conversion,
	logDir string,
) *Matcher {
	return &Matcher{
		ledger:  ledger,
		wallets: wallets,
		book:    book,
		conv:    conv,
		logDir:  logDir,
		now:     func() int64 { return time.Now().Unix() },
		openLog: newExecLog,
	}
}

// ExecuteOrder runs one matching pass for an incoming order.
//
// When the book holds opposite-side orders, they are consumed from the
// front: each leg appends a ledger transaction moving coins from the
// selling wallet to the buying one and moves the fiat counter-value the
// other way. Fully consumed resting orders are compacted off the front
// of the book afterwards. Any residual amount above tolerance is left
// resting, at which point it is necessarily same-side with the book.
func (m *Matcher) ExecuteOrder(w *domain.Wallet, side domain.OrderSide, coins float64) (*ExecutionResult, error) {
	now := m.now()

	// Stage the audit log first: an order that cannot be logged is
	// rejected before any state changes.
	log, err := m.openLog(m.logDir, w.ID, now)
	if err != nil {
		return nil, err
	}

	eps := m.conv.CoinEpsilon()
	remaining := coins
	res := &ExecutionResult{}

	restingSide, hasResting := m.book.Side()
	if hasResting && restingSide != side {
		// Reserve ledger space for the whole pass so settlement never
		// grows storage mid-way.
		m.ledger.EnsureSpace(m.legsNeeded(coins, eps))

		consumed := 0
		for i := 0; i < m.book.Len() && remaining > eps; i++ {
			resting := m.book.At(i)
			fill := math.Min(remaining, resting.CoinAmount)

			var senderID, receiverID uint32
			if side == domain.OrderSideSell {
				senderID, receiverID = w.ID, resting.WalletID
			} else {
				senderID, receiverID = resting.WalletID, w.ID
			}

			sender, ok := m.wallets.Lookup(senderID)
			if !ok {
				m.failPass(log, i, coins-remaining)
				return nil, fmt.Errorf("engine: resting order references unknown wallet %d", senderID)
			}
			receiver, ok := m.wallets.Lookup(receiverID)
			if !ok {
				m.failPass(log, i, coins-remaining)
				return nil, fmt.Errorf("engine: resting order references unknown wallet %d", receiverID)
			}

			// The coin seller is paid fiat by the coin buyer.
			fiat := m.conv.ToFiat(fill)
			sender.FiatBalance += fiat
			receiver.FiatBalance -= fiat

			m.ledger.Append(domain.Transaction{
				Timestamp:  now,
				SenderID:   senderID,
				ReceiverID: receiverID,
				CoinAmount: fill,
			})
			log.leg(sender.Owner, receiver.Owner, fill)
			res.Legs = append(res.Legs, SettlementLeg{
				SenderID:   senderID,
				ReceiverID: receiverID,
				CoinAmount: fill,
			})

			if resting.CoinAmount-fill <= eps {
				// Fully (or within tolerance) consumed; drop it in the
				// compaction below. Partial consumption can only happen
				// on the last leg, so consumed orders form a contiguous
				// front prefix.
				consumed++
			} else {
				m.book.Reduce(i, fill)
			}
			remaining -= fill
		}
		m.book.RemoveFront(consumed)
	}

	if remaining > eps {
		m.book.Add(domain.Order{Side: side, WalletID: w.ID, CoinAmount: remaining})
		res.Resting = remaining
	}

	matched := coins - remaining
	res.LogFile = log.finish(m.conv.ToFiat(matched))
	return res, nil
}

// failPass closes out the audit log when a pass errors. Before the
// first leg nothing has been mutated and the file is removed; after
// that the already settled legs stay on record.
func (m *Matcher) failPass(log *execLog, leg int, matched float64) {
	if leg == 0 {
		log.abort()
		return
	}
	log.finish(m.conv.ToFiat(matched))
}

// legsNeeded counts how many resting orders a pass over the current
// book would touch for an incoming amount.
func (m *Matcher) legsNeeded(coins, eps float64) int {
	legs := 0
	remaining := coins
	for i := 0; i < m.book.Len(); i++ {
		legs++
		remaining -= m.book.At(i).CoinAmount
		if remaining <= eps {
			break
		}
	}
	return legs
}
