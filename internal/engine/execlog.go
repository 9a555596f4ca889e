package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// execLog is the human-readable audit file written for every executed
// order, one line per settlement leg plus a trailing summary.
//
// The file is created before the matching pass mutates any state, so a
// caller never settles an order it cannot audit. Write failures after
// settlement has begun do not unwind state; they surface as an empty
// log name in the execution result.
type execLog struct {
	f     *os.File
	path  string
	name  string
	legs  int
	coins float64
	err   error
}

// newExecLog creates the log file for one order execution. The name
// combines the wallet id and timestamp with a short random suffix so
// repeated orders from one wallet within the same second cannot collide.
func newExecLog(dir string, walletID uint32, now int64) (*execLog, error) {
	name := fmt.Sprintf("transaction-%d-%d-%s.log", walletID, now, uuid.NewString()[:8])
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create execution log: %w", err)
	}
	return &execLog{f: f, path: path, name: name}, nil
}

// leg records one settlement leg. Errors are sticky; once a write has
// failed the rest of the log is abandoned.
func (l *execLog) leg(sender, receiver string, coins float64) {
	l.legs++
	l.coins += coins
	if l.err != nil {
		return
	}
	_, l.err = fmt.Fprintf(l.f, "Sender: %s\tReceiver: %s\tcoins: %g\n", sender, receiver, coins)
}

// finish writes the summary and closes the file. It returns the log
// file name, or the empty sentinel when any write failed.
func (l *execLog) finish(totalFiat float64) string {
	if l.err == nil {
		_, l.err = fmt.Fprintf(l.f, "Settled legs: %d\nTotal coins: %g\nTotal fiat: %g\n", l.legs, l.coins, totalFiat)
	}
	if cerr := l.f.Close(); l.err == nil {
		l.err = cerr
	}
	if l.err != nil {
		return ""
	}
	return l.name
}

// abort closes and removes the file. Used when the pass fails before
// any state was mutated, so no audit trail should remain.
func (l *execLog) abort() {
	l.f.Close()
	os.Remove(l.path)
}
