// Package ledger holds the contracts the settlement engine consumes from its
// host environment: resolved accounts, a time source, and the native
// transfer and nonce-advance primitives. MemLedger is an in-process
// implementation of those contracts used by tests and the relayer.
package ledger

import (
	"github.com/gagliardetto/solana-go"
)

// Account is one entry of the resolved account list the host passes into an
// invocation.
type Account struct {
	Key      solana.PublicKey
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
	IsSigner bool
}

// Clock is the host time source.
type Clock interface {
	Now() uint64 // Unix seconds
}

// Ledger exposes the two native primitives the engine invokes. Both are
// synchronous: they either complete or fail without partial effect.
type Ledger interface {
	// Transfer moves amount base units from one account to another.
	Transfer(from, to solana.PublicKey, amount uint64) error

	// AdvanceNonce advances a nonce account, invalidating every intent
	// submission built against its previous value. The host serializes
	// calls touching the same nonce account.
	AdvanceNonce(account, authority solana.PublicKey) error
}
