package testutils

import (
	"testing"

	"github.com/toss-network/settlement/pkg/instruction"
	"github.com/toss-network/settlement/pkg/intent"
	"github.com/toss-network/settlement/pkg/ledger"
)

// SignedIntent encodes the intent and signs the canonical bytes with the
// sender's key. The returned data is exactly what the signature covers.
func SignedIntent(t *testing.T, ks *TestKeystore, it intent.Intent) ([64]byte, []byte) {
	data, err := it.Encode()
	if err != nil {
		t.Fatalf("encode intent: %v", err)
	}
	return ks.SignIntent(it.From, data), data
}

// SettlementAccounts resolves the ordered account list for a ProcessIntent
// invocation: sender (signer), recipient, transfer facility, and the
// durable-nonce pair when the intent carries one.
func SettlementAccounts(l *ledger.MemLedger, it intent.Intent) []ledger.Account {
	accounts := []ledger.Account{
		l.View(it.From, true),
		l.View(it.To, false),
		ledger.SystemAccount(),
	}
	if account, authority, ok := it.DurableNonce(); ok {
		accounts = append(accounts,
			l.View(account, false),
			l.View(authority, true),
		)
	}
	return accounts
}

// Envelope wraps a signed intent into instruction bytes for the dispatcher.
func Envelope(t *testing.T, sig [64]byte, intentData []byte) []byte {
	data, err := instruction.ProcessIntent{Signature: sig, IntentData: intentData}.Encode()
	if err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	return data
}
