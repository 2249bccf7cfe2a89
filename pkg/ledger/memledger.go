package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// NonceAccountDataLen is the stored size of an initialized nonce account.
const NonceAccountDataLen = 80

var (
	ErrUnknownAccount       = errors.New("unknown account")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUnknownNonceAccount  = errors.New("unknown nonce account")
	ErrWrongNonceAuthority  = errors.New("wrong nonce authority")
	ErrNonceAlreadyAdvanced = errors.New("nonce already advanced past the captured value")
)

type nonceState struct {
	authority solana.PublicKey
	value     uint64 // advanced monotonically, never reused
	captured  uint64 // value outstanding submissions were built against
}

// MemLedger is an in-process host ledger: balances, nonce accounts with
// monotonic advancement, and the serialization guarantee the engine assumes
// (a single mutex, so two invocations touching the same nonce account can
// never interleave their read-then-advance steps).
//
// Nonce capture models the host's account resolution: CaptureNonce records
// the value a batch of offline submissions is built against, and
// AdvanceNonce fails once the stored value has moved past it.
type MemLedger struct {
	lock     sync.Mutex
	balances map[solana.PublicKey]uint64
	nonces   map[solana.PublicKey]*nonceState
}

var _ Ledger = &MemLedger{}

func NewMemLedger() *MemLedger {
	return &MemLedger{
		balances: map[solana.PublicKey]uint64{},
		nonces:   map[solana.PublicKey]*nonceState{},
	}
}

// CreateAccount funds an account, creating it if missing.
func (l *MemLedger) CreateAccount(key solana.PublicKey, lamports uint64) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.balances[key] += lamports
}

// Balance returns the current balance, zero for unknown accounts.
func (l *MemLedger) Balance(key solana.PublicKey) uint64 {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.balances[key]
}

// Transfer debits from and credits to. The recipient account is created on
// first credit, matching the native transfer's behavior.
func (l *MemLedger) Transfer(from, to solana.PublicKey, amount uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	balance, exists := l.balances[from]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, from)
	}
	if balance < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, balance, amount)
	}
	l.balances[from] = balance - amount
	l.balances[to] += amount
	return nil
}

// CreateNonceAccount initializes a nonce account with the given authority.
// The initial value counts as captured, so the first settlement against it
// can advance.
func (l *MemLedger) CreateNonceAccount(key, authority solana.PublicKey) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.nonces[key] = &nonceState{authority: authority}
}

// CaptureNonce records the nonce account's current value as the one new
// submissions are built against and returns it. Call it before signing a
// fresh batch of intents against a previously advanced account.
func (l *MemLedger) CaptureNonce(key solana.PublicKey) (uint64, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	st, exists := l.nonces[key]
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrUnknownNonceAccount, key)
	}
	st.captured = st.value
	return st.value, nil
}

// NonceValue returns the nonce account's current value.
func (l *MemLedger) NonceValue(key solana.PublicKey) (uint64, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	st, exists := l.nonces[key]
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrUnknownNonceAccount, key)
	}
	return st.value, nil
}

// AdvanceNonce advances the nonce account. It fails when the account has
// already been advanced past the captured value, which is what rejects a
// second submission of the same signed bytes.
func (l *MemLedger) AdvanceNonce(account, authority solana.PublicKey) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	st, exists := l.nonces[account]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownNonceAccount, account)
	}
	if st.authority != authority {
		return fmt.Errorf("%w: %s", ErrWrongNonceAuthority, authority)
	}
	if st.value != st.captured {
		return fmt.Errorf("%w: value %d, captured %d", ErrNonceAlreadyAdvanced, st.value, st.captured)
	}
	st.value++
	return nil
}

// View resolves an account into the shape passed to an invocation. Nonce
// accounts resolve as system-owned with their initialized data size.
func (l *MemLedger) View(key solana.PublicKey, signer bool) Account {
	l.lock.Lock()
	defer l.lock.Unlock()

	acct := Account{
		Key:      key,
		Owner:    solana.SystemProgramID,
		Lamports: l.balances[key],
		IsSigner: signer,
	}
	if _, isNonce := l.nonces[key]; isNonce {
		acct.Data = make([]byte, NonceAccountDataLen)
	}
	return acct
}

// SystemAccount is the resolved entry for the native transfer facility.
func SystemAccount() Account {
	return Account{Key: solana.SystemProgramID, Owner: solana.SystemProgramID}
}
