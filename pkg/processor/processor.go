// Package processor is the settlement executor: the single entry point that
// validates a signed intent and, only after every check has passed, issues
// the nonce advance and the value transfer against the host ledger.
package processor

import (
	"errors"
	"fmt"

	"github.com/smartcontractkit/chainlink-common/pkg/logger"

	"github.com/toss-network/settlement/pkg/instruction"
	"github.com/toss-network/settlement/pkg/intent"
	"github.com/toss-network/settlement/pkg/ledger"
	"github.com/toss-network/settlement/pkg/nonceguard"
	"github.com/toss-network/settlement/pkg/signing"
)

// Account list order for a ProcessIntent invocation.
const (
	idxSender = iota
	idxRecipient
	idxSystem
	idxNonceAccount
	idxNonceAuthority

	minAccounts        = 3
	minDurableAccounts = 5
)

var (
	ErrDecode                 = errors.New("intent decode failed")
	ErrAuth                   = errors.New("signature authentication failed")
	ErrIdentityMismatch       = errors.New("account does not match intent")
	ErrMissingSenderSignature = errors.New("sender must be a signer of the invocation")
	ErrExpired                = errors.New("intent has expired")
	ErrReplay                 = errors.New("replay guard rejected intent")
	ErrLedgerCall             = errors.New("ledger call failed")
	ErrAccountList            = errors.New("account list too short")
	ErrDurableNonceRequired   = errors.New("durable nonce required")
)

// Processor orchestrates intent settlement. Every invocation is stateless:
// the only effects are zero or one nonce advance and exactly one transfer,
// both delegated to the Ledger and both issued only after all checks pass.
type Processor struct {
	Logger   logger.Logger
	Verifier signing.Verifier
	Ledger   ledger.Ledger
	Clock    ledger.Clock
	Config   Config
}

func New(lgr logger.Logger, verifier signing.Verifier, ldg ledger.Ledger, clock ledger.Clock, config Config) *Processor {
	return &Processor{
		Logger:   logger.Named(lgr, "IntentProcessor"),
		Verifier: verifier,
		Ledger:   ldg,
		Clock:    clock,
		Config:   config,
	}
}

// Process decodes the instruction envelope and routes it. Envelope decode
// failure is reported as-is and is distinct from intent decode failure.
func (p *Processor) Process(accounts []ledger.Account, instructionData []byte) error {
	inst, err := instruction.Decode(instructionData)
	if err != nil {
		return err
	}

	switch inst.Opcode {
	case instruction.OpcodeProcessIntent:
		return p.ProcessIntent(accounts, inst.ProcessIntent.Signature, inst.ProcessIntent.IntentData)
	default:
		return fmt.Errorf("%w: %d", instruction.ErrUnknownOpcode, inst.Opcode)
	}
}

// ProcessIntent runs the ordered validation sequence and settles the intent.
// The first failing check aborts the invocation; nothing is submitted to the
// ledger before every check has passed.
func (p *Processor) ProcessIntent(accounts []ledger.Account, signature [instruction.SignatureLen]byte, intentData []byte) error {
	if len(accounts) < minAccounts {
		return fmt.Errorf("%w: got %d, need %d", ErrAccountList, len(accounts), minAccounts)
	}
	sender := accounts[idxSender]
	recipient := accounts[idxRecipient]

	it, err := intent.Decode(intentData)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}
	if err := it.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}
	if p.Config.RequireDurableNonce && !it.HasDurableNonce() {
		return ErrDurableNonceRequired
	}

	p.Logger.Debugw("processing intent", "from", it.From, "to", it.To, "amount", it.Amount)

	// The signature covers intentData exactly as received; the decoded
	// struct is never re-encoded for verification.
	if err := p.Verifier.Verify(it.From, intentData, signature[:]); err != nil {
		return fmt.Errorf("%w: %s", ErrAuth, err)
	}

	if !sender.Key.Equals(it.From) {
		return fmt.Errorf("%w: sender account %s, intent names %s", ErrIdentityMismatch, sender.Key, it.From)
	}
	if !recipient.Key.Equals(it.To) {
		return fmt.Errorf("%w: recipient account %s, intent names %s", ErrIdentityMismatch, recipient.Key, it.To)
	}
	if !sender.IsSigner {
		return fmt.Errorf("%w: %s", ErrMissingSenderSignature, sender.Key)
	}

	if it.IsExpired(p.Clock.Now()) {
		return fmt.Errorf("%w: expiry %d", ErrExpired, it.Expiry)
	}

	if claimedToken, claimedAuthority, ok := it.DurableNonce(); ok {
		if len(accounts) < minDurableAccounts {
			return fmt.Errorf("%w: got %d, durable nonce needs %d", ErrAccountList, len(accounts), minDurableAccounts)
		}

		advance, err := nonceguard.ValidateAndConsume(
			accounts[idxNonceAccount], accounts[idxNonceAuthority],
			claimedToken, claimedAuthority,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReplay, err)
		}

		if err := p.Ledger.AdvanceNonce(advance.Account, advance.Authority); err != nil {
			return fmt.Errorf("%w: advance nonce: %w", ErrLedgerCall, err)
		}
		p.Logger.Debugw("nonce advanced", "account", advance.Account)
	}

	if err := p.Ledger.Transfer(it.From, it.To, it.Amount); err != nil {
		return fmt.Errorf("%w: transfer: %w", ErrLedgerCall, err)
	}

	p.Logger.Infow("intent settled", "from", it.From, "to", it.To, "amount", it.Amount)
	return nil
}
