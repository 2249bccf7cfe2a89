package processor

import (
	"errors"

	"github.com/toss-network/settlement/pkg/instruction"
	"github.com/toss-network/settlement/pkg/nonceguard"
)

// Code is the numeric error the host surfaces to the caller when an
// invocation is rejected. It is the only diagnostic that crosses the
// invocation boundary, so every failure class has a distinct value.
type Code uint32

const (
	Code_Success Code = 0

	Code_InvalidEnvelope           Code = 1
	Code_UnknownOpcode             Code = 2
	Code_InvalidIntent             Code = 3
	Code_AuthenticationFailed      Code = 4
	Code_IdentityMismatch          Code = 5
	Code_MissingSenderSignature    Code = 6
	Code_Expired                   Code = 7
	Code_NonceTokenMismatch        Code = 8
	Code_NonceAuthorityMismatch    Code = 9
	Code_MissingAuthoritySignature Code = 10
	Code_MalformedNonceToken       Code = 11
	Code_LedgerCallFailed          Code = 12
	Code_AccountListTooShort       Code = 13
	Code_DurableNonceRequired      Code = 14

	Code_Unknown Code = 0xffff
)

// CodeOf maps an error returned by Process or ProcessIntent to its numeric
// code. Replay-guard failures map to their specific codes, not to a generic
// replay value.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return Code_Success
	case errors.Is(err, nonceguard.ErrTokenMismatch):
		return Code_NonceTokenMismatch
	case errors.Is(err, nonceguard.ErrAuthorityMismatch):
		return Code_NonceAuthorityMismatch
	case errors.Is(err, nonceguard.ErrMissingAuthoritySignature):
		return Code_MissingAuthoritySignature
	case errors.Is(err, nonceguard.ErrMalformedToken):
		return Code_MalformedNonceToken
	case errors.Is(err, instruction.ErrUnknownOpcode):
		return Code_UnknownOpcode
	case errors.Is(err, instruction.ErrInvalidEnvelope):
		return Code_InvalidEnvelope
	case errors.Is(err, ErrDecode):
		return Code_InvalidIntent
	case errors.Is(err, ErrAuth):
		return Code_AuthenticationFailed
	case errors.Is(err, ErrIdentityMismatch):
		return Code_IdentityMismatch
	case errors.Is(err, ErrMissingSenderSignature):
		return Code_MissingSenderSignature
	case errors.Is(err, ErrExpired):
		return Code_Expired
	case errors.Is(err, ErrLedgerCall):
		return Code_LedgerCallFailed
	case errors.Is(err, ErrAccountList):
		return Code_AccountListTooShort
	case errors.Is(err, ErrDurableNonceRequired):
		return Code_DurableNonceRequired
	default:
		return Code_Unknown
	}
}

// Describe provides a human-readable description for a code.
func (c Code) Describe() string {
	switch c {
	case Code_Success:
		return "Success"
	case Code_InvalidEnvelope:
		return "Invalid instruction envelope"
	case Code_UnknownOpcode:
		return "Unknown opcode"
	case Code_InvalidIntent:
		return "Invalid intent data"
	case Code_AuthenticationFailed:
		return "Signature authentication failed"
	case Code_IdentityMismatch:
		return "Account does not match intent"
	case Code_MissingSenderSignature:
		return "Sender must be a signer"
	case Code_Expired:
		return "Intent has expired"
	case Code_NonceTokenMismatch:
		return "Nonce account does not match intent"
	case Code_NonceAuthorityMismatch:
		return "Nonce authority does not match intent"
	case Code_MissingAuthoritySignature:
		return "Nonce authority must be a signer"
	case Code_MalformedNonceToken:
		return "Nonce account is malformed"
	case Code_LedgerCallFailed:
		return "Ledger call failed"
	case Code_AccountListTooShort:
		return "Account list too short"
	case Code_DurableNonceRequired:
		return "Durable nonce required"
	default:
		return "Unknown error"
	}
}
