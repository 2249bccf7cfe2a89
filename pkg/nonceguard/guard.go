// Package nonceguard validates the durable-nonce accounts attached to an
// intent and produces the advance request that consumes them. The guard only
// checks shape, identity and authority; the exactly-once property itself
// comes from the ledger's monotonic advancement when the executor submits
// the advance request.
package nonceguard

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/toss-network/settlement/pkg/ledger"
)

// MinTokenDataLen is the minimum stored size of an initialized nonce
// account.
const MinTokenDataLen = 48

var (
	ErrTokenMismatch             = errors.New("nonce account does not match intent")
	ErrAuthorityMismatch         = errors.New("nonce authority does not match intent")
	ErrMissingAuthoritySignature = errors.New("nonce authority must be a signer")
	ErrMalformedToken            = errors.New("nonce account is malformed")
)

// AdvanceRequest names the nonce account and authority to submit to the
// ledger's advance primitive once every check has passed.
type AdvanceRequest struct {
	Account   solana.PublicKey
	Authority solana.PublicKey
}

// ValidateAndConsume runs the ordered durable-nonce checks against the two
// accounts supplied with the invocation and the keys claimed by the intent.
// Each failure is distinct; the first one aborts. On success the returned
// AdvanceRequest is ready for submission.
func ValidateAndConsume(token, authority ledger.Account, claimedToken, claimedAuthority solana.PublicKey) (AdvanceRequest, error) {
	if !token.Key.Equals(claimedToken) {
		return AdvanceRequest{}, fmt.Errorf("%w: got %s, intent names %s", ErrTokenMismatch, token.Key, claimedToken)
	}
	if !authority.Key.Equals(claimedAuthority) {
		return AdvanceRequest{}, fmt.Errorf("%w: got %s, intent names %s", ErrAuthorityMismatch, authority.Key, claimedAuthority)
	}
	if !authority.IsSigner {
		return AdvanceRequest{}, fmt.Errorf("%w: %s", ErrMissingAuthoritySignature, authority.Key)
	}
	if !token.Owner.Equals(solana.SystemProgramID) {
		return AdvanceRequest{}, fmt.Errorf("%w: owner is %s", ErrMalformedToken, token.Owner)
	}
	if len(token.Data) < MinTokenDataLen {
		return AdvanceRequest{}, fmt.Errorf("%w: data length %d below %d", ErrMalformedToken, len(token.Data), MinTokenDataLen)
	}

	return AdvanceRequest{Account: token.Key, Authority: authority.Key}, nil
}
