// Package signing authenticates intents: it checks that the signature
// carried in the envelope was produced by the claimed sender's key over the
// exact raw intent bytes.
package signing

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrBadSignature    = errors.New("signature does not verify")
	ErrBadSignatureLen = errors.New("signature must be 64 bytes")
	ErrBadPublicKey    = errors.New("signer key is not a valid ed25519 public key")
)

// Verifier checks a claimed signature over a message. The message is the
// exact byte sequence the signer signed; implementations must never hash or
// re-encode it first.
type Verifier interface {
	Verify(signer solana.PublicKey, message, sig []byte) error
}

// Ed25519Verifier verifies ed25519 signatures inline. Account keys on the
// ledger are ed25519 public keys, so the sender identity doubles as the
// verification key.
type Ed25519Verifier struct{}

var _ Verifier = Ed25519Verifier{}

func (Ed25519Verifier) Verify(signer solana.PublicKey, message, sig []byte) error {
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: got %d", ErrBadSignatureLen, len(sig))
	}
	pub := ed25519.PublicKey(signer.Bytes())
	if len(pub) != ed25519.PublicKeySize {
		return ErrBadPublicKey
	}
	if !ed25519.Verify(pub, message, sig) {
		return ErrBadSignature
	}
	return nil
}
