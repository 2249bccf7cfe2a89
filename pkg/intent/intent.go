package intent

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var (
	// ErrHalfDurableNonce is returned when exactly one of the durable-nonce
	// fields is set. The pair is both-or-neither; the wire format cannot
	// enforce that, so it is checked here before anything else looks at the
	// intent.
	ErrHalfDurableNonce = errors.New("nonce_account and nonce_auth must both be set or both be empty")
)

// Intent is a signed, offline-authorized value transfer. The struct mirrors
// the Borsh wire layout: fixed 32-byte keys, little-endian u64 fields, and
// the two optional keys as presence-flag + value.
//
// The Nonce field is a sender-chosen tag and is advisory only; replay
// protection comes from the durable nonce account, not from this field.
type Intent struct {
	From         solana.PublicKey
	To           solana.PublicKey
	Amount       uint64
	Nonce        uint64
	Expiry       uint64 // Unix seconds
	NonceAccount *solana.PublicKey `bin:"optional"`
	NonceAuth    *solana.PublicKey `bin:"optional"`
}

// Decode parses a Borsh-encoded intent. The input must be exactly one
// intent record; trailing bytes are rejected so that the bytes covered by
// the sender's signature are unambiguous.
func Decode(data []byte) (Intent, error) {
	var it Intent
	decoder := bin.NewBorshDecoder(data)
	if err := decoder.Decode(&it); err != nil {
		return Intent{}, fmt.Errorf("decode intent: %w", err)
	}
	if decoder.Remaining() != 0 {
		return Intent{}, fmt.Errorf("decode intent: %d trailing bytes", decoder.Remaining())
	}
	return it, nil
}

// Encode produces the canonical Borsh encoding, the exact bytes a sender
// signs. Encode(Decode(b)) == b for any valid b.
func (it Intent) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(it); err != nil {
		return nil, fmt.Errorf("encode intent: %w", err)
	}
	return buf.Bytes(), nil
}

// IsExpired reports whether the intent is past its expiry. The boundary is
// strict: now == Expiry is still valid.
func (it Intent) IsExpired(now uint64) bool {
	return now > it.Expiry
}

// HasDurableNonce reports whether the intent requests durable-nonce
// settlement, meaning both optional fields are present.
func (it Intent) HasDurableNonce() bool {
	return it.NonceAccount != nil && it.NonceAuth != nil
}

// DurableNonce returns the replay-guard account and its authority. ok is
// false when the intent does not use durable-nonce settlement.
func (it Intent) DurableNonce() (account, authority solana.PublicKey, ok bool) {
	if !it.HasDurableNonce() {
		return solana.PublicKey{}, solana.PublicKey{}, false
	}
	return *it.NonceAccount, *it.NonceAuth, true
}

// Validate checks the structural invariants that the wire encoding cannot
// express, currently only the both-or-neither rule for the durable-nonce
// pair.
func (it Intent) Validate() error {
	if (it.NonceAccount != nil) != (it.NonceAuth != nil) {
		return ErrHalfDurableNonce
	}
	return nil
}
