// Package instruction defines the invocation envelope: a one-byte opcode
// followed by the Borsh-encoded operation payload. Adding an operation means
// adding an opcode constant, a payload struct, and a case in Decode; the
// settlement executor is not touched.
package instruction

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// SignatureLen is the fixed length of the ed25519 signature carried in the
// envelope.
const SignatureLen = 64

// Opcode discriminates the operation variants of the envelope.
type Opcode uint8

const (
	OpcodeProcessIntent Opcode = 0
)

var (
	ErrInvalidEnvelope = errors.New("invalid instruction envelope")
	ErrUnknownOpcode   = errors.New("unknown opcode")
)

// ProcessIntent carries a signature over the raw intent bytes and the intent
// bytes themselves. The signature is over IntentData exactly as transmitted;
// nothing here re-encodes or hashes it.
type ProcessIntent struct {
	Signature  [SignatureLen]byte
	IntentData []byte
}

// Instruction is the decoded envelope: the opcode tag plus the payload for
// the selected variant.
type Instruction struct {
	Opcode        Opcode
	ProcessIntent *ProcessIntent
}

// Decode parses an envelope. Failures here are envelope-level and distinct
// from intent decode failures raised later by the executor.
func Decode(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return Instruction{}, fmt.Errorf("%w: empty instruction data", ErrInvalidEnvelope)
	}

	opcode := Opcode(data[0])
	switch opcode {
	case OpcodeProcessIntent:
		var payload ProcessIntent
		decoder := bin.NewBorshDecoder(data[1:])
		if err := decoder.Decode(&payload); err != nil {
			return Instruction{}, fmt.Errorf("%w: %s", ErrInvalidEnvelope, err)
		}
		if decoder.Remaining() != 0 {
			return Instruction{}, fmt.Errorf("%w: %d trailing bytes", ErrInvalidEnvelope, decoder.Remaining())
		}
		return Instruction{Opcode: opcode, ProcessIntent: &payload}, nil
	default:
		return Instruction{}, fmt.Errorf("%w: %d", ErrUnknownOpcode, opcode)
	}
}

// Encode serializes a ProcessIntent envelope, the inverse of Decode.
func (p ProcessIntent) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte(byte(OpcodeProcessIntent))
	if err := bin.NewBorshEncoder(buf).Encode(p); err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	return buf.Bytes(), nil
}
