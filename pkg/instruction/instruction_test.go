package instruction_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toss-network/settlement/pkg/instruction"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var sig [instruction.SignatureLen]byte
	for i := range sig {
		sig[i] = byte(i)
	}
	payload := instruction.ProcessIntent{
		Signature:  sig,
		IntentData: []byte{0xde, 0xad, 0xbe, 0xef},
	}

	encoded, err := payload.Encode()
	require.NoError(t, err)

	// opcode + signature + u32 length prefix + data
	require.Len(t, encoded, 1+64+4+4)
	require.Equal(t, byte(instruction.OpcodeProcessIntent), encoded[0])
	require.Equal(t, sig[:], encoded[1:65])
	require.Equal(t, uint32(4), binary.LittleEndian.Uint32(encoded[65:69]))
	require.Equal(t, payload.IntentData, encoded[69:])

	decoded, err := instruction.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, instruction.OpcodeProcessIntent, decoded.Opcode)
	require.NotNil(t, decoded.ProcessIntent)
	require.Equal(t, payload, *decoded.ProcessIntent)
}

func TestDecodeFailures(t *testing.T) {
	_, err := instruction.Decode(nil)
	require.ErrorIs(t, err, instruction.ErrInvalidEnvelope)

	_, err = instruction.Decode([]byte{99})
	require.ErrorIs(t, err, instruction.ErrUnknownOpcode)

	// Truncated payload.
	payload := instruction.ProcessIntent{IntentData: []byte{1, 2, 3}}
	encoded, err := payload.Encode()
	require.NoError(t, err)
	_, err = instruction.Decode(encoded[:len(encoded)-1])
	require.ErrorIs(t, err, instruction.ErrInvalidEnvelope)

	// Trailing bytes after the payload.
	_, err = instruction.Decode(append(encoded, 0x00))
	require.ErrorIs(t, err, instruction.ErrInvalidEnvelope)
}
