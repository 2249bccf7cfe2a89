package processor_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toss-network/settlement/pkg/instruction"
	"github.com/toss-network/settlement/pkg/nonceguard"
	"github.com/toss-network/settlement/pkg/processor"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		err  error
		code processor.Code
	}{
		{nil, processor.Code_Success},
		{instruction.ErrInvalidEnvelope, processor.Code_InvalidEnvelope},
		{instruction.ErrUnknownOpcode, processor.Code_UnknownOpcode},
		{processor.ErrDecode, processor.Code_InvalidIntent},
		{processor.ErrAuth, processor.Code_AuthenticationFailed},
		{processor.ErrIdentityMismatch, processor.Code_IdentityMismatch},
		{processor.ErrMissingSenderSignature, processor.Code_MissingSenderSignature},
		{processor.ErrExpired, processor.Code_Expired},
		{processor.ErrLedgerCall, processor.Code_LedgerCallFailed},
		{processor.ErrAccountList, processor.Code_AccountListTooShort},
		{processor.ErrDurableNonceRequired, processor.Code_DurableNonceRequired},
		{errors.New("something else"), processor.Code_Unknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, processor.CodeOf(tc.err), tc.code.Describe())
	}

	// Wrapped replay errors keep their specific code.
	wrapped := fmt.Errorf("%w: %w", processor.ErrReplay, nonceguard.ErrTokenMismatch)
	require.Equal(t, processor.Code_NonceTokenMismatch, processor.CodeOf(wrapped))

	require.NotEqual(t, "Unknown error", processor.Code_MalformedNonceToken.Describe())
}
