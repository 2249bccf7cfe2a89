package nonceguard_test

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/toss-network/settlement/pkg/ledger"
	"github.com/toss-network/settlement/pkg/nonceguard"
)

func key(b byte) solana.PublicKey {
	return solana.PublicKeyFromBytes(bytes.Repeat([]byte{b}, 32))
}

func validToken() ledger.Account {
	return ledger.Account{
		Key:   key(10),
		Owner: solana.SystemProgramID,
		Data:  make([]byte, ledger.NonceAccountDataLen),
	}
}

func validAuthority() ledger.Account {
	return ledger.Account{
		Key:      key(11),
		Owner:    solana.SystemProgramID,
		IsSigner: true,
	}
}

func TestValidateAndConsume(t *testing.T) {
	req, err := nonceguard.ValidateAndConsume(validToken(), validAuthority(), key(10), key(11))
	require.NoError(t, err)
	require.Equal(t, key(10), req.Account)
	require.Equal(t, key(11), req.Authority)
}

func TestTokenMismatch(t *testing.T) {
	_, err := nonceguard.ValidateAndConsume(validToken(), validAuthority(), key(99), key(11))
	require.ErrorIs(t, err, nonceguard.ErrTokenMismatch)
}

func TestAuthorityMismatch(t *testing.T) {
	_, err := nonceguard.ValidateAndConsume(validToken(), validAuthority(), key(10), key(99))
	require.ErrorIs(t, err, nonceguard.ErrAuthorityMismatch)
}

func TestMissingAuthoritySignature(t *testing.T) {
	authority := validAuthority()
	authority.IsSigner = false
	_, err := nonceguard.ValidateAndConsume(validToken(), authority, key(10), key(11))
	require.ErrorIs(t, err, nonceguard.ErrMissingAuthoritySignature)
}

func TestMalformedToken(t *testing.T) {
	token := validToken()
	token.Owner = key(42)
	_, err := nonceguard.ValidateAndConsume(token, validAuthority(), key(10), key(11))
	require.ErrorIs(t, err, nonceguard.ErrMalformedToken)

	token = validToken()
	token.Data = make([]byte, nonceguard.MinTokenDataLen-1)
	_, err = nonceguard.ValidateAndConsume(token, validAuthority(), key(10), key(11))
	require.ErrorIs(t, err, nonceguard.ErrMalformedToken)
}

// The checks run in a fixed order, so a mismatched token is reported even
// when later checks would also fail.
func TestCheckOrder(t *testing.T) {
	token := validToken()
	token.Key = key(99)
	token.Owner = key(42)
	authority := validAuthority()
	authority.IsSigner = false

	_, err := nonceguard.ValidateAndConsume(token, authority, key(10), key(11))
	require.ErrorIs(t, err, nonceguard.ErrTokenMismatch)
}
