package signing_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/toss-network/settlement/pkg/signing"
)

func TestVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer := solana.PublicKeyFromBytes(pub)

	message := []byte("transfer 1000000 units")
	sig := ed25519.Sign(priv, message)

	verifier := signing.Ed25519Verifier{}
	require.NoError(t, verifier.Verify(signer, message, sig))
}

func TestVerifyRejectsTamperedMessage(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signer := solana.PublicKeyFromBytes(pub)

	message := []byte("transfer 1000000 units")
	sig := ed25519.Sign(priv, message)

	tampered := append([]byte(nil), message...)
	tampered[0] ^= 0x01
	require.ErrorIs(t, signing.Ed25519Verifier{}.Verify(signer, tampered, sig), signing.ErrBadSignature)
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	otherPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	message := []byte("payload")
	sig := ed25519.Sign(priv, message)

	err = signing.Ed25519Verifier{}.Verify(solana.PublicKeyFromBytes(otherPub), message, sig)
	require.ErrorIs(t, err, signing.ErrBadSignature)
}

func TestVerifyRejectsBadSignatureLength(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	err = signing.Ed25519Verifier{}.Verify(solana.PublicKeyFromBytes(pub), []byte("m"), make([]byte, 63))
	require.ErrorIs(t, err, signing.ErrBadSignatureLen)
}
