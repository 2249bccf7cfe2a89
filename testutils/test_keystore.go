package testutils

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/smartcontractkit/chainlink-common/pkg/loop"
)

// TestKeystore holds ed25519 keys for test senders and nonce authorities.
// Keys are addressed by their hex-encoded public key.
type TestKeystore struct {
	t    *testing.T
	Keys map[string]ed25519.PrivateKey
}

var _ loop.Keystore = &TestKeystore{}

func NewTestKeystore(t *testing.T) *TestKeystore {
	return &TestKeystore{t: t, Keys: map[string]ed25519.PrivateKey{}}
}

func (tk *TestKeystore) AddKey(privateKey ed25519.PrivateKey) {
	publicKey := fmt.Sprintf("%064x", privateKey.Public())
	if _, ok := tk.Keys[publicKey]; ok {
		tk.t.Fatalf("Key already exists: %s", publicKey)
	}
	tk.Keys[publicKey] = privateKey
}

// NewAccount generates a fresh keypair and returns its ledger identity.
func (tk *TestKeystore) NewAccount() solana.PublicKey {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		tk.t.Fatalf("generate key: %v", err)
	}
	tk.AddKey(priv)
	return solana.PublicKeyFromBytes(pub)
}

func (tk *TestKeystore) Sign(ctx context.Context, id string, hash []byte) ([]byte, error) {
	privateKey, ok := tk.Keys[id]
	if !ok {
		tk.t.Fatalf("No such key: %s", id)
	}

	// used to check if the account exists.
	if hash == nil {
		return nil, nil
	}

	return ed25519.Sign(privateKey, hash), nil
}

func (tk *TestKeystore) Accounts(ctx context.Context) ([]string, error) {
	accounts := make([]string, 0, len(tk.Keys))
	for id := range tk.Keys {
		accounts = append(accounts, id)
	}
	return accounts, nil
}

// SignIntent signs the raw intent bytes with the key belonging to signer.
func (tk *TestKeystore) SignIntent(signer solana.PublicKey, intentData []byte) [64]byte {
	raw, err := tk.Sign(context.Background(), fmt.Sprintf("%064x", signer.Bytes()), intentData)
	if err != nil {
		tk.t.Fatalf("sign intent: %v", err)
	}

	var sig [64]byte
	copy(sig[:], raw)
	return sig
}
