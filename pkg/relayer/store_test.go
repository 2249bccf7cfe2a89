package relayer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toss-network/settlement/pkg/relayer"
)

func sig(b byte) [64]byte {
	var s [64]byte
	for i := range s {
		s[i] = b
	}
	return s
}

func TestIntentStore(t *testing.T) {
	store := relayer.NewIntentStore()

	require.NoError(t, store.AddPending(&relayer.PendingIntent{Signature: sig(1), Expiry: 300}))
	require.NoError(t, store.AddPending(&relayer.PendingIntent{Signature: sig(2), Expiry: 100}))
	require.NoError(t, store.AddPending(&relayer.PendingIntent{Signature: sig(3), Expiry: 200}))
	require.Error(t, store.AddPending(&relayer.PendingIntent{Signature: sig(1)}))
	require.Equal(t, 3, store.PendingCount())

	pending := store.GetPending()
	require.Len(t, pending, 3)
	require.Equal(t, uint64(100), pending[0].Expiry)
	require.Equal(t, uint64(200), pending[1].Expiry)
	require.Equal(t, uint64(300), pending[2].Expiry)

	require.NoError(t, store.Remove(sig(2)))
	require.Error(t, store.Remove(sig(2)))
	require.Equal(t, 2, store.PendingCount())
}

func TestSenderStore(t *testing.T) {
	senders := relayer.NewSenderStore()

	a := senders.GetIntentStore("a")
	require.Same(t, a, senders.GetIntentStore("a"))

	require.NoError(t, a.AddPending(&relayer.PendingIntent{Signature: sig(1)}))
	require.NoError(t, senders.GetIntentStore("b").AddPending(&relayer.PendingIntent{Signature: sig(2)}))
	require.Equal(t, 2, senders.GetTotalPendingCount())

	all := senders.GetAllPending()
	require.Len(t, all["a"], 1)
	require.Len(t, all["b"], 1)
}
