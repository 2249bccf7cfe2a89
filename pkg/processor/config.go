package processor

type Config struct {
	// RequireDurableNonce rejects intents that carry no nonce account.
	// Expiry-only intents can be re-executed until they expire, so hardened
	// deployments turn this on.
	RequireDurableNonce bool
}

var DefaultConfigSet = Config{
	RequireDurableNonce: false,
}
