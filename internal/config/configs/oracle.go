package configs

// Oracle holds the signing key used by the sign-report command. The server
// never needs it: reports are verified by recovering the signer.
type Oracle struct {
	// Key is a hex-encoded secp256k1 private key.
	Key string `env:"KEY"`
}
