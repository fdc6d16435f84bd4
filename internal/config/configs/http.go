package configs

// HTTP defines configuration for the HTTP server. The Port specifies which
// port the server will bind to. OracleRPM and OracleBurst size the token
// bucket kept per client in front of the metrics endpoint, so a misbehaving
// reporter cannot flood the ledger with transactions.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// OracleRPM is the sustained number of metric reports accepted per
	// client per minute. Non-positive values fall back to one per second.
	OracleRPM float64 `env:"ORACLE_RPM" envDefault:"120"`
	// OracleBurst is the bucket size of the oracle limiter, i.e. how many
	// reports a client may send back to back before being throttled.
	OracleBurst int `env:"ORACLE_BURST" envDefault:"20"`
}
