package configs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Ledger backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Ledger configures where balances and campaigns live and what storage
// deposits cost. Rents are in lamports, the native unit.
type Ledger struct {
	Backend       string  `env:"BACKEND" envDefault:"memory"`
	CampaignRent  uint64  `env:"CAMPAIGN_RENT" envDefault:"2039280"`
	VaultRent     uint64  `env:"VAULT_RENT" envDefault:"2039280"`
	TokenDecimals int32   `env:"TOKEN_DECIMALS" envDefault:"6"`
	Genesis       Genesis `env:"GENESIS"`
}

// Validate checks the backend name and decimals.
func (c Ledger) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown ledger backend %q", c.Backend)
	}
	if c.TokenDecimals < 0 || c.TokenDecimals > 18 {
		return fmt.Errorf("token decimals %d out of range", c.TokenDecimals)
	}
	return nil
}

// GenesisAccount is a wallet credited when the ledger is seeded.
type GenesisAccount struct {
	Address  common.Address
	Tokens   uint64
	Lamports uint64
}

// Genesis is parsed from "addr:tokens:lamports;addr:tokens:lamports".
type Genesis []GenesisAccount

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Genesis) UnmarshalText(text []byte) error {
	var out Genesis
	for _, entry := range strings.Split(string(text), ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return fmt.Errorf("genesis entry %q: want addr:tokens:lamports", entry)
		}
		if !common.IsHexAddress(parts[0]) {
			return fmt.Errorf("genesis entry %q: malformed address", entry)
		}
		tokens, err := strconv.ParseUint(parts[1], 10, 63)
		if err != nil {
			return fmt.Errorf("genesis entry %q: tokens: %w", entry, err)
		}
		lamports, err := strconv.ParseUint(parts[2], 10, 63)
		if err != nil {
			return fmt.Errorf("genesis entry %q: lamports: %w", entry, err)
		}
		out = append(out, GenesisAccount{
			Address:  common.HexToAddress(parts[0]),
			Tokens:   tokens,
			Lamports: lamports,
		})
	}
	*g = out
	return nil
}
