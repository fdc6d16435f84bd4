package db

import (
	"context"

	"engage-escrow/internal/config/configs"
	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

// SeedGenesis creates the configured genesis wallets that do not exist yet
// and returns how many were created. Existing balances are left untouched,
// so seeding on every start is safe.
func SeedGenesis(ctx context.Context, repo port.LedgerRepository, genesis configs.Genesis) (int, error) {
	created := 0
	err := repo.Atomically(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		created = 0
		for _, g := range genesis {
			existing, err := tx.AccountForUpdate(ctx, g.Address)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			acc := domain.NewWallet(g.Address)
			acc.Tokens = g.Tokens
			acc.Lamports = g.Lamports
			if err = tx.PutAccount(ctx, acc); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}
