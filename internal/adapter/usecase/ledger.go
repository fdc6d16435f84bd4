package usecase

import (
	"context"
	"fmt"

	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

// applyEffects executes the ledger side effects of a transition in order.
// Any failure aborts the surrounding transaction.
func applyEffects(ctx context.Context, tx port.LedgerTx, c *domain.Campaign, effects []domain.Effect) error {
	for _, eff := range effects {
		var err error
		switch e := eff.(type) {
		case domain.LockRent:
			err = debitLamports(ctx, tx, e.Payer, e.Amount)
		case domain.OpenVault:
			err = openVault(ctx, tx, e)
		case domain.Transfer:
			err = transferTokens(ctx, tx, e.From, e.To, e.Amount)
		case domain.CloseVault:
			err = closeVault(ctx, tx, e)
		case domain.CloseRecord:
			err = closeRecord(ctx, tx, c, e)
		default:
			err = fmt.Errorf("unsupported ledger effect %T", eff)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func loadOrNewWallet(ctx context.Context, tx port.LedgerTx, addr domain.Address) (*domain.Account, error) {
	acc, err := tx.AccountForUpdate(ctx, addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return domain.NewWallet(addr), nil
	}
	return acc, nil
}

func transferTokens(ctx context.Context, tx port.LedgerTx, from, to domain.Address, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	src, err := loadOrNewWallet(ctx, tx, from)
	if err != nil {
		return err
	}
	dst, err := loadOrNewWallet(ctx, tx, to)
	if err != nil {
		return err
	}
	if src.Tokens < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", domain.ErrInsufficientFunds, from.Hex(), src.Tokens, amount)
	}
	if src.Tokens, err = domain.CheckedSub(src.Tokens, amount); err != nil {
		return err
	}
	if dst.Tokens, err = creditBounded(dst.Tokens, amount); err != nil {
		return err
	}
	if err = tx.PutAccount(ctx, src); err != nil {
		return err
	}
	return tx.PutAccount(ctx, dst)
}

func debitLamports(ctx context.Context, tx port.LedgerTx, payer domain.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	acc, err := loadOrNewWallet(ctx, tx, payer)
	if err != nil {
		return err
	}
	if acc.Lamports < amount {
		return fmt.Errorf("%w: %s cannot pay rent of %d", domain.ErrInsufficientFunds, payer.Hex(), amount)
	}
	acc.Lamports -= amount
	return tx.PutAccount(ctx, acc)
}

func creditLamports(ctx context.Context, tx port.LedgerTx, to domain.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	acc, err := loadOrNewWallet(ctx, tx, to)
	if err != nil {
		return err
	}
	if acc.Lamports, err = creditBounded(acc.Lamports, amount); err != nil {
		return err
	}
	return tx.PutAccount(ctx, acc)
}

func creditBounded(balance, amount uint64) (uint64, error) {
	sum, err := domain.CheckedAdd(balance, amount)
	if err != nil {
		return 0, err
	}
	if sum > domain.MaxStoredAmount {
		return 0, fmt.Errorf("%w: balance out of range", domain.ErrArithmeticOverflow)
	}
	return sum, nil
}

func openVault(ctx context.Context, tx port.LedgerTx, e domain.OpenVault) error {
	existing, err := tx.AccountForUpdate(ctx, e.Vault)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: vault %s", domain.ErrAccountAlreadyExists, e.Vault.Hex())
	}
	if err = debitLamports(ctx, tx, e.Payer, e.Rent); err != nil {
		return err
	}
	return tx.PutAccount(ctx, &domain.Account{
		Address:  e.Vault,
		Owner:    domain.OwnerProgram,
		Lamports: e.Rent,
	})
}

func closeVault(ctx context.Context, tx port.LedgerTx, e domain.CloseVault) error {
	vault, err := tx.AccountForUpdate(ctx, e.Vault)
	if err != nil {
		return err
	}
	if vault == nil {
		return fmt.Errorf("%w: vault %s", domain.ErrAccountNotFound, e.Vault.Hex())
	}
	if vault.Tokens != 0 {
		return fmt.Errorf("%w: vault %s still holds %d", domain.ErrInvalidState, e.Vault.Hex(), vault.Tokens)
	}
	if err = creditLamports(ctx, tx, e.Beneficiary, vault.Lamports); err != nil {
		return err
	}
	return tx.DeleteAccount(ctx, e.Vault)
}

func closeRecord(ctx context.Context, tx port.LedgerTx, c *domain.Campaign, e domain.CloseRecord) error {
	if c == nil || c.Address != e.Campaign {
		return fmt.Errorf("close record: campaign %s not loaded", e.Campaign.Hex())
	}
	if err := creditLamports(ctx, tx, e.Beneficiary, e.Rent); err != nil {
		return err
	}
	return tx.CloseCampaign(ctx, c)
}
