package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engage-escrow/internal/adapter/usecase"
	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
	"engage-escrow/internal/db"
)

// newTestRepository connects to PSQL_TEST_ADDRESS and applies migrations.
func newTestRepository(t *testing.T) *LedgerRepository {
	t.Helper()
	addr := os.Getenv("PSQL_TEST_ADDRESS")
	if addr == "" {
		t.Skip("PSQL_TEST_ADDRESS not set")
	}
	_, err := db.Migrate(addr)
	require.NoError(t, err)

	pool, err := pgxpool.New(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewLedgerRepository(pool)
}

// uniqueParty returns a fresh address so runs against a shared database do
// not collide.
func uniqueParty() common.Address {
	id := uuid.New()
	return common.BytesToAddress(id[:])
}

func TestPostgresCampaignLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	influencer, brand, oracle := uniqueParty(), uniqueParty(), uniqueParty()
	require.NoError(t, repo.Atomically(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		for _, acc := range []*domain.Account{
			{Address: influencer, Owner: domain.OwnerUser, Lamports: 10_000},
			{Address: brand, Owner: domain.OwnerUser, Tokens: 1_000_000_000, Lamports: 10_000},
		} {
			if err := tx.PutAccount(ctx, acc); err != nil {
				return err
			}
		}
		return nil
	}))

	svc := usecase.NewEscrowUseCase(repo, usecase.Config{CampaignRent: 100, VaultRent: 50})
	created, err := svc.CreateCampaign(ctx, domain.CampaignParams{
		Influencer:   influencer,
		Brand:        brand,
		Oracle:       oracle,
		Name:         "pg-lifecycle",
		Targets:      domain.Metrics{Likes: 1000},
		TotalDeposit: 1000_000000,
		Deadline:     time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	addr := created.Campaign.Address

	_, err = svc.FundCampaign(ctx, addr, brand)
	require.NoError(t, err)

	res, err := svc.UpdateMetrics(ctx, addr, oracle, domain.Metrics{Likes: 320})
	require.NoError(t, err)
	assert.Equal(t, uint64(300_000000), res.Campaign.PaidAmount)

	stored, err := svc.GetCampaign(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, domain.Milestones{true, true, true}, stored.Milestones)

	list, err := svc.ListCampaigns(ctx, port.CampaignFilter{Influencer: &influencer})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.UpdateMetrics(ctx, addr, oracle, domain.Metrics{Likes: 1000})
	require.NoError(t, err)

	_, err = svc.GetCampaign(ctx, addr)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
	_, err = svc.ReclaimExpired(ctx, addr, brand)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	acc, err := svc.GetAccount(ctx, influencer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000_000000), acc.Tokens)

	orc, err := svc.GetAccount(ctx, oracle)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), orc.Lamports)

	events, err := svc.ListEvents(ctx, addr)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventCampaignCreated, events[0].Type)
	assert.Equal(t, domain.EventCampaignClosed, events[len(events)-1].Type)
}

func TestPostgresRollbackOnError(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	addr := uniqueParty()

	err := repo.Atomically(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		if err := tx.PutAccount(ctx, &domain.Account{Address: addr, Owner: domain.OwnerUser, Tokens: 5}); err != nil {
			return err
		}
		return domain.ErrInsufficientFunds
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	acc, err := repo.GetAccount(ctx, addr)
	require.NoError(t, err)
	assert.Nil(t, acc)
}
