package db

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engage-escrow/internal/adapter/memory"
	"engage-escrow/internal/config/configs"
)

func TestSeedGenesisIsIdempotent(t *testing.T) {
	repo := memory.NewLedgerRepository()
	ctx := context.Background()
	brand := common.HexToAddress("0xb2")
	genesis := configs.Genesis{{Address: brand, Tokens: 500, Lamports: 7}}

	n, err := SeedGenesis(ctx, repo, genesis)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	genesis[0].Tokens = 1
	n, err = SeedGenesis(ctx, repo, genesis)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	acc, err := repo.GetAccount(ctx, brand)
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, uint64(500), acc.Tokens)
	assert.Equal(t, uint64(7), acc.Lamports)
}
