package postgres

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engage-escrow/internal/core/domain"
)

func TestDecodeEvent(t *testing.T) {
	want := domain.Event{
		ID:         uuid.New(),
		Type:       domain.EventMilestonePaid,
		Campaign:   common.HexToAddress("0xabc"),
		Attributes: map[string]string{"milestone": "3", "amount": "100000000"},
		CreatedAt:  time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"id":`))
	assert.Error(t, err)

	_, err = DecodeEvent([]byte(`{"campaign":"0x0000000000000000000000000000000000000abc"}`))
	assert.Error(t, err)
}
