package domain

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressIgnoresZeroTargets(t *testing.T) {
	targets := Metrics{Likes: 1000}
	assert.Equal(t, 0, Band(targets, Metrics{Likes: 99}))
	assert.Equal(t, 1, Band(targets, Metrics{Likes: 100}))
	assert.Equal(t, 3, Band(targets, Metrics{Likes: 320}))
	assert.Equal(t, 10, Band(targets, Metrics{Likes: 5000, Views: 7}))
}

func TestProgressAveragesAndCaps(t *testing.T) {
	targets := Metrics{Likes: 100, Comments: 10, Views: 1000, Shares: 4}
	current := Metrics{Likes: 300, Comments: 5, Views: 250, Shares: 0}

	// (1 + 0.5 + 0.25 + 0) / 4
	assert.Equal(t, 0, Progress(targets, current).Cmp(big.NewRat(7, 16)))
	assert.Equal(t, 4, Band(targets, current))
	assert.Equal(t, uint64(4375), ProgressBasisPoints(targets, current))
}

func TestProgressLargeValuesExact(t *testing.T) {
	top := uint64(math.MaxInt64)
	targets := Metrics{Likes: top, Comments: top - 1, Views: top - 2, Shares: top - 3}
	assert.Equal(t, 9, Band(targets, Metrics{Likes: top - 1, Comments: top - 2, Views: top - 3, Shares: top - 4}))
	assert.Equal(t, 10, Band(targets, targets))
}

func TestMilestoneShareRemainder(t *testing.T) {
	const deposit = 1_000_000_007
	var sum uint64
	for i := 0; i < MilestoneCount; i++ {
		share, err := MilestoneShare(deposit, i)
		require.NoError(t, err)
		if i < MilestoneCount-1 {
			assert.Equal(t, uint64(100_000_000), share)
		}
		sum += share
	}
	assert.Equal(t, uint64(deposit), sum)

	_, err := MilestoneShare(deposit, MilestoneCount)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestSettleSkipsPaidBands(t *testing.T) {
	first, err := Settle(1000, 0, Milestones{}, 3, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), first.Total)
	assert.Len(t, first.Payouts, 3)

	second, err := Settle(1000, first.Paid, first.Milestones, 3, false)
	require.NoError(t, err)
	assert.Empty(t, second.Payouts)
	assert.Equal(t, uint64(300), second.Paid)

	done, err := Settle(1000, first.Paid, first.Milestones, 7, true)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), done.Paid)
	assert.True(t, done.Milestones.All())
	assert.Equal(t, 3, done.Payouts[0].Index)
}

func TestSettleTinyDepositPaysOnlyLastBand(t *testing.T) {
	partial, err := Settle(9, 0, Milestones{}, 9, false)
	require.NoError(t, err)
	assert.Empty(t, partial.Payouts)
	assert.Zero(t, partial.Total)
	assert.Equal(t, 9, partial.Milestones.Paid())

	done, err := Settle(9, partial.Paid, partial.Milestones, 9, true)
	require.NoError(t, err)
	assert.Equal(t, []Payout{{Index: 9, Amount: 9}}, done.Payouts)
	assert.Equal(t, uint64(9), done.Paid)
	assert.True(t, done.Milestones.All())
}

func TestSettleRejectsOverpayment(t *testing.T) {
	_, err := Settle(1000, 950, Milestones{}, 1, false)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = Settle(1000, 0, Milestones{}, 11, false)
	assert.ErrorIs(t, err, ErrInvalidParameters)
}

func TestCheckedArithmetic(t *testing.T) {
	_, err := CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
	_, err = CheckedSub(1, 2)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
	_, err = CheckedMul(math.MaxUint64/2+1, 2)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	v, err := CheckedMul(3, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v)
}
