package domain

import (
	"fmt"
	"math/big"
)

// MilestoneCount is the number of 10% payout bands.
const MilestoneCount = 10

// Milestones flags the bands that have already been paid. Index i covers
// progress of (i+1)*10%.
type Milestones [MilestoneCount]bool

// Paid returns how many bands have been paid.
func (m Milestones) Paid() int {
	n := 0
	for _, paid := range m {
		if paid {
			n++
		}
	}
	return n
}

// All reports whether every band has been paid.
func (m Milestones) All() bool { return m.Paid() == MilestoneCount }

// Payout is a single band settled by an oracle update.
type Payout struct {
	Index  int    `json:"index"`
	Amount uint64 `json:"amount"`
}

// Settlement is the result of running the milestone engine once.
type Settlement struct {
	Payouts    []Payout
	Total      uint64
	Milestones Milestones
	Paid       uint64
}

// Progress returns the campaign progress in [0,1]: the arithmetic mean of
// min(current/target, 1) over the metrics that have a non-zero target.
// Metrics with a zero target are not part of the average. The value is exact.
func Progress(targets, current Metrics) *big.Rat {
	sum := new(big.Rat)
	n := int64(0)
	cur := current.values()
	for i, t := range targets.values() {
		if t == 0 {
			continue
		}
		n++
		c := min(cur[i], t)
		sum.Add(sum, new(big.Rat).SetFrac(new(big.Int).SetUint64(c), new(big.Int).SetUint64(t)))
	}
	if n == 0 {
		return sum
	}
	return sum.Quo(sum, big.NewRat(n, 1))
}

// scaledProgress returns floor(progress * scale).
func scaledProgress(targets, current Metrics, scale int64) int64 {
	p := Progress(targets, current)
	p.Mul(p, big.NewRat(scale, 1))
	return new(big.Int).Quo(p.Num(), p.Denom()).Int64()
}

// Band returns floor(progress * 10), between 0 and MilestoneCount.
func Band(targets, current Metrics) int {
	return int(scaledProgress(targets, current, MilestoneCount))
}

// ProgressBasisPoints returns floor(progress * 10000).
func ProgressBasisPoints(targets, current Metrics) uint64 {
	return uint64(scaledProgress(targets, current, 10_000))
}

// MilestoneShare returns the amount released by band index. Every band pays
// deposit/10; the last band also carries the division remainder so the ten
// shares add up to the deposit exactly.
func MilestoneShare(deposit uint64, index int) (uint64, error) {
	if index < 0 || index >= MilestoneCount {
		return 0, fmt.Errorf("%w: milestone index %d", ErrInvalidParameters, index)
	}
	share := deposit / MilestoneCount
	if index < MilestoneCount-1 {
		return share, nil
	}
	nine, err := CheckedMul(share, MilestoneCount-1)
	if err != nil {
		return 0, err
	}
	return CheckedSub(deposit, nine)
}

// Settle pays every unpaid band below band, or every unpaid band when
// complete is set. Bands with a zero share are marked without a payout. It
// never pays a band twice and fails with
// ErrArithmeticOverflow rather than letting paid exceed deposit.
func Settle(deposit, paid uint64, milestones Milestones, band int, complete bool) (Settlement, error) {
	if band < 0 || band > MilestoneCount {
		return Settlement{}, fmt.Errorf("%w: band %d", ErrInvalidParameters, band)
	}
	if complete {
		band = MilestoneCount
	}
	out := Settlement{Milestones: milestones, Paid: paid}
	for i := 0; i < band; i++ {
		if out.Milestones[i] {
			continue
		}
		share, err := MilestoneShare(deposit, i)
		if err != nil {
			return Settlement{}, err
		}
		if out.Total, err = CheckedAdd(out.Total, share); err != nil {
			return Settlement{}, err
		}
		out.Milestones[i] = true
		// bands of a deposit below ten base units are worth nothing
		if share > 0 {
			out.Payouts = append(out.Payouts, Payout{Index: i, Amount: share})
		}
	}
	total, err := CheckedAdd(paid, out.Total)
	if err != nil {
		return Settlement{}, err
	}
	if total > deposit {
		return Settlement{}, fmt.Errorf("%w: paid %d exceeds deposit %d", ErrArithmeticOverflow, total, deposit)
	}
	out.Paid = total
	return out, nil
}
