package domain

import (
	"fmt"
	"time"
)

// Effect is a ledger side effect produced by a transition. Effects are
// applied in order inside the same atomic unit as the record update.
type Effect interface{ isEffect() }

// LockRent moves the record's storage deposit out of the payer's lamports.
type LockRent struct {
	Payer  Address
	Amount uint64
}

// OpenVault allocates the program-owned vault. Payer funds its rent.
type OpenVault struct {
	Vault Address
	Payer Address
	Rent  uint64
}

// Transfer moves tokens between two accounts.
type Transfer struct {
	From   Address
	To     Address
	Amount uint64
}

// CloseVault deletes an empty vault and hands its lamports to Beneficiary.
type CloseVault struct {
	Vault       Address
	Beneficiary Address
}

// CloseRecord deletes the campaign record and returns its rent to
// Beneficiary.
type CloseRecord struct {
	Campaign    Address
	Beneficiary Address
	Rent        uint64
}

func (LockRent) isEffect()    {}
func (OpenVault) isEffect()   {}
func (Transfer) isEffect()    {}
func (CloseVault) isEffect()  {}
func (CloseRecord) isEffect() {}

// Operation names a campaign entry point.
type Operation string

const (
	OpCreate  Operation = "create"
	OpFund    Operation = "fund"
	OpMetrics Operation = "update_metrics"
	OpReclaim Operation = "reclaim_expired"
	OpCancel  Operation = "cancel"
)

// Transition describes a committed state change and the effects it needs.
type Transition struct {
	Operation Operation
	From      Status
	To        Status
	Effects   []Effect
	Payouts   []Payout
	// Closed is set when the record and vault are released; Beneficiary
	// receives their rent.
	Closed      bool
	Beneficiary Address
}

// PayoutTotal sums the milestone payouts of the transition.
func (t Transition) PayoutTotal() uint64 {
	var total uint64
	for _, p := range t.Payouts {
		total += p.Amount
	}
	return total
}

// Create builds the draft record for p and the rent it locks.
func Create(p CampaignParams, rent uint64, now time.Time) (*Campaign, Transition, error) {
	c, err := NewCampaign(p, rent, now)
	if err != nil {
		return nil, Transition{}, err
	}
	t := Transition{Operation: OpCreate, To: StatusDraft}
	if rent > 0 {
		t.Effects = append(t.Effects, LockRent{Payer: c.Influencer, Amount: rent})
	}
	return c, t, nil
}

// Fund activates a draft: the brand opens the vault and deposits the full
// amount. The receiver is only mutated on success.
func (c *Campaign) Fund(caller Address, vaultRent uint64, now time.Time) (Transition, error) {
	if caller != c.Brand {
		return Transition{}, fmt.Errorf("%w: only the brand can fund the campaign", ErrUnauthorized)
	}
	if c.Status != StatusDraft {
		return Transition{}, fmt.Errorf("%w: cannot fund in status %s", ErrInvalidState, c.Status)
	}
	if now.After(c.Deadline) {
		return Transition{}, fmt.Errorf("%w: deadline passed before funding", ErrInvalidState)
	}
	t := Transition{
		Operation: OpFund,
		From:      c.Status,
		To:        StatusActive,
		Effects: []Effect{
			OpenVault{Vault: c.Vault, Payer: c.Brand, Rent: vaultRent},
			Transfer{From: c.Brand, To: c.Vault, Amount: c.TotalDeposit},
		},
	}
	c.Status = StatusActive
	c.UpdatedAt = now.UTC()
	return t, nil
}

// ApplyMetrics records an oracle report and settles every band it crosses.
// Reaching 100% completes the campaign and closes it in favour of the
// oracle.
func (c *Campaign) ApplyMetrics(caller Address, next Metrics, now time.Time) (Transition, error) {
	if caller != c.Oracle {
		return Transition{}, fmt.Errorf("%w: caller is not the campaign oracle", ErrUnauthorized)
	}
	if c.Status != StatusActive {
		return Transition{}, fmt.Errorf("%w: cannot update metrics in status %s", ErrInvalidState, c.Status)
	}
	if now.After(c.Deadline) {
		return Transition{}, fmt.Errorf("%w: campaign deadline passed", ErrInvalidState)
	}
	if name, ok := c.Current.Regression(next); ok {
		return Transition{}, fmt.Errorf("%w: %s lower than stored value", ErrMetricRegression, name)
	}
	if next.Max() > MaxStoredAmount {
		return Transition{}, fmt.Errorf("%w: metric out of range", ErrArithmeticOverflow)
	}

	band := Band(c.Targets, next)
	complete := band == MilestoneCount || c.Targets.Reached(next)
	s, err := Settle(c.TotalDeposit, c.PaidAmount, c.Milestones, band, complete)
	if err != nil {
		return Transition{}, err
	}
	if complete && s.Paid != c.TotalDeposit {
		return Transition{}, fmt.Errorf("%w: settled %d of %d on completion", ErrArithmeticOverflow, s.Paid, c.TotalDeposit)
	}

	t := Transition{Operation: OpMetrics, From: c.Status, To: c.Status, Payouts: s.Payouts}
	if s.Total > 0 {
		t.Effects = append(t.Effects, Transfer{From: c.Vault, To: c.Influencer, Amount: s.Total})
	}
	c.Current = next
	c.Milestones = s.Milestones
	c.PaidAmount = s.Paid
	c.UpdatedAt = now.UTC()
	if complete {
		c.Status = StatusCompleted
		t.To = StatusCompleted
		t.closeTo(c, c.Oracle)
	}
	return t, nil
}

// ReclaimExpired refunds the undisbursed deposit to the brand once the
// deadline has passed and closes the campaign in the brand's favour.
func (c *Campaign) ReclaimExpired(caller Address, now time.Time) (Transition, error) {
	if caller != c.Brand {
		return Transition{}, fmt.Errorf("%w: only the brand can reclaim the campaign", ErrUnauthorized)
	}
	if c.Status != StatusActive {
		return Transition{}, fmt.Errorf("%w: cannot reclaim in status %s", ErrInvalidState, c.Status)
	}
	if !now.After(c.Deadline) {
		return Transition{}, fmt.Errorf("%w: deadline is %s", ErrNotExpiredYet, c.Deadline.Format(time.RFC3339))
	}
	remaining, err := CheckedSub(c.TotalDeposit, c.PaidAmount)
	if err != nil {
		return Transition{}, err
	}
	t := Transition{Operation: OpReclaim, From: c.Status, To: StatusExpired}
	if remaining > 0 {
		t.Effects = append(t.Effects, Transfer{From: c.Vault, To: c.Brand, Amount: remaining})
	}
	c.Status = StatusExpired
	c.UpdatedAt = now.UTC()
	t.closeTo(c, c.Brand)
	return t, nil
}

// Cancel abandons an unfunded draft. Either party may cancel; the rent goes
// back to the influencer who paid it.
func (c *Campaign) Cancel(caller Address, now time.Time) (Transition, error) {
	if caller != c.Brand && caller != c.Influencer {
		return Transition{}, fmt.Errorf("%w: only the brand or the influencer can cancel", ErrUnauthorized)
	}
	if c.Status != StatusDraft {
		return Transition{}, fmt.Errorf("%w: cannot cancel in status %s", ErrInvalidState, c.Status)
	}
	t := Transition{
		Operation:   OpCancel,
		From:        c.Status,
		To:          StatusCancelled,
		Closed:      true,
		Beneficiary: c.Influencer,
		Effects:     []Effect{CloseRecord{Campaign: c.Address, Beneficiary: c.Influencer, Rent: c.Rent}},
	}
	c.Status = StatusCancelled
	c.UpdatedAt = now.UTC()
	return t, nil
}

func (t *Transition) closeTo(c *Campaign, beneficiary Address) {
	t.Closed = true
	t.Beneficiary = beneficiary
	t.Effects = append(t.Effects,
		CloseVault{Vault: c.Vault, Beneficiary: beneficiary},
		CloseRecord{Campaign: c.Address, Beneficiary: beneficiary, Rent: c.Rent},
	)
}
