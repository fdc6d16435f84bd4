package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Status is the lifecycle state of a campaign.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Valid reports whether s is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// ParseStatus decodes a status name.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidParameters, s)
	}
	return st, nil
}

// MaxTextLength bounds name, nickname, brand name and hashtag, in bytes.
const MaxTextLength = 50

// Campaign is the escrow record of one influencer/brand deal. Deposit and
// payouts are in token base units (e.g. 6-decimal USDC).
type Campaign struct {
	Address Address
	Vault   Address

	Influencer Address
	Brand      Address
	Oracle     Address

	Name      string
	Nickname  string
	BrandName string
	Hashtag   string

	Targets Metrics
	Current Metrics

	TotalDeposit uint64
	PaidAmount   uint64
	Milestones   Milestones
	Deadline     time.Time
	Status       Status

	// Rent is the storage deposit locked in the record by the influencer.
	Rent uint64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CampaignParams are the arguments of CreateCampaign.
type CampaignParams struct {
	Influencer   Address
	Brand        Address
	Oracle       Address
	Name         string
	Nickname     string
	BrandName    string
	Hashtag      string
	Targets      Metrics
	TotalDeposit uint64
	Deadline     time.Time
}

// Validate checks the creation bounds against now.
func (p CampaignParams) Validate(now time.Time) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidParameters)
	}
	texts := []struct{ field, value string }{
		{"name", p.Name},
		{"nickname", p.Nickname},
		{"brand name", p.BrandName},
		{"hashtag", p.Hashtag},
	}
	for _, t := range texts {
		if len(t.value) > MaxTextLength {
			return fmt.Errorf("%w: %s longer than %d bytes", ErrInvalidParameters, t.field, MaxTextLength)
		}
	}
	if p.Influencer == ZeroAddress || p.Brand == ZeroAddress || p.Oracle == ZeroAddress {
		return fmt.Errorf("%w: influencer, brand and oracle are required", ErrInvalidParameters)
	}
	if p.TotalDeposit == 0 {
		return fmt.Errorf("%w: total deposit must be greater than 0", ErrInvalidParameters)
	}
	if p.TotalDeposit > MaxStoredAmount {
		return fmt.Errorf("%w: total deposit out of range", ErrInvalidParameters)
	}
	if !p.Targets.Any() {
		return fmt.Errorf("%w: at least one target metric must be set", ErrInvalidParameters)
	}
	if p.Targets.Max() > MaxStoredAmount {
		return fmt.Errorf("%w: target out of range", ErrInvalidParameters)
	}
	if !p.Deadline.After(now) {
		return fmt.Errorf("%w: deadline must be in the future", ErrInvalidParameters)
	}
	return nil
}

// NewCampaign builds a draft campaign at its deterministic address. rent is
// the storage deposit the influencer locks in the record.
func NewCampaign(p CampaignParams, rent uint64, now time.Time) (*Campaign, error) {
	if err := p.Validate(now); err != nil {
		return nil, err
	}
	addr := CampaignAddress(p.Influencer, p.Brand, p.Name)
	return &Campaign{
		Address:      addr,
		Vault:        VaultAddress(addr),
		Influencer:   p.Influencer,
		Brand:        p.Brand,
		Oracle:       p.Oracle,
		Name:         p.Name,
		Nickname:     p.Nickname,
		BrandName:    p.BrandName,
		Hashtag:      p.Hashtag,
		Targets:      p.Targets,
		TotalDeposit: p.TotalDeposit,
		Deadline:     p.Deadline.UTC(),
		Status:       StatusDraft,
		Rent:         rent,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// Clone returns a copy safe to mutate.
func (c *Campaign) Clone() *Campaign {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Progress returns the exact progress ratio.
func (c *Campaign) Progress() *big.Rat { return Progress(c.Targets, c.Current) }

// ProgressBasisPoints returns progress in hundredths of a percent.
func (c *Campaign) ProgressBasisPoints() uint64 {
	return ProgressBasisPoints(c.Targets, c.Current)
}

// Remaining is the deposit not yet released to the influencer. It is the
// vault balance while the campaign is active.
func (c *Campaign) Remaining() uint64 {
	if c.Status != StatusActive || c.PaidAmount > c.TotalDeposit {
		return 0
	}
	return c.TotalDeposit - c.PaidAmount
}
