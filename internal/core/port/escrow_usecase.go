package port

import (
	"context"

	"engage-escrow/internal/core/domain"
)

// EscrowUseCase defines the operations exposed by the escrow engine. This
// interface is the primary port into the application domain. Every mutating
// call is one atomic transition: it commits entirely or fails without
// changing anything. Mock implementations are generated from this interface
// for testing.
type EscrowUseCase interface {
	// CreateCampaign allocates a draft campaign on behalf of the influencer
	// named in params. The influencer pays the record's rent.
	CreateCampaign(ctx context.Context, params domain.CampaignParams) (*TransitionResult, error)

	// FundCampaign moves the total deposit from the brand into the vault and
	// activates the campaign.
	FundCampaign(ctx context.Context, campaign, caller domain.Address) (*TransitionResult, error)

	// UpdateMetrics records an oracle report and pays every milestone band
	// crossed by it. Reaching 100% completes and closes the campaign.
	UpdateMetrics(ctx context.Context, campaign, caller domain.Address, metrics domain.Metrics) (*TransitionResult, error)

	// ReclaimExpired refunds the remaining vault balance to the brand after
	// the deadline and closes the campaign.
	ReclaimExpired(ctx context.Context, campaign, caller domain.Address) (*TransitionResult, error)

	// CancelCampaign abandons an unfunded draft.
	CancelCampaign(ctx context.Context, campaign, caller domain.Address) (*TransitionResult, error)

	// GetCampaign returns a live campaign. Closed or unknown campaigns yield
	// domain.ErrCampaignNotFound.
	GetCampaign(ctx context.Context, campaign domain.Address) (*domain.Campaign, error)

	// ListCampaigns returns live campaigns matching filter.
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)

	// GetAccount returns the balances held at addr.
	GetAccount(ctx context.Context, addr domain.Address) (*domain.Account, error)

	// ListEvents returns the event history of a campaign, oldest first. The
	// history outlives the record.
	ListEvents(ctx context.Context, campaign domain.Address) ([]domain.Event, error)
}

// TransitionResult is returned by the mutating operations. Campaign is the
// record as committed, or its final state when the transition closed it.
type TransitionResult struct {
	Campaign   domain.Campaign
	Transition domain.Transition
}

// CampaignFilter narrows ListCampaigns. Zero fields do not filter. Limit
// defaults to DefaultListLimit.
type CampaignFilter struct {
	Influencer *domain.Address
	Brand      *domain.Address
	Oracle     *domain.Address
	Status     *domain.Status
	Limit      int
	Offset     int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Normalize clamps paging to the supported range.
func (f CampaignFilter) Normalize() CampaignFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Match reports whether c passes the filter.
func (f CampaignFilter) Match(c *domain.Campaign) bool {
	if f.Influencer != nil && *f.Influencer != c.Influencer {
		return false
	}
	if f.Brand != nil && *f.Brand != c.Brand {
		return false
	}
	if f.Oracle != nil && *f.Oracle != c.Oracle {
		return false
	}
	if f.Status != nil && *f.Status != c.Status {
		return false
	}
	return true
}
