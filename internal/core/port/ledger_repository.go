package port

import (
	"context"

	"engage-escrow/internal/core/domain"
)

// LedgerRepository defines the persistence layer for campaigns, accounts and
// events. It is an outbound port in hexagonal architecture. Implementations
// must serialize transactions touching the same campaign or account and
// apply every transaction atomically.
type LedgerRepository interface {
	// Atomically runs fn in a transaction. The transaction commits when fn
	// returns nil and rolls back otherwise.
	Atomically(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error

	// GetCampaign returns a live campaign or nil when absent.
	GetCampaign(ctx context.Context, addr domain.Address) (*domain.Campaign, error)
	// ListCampaigns returns live campaigns ordered by creation time.
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]domain.Campaign, error)
	// GetAccount returns an account or nil when absent.
	GetAccount(ctx context.Context, addr domain.Address) (*domain.Account, error)
	// ListEvents returns the events of a campaign, oldest first.
	ListEvents(ctx context.Context, campaign domain.Address) ([]domain.Event, error)
}

// LedgerTx is the view of the ledger inside one transaction. Reads lock the
// rows they return until the transaction ends.
type LedgerTx interface {
	// CampaignForUpdate returns the live campaign or nil when absent.
	CampaignForUpdate(ctx context.Context, addr domain.Address) (*domain.Campaign, error)
	// ClosedStatus reports the final status of a closed campaign.
	ClosedStatus(ctx context.Context, addr domain.Address) (domain.Status, bool, error)
	// InsertCampaign stores a new record. An address that is live or was
	// ever closed yields domain.ErrAccountAlreadyExists.
	InsertCampaign(ctx context.Context, c *domain.Campaign) error
	// UpdateCampaign overwrites a live record.
	UpdateCampaign(ctx context.Context, c *domain.Campaign) error
	// CloseCampaign removes the record and retires its address with the
	// record's final status.
	CloseCampaign(ctx context.Context, c *domain.Campaign) error

	// AccountForUpdate returns the account or nil when absent.
	AccountForUpdate(ctx context.Context, addr domain.Address) (*domain.Account, error)
	// PutAccount creates or overwrites an account.
	PutAccount(ctx context.Context, acc *domain.Account) error
	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, addr domain.Address) error

	// AppendEvents stores events and publishes them after commit.
	AppendEvents(ctx context.Context, events ...domain.Event) error
}
