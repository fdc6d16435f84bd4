package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

// LedgerRepository implements port.LedgerRepository in process memory. A
// single mutex serializes transactions; writes are staged in an overlay and
// merged only when the transaction function succeeds.
type LedgerRepository struct {
	mu         sync.Mutex
	campaigns  map[domain.Address]*domain.Campaign
	tombstones map[domain.Address]domain.Status
	accounts   map[domain.Address]*domain.Account
	events     map[domain.Address][]domain.Event
}

// NewLedgerRepository returns an empty ledger.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		campaigns:  make(map[domain.Address]*domain.Campaign),
		tombstones: make(map[domain.Address]domain.Status),
		accounts:   make(map[domain.Address]*domain.Account),
		events:     make(map[domain.Address][]domain.Event),
	}
}

// Atomically runs fn with exclusive access to the ledger.
func (r *LedgerRepository) Atomically(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &ledgerTx{
		repo:       r,
		campaigns:  make(map[domain.Address]*domain.Campaign),
		tombstones: make(map[domain.Address]domain.Status),
		accounts:   make(map[domain.Address]*domain.Account),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// GetCampaign returns a copy of the live campaign at addr.
func (r *LedgerRepository) GetCampaign(_ context.Context, addr domain.Address) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.campaigns[addr].Clone(), nil
}

// ListCampaigns returns live campaigns ordered by creation time.
func (r *LedgerRepository) ListCampaigns(_ context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	filter = filter.Normalize()
	r.mu.Lock()
	matched := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		if filter.Match(c) {
			matched = append(matched, *c)
		}
	}
	r.mu.Unlock()

	slices.SortFunc(matched, func(a, b domain.Campaign) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return a.Address.Cmp(b.Address)
	})
	if filter.Offset >= len(matched) {
		return []domain.Campaign{}, nil
	}
	matched = matched[filter.Offset:]
	if len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// GetAccount returns a copy of the account at addr.
func (r *LedgerRepository) GetAccount(_ context.Context, addr domain.Address) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.accounts[addr].Clone(), nil
}

// ListEvents returns the event history of campaign.
func (r *LedgerRepository) ListEvents(_ context.Context, campaign domain.Address) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events[campaign]), nil
}

// ledgerTx stages writes. A nil map value marks a deletion.
type ledgerTx struct {
	repo       *LedgerRepository
	campaigns  map[domain.Address]*domain.Campaign
	tombstones map[domain.Address]domain.Status
	accounts   map[domain.Address]*domain.Account
	events     []domain.Event
}

func (tx *ledgerTx) campaign(addr domain.Address) *domain.Campaign {
	if c, ok := tx.campaigns[addr]; ok {
		return c
	}
	return tx.repo.campaigns[addr]
}

func (tx *ledgerTx) closedStatus(addr domain.Address) (domain.Status, bool) {
	if s, ok := tx.tombstones[addr]; ok {
		return s, true
	}
	s, ok := tx.repo.tombstones[addr]
	return s, ok
}

func (tx *ledgerTx) CampaignForUpdate(_ context.Context, addr domain.Address) (*domain.Campaign, error) {
	return tx.campaign(addr).Clone(), nil
}

func (tx *ledgerTx) ClosedStatus(_ context.Context, addr domain.Address) (domain.Status, bool, error) {
	s, ok := tx.closedStatus(addr)
	return s, ok, nil
}

func (tx *ledgerTx) InsertCampaign(_ context.Context, c *domain.Campaign) error {
	if tx.campaign(c.Address) != nil {
		return fmt.Errorf("%w: campaign %s", domain.ErrAccountAlreadyExists, c.Address.Hex())
	}
	if _, closed := tx.closedStatus(c.Address); closed {
		return fmt.Errorf("%w: campaign address %s was retired", domain.ErrAccountAlreadyExists, c.Address.Hex())
	}
	tx.campaigns[c.Address] = c.Clone()
	return nil
}

func (tx *ledgerTx) UpdateCampaign(_ context.Context, c *domain.Campaign) error {
	if tx.campaign(c.Address) == nil {
		return fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, c.Address.Hex())
	}
	tx.campaigns[c.Address] = c.Clone()
	return nil
}

func (tx *ledgerTx) CloseCampaign(_ context.Context, c *domain.Campaign) error {
	if tx.campaign(c.Address) == nil {
		return fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, c.Address.Hex())
	}
	tx.campaigns[c.Address] = nil
	tx.tombstones[c.Address] = c.Status
	return nil
}

func (tx *ledgerTx) AccountForUpdate(_ context.Context, addr domain.Address) (*domain.Account, error) {
	if acc, ok := tx.accounts[addr]; ok {
		return acc.Clone(), nil
	}
	return tx.repo.accounts[addr].Clone(), nil
}

func (tx *ledgerTx) PutAccount(_ context.Context, acc *domain.Account) error {
	tx.accounts[acc.Address] = acc.Clone()
	return nil
}

func (tx *ledgerTx) DeleteAccount(_ context.Context, addr domain.Address) error {
	tx.accounts[addr] = nil
	return nil
}

func (tx *ledgerTx) AppendEvents(_ context.Context, events ...domain.Event) error {
	tx.events = append(tx.events, events...)
	return nil
}

// commit merges the overlay. The caller holds repo.mu.
func (tx *ledgerTx) commit() {
	r := tx.repo
	for addr, c := range tx.campaigns {
		if c == nil {
			delete(r.campaigns, addr)
			continue
		}
		r.campaigns[addr] = c
	}
	for addr, s := range tx.tombstones {
		r.tombstones[addr] = s
	}
	for addr, acc := range tx.accounts {
		if acc == nil {
			delete(r.accounts, addr)
			continue
		}
		r.accounts[addr] = acc
	}
	for _, e := range tx.events {
		r.events[e.Campaign] = append(r.events[e.Campaign], e)
	}
}
