package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

// Config holds the storage deposits charged when records are allocated.
type Config struct {
	// CampaignRent is paid by the influencer when a campaign is created.
	CampaignRent uint64
	// VaultRent is paid by the brand when the vault is opened at funding.
	VaultRent uint64
}

// Recorder receives transition outcomes for metrics.
type Recorder interface {
	ObserveTransition(op domain.Operation, err error)
	ObservePayouts(payouts []domain.Payout)
}

type noopRecorder struct{}

func (noopRecorder) ObserveTransition(domain.Operation, error) {}
func (noopRecorder) ObservePayouts([]domain.Payout)            {}

// EscrowUseCase runs campaign transitions against the ledger. It implements
// port.EscrowUseCase. Each mutating call reads the record, validates the
// transition, applies its ledger effects and writes the record inside one
// repository transaction.
type EscrowUseCase struct {
	repo     port.LedgerRepository
	cfg      Config
	now      func() time.Time
	logger   *slog.Logger
	recorder Recorder
}

// Option customises an EscrowUseCase.
type Option func(*EscrowUseCase)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(u *EscrowUseCase) {
		if now != nil {
			u.now = now
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *EscrowUseCase) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(u *EscrowUseCase) {
		if r != nil {
			u.recorder = r
		}
	}
}

// NewEscrowUseCase creates a usecase over repo.
func NewEscrowUseCase(repo port.LedgerRepository, cfg Config, opts ...Option) *EscrowUseCase {
	u := &EscrowUseCase{
		repo:     repo,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   slog.New(slog.DiscardHandler),
		recorder: noopRecorder{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CreateCampaign allocates a draft campaign at its deterministic address.
func (u *EscrowUseCase) CreateCampaign(ctx context.Context, params domain.CampaignParams) (*port.TransitionResult, error) {
	var res *port.TransitionResult
	err := u.repo.Atomically(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		now := u.now()
		c, t, err := domain.Create(params, u.cfg.CampaignRent, now)
		if err != nil {
			return err
		}
		if err = tx.InsertCampaign(ctx, c); err != nil {
			return err
		}
		if err = applyEffects(ctx, tx, c, t.Effects); err != nil {
			return err
		}
		if err = tx.AppendEvents(ctx, domain.TransitionEvents(c, t, now)...); err != nil {
			return err
		}
		res = &port.TransitionResult{Campaign: *c, Transition: t}
		return nil
	})
	return u.finish(domain.OpCreate, res, err)
}

// FundCampaign activates a draft with the brand's deposit.
func (u *EscrowUseCase) FundCampaign(ctx context.Context, campaign, caller domain.Address) (*port.TransitionResult, error) {
	res, err := u.transition(ctx, campaign, func(c *domain.Campaign, now time.Time) (domain.Transition, error) {
		return c.Fund(caller, u.cfg.VaultRent, now)
	})
	return u.finish(domain.OpFund, res, err)
}

// UpdateMetrics applies an oracle report and settles crossed milestones.
func (u *EscrowUseCase) UpdateMetrics(ctx context.Context, campaign, caller domain.Address, metrics domain.Metrics) (*port.TransitionResult, error) {
	res, err := u.transition(ctx, campaign, func(c *domain.Campaign, now time.Time) (domain.Transition, error) {
		return c.ApplyMetrics(caller, metrics, now)
	})
	if err == nil {
		u.recorder.ObservePayouts(res.Transition.Payouts)
	}
	return u.finish(domain.OpMetrics, res, err)
}

// ReclaimExpired refunds the brand after the deadline.
func (u *EscrowUseCase) ReclaimExpired(ctx context.Context, campaign, caller domain.Address) (*port.TransitionResult, error) {
	res, err := u.transition(ctx, campaign, func(c *domain.Campaign, now time.Time) (domain.Transition, error) {
		return c.ReclaimExpired(caller, now)
	})
	return u.finish(domain.OpReclaim, res, err)
}

// CancelCampaign abandons an unfunded draft.
func (u *EscrowUseCase) CancelCampaign(ctx context.Context, campaign, caller domain.Address) (*port.TransitionResult, error) {
	res, err := u.transition(ctx, campaign, func(c *domain.Campaign, now time.Time) (domain.Transition, error) {
		return c.Cancel(caller, now)
	})
	return u.finish(domain.OpCancel, res, err)
}

// GetCampaign returns a live campaign.
func (u *EscrowUseCase) GetCampaign(ctx context.Context, campaign domain.Address) (*domain.Campaign, error) {
	c, err := u.repo.GetCampaign(ctx, campaign)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, campaign.Hex())
	}
	return c, nil
}

// ListCampaigns returns live campaigns matching filter.
func (u *EscrowUseCase) ListCampaigns(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	return u.repo.ListCampaigns(ctx, filter.Normalize())
}

// GetAccount returns the balances at addr.
func (u *EscrowUseCase) GetAccount(ctx context.Context, addr domain.Address) (*domain.Account, error) {
	acc, err := u.repo.GetAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, addr.Hex())
	}
	return acc, nil
}

// ListEvents returns the event history of a campaign.
func (u *EscrowUseCase) ListEvents(ctx context.Context, campaign domain.Address) ([]domain.Event, error) {
	return u.repo.ListEvents(ctx, campaign)
}

type applyFunc func(c *domain.Campaign, now time.Time) (domain.Transition, error)

// transition runs apply against the locked record and persists the outcome.
// apply works on a copy so a failed validation leaves nothing behind.
func (u *EscrowUseCase) transition(ctx context.Context, addr domain.Address, apply applyFunc) (*port.TransitionResult, error) {
	var res *port.TransitionResult
	err := u.repo.Atomically(ctx, func(ctx context.Context, tx port.LedgerTx) error {
		now := u.now()
		current, err := loadCampaign(ctx, tx, addr)
		if err != nil {
			return err
		}
		next := current.Clone()
		t, err := apply(next, now)
		if err != nil {
			return err
		}
		if err = applyEffects(ctx, tx, next, t.Effects); err != nil {
			return err
		}
		if !t.Closed {
			if err = tx.UpdateCampaign(ctx, next); err != nil {
				return err
			}
		}
		if err = tx.AppendEvents(ctx, domain.TransitionEvents(next, t, now)...); err != nil {
			return err
		}
		res = &port.TransitionResult{Campaign: *next, Transition: t}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (u *EscrowUseCase) finish(op domain.Operation, res *port.TransitionResult, err error) (*port.TransitionResult, error) {
	u.recorder.ObserveTransition(op, err)
	if err != nil {
		u.logger.Debug("campaign transition rejected",
			slog.String("operation", string(op)),
			slog.Any("error", err),
		)
		return nil, err
	}
	t := res.Transition
	u.logger.Info("campaign transition",
		slog.String("operation", string(op)),
		slog.String("campaign", res.Campaign.Address.Hex()),
		slog.String("from", string(t.From)),
		slog.String("to", string(t.To)),
		slog.Uint64("paid_amount", res.Campaign.PaidAmount),
		slog.Bool("closed", t.Closed),
	)
	for _, p := range t.Payouts {
		u.logger.Debug("milestone paid",
			slog.String("campaign", res.Campaign.Address.Hex()),
			slog.Int("milestone", p.Index),
			slog.Uint64("amount", p.Amount),
		)
	}
	return res, nil
}

func loadCampaign(ctx context.Context, tx port.LedgerTx, addr domain.Address) (*domain.Campaign, error) {
	c, err := tx.CampaignForUpdate(ctx, addr)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	status, closed, err := tx.ClosedStatus(ctx, addr)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, fmt.Errorf("%w: campaign closed as %s", domain.ErrInvalidState, status)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, addr.Hex())
}
