package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

// EventChannel is the NOTIFY channel carrying committed campaign events.
const EventChannel = "campaign_events"

// maxAttempts bounds how often a transaction aborted by a serialization
// conflict is replayed.
const maxAttempts = 3

const campaignColumns = `address, vault, influencer, brand, oracle,
	name, nickname, brand_name, hashtag,
	target_likes, target_comments, target_views, target_shares,
	current_likes, current_comments, current_views, current_shares,
	total_deposit, paid_amount, milestones, deadline, status, rent,
	created_at, updated_at`

// LedgerRepository implements port.LedgerRepository using pgxpool. Every
// transaction runs at Serializable isolation and locks the rows it reads
// with FOR UPDATE.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a new repository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Atomically runs fn in a serializable transaction, replaying it when the
// database reports a serialization failure or deadlock.
func (r *LedgerRepository) Atomically(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = r.runTx(ctx, fn)
		if !isRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("transaction aborted after %d attempts: %w", maxAttempts, err)
}

func (r *LedgerRepository) runTx(ctx context.Context, fn func(ctx context.Context, tx port.LedgerTx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()
	return fn(ctx, &ledgerTx{tx: tx})
}

// GetCampaign returns a live campaign by address.
func (r *LedgerRepository) GetCampaign(ctx context.Context, addr domain.Address) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE address = $1`, addr.Bytes())
	return scanCampaign(row)
}

// ListCampaigns returns live campaigns matching filter, oldest first.
func (r *LedgerRepository) ListCampaigns(ctx context.Context, filter port.CampaignFilter) ([]domain.Campaign, error) {
	filter = filter.Normalize()
	var (
		where []string
		args  []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if filter.Influencer != nil {
		add("influencer", filter.Influencer.Bytes())
	}
	if filter.Brand != nil {
		add("brand", filter.Brand.Bytes())
	}
	if filter.Oracle != nil {
		add("oracle", filter.Oracle.Bytes())
	}
	if filter.Status != nil {
		add("status", string(*filter.Status))
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(` ORDER BY created_at, address LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}

// GetAccount returns an account by address.
func (r *LedgerRepository) GetAccount(ctx context.Context, addr domain.Address) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT address, owner, tokens, lamports FROM accounts WHERE address = $1`, addr.Bytes())
	return scanAccount(row)
}

// ListEvents returns the events of a campaign in commit order.
func (r *LedgerRepository) ListEvents(ctx context.Context, campaign domain.Address) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, campaign, type, attributes, created_at
		FROM campaign_events WHERE campaign = $1 ORDER BY seq`, campaign.Bytes())
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Event, error) {
		var (
			e        domain.Event
			addr     []byte
			typ      string
			rawAttrs []byte
		)
		if err := row.Scan(&e.ID, &addr, &typ, &rawAttrs, &e.CreatedAt); err != nil {
			return e, err
		}
		e.Campaign = common.BytesToAddress(addr)
		e.Type = domain.EventType(typ)
		e.CreatedAt = e.CreatedAt.UTC()
		if err := json.Unmarshal(rawAttrs, &e.Attributes); err != nil {
			return e, fmt.Errorf("event %s attributes: %w", e.ID, err)
		}
		return e, nil
	})
}

type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) CampaignForUpdate(ctx context.Context, addr domain.Address) (*domain.Campaign, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE address = $1 FOR UPDATE`, addr.Bytes())
	return scanCampaign(row)
}

func (t *ledgerTx) ClosedStatus(ctx context.Context, addr domain.Address) (domain.Status, bool, error) {
	var status string
	err := t.tx.QueryRow(ctx, `SELECT status FROM campaign_tombstones WHERE address = $1`, addr.Bytes()).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return domain.Status(status), true, nil
}

func (t *ledgerTx) InsertCampaign(ctx context.Context, c *domain.Campaign) error {
	if _, closed, err := t.ClosedStatus(ctx, c.Address); err != nil {
		return err
	} else if closed {
		return fmt.Errorf("%w: campaign address %s was retired", domain.ErrAccountAlreadyExists, c.Address.Hex())
	}
	_, err := t.tx.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)`,
		campaignArgs(c)...)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: campaign %s", domain.ErrAccountAlreadyExists, c.Address.Hex())
	}
	return err
}

func (t *ledgerTx) UpdateCampaign(ctx context.Context, c *domain.Campaign) error {
	tag, err := t.tx.Exec(ctx, `UPDATE campaigns SET
		current_likes = $2, current_comments = $3, current_views = $4, current_shares = $5,
		paid_amount = $6, milestones = $7, status = $8, updated_at = $9
		WHERE address = $1`,
		c.Address.Bytes(),
		int64(c.Current.Likes), int64(c.Current.Comments), int64(c.Current.Views), int64(c.Current.Shares),
		int64(c.PaidAmount), c.Milestones[:], string(c.Status), c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, c.Address.Hex())
	}
	return nil
}

func (t *ledgerTx) CloseCampaign(ctx context.Context, c *domain.Campaign) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM campaigns WHERE address = $1`, c.Address.Bytes())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, c.Address.Hex())
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO campaign_tombstones (address, status, closed_at) VALUES ($1, $2, $3)`,
		c.Address.Bytes(), string(c.Status), c.UpdatedAt)
	return err
}

func (t *ledgerTx) AccountForUpdate(ctx context.Context, addr domain.Address) (*domain.Account, error) {
	row := t.tx.QueryRow(ctx, `SELECT address, owner, tokens, lamports FROM accounts WHERE address = $1 FOR UPDATE`, addr.Bytes())
	return scanAccount(row)
}

func (t *ledgerTx) PutAccount(ctx context.Context, acc *domain.Account) error {
	if acc.Tokens > domain.MaxStoredAmount || acc.Lamports > domain.MaxStoredAmount {
		return fmt.Errorf("%w: balance of %s out of range", domain.ErrArithmeticOverflow, acc.Address.Hex())
	}
	_, err := t.tx.Exec(ctx, `INSERT INTO accounts (address, owner, tokens, lamports) VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO UPDATE SET owner = EXCLUDED.owner, tokens = EXCLUDED.tokens, lamports = EXCLUDED.lamports`,
		acc.Address.Bytes(), string(acc.Owner), int64(acc.Tokens), int64(acc.Lamports))
	return err
}

func (t *ledgerTx) DeleteAccount(ctx context.Context, addr domain.Address) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM accounts WHERE address = $1`, addr.Bytes())
	return err
}

// AppendEvents stores events and queues a NOTIFY per event. Postgres only
// delivers notifications once the transaction commits.
func (t *ledgerTx) AppendEvents(ctx context.Context, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range events {
		attrs, err := json.Marshal(e.Attributes)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(e)
		if err != nil {
			return err
		}
		batch.Queue(`INSERT INTO campaign_events (id, campaign, type, attributes, created_at) VALUES ($1, $2, $3, $4, $5)`,
			e.ID, e.Campaign.Bytes(), string(e.Type), attrs, e.CreatedAt)
		batch.Queue(`SELECT pg_notify($1, $2)`, EventChannel, string(payload))
	}
	br := t.tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

type campaignRow struct {
	address, vault, influencer, brand, oracle []byte
	name, nickname, brandName, hashtag        string
	targets, current                          [4]int64
	totalDeposit, paidAmount, rent            int64
	milestones                                []bool
	deadline, createdAt, updatedAt            time.Time
	status                                    string
}

func (r *campaignRow) dest() []any {
	return []any{
		&r.address, &r.vault, &r.influencer, &r.brand, &r.oracle,
		&r.name, &r.nickname, &r.brandName, &r.hashtag,
		&r.targets[0], &r.targets[1], &r.targets[2], &r.targets[3],
		&r.current[0], &r.current[1], &r.current[2], &r.current[3],
		&r.totalDeposit, &r.paidAmount, &r.milestones, &r.deadline, &r.status, &r.rent,
		&r.createdAt, &r.updatedAt,
	}
}

func metricsFrom(v [4]int64) domain.Metrics {
	return domain.Metrics{Likes: uint64(v[0]), Comments: uint64(v[1]), Views: uint64(v[2]), Shares: uint64(v[3])}
}

func (r *campaignRow) campaign() (*domain.Campaign, error) {
	if len(r.milestones) != domain.MilestoneCount {
		return nil, fmt.Errorf("campaign %x: %d milestone flags stored", r.address, len(r.milestones))
	}
	c := &domain.Campaign{
		Address:      common.BytesToAddress(r.address),
		Vault:        common.BytesToAddress(r.vault),
		Influencer:   common.BytesToAddress(r.influencer),
		Brand:        common.BytesToAddress(r.brand),
		Oracle:       common.BytesToAddress(r.oracle),
		Name:         r.name,
		Nickname:     r.nickname,
		BrandName:    r.brandName,
		Hashtag:      r.hashtag,
		Targets:      metricsFrom(r.targets),
		Current:      metricsFrom(r.current),
		TotalDeposit: uint64(r.totalDeposit),
		PaidAmount:   uint64(r.paidAmount),
		Deadline:     r.deadline.UTC(),
		Status:       domain.Status(r.status),
		Rent:         uint64(r.rent),
		CreatedAt:    r.createdAt.UTC(),
		UpdatedAt:    r.updatedAt.UTC(),
	}
	copy(c.Milestones[:], r.milestones)
	return c, nil
}

func scanCampaign(row scanner) (*domain.Campaign, error) {
	var r campaignRow
	err := row.Scan(r.dest()...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.campaign()
}

func campaignArgs(c *domain.Campaign) []any {
	return []any{
		c.Address.Bytes(), c.Vault.Bytes(), c.Influencer.Bytes(), c.Brand.Bytes(), c.Oracle.Bytes(),
		c.Name, c.Nickname, c.BrandName, c.Hashtag,
		int64(c.Targets.Likes), int64(c.Targets.Comments), int64(c.Targets.Views), int64(c.Targets.Shares),
		int64(c.Current.Likes), int64(c.Current.Comments), int64(c.Current.Views), int64(c.Current.Shares),
		int64(c.TotalDeposit), int64(c.PaidAmount), c.Milestones[:], c.Deadline, string(c.Status), int64(c.Rent),
		c.CreatedAt, c.UpdatedAt,
	}
}

func scanAccount(row scanner) (*domain.Account, error) {
	var (
		addr             []byte
		owner            string
		tokens, lamports int64
	)
	err := row.Scan(&addr, &owner, &tokens, &lamports)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		Address:  common.BytesToAddress(addr),
		Owner:    domain.Owner(owner),
		Tokens:   uint64(tokens),
		Lamports: uint64(lamports),
	}, nil
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
