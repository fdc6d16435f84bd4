package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidParameters, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusForbidden},
	{domain.ErrCampaignNotFound, http.StatusNotFound},
	{domain.ErrAccountNotFound, http.StatusNotFound},
	{domain.ErrAccountAlreadyExists, http.StatusConflict},
	{domain.ErrInvalidState, http.StatusConflict},
	{domain.ErrNotExpiredYet, http.StatusConflict},
	{domain.ErrMetricRegression, http.StatusConflict},
	{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
	{domain.ErrArithmeticOverflow, http.StatusUnprocessableEntity},
}

func statusFor(err error) int {
	for _, es := range errorStatus {
		if errors.Is(err, es.err) {
			return es.status
		}
	}
	return http.StatusInternalServerError
}

type problem struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeProblem(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{Error: code, Message: message})
}

// writeError maps a usecase error onto a response. Internal errors are
// logged and reported without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeProblem(w, status, "internal", "internal error")
		return
	}
	writeProblem(w, status, domain.ErrorCode(err), err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// amountView shows a token amount in base units and in whole tokens. Display
// keeps every decimal of the token so it never rounds.
type amountView struct {
	Base    uint64 `json:"base"`
	Display string `json:"display"`
}

func (h *Handler) amount(v uint64) amountView {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(v), -h.decimals)
	return amountView{Base: v, Display: d.StringFixed(h.decimals)}
}

type campaignView struct {
	Address         string            `json:"address"`
	Vault           string            `json:"vault"`
	Influencer      string            `json:"influencer"`
	Brand           string            `json:"brand"`
	Oracle          string            `json:"oracle"`
	Name            string            `json:"name"`
	Nickname        string            `json:"nickname"`
	BrandName       string            `json:"brand_name"`
	Hashtag         string            `json:"hashtag"`
	Targets         domain.Metrics    `json:"targets"`
	Current         domain.Metrics    `json:"current"`
	ProgressPercent string            `json:"progress_percent"`
	TotalDeposit    amountView        `json:"total_deposit"`
	PaidAmount      amountView        `json:"paid_amount"`
	VaultBalance    amountView        `json:"vault_balance"`
	Milestones      domain.Milestones `json:"milestones"`
	MilestonesPaid  int               `json:"milestones_paid"`
	Status          domain.Status     `json:"status"`
	Deadline        time.Time         `json:"deadline"`
	Rent            uint64            `json:"rent"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (h *Handler) campaignView(c *domain.Campaign) campaignView {
	progress := decimal.New(int64(c.ProgressBasisPoints()), -2)
	return campaignView{
		Address:         c.Address.Hex(),
		Vault:           c.Vault.Hex(),
		Influencer:      c.Influencer.Hex(),
		Brand:           c.Brand.Hex(),
		Oracle:          c.Oracle.Hex(),
		Name:            c.Name,
		Nickname:        c.Nickname,
		BrandName:       c.BrandName,
		Hashtag:         c.Hashtag,
		Targets:         c.Targets,
		Current:         c.Current,
		ProgressPercent: progress.StringFixed(2),
		TotalDeposit:    h.amount(c.TotalDeposit),
		PaidAmount:      h.amount(c.PaidAmount),
		VaultBalance:    h.amount(c.Remaining()),
		Milestones:      c.Milestones,
		MilestonesPaid:  c.Milestones.Paid(),
		Status:          c.Status,
		Deadline:        c.Deadline,
		Rent:            c.Rent,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type payoutView struct {
	Milestone int        `json:"milestone"`
	Amount    amountView `json:"amount"`
}

type transitionView struct {
	Campaign    campaignView     `json:"campaign"`
	Operation   domain.Operation `json:"operation"`
	From        domain.Status    `json:"from,omitempty"`
	To          domain.Status    `json:"to"`
	Payouts     []payoutView     `json:"payouts"`
	Closed      bool             `json:"closed"`
	Beneficiary string           `json:"beneficiary,omitempty"`
}

func (h *Handler) transitionView(res *port.TransitionResult) transitionView {
	t := res.Transition
	v := transitionView{
		Campaign:  h.campaignView(&res.Campaign),
		Operation: t.Operation,
		From:      t.From,
		To:        t.To,
		Payouts:   make([]payoutView, 0, len(t.Payouts)),
		Closed:    t.Closed,
	}
	for _, p := range t.Payouts {
		v.Payouts = append(v.Payouts, payoutView{Milestone: p.Index, Amount: h.amount(p.Amount)})
	}
	if t.Closed {
		v.Beneficiary = t.Beneficiary.Hex()
	}
	return v
}

type accountView struct {
	Address  string       `json:"address"`
	Owner    domain.Owner `json:"owner"`
	Tokens   amountView   `json:"tokens"`
	Lamports uint64       `json:"lamports"`
}
