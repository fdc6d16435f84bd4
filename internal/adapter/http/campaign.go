package httpadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
)

type createCampaignRequest struct {
	Brand        string         `json:"brand"`
	Oracle       string         `json:"oracle"`
	Name         string         `json:"name"`
	Nickname     string         `json:"nickname"`
	BrandName    string         `json:"brand_name"`
	Hashtag      string         `json:"hashtag"`
	Targets      domain.Metrics `json:"targets"`
	TotalDeposit uint64         `json:"total_deposit"`
	Deadline     time.Time      `json:"deadline"`
}

// handleCreateCampaign creates a draft on behalf of the authenticated
// influencer and answers 201 with the new record.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	influencer, ok := WalletFromContext(r.Context())
	if !ok {
		writeProblem(w, http.StatusUnauthorized, "unauthenticated", "no wallet in request")
		return
	}
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid_json", "invalid JSON")
		return
	}
	brand, err := domain.ParseAddress(req.Brand)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("brand: %w", err))
		return
	}
	oracle, err := domain.ParseAddress(req.Oracle)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("oracle: %w", err))
		return
	}
	res, err := h.svc.CreateCampaign(r.Context(), domain.CampaignParams{
		Influencer:   influencer,
		Brand:        brand,
		Oracle:       oracle,
		Name:         req.Name,
		Nickname:     req.Nickname,
		BrandName:    req.BrandName,
		Hashtag:      req.Hashtag,
		Targets:      req.Targets,
		TotalDeposit: req.TotalDeposit,
		Deadline:     req.Deadline,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, h.transitionView(res))
}

// handleListCampaigns lists live campaigns. It accepts optional
// `influencer`, `brand`, `oracle`, `status`, `limit` and `offset` query
// parameters; malformed values result in HTTP 400.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var (
		q      = r.URL.Query()
		filter port.CampaignFilter
	)
	for _, p := range []struct {
		name string
		dst  **domain.Address
	}{
		{"influencer", &filter.Influencer},
		{"brand", &filter.Brand},
		{"oracle", &filter.Oracle},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		addr, err := domain.ParseAddress(v)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%s: %w", p.name, err))
			return
		}
		*p.dst = &addr
	}
	if v := q.Get("status"); v != "" {
		status, err := domain.ParseStatus(v)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Status = &status
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"limit", &filter.Limit},
		{"offset", &filter.Offset},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeProblem(w, http.StatusBadRequest, "invalid_parameters", "invalid '"+p.name+"'")
			return
		}
		*p.dst = n
	}

	campaigns, err := h.svc.ListCampaigns(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views := make([]campaignView, 0, len(campaigns))
	for i := range campaigns {
		views = append(views, h.campaignView(&campaigns[i]))
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCampaign(r.Context(), addr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.campaignView(c))
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	addr, ok := h.pathAddress(w, r)
	if !ok {
		return
	}
	events, err := h.svc.ListEvents(r.Context(), addr)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	h.writeJSON(w, http.StatusOK, events)
}

type callerOperation func(ctx context.Context, campaign, caller domain.Address) (*port.TransitionResult, error)

// walletTransition runs op with the authenticated wallet as caller.
func (h *Handler) walletTransition(op callerOperation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := WalletFromContext(r.Context())
		if !ok {
			writeProblem(w, http.StatusUnauthorized, "unauthenticated", "no wallet in request")
			return
		}
		addr, ok := h.pathAddress(w, r)
		if !ok {
			return
		}
		res, err := op(r.Context(), addr, caller)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, http.StatusOK, h.transitionView(res))
	}
}

func (h *Handler) handleFundCampaign(w http.ResponseWriter, r *http.Request) {
	h.walletTransition(h.svc.FundCampaign)(w, r)
}

func (h *Handler) handleReclaimExpired(w http.ResponseWriter, r *http.Request) {
	h.walletTransition(h.svc.ReclaimExpired)(w, r)
}

func (h *Handler) handleCancelCampaign(w http.ResponseWriter, r *http.Request) {
	h.walletTransition(h.svc.CancelCampaign)(w, r)
}

// pathAddress decodes the {address} parameter, answering 400 on failure.
func (h *Handler) pathAddress(w http.ResponseWriter, r *http.Request) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.writeError(w, r, err)
		return domain.ZeroAddress, false
	}
	return addr, true
}
