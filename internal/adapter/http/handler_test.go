package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"engage-escrow/internal/adapter/oracle"
	"engage-escrow/internal/core/domain"
	"engage-escrow/internal/core/port"
	"engage-escrow/internal/core/port/mocks"
	"engage-escrow/internal/observability"
)

const testSecret = "s3cr3t"

var (
	influencer = mustAddress("0x1111111111111111111111111111111111111111")
	brand      = mustAddress("0x2222222222222222222222222222222222222222")
	oracleAddr = mustAddress("0x3333333333333333333333333333333333333333")
	campaignID = mustAddress("0x4444444444444444444444444444444444444444")
)

func mustAddress(s string) domain.Address {
	addr, err := domain.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func newTestHandler(t *testing.T, authEnabled bool) (*mocks.MockEscrowUseCase, http.Handler) {
	t.Helper()
	svc := mocks.NewMockEscrowUseCase(t)
	logger := slog.New(slog.DiscardHandler)
	h := NewHandler(svc, logger, Options{
		Auth: NewAuthenticator(AuthConfig{
			Enabled:  authEnabled,
			Secret:   testSecret,
			Issuer:   "engage-escrow",
			Audience: "engage-escrow-api",
			Leeway:   time.Second,
		}, logger),
		Metrics:       observability.New(),
		TokenDecimals: 6,
	})
	return svc, h.Router()
}

func sampleCampaign() domain.Campaign {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	return domain.Campaign{
		Address:      campaignID,
		Vault:        domain.VaultAddress(campaignID),
		Influencer:   influencer,
		Brand:        brand,
		Oracle:       oracleAddr,
		Name:         "spring-launch",
		Nickname:     "alice",
		BrandName:    "Acme",
		Hashtag:      "#acme",
		Targets:      domain.Metrics{Likes: 1000, Views: 10000},
		Current:      domain.Metrics{Likes: 500, Views: 2000},
		TotalDeposit: 1_000_000_000,
		PaidAmount:   300_000_000,
		Status:       domain.StatusActive,
		Deadline:     now.Add(72 * time.Hour),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims(wallet domain.Address) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":    "did:privy:user-1",
		"wallet": wallet.Hex(),
		"iss":    "engage-escrow",
		"aud":    "engage-escrow-api",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
}

func do(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) problem {
	t.Helper()
	var p problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	return p
}

func TestGetCampaign(t *testing.T) {
	svc, router := newTestHandler(t, true)
	c := sampleCampaign()
	svc.EXPECT().GetCampaign(mock.Anything, campaignID).Return(&c, nil)

	rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+campaignID.Hex(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view campaignView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, campaignID.Hex(), view.Address)
	assert.Equal(t, "1000.000000", view.TotalDeposit.Display)
	assert.Equal(t, uint64(700_000_000), view.VaultBalance.Base)
	// mean of 50% likes and 20% views
	assert.Equal(t, "35.00", view.ProgressPercent)
	assert.Equal(t, domain.StatusActive, view.Status)
}

func TestGetCampaignErrors(t *testing.T) {
	svc, router := newTestHandler(t, true)

	rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/not-an-address", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_parameters", decodeProblem(t, rec).Error)

	svc.EXPECT().GetCampaign(mock.Anything, campaignID).
		Return(nil, fmt.Errorf("%w: %s", domain.ErrCampaignNotFound, campaignID.Hex())).Once()
	rec = do(router, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+campaignID.Hex(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.EXPECT().GetCampaign(mock.Anything, campaignID).Return(nil, assert.AnError).Once()
	rec = do(router, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+campaignID.Hex(), nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "internal", p.Error)
	assert.NotContains(t, p.Message, assert.AnError.Error())
}

func TestAmountDisplayKeepsEveryDecimal(t *testing.T) {
	h := &Handler{decimals: 6}
	cases := map[uint64]string{
		100_000007:    "100.000007",
		5_000:         "0.005000",
		0:             "0.000000",
		1_000_000_000: "1000.000000",
	}
	for base, want := range cases {
		v := h.amount(base)
		assert.Equal(t, base, v.Base)
		assert.Equal(t, want, v.Display)
	}

	whole := &Handler{decimals: 0}
	assert.Equal(t, "42", whole.amount(42).Display)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidParameters, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusForbidden},
		{domain.ErrAccountNotFound, http.StatusNotFound},
		{domain.ErrAccountAlreadyExists, http.StatusConflict},
		{domain.ErrNotExpiredYet, http.StatusConflict},
		{domain.ErrMetricRegression, http.StatusConflict},
		{domain.ErrInsufficientFunds, http.StatusPaymentRequired},
		{domain.ErrArithmeticOverflow, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidState), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, statusFor(tc.err))
		})
	}
}

func TestListCampaignsFilters(t *testing.T) {
	svc, router := newTestHandler(t, true)
	c := sampleCampaign()
	svc.EXPECT().ListCampaigns(mock.Anything, mock.MatchedBy(func(f port.CampaignFilter) bool {
		return f.Brand != nil && *f.Brand == brand &&
			f.Status != nil && *f.Status == domain.StatusActive &&
			f.Influencer == nil && f.Limit == 10 && f.Offset == 5
	})).Return([]domain.Campaign{c}, nil)

	url := fmt.Sprintf("/api/v1/campaigns/?brand=%s&status=active&limit=10&offset=5", brand.Hex())
	rec := do(router, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var views []campaignView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&views))
	require.Len(t, views, 1)
	assert.Equal(t, "spring-launch", views[0].Name)

	for _, bad := range []string{"?status=paused", "?limit=-1", "?offset=x", "?oracle=0x12"} {
		rec = do(router, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
	}
}

func TestListEventsEmpty(t *testing.T) {
	svc, router := newTestHandler(t, true)
	svc.EXPECT().ListEvents(mock.Anything, campaignID).Return(nil, nil)

	rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+campaignID.Hex()+"/events", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestCreateCampaignWithToken(t *testing.T) {
	svc, router := newTestHandler(t, true)
	deadline := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	c := sampleCampaign()
	c.Status = domain.StatusDraft
	svc.EXPECT().CreateCampaign(mock.Anything, mock.MatchedBy(func(p domain.CampaignParams) bool {
		return p.Influencer == influencer && p.Brand == brand && p.Oracle == oracleAddr &&
			p.Name == "spring-launch" && p.TotalDeposit == 1_000_000_000 &&
			p.Targets.Likes == 1000 && p.Deadline.Equal(deadline)
	})).Return(&port.TransitionResult{
		Campaign:   c,
		Transition: domain.Transition{Operation: domain.OpCreate, To: domain.StatusDraft},
	}, nil)

	body := map[string]any{
		"brand":         brand.Hex(),
		"oracle":        oracleAddr.Hex(),
		"name":          "spring-launch",
		"nickname":      "alice",
		"brand_name":    "Acme",
		"hashtag":       "#acme",
		"targets":       map[string]uint64{"likes": 1000, "views": 10000},
		"total_deposit": 1_000_000_000,
		"deadline":      deadline.Format(time.RFC3339),
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/", bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer "+token(t, validClaims(influencer)))

	rec := do(router, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var view transitionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, domain.OpCreate, view.Operation)
	assert.Equal(t, domain.StatusDraft, view.To)
	assert.Empty(t, view.Payouts)
}

func TestCreateCampaignRejectsBadInput(t *testing.T) {
	_, router := newTestHandler(t, true)
	auth := "Bearer " + token(t, validClaims(influencer))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", auth)
	assert.Equal(t, http.StatusBadRequest, do(router, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/",
		bytes.NewBufferString(`{"brand":"0xnope","oracle":"`+oracleAddr.Hex()+`"}`))
	req.Header.Set("Authorization", auth)
	rec := do(router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeProblem(t, rec).Message, "brand")
}

func TestMutatingRoutesRequireAuth(t *testing.T) {
	_, router := newTestHandler(t, true)
	expired := validClaims(brand)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	wrongAudience := validClaims(brand)
	wrongAudience["aud"] = "someone-else"
	noWallet := validClaims(brand)
	delete(noWallet, "wallet")
	noSubject := validClaims(brand)
	delete(noSubject, "sub")

	cases := map[string]string{
		"missing":        "",
		"not bearer":     "Basic Zm9vOmJhcg==",
		"garbage":        "Bearer abc.def.ghi",
		"expired":        "Bearer " + token(t, expired),
		"wrong audience": "Bearer " + token(t, wrongAudience),
		"no wallet":      "Bearer " + token(t, noWallet),
		"no subject":     "Bearer " + token(t, noSubject),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/fund", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := do(router, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthenticated", decodeProblem(t, rec).Error)
		})
	}
}

func TestWalletHeaderWhenAuthDisabled(t *testing.T) {
	svc, router := newTestHandler(t, false)
	c := sampleCampaign()
	svc.EXPECT().FundCampaign(mock.Anything, campaignID, brand).Return(&port.TransitionResult{
		Campaign:   c,
		Transition: domain.Transition{Operation: domain.OpFund, From: domain.StatusDraft, To: domain.StatusActive},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/fund", nil)
	req.Header.Set(WalletHeader, brand.Hex())
	rec := do(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/fund", nil)
	assert.Equal(t, http.StatusUnauthorized, do(router, req).Code)
}

func TestCloseTransitions(t *testing.T) {
	svc, router := newTestHandler(t, false)
	c := sampleCampaign()

	svc.EXPECT().ReclaimExpired(mock.Anything, campaignID, brand).Return(&port.TransitionResult{
		Campaign: c,
		Transition: domain.Transition{
			Operation:   domain.OpReclaim,
			From:        domain.StatusActive,
			To:          domain.StatusExpired,
			Closed:      true,
			Beneficiary: brand,
		},
	}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/reclaim", nil)
	req.Header.Set(WalletHeader, brand.Hex())
	rec := do(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var view transitionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.True(t, view.Closed)
	assert.Equal(t, brand.Hex(), view.Beneficiary)

	svc.EXPECT().CancelCampaign(mock.Anything, campaignID, brand).
		Return(nil, fmt.Errorf("%w: only the influencer may cancel", domain.ErrUnauthorized))
	req = httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/cancel", nil)
	req.Header.Set(WalletHeader, brand.Hex())
	rec = do(router, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "unauthorized", decodeProblem(t, rec).Error)
}

func TestUpdateMetricsSigned(t *testing.T) {
	svc, router := newTestHandler(t, true)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := oracle.Address(key)
	metrics := domain.Metrics{Likes: 1000, Views: 10000}

	c := sampleCampaign()
	c.PaidAmount = c.TotalDeposit
	svc.EXPECT().UpdateMetrics(mock.Anything, campaignID, signer, metrics).Return(&port.TransitionResult{
		Campaign: c,
		Transition: domain.Transition{
			Operation:   domain.OpMetrics,
			From:        domain.StatusActive,
			To:          domain.StatusCompleted,
			Payouts:     []domain.Payout{{Index: 9, Amount: 100_000_000}},
			Closed:      true,
			Beneficiary: signer,
		},
	}, nil)

	report, err := oracle.Sign(key, campaignID, metrics)
	require.NoError(t, err)
	raw, err := json.Marshal(map[string]any{"metrics": report.Metrics, "signature": report.Signature})
	require.NoError(t, err)

	rec := do(router, httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/metrics", bytes.NewReader(raw)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view transitionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	require.Len(t, view.Payouts, 1)
	assert.Equal(t, 9, view.Payouts[0].Milestone)
	assert.Equal(t, "100.000000", view.Payouts[0].Amount.Display)
	assert.Equal(t, domain.StatusCompleted, view.To)
}

func TestUpdateMetricsBadSignature(t *testing.T) {
	_, router := newTestHandler(t, true)
	body := `{"metrics":{"likes":10},"signature":"0x0102"}`
	rec := do(router, httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaignID.Hex()+"/metrics", bytes.NewBufferString(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "bad_signature", decodeProblem(t, rec).Error)
}

func TestUpdateMetricsRateLimited(t *testing.T) {
	svc := mocks.NewMockEscrowUseCase(t)
	logger := slog.New(slog.DiscardHandler)
	router := NewHandler(svc, logger, Options{
		Auth:          NewAuthenticator(AuthConfig{}, logger),
		OracleLimiter: NewRateLimiter(1, 1),
	}).Router()

	// the body is rejected after the limiter, so no usecase call is expected
	url := "/api/v1/campaigns/" + campaignID.Hex() + "/metrics"
	first := do(router, httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, first.Code)
	second := do(router, httptest.NewRequest(http.MethodPost, url, bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "rate_limited", decodeProblem(t, second).Error)
}

func TestGetAccount(t *testing.T) {
	svc, router := newTestHandler(t, true)
	svc.EXPECT().GetAccount(mock.Anything, brand).Return(&domain.Account{
		Address:  brand,
		Owner:    domain.OwnerUser,
		Tokens:   2_500_000,
		Lamports: 10,
	}, nil)

	rec := do(router, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/"+brand.Hex(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var view accountView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "2.500000", view.Tokens.Display)
	assert.Equal(t, uint64(10), view.Lamports)
}

func TestMetricsEndpoint(t *testing.T) {
	_, router := newTestHandler(t, true)
	do(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := do(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "engage_escrow_http_requests_total")
}
