package httpadapter

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatorStoresUserAndWallet(t *testing.T) {
	a := NewAuthenticator(AuthConfig{
		Enabled:  true,
		Secret:   testSecret,
		Issuer:   "engage-escrow",
		Audience: "engage-escrow-api",
		Leeway:   time.Second,
	}, slog.New(slog.DiscardHandler))

	var (
		gotUser   string
		gotWallet string
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		wallet, ok := WalletFromContext(r.Context())
		require.True(t, ok)
		gotUser, gotWallet = user, wallet.Hex()
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, validClaims(influencer)))
	rec := httptest.NewRecorder()
	a.Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "did:privy:user-1", gotUser)
	assert.Equal(t, influencer.Hex(), gotWallet)
}

func TestAuthenticatorHeaderModeHasNoUser(t *testing.T) {
	a := NewAuthenticator(AuthConfig{}, slog.New(slog.DiscardHandler))

	var hasUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(WalletHeader, brand.Hex())
	rec := httptest.NewRecorder()
	a.Middleware(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, hasUser)
}
