package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"engage-escrow/internal/core/domain"
)

// WalletHeader carries the caller address when authentication is disabled.
const WalletHeader = "X-Wallet"

// walletClaim is the JWT claim linking the session to a wallet.
const walletClaim = "wallet"

// AuthConfig configures the Authenticator.
type AuthConfig struct {
	Enabled  bool
	Secret   string
	Issuer   string
	Audience string
	Leeway   time.Duration
}

type (
	walletKey struct{}
	userKey   struct{}
)

// Authenticator resolves the wallet behind a request. With verification on,
// the wallet comes from an HMAC-signed bearer token issued by the session
// service; otherwise the X-Wallet header is trusted.
type Authenticator struct {
	cfg    AuthConfig
	secret []byte
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(cfg AuthConfig, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		cfg:    cfg,
		secret: []byte(strings.TrimSpace(cfg.Secret)),
		logger: logger,
	}
}

// Middleware rejects requests without a resolvable wallet with 401 and
// stores the wallet in the request context otherwise.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wallet, user, err := a.resolve(r)
		if err != nil {
			a.logger.Debug("authentication failed", slog.Any("error", err))
			writeProblem(w, http.StatusUnauthorized, "unauthenticated", err.Error())
			return
		}
		a.logger.Debug("request authenticated",
			slog.String("user", user),
			slog.String("wallet", wallet.Hex()),
			slog.String("path", r.URL.Path),
		)
		ctx := context.WithValue(r.Context(), walletKey{}, wallet)
		if user != "" {
			ctx = context.WithValue(ctx, userKey{}, user)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolve returns the caller wallet and, for verified tokens, the stable
// user id carried in the sub claim.
func (a *Authenticator) resolve(r *http.Request) (domain.Address, string, error) {
	if !a.cfg.Enabled {
		value := r.Header.Get(WalletHeader)
		if value == "" {
			return domain.ZeroAddress, "", errors.New("missing " + WalletHeader + " header")
		}
		wallet, err := domain.ParseAddress(value)
		return wallet, "", err
	}

	tokenString := extractBearer(r.Header.Get("Authorization"))
	if tokenString == "" {
		return domain.ZeroAddress, "", errors.New("missing bearer token")
	}
	claims, err := a.parseToken(tokenString)
	if err != nil {
		return domain.ZeroAddress, "", err
	}
	user, err := claims.GetSubject()
	if err != nil || user == "" {
		return domain.ZeroAddress, "", errors.New("token has no subject")
	}
	raw, ok := claims[walletClaim].(string)
	if !ok || raw == "" {
		return domain.ZeroAddress, "", errors.New("token has no wallet claim")
	}
	wallet, err := domain.ParseAddress(raw)
	if err != nil {
		return domain.ZeroAddress, "", err
	}
	return wallet, user, nil
}

func (a *Authenticator) parseToken(tokenString string) (jwt.MapClaims, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("auth secret not configured")
	}
	opts := []jwt.ParserOption{
		jwt.WithLeeway(a.cfg.Leeway),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.Issuer))
	}
	if a.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(a.cfg.Audience))
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims not map")
	}
	return claims, nil
}

func extractBearer(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserFromContext returns the session user id stored by
// Authenticator.Middleware. It is absent when verification is disabled.
func UserFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(userKey{}).(string)
	return u, ok
}

// WalletFromContext returns the wallet stored by Authenticator.Middleware.
func WalletFromContext(ctx context.Context) (domain.Address, bool) {
	w, ok := ctx.Value(walletKey{}).(domain.Address)
	return w, ok
}
