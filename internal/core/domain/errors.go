package domain

import "errors"

// Sentinel errors returned by campaign transitions. Callers attach detail with
// fmt.Errorf("%w: ...") and match with errors.Is.
var (
	ErrInvalidParameters    = errors.New("invalid parameters")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidState         = errors.New("invalid campaign state")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrMetricRegression     = errors.New("metric regression")
	ErrNotExpiredYet        = errors.New("campaign not expired yet")
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")

	ErrCampaignNotFound = errors.New("campaign not found")
	ErrAccountNotFound  = errors.New("account not found")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidParameters, "invalid_parameters"},
	{ErrAccountAlreadyExists, "account_already_exists"},
	{ErrUnauthorized, "unauthorized"},
	{ErrInvalidState, "invalid_state"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrMetricRegression, "metric_regression"},
	{ErrNotExpiredYet, "not_expired_yet"},
	{ErrArithmeticOverflow, "arithmetic_overflow"},
	{ErrCampaignNotFound, "campaign_not_found"},
	{ErrAccountNotFound, "account_not_found"},
}

// ErrorCode returns a stable machine-readable name for err, "internal" for
// errors outside the domain set and "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "internal"
}
