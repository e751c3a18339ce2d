package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loanly-backend/internal/domain/account"
	"loanly-backend/internal/domain/contract"
	"loanly-backend/internal/domain/reputation"
)

// HeaderSignerID carries the verified caller identity. The hosting layer is
// expected to have authenticated it; this service only asserts the format
// and matches it against the contract's parties.
const HeaderSignerID = "Ax-Signer-Id"

func signerID(c echo.Context) (string, bool) {
	s := strings.TrimSpace(c.Request().Header.Get(HeaderSignerID))
	return s, reHex32.MatchString(s)
}

// domainErrStatus maps lifecycle errors to HTTP statuses. Anything unmapped
// is an internal error.
func domainErrStatus(err error) int {
	switch err {
	case contract.ErrNotFound, reputation.ErrNotFound, account.ErrNotFound:
		return http.StatusNotFound
	case contract.ErrUnauthorized:
		return http.StatusForbidden
	case contract.ErrBadReputation:
		return http.StatusForbidden
	case contract.ErrInsufficientPrincipal:
		return http.StatusUnprocessableEntity
	case contract.ErrInsufficientFunds:
		return http.StatusConflict
	case contract.ErrPendingContract, contract.ErrAlreadyConfirmed, contract.ErrAlreadySettled, contract.ErrNotConfirmed:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
