package http

import (
	"net/http"

	"loanly-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

type AccountHandler struct{ uc *account.Usecase }

func NewAccountHandler(uc *account.Usecase) *AccountHandler { return &AccountHandler{uc: uc} }

type depositReq struct {
	Amount uint64 `json:"amount" validate:"required,gt=0"`
}

func (h *AccountHandler) Deposit(c echo.Context) error {
	accountID := c.Param("account_id")
	if !reHex32.MatchString(accountID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id path param"})
	}
	var req depositReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Deposit(c.Request().Context(), accountID, req.Amount)
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID := c.Param("account_id")
	if !reHex32.MatchString(accountID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid account_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), accountID)
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}
