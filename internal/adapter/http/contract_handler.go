package http

import (
	"net/http"
	"time"

	"loanly-backend/internal/usecase/lifecycle"

	"github.com/labstack/echo/v4"
)

type ContractHandler struct{ uc *lifecycle.Usecase }

func NewContractHandler(uc *lifecycle.Usecase) *ContractHandler { return &ContractHandler{uc: uc} }

type createContractReq struct {
	OwnerID   string `json:"owner_id"   validate:"required,hex32"`
	Principal uint64 `json:"principal"  validate:"required,gt=0"`
	// RFC3339; must be in the future
	DueAt time.Time `json:"due_at"     validate:"required"`
}

// CreateContract records a loan agreement. The signer is the loaner.
func (h *ContractHandler) CreateContract(c echo.Context) error {
	signer, ok := signerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid " + HeaderSignerID})
	}
	var req createContractReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Create(c.Request().Context(), lifecycle.CreateContractInput{
		LoanerID:  signer,
		OwnerID:   req.OwnerID,
		Principal: req.Principal,
		DueAt:     req.DueAt,
	})
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

// ConfirmContract funds the loan. The signer must be the contract owner.
func (h *ContractHandler) ConfirmContract(c echo.Context) error {
	signer, ok := signerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid " + HeaderSignerID})
	}
	loanerID := c.Param("loaner_id")
	if !reHex32.MatchString(loanerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loaner_id path param"})
	}

	dto, err := h.uc.Confirm(c.Request().Context(), loanerID, signer)
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

// PayContract settles the loan. The signer must be the contract loaner.
func (h *ContractHandler) PayContract(c echo.Context) error {
	signer, ok := signerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing or invalid " + HeaderSignerID})
	}
	loanerID := c.Param("loaner_id")
	if !reHex32.MatchString(loanerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loaner_id path param"})
	}

	dto, err := h.uc.Pay(c.Request().Context(), loanerID, signer)
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) GetContract(c echo.Context) error {
	loanerID := c.Param("loaner_id")
	if !reHex32.MatchString(loanerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loaner_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanerID)
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ContractHandler) GetReputation(c echo.Context) error {
	loanerID := c.Param("loaner_id")
	if !reHex32.MatchString(loanerID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loaner_id path param"})
	}
	dto, err := h.uc.Reputation(c.Request().Context(), loanerID)
	if err != nil {
		return c.JSON(domainErrStatus(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}
