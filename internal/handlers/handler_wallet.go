package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/walletcore/wallet-ledger/internal/apperrors"
	"github.com/walletcore/wallet-ledger/internal/core/domain"
	portssvc "github.com/walletcore/wallet-ledger/internal/core/ports/services"
	"github.com/walletcore/wallet-ledger/internal/dto"
	"github.com/walletcore/wallet-ledger/internal/middleware"
	"github.com/walletcore/wallet-ledger/internal/utils/pagination"
)

// walletHandler handles HTTP requests for wallet operations. It performs
// request binding and response mapping only; business rules live in the
// wallet service.
type walletHandler struct {
	walletService  portssvc.WalletSvcFacade
	accountService portssvc.AccountSvcFacade
}

// NewWalletHandler creates a new walletHandler.
func NewWalletHandler(ws portssvc.WalletSvcFacade, as portssvc.AccountSvcFacade) *walletHandler {
	return &walletHandler{
		walletService:  ws,
		accountService: as,
	}
}

// RegisterWalletRoutes registers the wallet API routes.
func RegisterWalletRoutes(rg *gin.RouterGroup, h *walletHandler) {
	wallet := rg.Group("/wallet")
	{
		wallet.POST("/account", h.createAccount)
		wallet.POST("/top-up", h.topUp)
		wallet.POST("/charge", h.charge)
		wallet.GET("/balance/:accountID", h.getBalance)
		wallet.GET("/transactions/:accountID", h.getTransactions)
	}
}

// createAccount godoc
// @Summary Create a wallet account
// @Description Provisions a new account with a zero balance
// @Tags wallet
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Router /wallet/account [post]
func (h *walletHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format", "error": err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate account creation attempt", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Account already exists", "error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation error", "error": err.Error()})
		} else {
			logger.Error("Failed to create account in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create account"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data":    dto.ToAccountResponse(account),
	})
}

// topUp godoc
// @Summary Add balance to an account
// @Tags wallet
// @Accept json
// @Produce json
// @Param operation body dto.TopUpRequest true "Top-up details"
// @Success 200 {object} dto.ProcessResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate reference"
// @Failure 503 {object} map[string]string "Ledger store unavailable"
// @Router /wallet/top-up [post]
func (h *walletHandler) topUp(c *gin.Context) {
	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format", "error": err.Error()})
		return
	}

	result, err := h.walletService.Process(c.Request.Context(), req.AccountID, req.Amount, req.Reference, domain.TopUp, req.Description)
	if err != nil {
		h.respondProcessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Top-up successful",
		"data":    dto.ToProcessResponse(result),
	})
}

// charge godoc
// @Summary Deduct balance from an account
// @Tags wallet
// @Accept json
// @Produce json
// @Param operation body dto.ChargeRequest true "Charge details"
// @Success 200 {object} dto.ProcessResponse
// @Failure 400 {object} map[string]string "Invalid amount or insufficient balance"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate reference"
// @Failure 503 {object} map[string]string "Ledger store unavailable"
// @Router /wallet/charge [post]
func (h *walletHandler) charge(c *gin.Context) {
	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format", "error": err.Error()})
		return
	}

	result, err := h.walletService.Process(c.Request.Context(), req.AccountID, req.Amount, req.Reference, domain.Charge, req.Description)
	if err != nil {
		h.respondProcessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Charge successful",
		"data":    dto.ToProcessResponse(result),
	})
}

// getBalance godoc
// @Summary Get the current balance for an account
// @Tags wallet
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /wallet/balance/{accountID} [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	account, err := h.walletService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Account not found"})
		} else {
			logger.Error("Failed to get balance from service", slog.String("account_id", accountID), slog.String("error", err.Error()))
			h.respondProcessError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToAccountResponse(account),
	})
}

// getTransactions godoc
// @Summary List transactions for an account
// @Description Returns the account's transaction history, newest first
// @Tags wallet
// @Produce json
// @Param accountID path string true "Account ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Router /wallet/transactions/{accountID} [get]
func (h *walletHandler) getTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	params := pagination.ParseFromRequest(c)

	listing, err := h.walletService.ListTransactions(c.Request.Context(), accountID, params.Page, params.PerPage)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Account not found"})
		} else {
			logger.Error("Failed to list transactions from service", slog.String("account_id", accountID), slog.String("error", err.Error()))
			h.respondProcessError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dto.ToListTransactionsResponse(listing),
	})
}

// respondProcessError maps each failure kind of the wallet service to a
// distinct response. Insufficient balance carries the two amounts as JSON
// numbers so callers never parse message text.
func (h *walletHandler) respondProcessError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if ibe, ok := apperrors.AsInsufficientBalance(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Insufficient balance",
			"data":    dto.NewInsufficientBalanceData(ibe.CurrentBalance, ibe.RequestedAmount),
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Account not found"})
	case errors.Is(err, apperrors.ErrDuplicateReference):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Reference has already been used"})
	case errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid amount", "error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation error", "error": err.Error()})
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("Ledger store unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Service temporarily unavailable, please retry"})
	default:
		logger.Error("Unhandled wallet service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Operation failed"})
	}
}
