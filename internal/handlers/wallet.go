package handlers

import (
	"errors"
	"log"

	domainerrors "vesta/internal/errors"
	"vesta/internal/models"
	"vesta/internal/repositories"
	"vesta/internal/services/ledger"
	"vesta/internal/utils"
	"vesta/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	ledgerService ledger.Service
	userRepo      repositories.UserRepository
}

func NewWalletHandler(ledgerService ledger.Service, userRepo repositories.UserRepository) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
		userRepo:      userRepo,
	}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	claims, err := extractUserClaims(c)
	if err != nil {
		return nil, err
	}
	return h.userRepo.GetByID(claims.UserID)
}

func requestMeta(c *fiber.Ctx) models.RequestMeta {
	return models.RequestMeta{
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

func (h *WalletHandler) GetWallets(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallets, err := h.ledgerService.GetWallets(c.Context(), claims.UserID, c.Query("currency"))
	if err != nil {
		return utils.InternalError(c, "Failed to get wallets")
	}

	return utils.Success(c, fiber.Map{
		"wallets": wallets,
	})
}

func (h *WalletHandler) FundWallet(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input validation.FundWalletInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	txn, err := h.ledgerService.Fund(c.Context(), user, ledger.FundRequest{
		Amount:   input.Amount,
		Currency: input.Currency,
	}, requestMeta(c))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"message":     "Wallet funded",
		"transaction": txn,
	})
}

func (h *WalletHandler) ConvertCurrency(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input validation.ConvertCurrencyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	result, err := h.ledgerService.Convert(c.Context(), user, ledger.ConvertRequest{
		FromCurrency: input.FromCurrency,
		ToCurrency:   input.ToCurrency,
		Amount:       input.Amount,
	}, requestMeta(c))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, result)
}

func (h *WalletHandler) TradeCurrency(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input validation.TradeCurrencyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if err := validation.ValidateStruct(input); err != nil {
		return utils.BadRequest(c, err.Error())
	}

	result, err := h.ledgerService.Trade(c.Context(), user, ledger.TradeRequest{
		BaseCurrency:  input.BaseCurrency,
		QuoteCurrency: input.QuoteCurrency,
		Amount:        input.Amount,
		Action:        ledger.TradeAction(input.Action),
	}, requestMeta(c))
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, result)
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	txns, total, err := h.ledgerService.GetTransactions(c.Context(), claims.UserID, limit, (page-1)*limit)
	if err != nil {
		return utils.InternalError(c, "Failed to get transactions")
	}

	return utils.Success(c, fiber.Map{
		"transactions": txns,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetTransaction returns a single ledger entry by its reference.
func (h *WalletHandler) GetTransaction(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	reference := c.Params("reference")
	if reference == "" {
		return utils.BadRequest(c, "reference is required")
	}

	txn, err := h.ledgerService.GetTransaction(c.Context(), claims.UserID, reference)
	if err != nil {
		return walletError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"transaction": txn,
	})
}

// walletError maps ledger errors onto HTTP statuses without leaking storage
// details.
func walletError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrWalletNotFound):
		return utils.NotFound(c, domainerrors.ErrWalletNotFound.Message)
	case errors.Is(err, ledger.ErrInsufficientBalance):
		return utils.Forbidden(c, domainerrors.ErrInsufficientBalance.Message)
	case errors.Is(err, ledger.ErrRateUnavailable):
		return utils.BadRequest(c, domainerrors.ErrRateUnavailable.Message)
	case errors.Is(err, ledger.ErrAmountTooSmall):
		return utils.BadRequest(c, domainerrors.ErrAmountTooSmall.Message)
	case errors.Is(err, ledger.ErrInvalidAmount):
		return utils.BadRequest(c, domainerrors.ErrInvalidAmount.Message)
	case errors.Is(err, ledger.ErrInvalidAction):
		return utils.BadRequest(c, domainerrors.ErrInvalidAction.Message)
	case errors.Is(err, ledger.ErrTransactionNotFound):
		return utils.NotFound(c, domainerrors.ErrTransactionNotFound.Message)
	default:
		log.Printf("wallet operation failed: %v", err)
		return utils.InternalError(c, "Operation failed")
	}
}
