package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/models"
	"finance_tracker_echo/internal/services"
)

// AccountHandler serves payment sources: bank accounts, wallets, and cash.
type AccountHandler struct {
	db *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{db: db}
}

// ListPaymentSources returns the user's active payment sources grouped with a
// running total.
func (h *AccountHandler) ListPaymentSources(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var sources []models.PaymentSource
	err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ? AND is_active = ?", user.ID, true).
		Order("account_type, name").
		Find(&sources).Error
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, source := range sources {
		total = total.Add(source.Balance)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payment_sources": sources,
		"total_balance":   total,
	})
}

// CreatePaymentSource adds a payment source with an opening balance.
func (h *AccountHandler) CreatePaymentSource(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req paymentSourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ledger.NewValidationError("name", "payment source name is required")
	}
	if !models.ValidAccountType(req.AccountType) {
		return ledger.NewValidationError("account_type", "unknown account type %q", req.AccountType)
	}
	balance := decimal.Zero
	if req.Balance != "" {
		var err error
		balance, err = decimal.NewFromString(req.Balance)
		if err != nil {
			return ledger.NewValidationError("balance", "invalid balance %q", req.Balance)
		}
	}

	ctx := c.Request().Context()
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.PaymentSource{}).
		Where("user_id = ? AND name = ?", user.ID, name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ledger.NewValidationError("name", "payment source %q already exists", name)
	}

	source := models.PaymentSource{
		UserID:      user.ID,
		Name:        name,
		AccountType: req.AccountType,
		BankName:    req.BankName,
		Balance:     balance,
		IsActive:    true,
	}
	if err := h.db.WithContext(ctx).Create(&source).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, source)
}

// GetPaymentSource returns one source with its recent transactions.
func (h *AccountHandler) GetPaymentSource(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	source, err := h.findSource(ctx, user.ID, id)
	if err != nil {
		return err
	}

	var transactions []models.Expense
	err = h.db.WithContext(ctx).
		Where("user_id = ? AND payment_source_id = ?", user.ID, source.ID).
		Order("date DESC").
		Limit(50).
		Find(&transactions).Error
	if err != nil {
		return err
	}

	totalSpent := decimal.Zero
	for _, expense := range transactions {
		totalSpent = totalSpent.Add(expense.Amount)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payment_source": source,
		"transactions":   transactions,
		"total_spent":    totalSpent,
	})
}

// UpdatePaymentSource changes the name, type, bank, or balance of a source.
func (h *AccountHandler) UpdatePaymentSource(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req paymentSourceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	source, err := h.findSource(ctx, user.ID, id)
	if err != nil {
		return err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		source.Name = name
	}
	if req.AccountType != "" {
		if !models.ValidAccountType(req.AccountType) {
			return ledger.NewValidationError("account_type", "unknown account type %q", req.AccountType)
		}
		source.AccountType = req.AccountType
	}
	if req.BankName != "" {
		source.BankName = req.BankName
	}
	if req.Balance != "" {
		balance, err := decimal.NewFromString(req.Balance)
		if err != nil {
			return ledger.NewValidationError("balance", "invalid balance %q", req.Balance)
		}
		source.Balance = balance
	}

	if err := h.db.WithContext(ctx).Save(source).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, source)
}

// DeletePaymentSource deactivates a source. Expenses that referenced it keep
// their link, so it is hidden rather than removed.
func (h *AccountHandler) DeletePaymentSource(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	source, err := h.findSource(ctx, user.ID, id)
	if err != nil {
		return err
	}

	source.IsActive = false
	if err := h.db.WithContext(ctx).Save(source).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AccountHandler) findSource(ctx context.Context, userID, id uint) (*models.PaymentSource, error) {
	var source models.PaymentSource
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&source, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &services.NotFoundError{Resource: "payment source"}
	}
	if err != nil {
		return nil, err
	}
	return &source, nil
}
