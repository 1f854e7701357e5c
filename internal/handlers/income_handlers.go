package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/middleware"
	"finance_tracker_echo/internal/models"
)

// IncomeHandler serves income entries, both manually recorded ones and rows
// materialized by the recurring worker.
type IncomeHandler struct {
	db *gorm.DB
}

func NewIncomeHandler(db *gorm.DB) *IncomeHandler {
	return &IncomeHandler{db: db}
}

// ListIncome returns the user's income, newest first, optionally bounded by
// start_date/end_date.
func (h *IncomeHandler) ListIncome(c echo.Context) error {
	user := middleware.CurrentUser(c)

	startDate, err := parseOptionalDate("start_date", c.QueryParam("start_date"))
	if err != nil {
		return err
	}
	endDate, err := parseOptionalDate("end_date", c.QueryParam("end_date"))
	if err != nil {
		return err
	}

	query := h.db.WithContext(c.Request().Context()).Where("user_id = ?", user.ID)
	if startDate != nil {
		query = query.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", *endDate)
	}

	var income []models.Income
	if err := query.Order("date DESC").Find(&income).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, income)
}

// CreateIncome records an income entry.
func (h *IncomeHandler) CreateIncome(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req incomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return ledger.NewValidationError("amount", "invalid amount %q", req.Amount)
	}
	if !amount.IsPositive() {
		return ledger.NewValidationError("amount", "income amount must be greater than zero")
	}

	currency := req.Currency
	if currency == "" {
		currency = user.Currency
	}

	income := models.Income{
		UserID:      user.ID,
		Date:        date,
		Amount:      amount,
		Currency:    currency,
		Description: req.Description,
		Source:      req.Source,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&income).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, income)
}
