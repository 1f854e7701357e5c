package handlers

import (
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

// CategoryHandler serves the per-user category registry. Uncategorized
// expenses stay valid; categorized ones get their category registered here.
type CategoryHandler struct {
	db *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

// ListCategories returns the user's categories with per-category spend totals.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	user := middleware.CurrentUser(c)
	ctx := c.Request().Context()

	var categories []models.Category
	err := h.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Order("name").
		Find(&categories).Error
	if err != nil {
		return err
	}

	type categoryTotal struct {
		Category string
		Total    decimal.Decimal
	}
	var totals []categoryTotal
	err = h.db.WithContext(ctx).Model(&models.Expense{}).
		Select("category, COALESCE(SUM(base_amount), 0) AS total").
		Where("user_id = ? AND category <> ''", user.ID).
		Group("category").
		Scan(&totals).Error
	if err != nil {
		return err
	}
	totalByName := make(map[string]decimal.Decimal, len(totals))
	for _, row := range totals {
		totalByName[row.Category] = row.Total
	}

	type categoryResponse struct {
		models.Category
		TotalSpent decimal.Decimal `json:"total_spent"`
	}
	out := make([]categoryResponse, len(categories))
	for i, category := range categories {
		out[i] = categoryResponse{Category: category, TotalSpent: totalByName[category.Name]}
	}
	return c.JSON(http.StatusOK, out)
}

// CreateCategory adds a category, optionally with a spending limit.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	user := middleware.CurrentUser(c)

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ledger.NewValidationError("name", "category name is required")
	}

	ctx := c.Request().Context()
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.Category{}).
		Where("user_id = ? AND name = ?", user.ID, name).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ledger.NewValidationError("name", "category %q already exists", name)
	}

	category := models.Category{UserID: user.ID, Name: name}
	if req.Limit != "" {
		limit, err := decimal.NewFromString(req.Limit)
		if err != nil || !limit.IsPositive() {
			return ledger.NewValidationError("limit", "spending limit must be a positive amount")
		}
		category.Limit = &limit
	}
	if err := h.db.WithContext(ctx).Create(&category).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory renames a category or changes its spending limit.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	var category models.Category
	dbErr := h.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&category, id).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return &services.NotFoundError{Resource: "category"}
	}
	if dbErr != nil {
		return dbErr
	}

	if name := strings.TrimSpace(req.Name); name != "" && name != category.Name {
		var count int64
		if err := h.db.WithContext(ctx).Model(&models.Category{}).
			Where("user_id = ? AND name = ?", user.ID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ledger.NewValidationError("name", "category %q already exists", name)
		}
		category.Name = name
	}
	if req.Limit != "" {
		limit, err := decimal.NewFromString(req.Limit)
		if err != nil || !limit.IsPositive() {
			return ledger.NewValidationError("limit", "spending limit must be a positive amount")
		}
		category.Limit = &limit
	}

	if err := h.db.WithContext(ctx).Save(&category).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Expenses keep their category text, they
// just become uncategorized against the registry.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	user := middleware.CurrentUser(c)
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	var category models.Category
	dbErr := h.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&category, id).Error
	if errors.Is(dbErr, gorm.ErrRecordNotFound) {
		return &services.NotFoundError{Resource: "category"}
	}
	if dbErr != nil {
		return dbErr
	}

	if err := h.db.WithContext(ctx).Delete(&category).Error; err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
