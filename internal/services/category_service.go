package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"finance_tracker_echo/internal/models"
)

// EnsureCategory registers a category name in the user's registry, creating
// the row on first use so every categorized expense has a backing category.
// Blank names stay unregistered. Returns the trimmed name.
func EnsureCategory(ctx context.Context, db *gorm.DB, userID uint, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	category := models.Category{UserID: userID, Name: name}
	err := db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		FirstOrCreate(&category).Error
	if err != nil {
		return "", err
	}
	return name, nil
}
