package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"finance_tracker_echo/internal/ledger"
	"finance_tracker_echo/internal/models"
)

// FriendService maintains the per-user friend registry.
type FriendService struct {
	db *gorm.DB
}

func NewFriendService(db *gorm.DB) *FriendService {
	return &FriendService{db: db}
}

// Create adds a new friend for the user. Names are trimmed and must be
// unique per user.
func (s *FriendService) Create(ctx context.Context, userID uint, name, email, phone string) (*models.Friend, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledger.NewValidationError("name", "friend name is required")
	}

	var existing models.Friend
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&existing).Error
	if err == nil {
		return nil, ledger.NewValidationError("name", "friend %q already exists", name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing friend: %w", err)
	}

	friend := models.Friend{
		UserID: userID,
		Name:   name,
		Email:  email,
		Phone:  phone,
	}
	if err := s.db.WithContext(ctx).Create(&friend).Error; err != nil {
		return nil, fmt.Errorf("failed to create friend: %w", err)
	}
	return &friend, nil
}

// GetOrCreate resolves a friend by trimmed name within the given transaction,
// creating the row if the name has not been seen before. Used when a split
// names a previously-unseen participant.
func (s *FriendService) GetOrCreate(tx *gorm.DB, userID uint, name string) (*models.Friend, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledger.NewValidationError("name", "friend name is required")
	}

	var friend models.Friend
	err := tx.
		Where(models.Friend{UserID: userID, Name: name}).
		FirstOrCreate(&friend).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friend %q: %w", name, err)
	}
	return &friend, nil
}

// Get returns one friend owned by the user.
func (s *FriendService) Get(ctx context.Context, userID, friendID uint) (*models.Friend, error) {
	var friend models.Friend
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&friend, friendID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "friend"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}
	return &friend, nil
}

// List returns all of the user's friends ordered by name.
func (s *FriendService) List(ctx context.Context, userID uint) ([]models.Friend, error) {
	var friends []models.Friend
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friends, nil
}

// Update changes a friend's contact details.
func (s *FriendService) Update(ctx context.Context, userID, friendID uint, name, email, phone string) (*models.Friend, error) {
	friend, err := s.Get(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ledger.NewValidationError("name", "friend name is required")
	}
	if name != friend.Name {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Friend{}).
			Where("user_id = ? AND name = ? AND id <> ?", userID, name, friendID).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check existing friend: %w", err)
		}
		if count > 0 {
			return nil, ledger.NewValidationError("name", "friend %q already exists", name)
		}
	}

	friend.Name = name
	friend.Email = email
	friend.Phone = phone
	if err := s.db.WithContext(ctx).Save(friend).Error; err != nil {
		return nil, fmt.Errorf("failed to update friend: %w", err)
	}
	return friend, nil
}

// Delete removes a friend. Deletion is blocked while any shared-expense
// participant still references the friend; historical splits are never
// cascade-deleted.
func (s *FriendService) Delete(ctx context.Context, userID, friendID uint) error {
	friend, err := s.Get(ctx, userID, friendID)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&models.Participant{}).
		Where("friend_id = ?", friend.ID).
		Count(&refs).Error; err != nil {
		return fmt.Errorf("failed to count participations: %w", err)
	}
	if refs > 0 {
		return &ReferentialIntegrityError{
			Message: fmt.Sprintf("friend %q is referenced by %d shared expense(s) and cannot be deleted", friend.Name, refs),
		}
	}

	if err := s.db.WithContext(ctx).Delete(friend).Error; err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}
	return nil
}
