package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// DestinationStore persists Google Chat webhooks.
type DestinationStore struct {
	db *gorm.DB
}

func NewDestinationStore(db *gorm.DB) *DestinationStore {
	return &DestinationStore{db: db}
}

func (s *DestinationStore) FindDestination(ctx context.Context, id string) (*models.Destination, error) {
	var d models.Destination
	if err := s.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (s *DestinationStore) List(ctx context.Context) ([]models.Destination, error) {
	var out []models.Destination
	if err := s.db.WithContext(ctx).Order("created_at, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	return out, nil
}

// ListAccessibleTo returns every destination for admins and the granted ones
// for members.
func (s *DestinationStore) ListAccessibleTo(ctx context.Context, user *models.User) ([]models.Destination, error) {
	if user.IsAdmin() {
		return s.List(ctx)
	}

	ids := user.AccessibleDestinationIDs()
	out := []models.Destination{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list webhooks for user %s: %w", user.ID, err)
	}
	return out, nil
}

func (s *DestinationStore) Create(ctx context.Context, d *models.Destination) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("create webhook: %w", err)
	}
	return nil
}

// Update overwrites name, URL and description of the destination with d.ID.
func (s *DestinationStore) Update(ctx context.Context, d *models.Destination) error {
	res := s.db.WithContext(ctx).Model(&models.Destination{}).Where("id = ?", d.ID).Updates(map[string]any{
		"name":        d.Name,
		"url":         d.URL,
		"description": d.Description,
	})
	if res.Error != nil {
		return fmt.Errorf("update webhook %s: %w", d.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}

	updated, err := s.FindDestination(ctx, d.ID)
	if err != nil {
		return err
	}
	*d = *updated
	return nil
}

// Delete removes the destination and revokes it from every user.
func (s *DestinationStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM user_destinations WHERE destination_id = ?", id).Error; err != nil {
			return fmt.Errorf("revoke webhook %s: %w", id, err)
		}
		res := tx.Delete(&models.Destination{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete webhook %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}
