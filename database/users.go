package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chxlky/trello-gchat-notify/internal/models"
)

// UserStore persists accounts and their webhook access lists.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Preload("Destinations").First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("Destinations").
		First(&u, "email = ?", NormalizeEmail(email)).Error
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := s.db.WithContext(ctx).Preload("Destinations").Order("created_at, email").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleMember
	}
	u.Email = NormalizeEmail(u.Email)

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// SetAccessibleDestinations replaces the user's access list with ids. Unknown
// destination ids reject the whole update.
func (s *UserStore) SetAccessibleDestinations(ctx context.Context, userID string, ids []string) (*models.User, error) {
	unique := dedupe(ids)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			return translate(err)
		}

		dests := []models.Destination{}
		if len(unique) > 0 {
			if err := tx.Where("id IN ?", unique).Find(&dests).Error; err != nil {
				return fmt.Errorf("load webhooks: %w", err)
			}
			if len(dests) != len(unique) {
				return models.ErrInvalidAccess
			}
		}

		assoc := tx.Model(&u).Association("Destinations")
		if len(dests) == 0 {
			return assoc.Clear()
		}
		return assoc.Replace(dests)
	})
	if err != nil {
		return nil, err
	}

	return s.FindUser(ctx, userID)
}

// CountAdmins reports how many admin accounts exist.
func (s *UserStore) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&n).Error
	return n, err
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
