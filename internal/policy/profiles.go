package policy

import (
	"context"

	"github.com/diewo77/techfix/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProfileResolver finds the admin profile of a subject. A nil profile with
// a nil error means the subject is not an admin.
type ProfileResolver interface {
	Resolve(ctx context.Context, userID string) (*models.AdminProfile, error)
}

// ProfileCreator inserts admin profiles.
type ProfileCreator interface {
	Create(ctx context.Context, p *models.AdminProfile) error
}

// ProfileStore reads and writes admin_profiles.
type ProfileStore struct {
	DB *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{DB: db}
}

// Resolve returns nil when userID has no profile.
func (s *ProfileStore) Resolve(ctx context.Context, userID string) (*models.AdminProfile, error) {
	var p models.AdminProfile
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "resolve admin profile")
	}
	return &p, nil
}

// Create inserts p. Profiles are written once, at sign-up or by an operator.
func (s *ProfileStore) Create(ctx context.Context, p *models.AdminProfile) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return errors.Wrap(err, "create admin profile")
	}
	return nil
}

// Orphans lists subjects that have no admin profile.
func (s *ProfileStore) Orphans(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.DB.WithContext(ctx).
		Where("id NOT IN (?)", s.DB.Model(&models.AdminProfile{}).Select("user_id")).
		Order("created_at").
		Find(&users).Error
	if err != nil {
		return nil, errors.Wrap(err, "list orphans")
	}
	return users, nil
}
