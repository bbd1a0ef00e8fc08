package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quickpay/internal/domain/payment"
	"quickpay/internal/models"
)

// ProfileRepository is the postgres account directory.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Search matches pattern case-insensitively against email, UPI handle and
// wallet id, oldest profiles first.
func (r *ProfileRepository) Search(ctx context.Context, pattern, excludeUserID string, limit int) ([]payment.RecipientCandidate, error) {
	q := r.db.WithContext(ctx).
		Where("(email ILIKE ? OR upi_id ILIKE ? OR wallet_id ILIKE ?)", pattern, pattern, pattern)
	if excludeUserID != "" {
		q = q.Where("user_id <> ?", excludeUserID)
	}

	var profiles []models.Profile
	if err := q.Order("id ASC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}

	candidates := make([]payment.RecipientCandidate, 0, len(profiles))
	for i := range profiles {
		candidates = append(candidates, payment.CandidateFromProfile(&profiles[i]))
	}
	return candidates, nil
}

// Lookup finds the profile whose field equals value. Emails compare
// case-insensitively.
func (r *ProfileRepository) Lookup(ctx context.Context, field payment.AddressField, value string) (*payment.RecipientCandidate, error) {
	p, err := findByField(r.db.WithContext(ctx), field, value)
	if err != nil || p == nil {
		return nil, err
	}
	c := payment.CandidateFromProfile(p)
	return &c, nil
}

// findByField returns nil, nil when no profile matches.
func findByField(q *gorm.DB, field payment.AddressField, value string) (*models.Profile, error) {
	if value == "" {
		return nil, nil
	}

	switch field {
	case payment.FieldWalletID, payment.FieldUPIID, payment.FieldBitcoinAddress:
		q = q.Where(string(field)+" = ?", value)
	case payment.FieldEmail:
		q = q.Where("LOWER(email) = LOWER(?)", value)
	case payment.FieldUserID:
		if _, err := uuid.Parse(value); err != nil {
			return nil, nil
		}
		q = q.Where("user_id = ?", value)
	default:
		return nil, ErrUnsupportedLookup
	}

	var p models.Profile
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrProfileNotFound
	}

	var p models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a profile.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}
