package repository

import (
	"context"
	"errors"

	"agora/internal/cache"
	"agora/internal/models"

	"gorm.io/gorm"
)

// DebateRepository defines persistence operations for debates and their sides.
type DebateRepository interface {
	Create(ctx context.Context, debate *models.Debate) error
	GetByID(ctx context.Context, id uint) (*models.Debate, error)
	List(ctx context.Context, limit, offset int) ([]models.Debate, error)
	GetSide(ctx context.Context, debateID, sideID uint) (*models.DebateSide, error)
	// ClaimSide sets the claimant with a conditional update keyed on the
	// claimant being null. Exactly one of two racing claims wins.
	ClaimSide(ctx context.Context, debateID, sideID, userID uint) error
	// SaveSide persists a side row as-is. Only the legacy compat claim
	// path uses it; it carries the original read-check-then-write race.
	SaveSide(ctx context.Context, side *models.DebateSide) error
}

type debateRepository struct {
	db *gorm.DB
}

// NewDebateRepository returns a new DebateRepository implementation.
func NewDebateRepository(db *gorm.DB) DebateRepository {
	return &debateRepository{db: db}
}

// Create persists the debate and its sides in a single transaction.
func (r *debateRepository) Create(ctx context.Context, debate *models.Debate) error {
	if err := r.db.WithContext(ctx).Create(debate).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *debateRepository) GetByID(ctx context.Context, id uint) (*models.Debate, error) {
	var debate models.Debate
	err := r.db.WithContext(ctx).
		Preload("Sides", func(db *gorm.DB) *gorm.DB {
			return db.Order("debate_sides.id ASC")
		}).
		Preload("Sides.User").
		First(&debate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Debate", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &debate, nil
}

func (r *debateRepository) List(ctx context.Context, limit, offset int) ([]models.Debate, error) {
	var debates []models.Debate
	err := r.db.WithContext(ctx).
		Preload("Sides", func(db *gorm.DB) *gorm.DB {
			return db.Order("debate_sides.id ASC")
		}).
		Order("debates.id DESC").
		Limit(limit).Offset(offset).
		Find(&debates).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return debates, nil
}

func (r *debateRepository) GetSide(ctx context.Context, debateID, sideID uint) (*models.DebateSide, error) {
	var side models.DebateSide
	err := r.db.WithContext(ctx).
		Where("id = ? AND debate_id = ?", sideID, debateID).
		First(&side).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Debate side", sideID)
		}
		return nil, models.NewInternalError(err)
	}
	return &side, nil
}

func (r *debateRepository) ClaimSide(ctx context.Context, debateID, sideID, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.DebateSide{}).
		Where("id = ? AND debate_id = ? AND user_id IS NULL", sideID, debateID).
		Update("user_id", userID)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish "side taken" from "side missing".
		if _, err := r.GetSide(ctx, debateID, sideID); err != nil {
			return err
		}
		return models.NewConflictError("Side already claimed")
	}
	cache.InvalidateDebate(ctx, debateID)
	return nil
}

func (r *debateRepository) SaveSide(ctx context.Context, side *models.DebateSide) error {
	if err := r.db.WithContext(ctx).Save(side).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateDebate(ctx, side.DebateID)
	return nil
}
