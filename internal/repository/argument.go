package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// ArgumentRepository defines persistence operations for arguments.
// Arguments are append-only; there is no update or delete.
type ArgumentRepository interface {
	Create(ctx context.Context, argument *models.Argument) error
	ListByDebate(ctx context.Context, debateID uint) ([]models.Argument, error)
}

type argumentRepository struct {
	db *gorm.DB
}

// NewArgumentRepository returns a new ArgumentRepository implementation.
func NewArgumentRepository(db *gorm.DB) ArgumentRepository {
	return &argumentRepository{db: db}
}

func (r *argumentRepository) Create(ctx context.Context, argument *models.Argument) error {
	if err := r.db.WithContext(ctx).Create(argument).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByDebate returns the debate's arguments in insertion order.
func (r *argumentRepository) ListByDebate(ctx context.Context, debateID uint) ([]models.Argument, error) {
	var arguments []models.Argument
	err := r.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Preload("User").
		Order("arguments.id ASC").
		Find(&arguments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return arguments, nil
}
