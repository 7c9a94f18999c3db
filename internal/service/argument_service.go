package service

import (
	"context"
	"strings"

	"agora/internal/models"
	"agora/internal/repository"
)

// ArgumentService manages the append-only argument list of a debate.
type ArgumentService struct {
	argumentRepo repository.ArgumentRepository
	debateRepo   repository.DebateRepository
}

// NewArgumentService returns a new ArgumentService.
func NewArgumentService(argumentRepo repository.ArgumentRepository, debateRepo repository.DebateRepository) *ArgumentService {
	return &ArgumentService{
		argumentRepo: argumentRepo,
		debateRepo:   debateRepo,
	}
}

// PostArgument appends an argument to the debate, attributed to the user.
func (s *ArgumentService) PostArgument(ctx context.Context, debateID, userID uint, content string) (*models.Argument, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Argument cannot be empty")
	}
	const maxContentLen = 1000
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Argument too long (max 1000 characters)")
	}

	if _, err := s.debateRepo.GetByID(ctx, debateID); err != nil {
		return nil, err
	}

	argument := &models.Argument{
		Content:  content,
		UserID:   userID,
		DebateID: debateID,
	}
	if err := s.argumentRepo.Create(ctx, argument); err != nil {
		return nil, err
	}
	return argument, nil
}

// ListArguments returns the debate's arguments in insertion order.
func (s *ArgumentService) ListArguments(ctx context.Context, debateID uint) ([]models.Argument, error) {
	if _, err := s.debateRepo.GetByID(ctx, debateID); err != nil {
		return nil, err
	}
	return s.argumentRepo.ListByDebate(ctx, debateID)
}
