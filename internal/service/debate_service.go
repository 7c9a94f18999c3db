// Package service implements the application's business logic on top of the repositories.
package service

import (
	"context"
	"log/slog"
	"strings"

	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/repository"
)

// ReadyPublisher delivers a ready event to a debate's waiting room.
// Delivery is best-effort; publish failures never fail the join.
type ReadyPublisher interface {
	PublishReady(ctx context.Context, debateID uint) error
}

// DebateService manages the debate lifecycle: creation, side claims and readiness.
type DebateService struct {
	debateRepo repository.DebateRepository
	publisher  ReadyPublisher
	// claimCompat re-enables the legacy read-check-then-write claim path.
	claimCompat bool
}

// CreateDebateInput carries the fields for creating a debate with its two sides.
type CreateDebateInput struct {
	Title       string
	SideA       string
	SideB       string
	CreatedByID uint
}

// StatusResponse is the polling fallback payload for waiting-room clients.
type StatusResponse struct {
	Status  string `json:"status"` // "ready" | "waiting"
	Message string `json:"message"`
}

// NewDebateService returns a new DebateService.
func NewDebateService(debateRepo repository.DebateRepository, publisher ReadyPublisher, claimCompat bool) *DebateService {
	return &DebateService{
		debateRepo:  debateRepo,
		publisher:   publisher,
		claimCompat: claimCompat,
	}
}

// CreateDebate persists a debate and exactly two unclaimed sides in one
// transaction. Titles are not unique.
func (s *DebateService) CreateDebate(ctx context.Context, in CreateDebateInput) (*models.Debate, error) {
	title := strings.TrimSpace(in.Title)
	sideA := strings.TrimSpace(in.SideA)
	sideB := strings.TrimSpace(in.SideB)

	if title == "" {
		return nil, models.NewValidationError("Title cannot be empty")
	}
	if sideA == "" || sideB == "" {
		return nil, models.NewValidationError("Both side labels are required")
	}
	const maxTitleLen = 100
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}

	var createdBy *uint
	if in.CreatedByID != 0 {
		createdBy = &in.CreatedByID
	}

	debate := &models.Debate{
		Title:       title,
		CreatedByID: createdBy,
		Sides: []models.DebateSide{
			{Label: sideA},
			{Label: sideB},
		},
	}

	if err := s.debateRepo.Create(ctx, debate); err != nil {
		return nil, err
	}
	return debate, nil
}

// GetDebate returns the debate with its sides.
func (s *DebateService) GetDebate(ctx context.Context, debateID uint) (*models.Debate, error) {
	return s.debateRepo.GetByID(ctx, debateID)
}

// ListDebates returns debates with their sides, newest first.
func (s *DebateService) ListDebates(ctx context.Context, limit, offset int) ([]models.Debate, error) {
	return s.debateRepo.List(ctx, limit, offset)
}

// JoinSide claims a side for the user. The first claim wins; later claims
// fail with a conflict. When the claim completes the pair, exactly one
// ready event is published to the debate's room.
func (s *DebateService) JoinSide(ctx context.Context, debateID, sideID, userID uint) error {
	if s.claimCompat {
		if err := s.joinSideLegacy(ctx, debateID, sideID, userID); err != nil {
			return err
		}
	} else {
		if err := s.debateRepo.ClaimSide(ctx, debateID, sideID, userID); err != nil {
			return err
		}
	}

	// Sides are never unclaimed, so readiness after a successful claim
	// means this claim completed the pair.
	ready, err := s.GetReadiness(ctx, debateID)
	if err != nil {
		return err
	}
	if ready && s.publisher != nil {
		if perr := s.publisher.PublishReady(ctx, debateID); perr != nil {
			middleware.Logger.WarnContext(ctx, "failed to publish ready event",
				slog.Any("debate_id", debateID),
				slog.String("error", perr.Error()),
			)
		}
	}
	return nil
}

// joinSideLegacy reproduces the original non-atomic claim: read the side,
// check the claimant, write it back. Two concurrent claims on the same
// unclaimed side can both pass the check.
func (s *DebateService) joinSideLegacy(ctx context.Context, debateID, sideID, userID uint) error {
	side, err := s.debateRepo.GetSide(ctx, debateID, sideID)
	if err != nil {
		return err
	}
	if side.UserID != nil {
		return models.NewConflictError("Side already claimed")
	}
	side.UserID = &userID
	return s.debateRepo.SaveSide(ctx, side)
}

// GetReadiness reports whether every side of the debate has a claimant.
func (s *DebateService) GetReadiness(ctx context.Context, debateID uint) (bool, error) {
	debate, err := s.debateRepo.GetByID(ctx, debateID)
	if err != nil {
		return false, err
	}
	return debate.Ready(), nil
}

// CheckStatus is the synchronous polling fallback for waiting-room
// clients. It is a thin wrapper over GetReadiness so the two can never
// disagree.
func (s *DebateService) CheckStatus(ctx context.Context, debateID uint) (*StatusResponse, error) {
	ready, err := s.GetReadiness(ctx, debateID)
	if err != nil {
		return nil, err
	}
	if ready {
		return &StatusResponse{Status: "ready", Message: "Both sides have joined. The debate is ready."}, nil
	}
	return &StatusResponse{Status: "waiting", Message: "Waiting for an opponent to join."}, nil
}
