package service

import (
	"context"

	"agora/internal/models"
)

// debateRepoStub is a stub for repository.DebateRepository.
type debateRepoStub struct {
	createFn    func(context.Context, *models.Debate) error
	getByIDFn   func(context.Context, uint) (*models.Debate, error)
	listFn      func(context.Context, int, int) ([]models.Debate, error)
	getSideFn   func(context.Context, uint, uint) (*models.DebateSide, error)
	claimSideFn func(context.Context, uint, uint, uint) error
	saveSideFn  func(context.Context, *models.DebateSide) error
}

func (s *debateRepoStub) Create(ctx context.Context, debate *models.Debate) error {
	return s.createFn(ctx, debate)
}
func (s *debateRepoStub) GetByID(ctx context.Context, id uint) (*models.Debate, error) {
	return s.getByIDFn(ctx, id)
}
func (s *debateRepoStub) List(ctx context.Context, limit, offset int) ([]models.Debate, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *debateRepoStub) GetSide(ctx context.Context, debateID, sideID uint) (*models.DebateSide, error) {
	return s.getSideFn(ctx, debateID, sideID)
}
func (s *debateRepoStub) ClaimSide(ctx context.Context, debateID, sideID, userID uint) error {
	return s.claimSideFn(ctx, debateID, sideID, userID)
}
func (s *debateRepoStub) SaveSide(ctx context.Context, side *models.DebateSide) error {
	return s.saveSideFn(ctx, side)
}

func noopDebateRepo() *debateRepoStub {
	return &debateRepoStub{
		createFn:  func(_ context.Context, _ *models.Debate) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Debate, error) { return &models.Debate{}, nil },
		listFn:    func(_ context.Context, _, _ int) ([]models.Debate, error) { return nil, nil },
		getSideFn: func(_ context.Context, _, _ uint) (*models.DebateSide, error) {
			return &models.DebateSide{}, nil
		},
		claimSideFn: func(_ context.Context, _, _, _ uint) error { return nil },
		saveSideFn:  func(_ context.Context, _ *models.DebateSide) error { return nil },
	}
}

// argumentRepoStub is a stub for repository.ArgumentRepository.
type argumentRepoStub struct {
	createFn       func(context.Context, *models.Argument) error
	listByDebateFn func(context.Context, uint) ([]models.Argument, error)
}

func (s *argumentRepoStub) Create(ctx context.Context, argument *models.Argument) error {
	return s.createFn(ctx, argument)
}
func (s *argumentRepoStub) ListByDebate(ctx context.Context, debateID uint) ([]models.Argument, error) {
	return s.listByDebateFn(ctx, debateID)
}

func noopArgumentRepo() *argumentRepoStub {
	return &argumentRepoStub{
		createFn:       func(_ context.Context, _ *models.Argument) error { return nil },
		listByDebateFn: func(_ context.Context, _ uint) ([]models.Argument, error) { return nil, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// publisherStub records ready events for assertions.
type publisherStub struct {
	published []uint
	err       error
}

func (p *publisherStub) PublishReady(_ context.Context, debateID uint) error {
	p.published = append(p.published, debateID)
	return p.err
}
