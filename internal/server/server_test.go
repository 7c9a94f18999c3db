package server

import (
	"context"

	"agora/internal/config"
	"agora/internal/models"
	"agora/internal/notifications"
	"agora/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockDebateRepository is a mock of the DebateRepository interface
type MockDebateRepository struct {
	mock.Mock
}

func (m *MockDebateRepository) Create(ctx context.Context, debate *models.Debate) error {
	args := m.Called(ctx, debate)
	return args.Error(0)
}

func (m *MockDebateRepository) GetByID(ctx context.Context, id uint) (*models.Debate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Debate), args.Error(1)
}

func (m *MockDebateRepository) List(ctx context.Context, limit, offset int) ([]models.Debate, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Debate), args.Error(1)
}

func (m *MockDebateRepository) GetSide(ctx context.Context, debateID, sideID uint) (*models.DebateSide, error) {
	args := m.Called(ctx, debateID, sideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DebateSide), args.Error(1)
}

func (m *MockDebateRepository) ClaimSide(ctx context.Context, debateID, sideID, userID uint) error {
	args := m.Called(ctx, debateID, sideID, userID)
	return args.Error(0)
}

func (m *MockDebateRepository) SaveSide(ctx context.Context, side *models.DebateSide) error {
	args := m.Called(ctx, side)
	return args.Error(0)
}

// MockArgumentRepository is a mock of the ArgumentRepository interface
type MockArgumentRepository struct {
	mock.Mock
}

func (m *MockArgumentRepository) Create(ctx context.Context, argument *models.Argument) error {
	args := m.Called(ctx, argument)
	return args.Error(0)
}

func (m *MockArgumentRepository) ListByDebate(ctx context.Context, debateID uint) ([]models.Argument, error) {
	args := m.Called(ctx, debateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Argument), args.Error(1)
}

// newTestServer wires a Server over the provided mocks with no DB or Redis.
func newTestServer(userRepo *MockUserRepository, debateRepo *MockDebateRepository, argumentRepo *MockArgumentRepository) *Server {
	s := &Server{
		config:       &config.Config{JWTSecret: "test_secret", Port: "0"},
		userRepo:     userRepo,
		debateRepo:   debateRepo,
		argumentRepo: argumentRepo,
		hub:          notifications.NewDebateHub(),
	}
	s.debateService = service.NewDebateService(debateRepo, s.hub, false)
	s.argumentService = service.NewArgumentService(argumentRepo, debateRepo)
	s.userService = service.NewUserService(userRepo)
	return s
}
