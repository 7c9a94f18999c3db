package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"agora/internal/models"
	"agora/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// asUser injects an authenticated user without going through JWT parsing.
func asUser(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	}
}

func getPath(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func sidePtr(v uint) *uint { return &v }

func TestCreateDebateHandler(t *testing.T) {
	app := fiber.New()
	debateRepo := new(MockDebateRepository)
	debateRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		d := args.Get(1).(*models.Debate)
		d.ID = 1
		d.Sides[0].ID = 10
		d.Sides[1].ID = 11
	}).Return(nil)
	s := newTestServer(new(MockUserRepository), debateRepo, new(MockArgumentRepository))
	app.Post("/debates", asUser(5), s.CreateDebate)

	resp := postJSON(t, app, "/debates", map[string]string{
		"title":  "Tabs or spaces",
		"side_a": "Tabs",
		"side_b": "Spaces",
	}, nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var debate models.Debate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&debate))
	assert.Equal(t, "Tabs or spaces", debate.Title)
	require.Len(t, debate.Sides, 2)
	assert.Nil(t, debate.Sides[0].UserID)
	assert.Nil(t, debate.Sides[1].UserID)
	debateRepo.AssertExpectations(t)
}

func TestCreateDebateHandler_RejectsBlankTitle(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), new(MockDebateRepository), new(MockArgumentRepository))
	app.Post("/debates", asUser(5), s.CreateDebate)

	resp := postJSON(t, app, "/debates", map[string]string{
		"title":  "   ",
		"side_a": "Tabs",
		"side_b": "Spaces",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJoinSideHandler(t *testing.T) {
	tests := []struct {
		name           string
		mockSetup      func(*MockDebateRepository)
		expectedStatus int
	}{
		{
			name: "First Claim",
			mockSetup: func(repo *MockDebateRepository) {
				repo.On("ClaimSide", mock.Anything, uint(1), uint(10), uint(5)).Return(nil)
				repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Debate{
					ID: 1,
					Sides: []models.DebateSide{
						{ID: 10, UserID: sidePtr(5)},
						{ID: 11},
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Side Already Claimed",
			mockSetup: func(repo *MockDebateRepository) {
				repo.On("ClaimSide", mock.Anything, uint(1), uint(10), uint(5)).
					Return(models.NewConflictError("Side already claimed"))
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Debate Missing",
			mockSetup: func(repo *MockDebateRepository) {
				repo.On("ClaimSide", mock.Anything, uint(1), uint(10), uint(5)).
					Return(models.NewNotFoundError("Debate side", uint(10)))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			debateRepo := new(MockDebateRepository)
			tt.mockSetup(debateRepo)
			s := newTestServer(new(MockUserRepository), debateRepo, new(MockArgumentRepository))
			app.Post("/debates/:id/sides/:sideId/join", asUser(5), s.JoinSide)

			resp := postJSON(t, app, "/debates/1/sides/10/join", nil, nil)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			debateRepo.AssertExpectations(t)
		})
	}
}

func TestCheckDebateStatusHandler(t *testing.T) {
	app := fiber.New()
	debateRepo := new(MockDebateRepository)
	debateRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Debate{
		ID: 1,
		Sides: []models.DebateSide{
			{ID: 10, UserID: sidePtr(5)},
			{ID: 11, UserID: sidePtr(9)},
		},
	}, nil)
	s := newTestServer(new(MockUserRepository), debateRepo, new(MockArgumentRepository))
	app.Get("/debates/:id/status", s.CheckDebateStatus)

	resp := getPath(t, app, "/debates/1/status")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status service.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.Equal(t, "ready", status.Status)
}

func TestCheckDebateStatusHandler_InvalidID(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), new(MockDebateRepository), new(MockArgumentRepository))
	app.Get("/debates/:id/status", s.CheckDebateStatus)

	resp := getPath(t, app, "/debates/abc/status")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDebateHandler(t *testing.T) {
	app := fiber.New()
	debateRepo := new(MockDebateRepository)
	debateRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Debate{
		ID:    1,
		Title: "Tabs or spaces",
		Sides: []models.DebateSide{{ID: 10}, {ID: 11}},
	}, nil)
	argumentRepo := new(MockArgumentRepository)
	argumentRepo.On("ListByDebate", mock.Anything, uint(1)).Return([]models.Argument{
		{ID: 1, Content: "first", DebateID: 1},
	}, nil)
	s := newTestServer(new(MockUserRepository), debateRepo, argumentRepo)
	app.Get("/debates/:id", s.GetDebate)

	resp := getPath(t, app, "/debates/1")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Debate    models.Debate     `json:"debate"`
		Arguments []models.Argument `json:"arguments"`
		Ready     bool              `json:"ready"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Tabs or spaces", out.Debate.Title)
	assert.Len(t, out.Arguments, 1)
	assert.False(t, out.Ready)
}

func TestGetDebateHandler_NotFound(t *testing.T) {
	app := fiber.New()
	debateRepo := new(MockDebateRepository)
	debateRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("Debate", uint(99)))
	s := newTestServer(new(MockUserRepository), debateRepo, new(MockArgumentRepository))
	app.Get("/debates/:id", s.GetDebate)

	resp := getPath(t, app, "/debates/99")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostArgumentHandler(t *testing.T) {
	app := fiber.New()
	debateRepo := new(MockDebateRepository)
	debateRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Debate{ID: 1}, nil)
	argumentRepo := new(MockArgumentRepository)
	argumentRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Argument).ID = 3
	}).Return(nil)
	s := newTestServer(new(MockUserRepository), debateRepo, argumentRepo)
	app.Post("/debates/:id/arguments", asUser(5), s.PostArgument)

	resp := postJSON(t, app, "/debates/1/arguments", map[string]string{
		"content": "Spaces align everywhere.",
	}, nil)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var arg models.Argument
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&arg))
	assert.Equal(t, "Spaces align everywhere.", arg.Content)
	assert.Equal(t, uint(5), arg.UserID)
}

func TestPostArgumentHandler_RejectsEmpty(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), new(MockDebateRepository), new(MockArgumentRepository))
	app.Post("/debates/:id/arguments", asUser(5), s.PostArgument)

	resp := postJSON(t, app, "/debates/1/arguments", map[string]string{"content": "  "}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListDebatesHandler(t *testing.T) {
	app := fiber.New()
	debateRepo := new(MockDebateRepository)
	debateRepo.On("List", mock.Anything, 20, 0).Return([]models.Debate{
		{ID: 2, Title: "Newer"},
		{ID: 1, Title: "Older"},
	}, nil)
	s := newTestServer(new(MockUserRepository), debateRepo, new(MockArgumentRepository))
	app.Get("/debates", s.ListDebates)

	resp := getPath(t, app, "/debates")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Debates []models.Debate `json:"debates"`
		Page    int             `json:"page"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Debates, 2)
	assert.Equal(t, "Newer", out.Debates[0].Title)
	assert.Equal(t, 1, out.Page)
}
