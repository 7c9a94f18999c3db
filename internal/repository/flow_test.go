package repository

import (
	"context"
	"testing"

	"agora/internal/database"
	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

// Walks the whole claim flow against a real database: create, claim each
// side once, observe readiness flip, and fail a repeat claim.
func TestDebateClaimFlow(t *testing.T) {
	db := setupTestDB(t)
	debates := NewDebateRepository(db)
	arguments := NewArgumentRepository(db)
	ctx := context.Background()

	alice := &models.User{Username: "alice", Password: "x"}
	bob := &models.User{Username: "bob", Password: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	debate := &models.Debate{
		Title: "Cats make better pets than dogs",
		Sides: []models.DebateSide{{Label: "Cats"}, {Label: "Dogs"}},
	}
	require.NoError(t, debates.Create(ctx, debate))
	require.NotZero(t, debate.ID)
	require.Len(t, debate.Sides, 2)

	t.Run("FreshDebateIsNotReady", func(t *testing.T) {
		got, err := debates.GetByID(ctx, debate.ID)
		require.NoError(t, err)
		assert.False(t, got.Ready())
		assert.Nil(t, got.Sides[0].UserID)
		assert.Nil(t, got.Sides[1].UserID)
	})

	t.Run("FirstClaim", func(t *testing.T) {
		require.NoError(t, debates.ClaimSide(ctx, debate.ID, debate.Sides[0].ID, alice.ID))

		got, err := debates.GetByID(ctx, debate.ID)
		require.NoError(t, err)
		assert.False(t, got.Ready())
		require.NotNil(t, got.Sides[0].UserID)
		assert.Equal(t, alice.ID, *got.Sides[0].UserID)
	})

	t.Run("RepeatClaimConflicts", func(t *testing.T) {
		err := debates.ClaimSide(ctx, debate.ID, debate.Sides[0].ID, bob.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "CONFLICT", appErr.Code)

		// The original claimant survives
		got, gerr := debates.GetByID(ctx, debate.ID)
		require.NoError(t, gerr)
		assert.Equal(t, alice.ID, *got.Sides[0].UserID)
	})

	t.Run("SecondClaimMakesReady", func(t *testing.T) {
		require.NoError(t, debates.ClaimSide(ctx, debate.ID, debate.Sides[1].ID, bob.ID))

		got, err := debates.GetByID(ctx, debate.ID)
		require.NoError(t, err)
		assert.True(t, got.Ready())
	})

	t.Run("MissingSideIsNotFound", func(t *testing.T) {
		err := debates.ClaimSide(ctx, debate.ID, 9999, alice.ID)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("ArgumentsAppendInOrder", func(t *testing.T) {
		for _, content := range []string{"one", "two", "three"} {
			require.NoError(t, arguments.Create(ctx, &models.Argument{
				Content:  content,
				UserID:   alice.ID,
				DebateID: debate.ID,
			}))
		}

		list, err := arguments.ListByDebate(ctx, debate.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "one", list[0].Content)
		assert.Equal(t, "two", list[1].Content)
		assert.Equal(t, "three", list[2].Content)
	})
}

func TestDebateList_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	debates := NewDebateRepository(db)
	ctx := context.Background()

	for _, title := range []string{"older", "newer"} {
		require.NoError(t, debates.Create(ctx, &models.Debate{
			Title: title,
			Sides: []models.DebateSide{{Label: "A"}, {Label: "B"}},
		}))
	}

	list, err := debates.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Len(t, list[0].Sides, 2)
}
