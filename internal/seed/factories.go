// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"agora/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions tunes factory behavior.
type SeedOptions struct {
	// SkipBcrypt stores a plaintext marker password instead of hashing.
	// Much faster for large seeds; dev only.
	SkipBcrypt bool
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// pastTime returns a timestamp spread over the configured window.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 30
	}
	daysBack := f.rnd.Intn(maxDays)
	hoursBack := f.rnd.Intn(24)
	minsBack := f.rnd.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Bio:       gofakeit.Sentence(8),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// debateTopics are seed title/side triples. Generated sentences read
// poorly as debate motions, so use a curated pool.
var debateTopics = [][3]string{
	{"Remote work should be the default", "Fully remote", "Office first"},
	{"Tabs or spaces", "Tabs", "Spaces"},
	{"Monoliths age better than microservices", "Monolith", "Microservices"},
	{"Cities should ban private cars downtown", "Ban them", "Keep them"},
	{"Homework should be abolished", "Abolish", "Keep"},
	{"Cats make better pets than dogs", "Cats", "Dogs"},
	{"Social media does more harm than good", "More harm", "More good"},
	{"The four-day work week works", "Four days", "Five days"},
}

// CreateDebate constructs and persists a debate with its two sides.
func (f *Factory) CreateDebate(creator *models.User, overrides ...func(*models.Debate)) (*models.Debate, error) {
	topic := debateTopics[f.rnd.Intn(len(debateTopics))]

	debate := &models.Debate{
		Title: topic[0],
		Sides: []models.DebateSide{
			{Label: topic[1]},
			{Label: topic[2]},
		},
	}
	if creator != nil {
		debate.CreatedByID = &creator.ID
	}
	debate.CreatedAt = f.pastTime()

	for _, override := range overrides {
		override(debate)
	}

	if err := f.db.Create(debate).Error; err != nil {
		return nil, fmt.Errorf("create debate: %w", err)
	}
	return debate, nil
}

// ClaimSide assigns a user to a side directly, bypassing the service layer.
func (f *Factory) ClaimSide(side *models.DebateSide, user *models.User) error {
	side.UserID = &user.ID
	return f.db.Model(side).Update("user_id", user.ID).Error
}

// CreateArgument persists a generated argument for a user on a debate.
func (f *Factory) CreateArgument(debate *models.Debate, user *models.User) (*models.Argument, error) {
	arg := &models.Argument{
		Content:  gofakeit.Paragraph(1, 2, 8, " "),
		UserID:   user.ID,
		DebateID: debate.ID,
	}
	if len(arg.Content) > 1000 {
		arg.Content = arg.Content[:1000]
	}
	if err := f.db.Create(arg).Error; err != nil {
		return nil, fmt.Errorf("create argument: %w", err)
	}
	return arg, nil
}
