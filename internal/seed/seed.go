package seed

import (
	"fmt"
	"log"

	"agora/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumDebates  int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seeder populates the database with demo users, debates and arguments.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{
		db:      db,
		factory: NewFactory(db, SeedOptions{SkipBcrypt: opts.SkipBcrypt}),
	}
}

// ClearAll truncates all seeded tables. Order matters for FKs.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []string{"arguments", "debate_sides", "debate_category", "debates", "categories", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds users and debates. Roughly a third of debates end up fully
// claimed with a few arguments each, a third half-claimed, and a third
// open, so every waiting-room state is represented.
func (s *Seeder) Run(opts Options) error {
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) < 2 {
		return fmt.Errorf("need at least 2 users to seed debates, got %d", len(users))
	}

	for i := 0; i < opts.NumDebates; i++ {
		creator := users[s.factory.rnd.Intn(len(users))]
		debate, err := s.factory.CreateDebate(creator)
		if err != nil {
			return err
		}

		switch i % 3 {
		case 0:
			// fully claimed, with arguments
			a, b := s.pickPair(users)
			if err := s.factory.ClaimSide(&debate.Sides[0], a); err != nil {
				return err
			}
			if err := s.factory.ClaimSide(&debate.Sides[1], b); err != nil {
				return err
			}
			for j := 0; j < 2+s.factory.rnd.Intn(4); j++ {
				author := a
				if j%2 == 1 {
					author = b
				}
				if _, err := s.factory.CreateArgument(debate, author); err != nil {
					return err
				}
			}
		case 1:
			// one side claimed, waiting for an opponent
			a := users[s.factory.rnd.Intn(len(users))]
			if err := s.factory.ClaimSide(&debate.Sides[0], a); err != nil {
				return err
			}
		}
	}
	log.Printf("Created %d debates", opts.NumDebates)

	return nil
}

// pickPair returns two distinct users.
func (s *Seeder) pickPair(users []*models.User) (*models.User, *models.User) {
	i := s.factory.rnd.Intn(len(users))
	j := s.factory.rnd.Intn(len(users) - 1)
	if j >= i {
		j++
	}
	return users[i], users[j]
}
