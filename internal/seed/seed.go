package seed

import (
	"log"
	"math/rand"
	"time"

	"devconnector/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with a connected demo network: users with
// profiles, posts, and a mesh of likes and comments across authors.
type Seeder struct {
	db *gorm.DB
	f  *Factory
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db: db,
		f:  NewFactory(db),
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll deletes all seeded data, children before parents.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// Run seeds the database according to opts. Roughly 80% of users get a
// profile; posts are spread across all users and each post collects a few
// likes and comments from other users.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)

		if s.r.Intn(10) < 8 {
			if _, err := s.f.CreateProfile(user); err != nil {
				return err
			}
		}
	}
	log.Printf("Created %d users", len(users))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[s.r.Intn(len(users))]
		post, err := s.f.CreatePost(author)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}
	log.Printf("Created %d posts", len(posts))

	var likes, comments int
	for _, post := range posts {
		for i := 0; i < s.r.Intn(5); i++ {
			if err := s.f.LikePost(post, users[s.r.Intn(len(users))]); err != nil {
				return err
			}
			likes++
		}
		for i := 0; i < s.r.Intn(3); i++ {
			if err := s.f.CommentOnPost(post, users[s.r.Intn(len(users))]); err != nil {
				return err
			}
			comments++
		}
	}
	log.Printf("Created %d likes and %d comments", likes, comments)

	return nil
}
