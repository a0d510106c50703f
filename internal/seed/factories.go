// Package seed provides helpers to create demo data for development and
// testing. Not for production use.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnector/internal/gravatar"
	"devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	statuses = []string{
		"Developer", "Junior Developer", "Senior Developer",
		"Manager", "Student or Learning", "Instructor or Teacher", "Intern",
	}

	skillPool = []string{
		"Go", "JavaScript", "TypeScript", "Python", "Rust", "HTML", "CSS",
		"React", "Node.js", "PostgreSQL", "Redis", "Docker", "Kubernetes",
		"GraphQL", "AWS", "Terraform", "Kafka", "gRPC",
	}

	degrees = []string{
		"B.Sc. Computer Science", "B.Eng. Software Engineering",
		"M.Sc. Computer Science", "Bootcamp Certificate", "Self-taught",
	}

	fields = []string{
		"Computer Science", "Software Engineering", "Information Systems",
		"Mathematics", "Electrical Engineering",
	}
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share the
// password "password123" so any of them can be used to log in locally.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := gofakeit.Email()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashed),
		Avatar:   gravatar.URL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a profile for the given user with a handful of
// skills, one or two experience entries and one education entry.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	skills := f.pickSkills(2 + f.r.Intn(4))

	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         statuses[f.r.Intn(len(statuses))],
		Skills:         skills,
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.Social{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", strings.ToLower(gofakeit.Username())),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
		},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}

	for i := 0; i < 1+f.r.Intn(2); i++ {
		exp := &models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        f.pastDate(1 + i),
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if !exp.Current {
			exp.To = f.pastDate(i)
		}
		if err := f.db.Create(exp).Error; err != nil {
			return nil, err
		}
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.LastName()),
		Degree:       degrees[f.r.Intn(len(degrees))],
		FieldOfStudy: fields[f.r.Intn(len(fields))],
		From:         f.pastDate(6),
		To:           f.pastDate(3),
		Description:  gofakeit.Sentence(8),
	}
	if err := f.db.Create(edu).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// CreatePost persists a post authored by the given user, with the author's
// name and avatar snapshotted and a created_at spread over the past 90 days.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 2, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(f.r.Intn(90*24)) * time.Hour).
		Add(-time.Duration(f.r.Intn(60)) * time.Minute)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// LikePost records a like from the given user, ignoring duplicates.
func (f *Factory) LikePost(post *models.Post, user *models.User) error {
	var count int64
	if err := f.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", post.ID, user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return f.db.Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error
}

// CommentOnPost records a comment from the given user.
func (f *Factory) CommentOnPost(post *models.Post, user *models.User) error {
	return f.db.Create(&models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   gofakeit.Sentence(8 + f.r.Intn(10)),
		Name:   user.Name,
		Avatar: user.Avatar,
	}).Error
}

func (f *Factory) pickSkills(n int) []string {
	perm := f.r.Perm(len(skillPool))
	if n > len(perm) {
		n = len(perm)
	}
	skills := make([]string, 0, n)
	for _, idx := range perm[:n] {
		skills = append(skills, skillPool[idx])
	}
	return skills
}

func (f *Factory) pastDate(yearsBack int) string {
	t := time.Now().AddDate(-yearsBack, -f.r.Intn(12), 0)
	return t.Format("2006-01-02")
}
