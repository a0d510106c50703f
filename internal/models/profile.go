package models

import (
	"time"
)

// Social holds the optional social network URLs of a profile. It is embedded
// in the profiles table and always rendered as a JSON object ({} when no
// field is set).
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Profile is the one-to-one extension of a User. Experience and Education are
// owned sub-collections: they are only ever read or mutated through profile
// operations, never addressed as standalone resources.
type Profile struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Status         string       `gorm:"not null" json:"status"`
	Skills         []string     `gorm:"serializer:json" json:"skills"`
	Bio            string       `json:"bio,omitempty"`
	GithubUsername string       `json:"github_username,omitempty"`
	Social         Social       `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	Experience     []Experience `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"experience"`
	Education      []Education  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Normalize replaces nil sub-collection slices with empty ones so the JSON
// encoding is [] rather than null.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
}

// Experience is a work history entry. From/To are free-form date strings as
// supplied by the client; Current marks an ongoing position.
type Experience struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProfileID   uint      `gorm:"not null;index" json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Company     string    `gorm:"not null" json:"company"`
	Location    string    `json:"location,omitempty"`
	From        string    `gorm:"not null" json:"from"`
	To          string    `json:"to,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Education is a study history entry.
type Education struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProfileID    uint      `gorm:"not null;index" json:"-"`
	School       string    `gorm:"not null" json:"school"`
	Degree       string    `gorm:"not null" json:"degree"`
	FieldOfStudy string    `gorm:"not null" json:"field_of_study"`
	From         string    `gorm:"not null" json:"from"`
	To           string    `json:"to,omitempty"`
	Current      bool      `json:"current"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
