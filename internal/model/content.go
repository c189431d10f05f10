package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Blog struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Slug       string    `gorm:"index;size:255" json:"slug"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Excerpt    *string   `gorm:"type:text" json:"excerpt"`
	CoverImage *string   `gorm:"size:1024" json:"coverImage"`
	Published  bool      `json:"published"`
	AuthorID   string    `gorm:"index;size:36" json:"authorId"`
	Author     *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (b *Blog) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type Project struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Technologies []string  `gorm:"serializer:json" json:"technologies"`
	GithubURL    *string   `gorm:"size:1024" json:"githubUrl"`
	LiveURL      *string   `gorm:"size:1024" json:"liveUrl"`
	ImageURL     *string   `gorm:"size:1024" json:"imageUrl"`
	ImageURLs    []string  `gorm:"serializer:json" json:"imageUrls"`
	Featured     bool      `json:"featured"`
	AuthorID     string    `gorm:"index;size:36" json:"authorId"`
	Author       *User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Skill struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Category  *string   `gorm:"size:255" json:"category"`
	Level     *int      `json:"level"`
	IconURL   *string   `gorm:"size:1024" json:"iconUrl"`
	UserID    string    `gorm:"index;size:36" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Skill) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// BlogRequest is the payload for creating or partially updating a blog.
type BlogRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	CoverImage *string `json:"coverImage,omitempty"`
	Published  *bool   `json:"published,omitempty"`
}

// ProjectRequest is the payload for creating or partially updating a project.
type ProjectRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	GithubURL    *string  `json:"githubUrl,omitempty"`
	LiveURL      *string  `json:"liveUrl,omitempty"`
	ImageURL     *string  `json:"imageUrl,omitempty"`
	ImageURLs    []string `json:"imageUrls,omitempty"`
	Featured     *bool    `json:"featured,omitempty"`
}

// SkillRequest is the payload for creating or partially updating a skill.
type SkillRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Level    *int    `json:"level,omitempty"`
	IconURL  *string `json:"iconUrl,omitempty"`
}

type BlogResponse struct {
	Blog
	Author *Author `json:"author,omitempty"`
}

type ProjectResponse struct {
	Project
	Author *Author `json:"author,omitempty"`
}

type SkillResponse struct {
	Skill
	User *Author `json:"user,omitempty"`
}

// AuthorOf projects a loaded user association, returning nil when it was not loaded.
func AuthorOf(u *User) *Author {
	if u == nil {
		return nil
	}
	return &Author{ID: u.ID, Name: u.Name, Email: u.Email}
}
