package model

import (
	"time"

	"Hey_Blog/internal/pkg"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64 `gorm:"primaryKey;index:idx_author_time,priority:2,sort:desc"`
	AuthorID  uint64 `gorm:"not null;index:idx_author_time,priority:1"`
	Body      string `gorm:"type:text;not null"`
	BodyHTML  string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    *User     `gorm:"foreignKey:AuthorID"`
	Comments  []Comment `gorm:"foreignKey:PostID"`
}

func (Post) TableName() string { return "posts" }

// SetBody replaces the raw body and recomputes the sanitized rendering in the
// same step, so the pair can never diverge.
func (p *Post) SetBody(raw string) {
	p.Body = raw
	p.BodyHTML = pkg.RenderPost(raw)
}

// BeforeSave re-derives BodyHTML from the current raw body regardless of how
// the struct was populated.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.BodyHTML = pkg.RenderPost(p.Body)
	return nil
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	AuthorID  uint64 `gorm:"not null;index"`
	PostID    uint64 `gorm:"not null;index"`
	Body      string `gorm:"type:text;not null"`
	BodyHTML  string `gorm:"type:text;not null"`
	Disabled  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    *User `gorm:"foreignKey:AuthorID"`
}

func (Comment) TableName() string { return "comments" }

// SetBody mirrors Post.SetBody with the narrower comment allow-list.
func (c *Comment) SetBody(raw string) {
	c.Body = raw
	c.BodyHTML = pkg.RenderComment(raw)
}

func (c *Comment) BeforeSave(tx *gorm.DB) error {
	c.BodyHTML = pkg.RenderComment(c.Body)
	return nil
}
