package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gallery struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	ImagePath   string     `json:"image_path"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (g *Gallery) Prepare() {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.Title = strings.TrimSpace(g.Title)
}
