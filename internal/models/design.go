package models

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DesignStatusPending  = "pending"
	DesignStatusApproved = "approved"
	DesignStatusRejected = "rejected"
)

// DownloadPrefix is prepended to the base name of every downloaded design.
const DownloadPrefix = "codama-"

type Design struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  uuid.UUID  `json:"category_id"`
	ColorID     *uuid.UUID `json:"color_id,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	FilePath    string     `json:"file_path"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`

	// Resolved on reads.
	UserName     string  `json:"user_name,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	ColorName    *string `json:"color_name,omitempty"`
}

func (d *Design) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Status == "" {
		d.Status = DesignStatusPending
	}
}

// DownloadName is the attachment name served for the design file.
func (d *Design) DownloadName() string {
	return DownloadPrefix + path.Base(strings.ReplaceAll(d.FilePath, "\\", "/"))
}

func IsValidDesignStatus(s string) bool {
	switch s {
	case DesignStatusPending, DesignStatusApproved, DesignStatusRejected:
		return true
	}
	return false
}
