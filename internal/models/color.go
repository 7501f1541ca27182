package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Color struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	HexCode   string     `json:"hex_code"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeHex returns the colour as upper-case #RRGGBB. Short #RGB codes
// are expanded.
func NormalizeHex(code string) (string, bool) {
	code = strings.TrimSpace(code)
	m := hexColor.FindStringSubmatch(code)
	if m == nil {
		return "", false
	}
	digits := strings.ToUpper(m[1])
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	return "#" + digits, true
}

func (c *Color) Prepare() {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Name = strings.TrimSpace(c.Name)
}
