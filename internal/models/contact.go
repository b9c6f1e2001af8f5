package models

import (
	"strings"
	"time"
)

// Contact matches the contacts table. JSON keys are camelCase because the
// frontend reads them that way.
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:80;not null" json:"firstName"`
	LastName  string    `gorm:"size:80;not null" json:"lastName"`
	Email     string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (c *Contact) Prepare() {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.TrimSpace(c.Email)
}

// All lists every model the application migrates.
func All() []any {
	return []any{&Contact{}}
}
