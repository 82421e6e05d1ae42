package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Announcement is a notice published on the public portal.
type Announcement struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Title     string       `gorm:"not null" json:"title"`
	Content   string       `gorm:"not null" json:"content"`
	CreatedAt time.Time    `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time    `gorm:"not null" json:"updatedAt"`
}

func (Announcement) TableName() string {
	return "announcements"
}
