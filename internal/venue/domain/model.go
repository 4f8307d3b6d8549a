// Package domain contains persistence models for venue profiles.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Venue captures a venue's public profile.
type Venue struct {
	ID           snowflake.ID `gorm:"primaryKey"`
	UserID       snowflake.ID `gorm:"column:user_id;not null;uniqueIndex"`
	Name         string       `gorm:"type:text;not null"`
	Slug         string       `gorm:"type:text;not null;uniqueIndex"`
	City         string       `gorm:"type:text"`
	Address      string       `gorm:"type:text"`
	Capacity     int          `gorm:""`
	Description  string       `gorm:"type:text"`
	ContactEmail string       `gorm:"column:contact_email;type:text"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Venue) TableName() string { return "venues" }
