// Package domain contains persistence models for performer profiles.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Performer captures a performer's public profile.
type Performer struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	UserID      snowflake.ID `gorm:"column:user_id;not null;uniqueIndex"`
	StageName   string       `gorm:"column:stage_name;type:text;not null"`
	Slug        string       `gorm:"type:text;not null;uniqueIndex"`
	Genre       string       `gorm:"type:text"`
	Bio         string       `gorm:"type:text"`
	City        string       `gorm:"type:text"`
	RatePerHour int64        `gorm:"column:rate_per_hour"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Performer) TableName() string { return "performers" }
