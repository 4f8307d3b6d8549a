package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	venuedomain "github.com/stagelink/stagelink/internal/venue/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() venuedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, venue *venuedomain.Venue) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO venues (id, user_id, name, slug, city, address, capacity, description, contact_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		venue.ID,
		venue.UserID,
		venue.Name,
		venue.Slug,
		venue.City,
		venue.Address,
		venue.Capacity,
		venue.Description,
		venue.ContactEmail,
		venue.CreatedAt,
		venue.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, venue *venuedomain.Venue) error {
	return db.WithContext(ctx).Exec(
		`UPDATE venues
		 SET name = ?, slug = ?, city = ?, address = ?, capacity = ?, description = ?, contact_email = ?, updated_at = ?
		 WHERE id = ?`,
		venue.Name,
		venue.Slug,
		venue.City,
		venue.Address,
		venue.Capacity,
		venue.Description,
		venue.ContactEmail,
		venue.UpdatedAt,
		venue.ID,
	).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*venuedomain.Venue, error) {
	var venue venuedomain.Venue
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, name, slug, city, address, capacity, description, contact_email, created_at, updated_at
		 FROM venues WHERE user_id = ?`,
		userID,
	).Scan(&venue).Error
	if err != nil {
		return nil, err
	}
	if venue.ID == 0 {
		return nil, nil
	}
	return &venue, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*venuedomain.Venue, error) {
	var venue venuedomain.Venue
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, name, slug, city, address, capacity, description, contact_email, created_at, updated_at
		 FROM venues WHERE id = ?`,
		id,
	).Scan(&venue).Error
	if err != nil {
		return nil, err
	}
	if venue.ID == 0 {
		return nil, nil
	}
	return &venue, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*venuedomain.Venue, error) {
	var venue venuedomain.Venue
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, name, slug, city, address, capacity, description, contact_email, created_at, updated_at
		 FROM venues WHERE slug = ?`,
		slug,
	).Scan(&venue).Error
	if err != nil {
		return nil, err
	}
	if venue.ID == 0 {
		return nil, nil
	}
	return &venue, nil
}
