package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	performerdomain "github.com/stagelink/stagelink/internal/performer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() performerdomain.Repository {
	return &repo{}
}

const performerColumns = `id, user_id, stage_name, slug, genre, bio, city, rate_per_hour, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, performer *performerdomain.Performer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO performers (id, user_id, stage_name, slug, genre, bio, city, rate_per_hour, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		performer.ID,
		performer.UserID,
		performer.StageName,
		performer.Slug,
		performer.Genre,
		performer.Bio,
		performer.City,
		performer.RatePerHour,
		performer.CreatedAt,
		performer.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, performer *performerdomain.Performer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE performers
		 SET stage_name = ?, slug = ?, genre = ?, bio = ?, city = ?, rate_per_hour = ?, updated_at = ?
		 WHERE id = ?`,
		performer.StageName,
		performer.Slug,
		performer.Genre,
		performer.Bio,
		performer.City,
		performer.RatePerHour,
		performer.UpdatedAt,
		performer.ID,
	).Error
}

func (r *repo) FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*performerdomain.Performer, error) {
	var performer performerdomain.Performer
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM performers WHERE user_id = ?`, performerColumns),
		userID,
	).Scan(&performer).Error
	if err != nil {
		return nil, err
	}
	if performer.ID == 0 {
		return nil, nil
	}
	return &performer, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*performerdomain.Performer, error) {
	var performer performerdomain.Performer
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM performers WHERE id = ?`, performerColumns),
		id,
	).Scan(&performer).Error
	if err != nil {
		return nil, err
	}
	if performer.ID == 0 {
		return nil, nil
	}
	return &performer, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*performerdomain.Performer, error) {
	var performer performerdomain.Performer
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM performers WHERE slug = ?`, performerColumns),
		slug,
	).Scan(&performer).Error
	if err != nil {
		return nil, err
	}
	if performer.ID == 0 {
		return nil, nil
	}
	return &performer, nil
}

func (r *repo) Search(ctx context.Context, db *gorm.DB, filter performerdomain.SearchFilter) ([]performerdomain.Performer, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Genre != "" {
		conds = append(conds, "LOWER(genre) = LOWER(?)")
		args = append(args, filter.Genre)
	}
	if filter.City != "" {
		conds = append(conds, "LOWER(city) = LOWER(?)")
		args = append(args, filter.City)
	}
	if filter.MaxRate > 0 {
		conds = append(conds, "rate_per_hour <= ?")
		args = append(args, filter.MaxRate)
	}

	query := fmt.Sprintf(`SELECT %s FROM performers`, performerColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY stage_name ASC"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var performers []performerdomain.Performer
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&performers).Error; err != nil {
		return nil, err
	}
	return performers, nil
}
