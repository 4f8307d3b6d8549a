package repository

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() availdomain.Repository {
	return &repo{}
}

const slotColumns = `id, performer_id, slot_date, start_time, end_time, rate_per_hour, open, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, slot *availdomain.Slot) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO availability_slots (id, performer_id, slot_date, start_time, end_time, rate_per_hour, open, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		slot.ID,
		slot.PerformerID,
		slot.SlotDate,
		slot.StartTime,
		slot.EndTime,
		slot.RatePerHour,
		slot.Open,
		slot.CreatedAt,
		slot.UpdatedAt,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM availability_slots WHERE id = ?`,
		id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*availdomain.Slot, error) {
	var slot availdomain.Slot
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM availability_slots WHERE id = ?`, slotColumns),
		id,
	).Scan(&slot).Error
	if err != nil {
		return nil, err
	}
	if slot.ID == 0 {
		return nil, nil
	}
	return &slot, nil
}

func (r *repo) ListByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID, openOnly bool) ([]availdomain.Slot, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_slots WHERE performer_id = ?`, slotColumns)
	if openOnly {
		query += ` AND open`
	}
	query += ` ORDER BY slot_date ASC, start_time ASC`

	var slots []availdomain.Slot
	if err := db.WithContext(ctx).Raw(query, performerID).Scan(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repo) ListOverlapping(ctx context.Context, db *gorm.DB, performerID snowflake.ID, slotDate, startTime, endTime string) ([]availdomain.Slot, error) {
	// HH:MM strings compare correctly as text. Two windows overlap when
	// each starts before the other ends.
	var slots []availdomain.Slot
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM availability_slots
		 WHERE performer_id = ? AND slot_date = ? AND start_time < ? AND end_time > ?`, slotColumns),
		performerID,
		slotDate,
		endTime,
		startTime,
	).Scan(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repo) SearchOpen(ctx context.Context, db *gorm.DB, filter availdomain.SlotSearchFilter) ([]availdomain.Slot, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_slots WHERE open`, slotColumns)
	var args []any
	if filter.Date != "" {
		query += ` AND slot_date = ?`
		args = append(args, filter.Date)
	} else {
		if filter.FromDate != "" {
			query += ` AND slot_date >= ?`
			args = append(args, filter.FromDate)
		}
		if filter.ToDate != "" {
			query += ` AND slot_date <= ?`
			args = append(args, filter.ToDate)
		}
	}
	query += ` ORDER BY slot_date ASC, start_time ASC LIMIT ?`

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	args = append(args, limit)

	var slots []availdomain.Slot
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *repo) SetOpen(ctx context.Context, db *gorm.DB, id snowflake.ID, open bool, expectOpen *bool) (int64, error) {
	query := `UPDATE availability_slots SET open = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	args := []any{open, id}
	if expectOpen != nil {
		query += ` AND open = ?`
		args = append(args, *expectOpen)
	}
	res := db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}
