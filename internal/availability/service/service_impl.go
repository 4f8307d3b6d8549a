package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	maxRecurringWeeks = 26
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  availdomain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  availdomain.Repository
	now   func() time.Time
}

func NewService(p Params) availdomain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("availability.service"),
		genID: p.GenID,
		repo:  p.Repo,
		now:   time.Now,
	}
}

func (s *service) CreateSlot(ctx context.Context, req availdomain.CreateSlotRequest) (*availdomain.Slot, error) {
	if err := s.validateWindow(req.SlotDate, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	overlapping, err := s.repo.ListOverlapping(ctx, s.db, req.PerformerID, req.SlotDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, availdomain.ErrSlotOverlap
	}

	now := s.now().UTC()
	slot := &availdomain.Slot{
		ID:          s.genID.Generate(),
		PerformerID: req.PerformerID,
		SlotDate:    req.SlotDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		RatePerHour: req.RatePerHour,
		Open:        true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, s.db, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) CreateRecurring(ctx context.Context, req availdomain.CreateRecurringRequest) ([]availdomain.Slot, error) {
	weekday, ok := parseWeekday(req.Weekday)
	if !ok {
		return nil, availdomain.ErrInvalidWindow
	}
	weeks := req.Weeks
	if weeks <= 0 {
		return nil, availdomain.ErrInvalidWindow
	}
	if weeks > maxRecurringWeeks {
		weeks = maxRecurringWeeks
	}

	from := strings.TrimSpace(req.From)
	start := s.today()
	if from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			return nil, availdomain.ErrInvalidWindow
		}
		if parsed.After(start) {
			start = parsed
		}
	}
	// Advance to the first requested weekday on or after the start date.
	for start.Weekday() != weekday {
		start = start.AddDate(0, 0, 1)
	}

	created := make([]availdomain.Slot, 0, weeks)
	for i := 0; i < weeks; i++ {
		date := start.AddDate(0, 0, 7*i).Format(dateLayout)
		slot, err := s.CreateSlot(ctx, availdomain.CreateSlotRequest{
			PerformerID: req.PerformerID,
			SlotDate:    date,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			RatePerHour: req.RatePerHour,
		})
		if err == availdomain.ErrSlotOverlap {
			// An existing slot on that week keeps its place.
			continue
		}
		if err != nil {
			return created, err
		}
		created = append(created, *slot)
	}
	return created, nil
}

func (s *service) DeleteSlot(ctx context.Context, performerID, slotID snowflake.ID) error {
	slot, err := s.repo.FindByID(ctx, s.db, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return availdomain.ErrSlotNotFound
	}
	if slot.PerformerID != performerID {
		return availdomain.ErrNotSlotOwner
	}
	if !slot.Open {
		return availdomain.ErrSlotBooked
	}
	return s.repo.Delete(ctx, s.db, slotID)
}

func (s *service) ListByPerformer(ctx context.Context, performerID snowflake.ID, includeBooked bool) ([]availdomain.Slot, error) {
	return s.repo.ListByPerformer(ctx, s.db, performerID, !includeBooked)
}

func (s *service) SearchOpen(ctx context.Context, filter availdomain.SlotSearchFilter) ([]availdomain.Slot, error) {
	if filter.Date == "" && filter.FromDate == "" {
		filter.FromDate = s.today().Format(dateLayout)
	}
	return s.repo.SearchOpen(ctx, s.db, filter)
}

func (s *service) validateWindow(slotDate, startTime, endTime string) error {
	date, err := time.Parse(dateLayout, slotDate)
	if err != nil {
		return availdomain.ErrInvalidWindow
	}
	if date.Before(s.today()) {
		return availdomain.ErrSlotInPast
	}
	startT, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return availdomain.ErrInvalidWindow
	}
	endT, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return availdomain.ErrInvalidWindow
	}
	if !startT.Before(endT) {
		return availdomain.ErrInvalidWindow
	}
	return nil
}

func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseWeekday(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return 0, false
}
