package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	availrepo "github.com/stagelink/stagelink/internal/availability/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Fixed clock: Wednesday 2026-03-04.
var testNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

func newSlotService(t *testing.T) (*service, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&availdomain.Slot{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  availrepo.Provide(),
	}).(*service)
	svc.now = func() time.Time { return testNow }
	return svc, node
}

func TestCreateSlot(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	slot, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: performerID,
		SlotDate:    "2026-03-07",
		StartTime:   "20:00",
		EndTime:     "23:00",
		RatePerHour: 15000,
	})
	require.NoError(t, err)
	assert.True(t, slot.Open)
	assert.Equal(t, "2026-03-07", slot.SlotDate)
}

func TestCreateSlotValidation(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	tests := []struct {
		name    string
		date    string
		start   string
		end     string
		wantErr error
	}{
		{"past date", "2026-03-03", "20:00", "23:00", availdomain.ErrSlotInPast},
		{"bad date", "03/07/2026", "20:00", "23:00", availdomain.ErrInvalidWindow},
		{"start after end", "2026-03-07", "23:00", "20:00", availdomain.ErrInvalidWindow},
		{"zero-length window", "2026-03-07", "20:00", "20:00", availdomain.ErrInvalidWindow},
		{"bad time", "2026-03-07", "8pm", "23:00", availdomain.ErrInvalidWindow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
				PerformerID: performerID,
				SlotDate:    tt.date,
				StartTime:   tt.start,
				EndTime:     tt.end,
			})
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCreateSlotOverlap(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	_, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: performerID,
		SlotDate:    "2026-03-07",
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	require.NoError(t, err)

	// Any window sharing time with an existing slot on the same date is
	// rejected.
	for _, window := range [][2]string{{"22:00", "23:30"}, {"19:00", "20:30"}, {"21:00", "22:00"}} {
		_, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
			PerformerID: performerID,
			SlotDate:    "2026-03-07",
			StartTime:   window[0],
			EndTime:     window[1],
		})
		assert.True(t, errors.Is(err, availdomain.ErrSlotOverlap), "window %v", window)
	}

	// Back-to-back windows do not overlap.
	_, err = svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: performerID,
		SlotDate:    "2026-03-07",
		StartTime:   "23:00",
		EndTime:     "23:59",
	})
	assert.NoError(t, err)

	// Another performer can publish the same window.
	_, err = svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: node.Generate(),
		SlotDate:    "2026-03-07",
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	assert.NoError(t, err)
}

func TestCreateRecurring(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	slots, err := svc.CreateRecurring(ctx, availdomain.CreateRecurringRequest{
		PerformerID: performerID,
		Weekday:     "Saturday",
		Weeks:       4,
		StartTime:   "20:00",
		EndTime:     "23:00",
		RatePerHour: 15000,
	})
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, "2026-03-07", slots[0].SlotDate)
	assert.Equal(t, "2026-03-28", slots[3].SlotDate)
}

func TestCreateRecurringSkipsOccupiedWeeks(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	_, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: performerID,
		SlotDate:    "2026-03-14",
		StartTime:   "19:00",
		EndTime:     "22:00",
	})
	require.NoError(t, err)

	slots, err := svc.CreateRecurring(ctx, availdomain.CreateRecurringRequest{
		PerformerID: performerID,
		Weekday:     "saturday",
		Weeks:       3,
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "2026-03-07", slots[0].SlotDate)
	assert.Equal(t, "2026-03-21", slots[1].SlotDate)
}

func TestCreateRecurringValidation(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()

	_, err := svc.CreateRecurring(ctx, availdomain.CreateRecurringRequest{
		PerformerID: node.Generate(),
		Weekday:     "caturday",
		Weeks:       4,
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	assert.True(t, errors.Is(err, availdomain.ErrInvalidWindow))

	_, err = svc.CreateRecurring(ctx, availdomain.CreateRecurringRequest{
		PerformerID: node.Generate(),
		Weekday:     "saturday",
		Weeks:       0,
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	assert.True(t, errors.Is(err, availdomain.ErrInvalidWindow))
}

func TestDeleteSlot(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	slot, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: performerID,
		SlotDate:    "2026-03-07",
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	require.NoError(t, err)

	// Only the owner can delete.
	err = svc.DeleteSlot(ctx, node.Generate(), slot.ID)
	assert.True(t, errors.Is(err, availdomain.ErrNotSlotOwner))

	require.NoError(t, svc.DeleteSlot(ctx, performerID, slot.ID))
	err = svc.DeleteSlot(ctx, performerID, slot.ID)
	assert.True(t, errors.Is(err, availdomain.ErrSlotNotFound))
}

func TestDeleteBookedSlotRejected(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	slot, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
		PerformerID: performerID,
		SlotDate:    "2026-03-07",
		StartTime:   "20:00",
		EndTime:     "23:00",
	})
	require.NoError(t, err)

	open := true
	affected, err := svc.repo.SetOpen(ctx, svc.db, slot.ID, false, &open)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	err = svc.DeleteSlot(ctx, performerID, slot.ID)
	assert.True(t, errors.Is(err, availdomain.ErrSlotBooked))
}

func TestSearchOpenDefaultsToUpcoming(t *testing.T) {
	svc, node := newSlotService(t)
	ctx := context.Background()
	performerID := node.Generate()

	for _, date := range []string{"2026-03-07", "2026-03-14"} {
		_, err := svc.CreateSlot(ctx, availdomain.CreateSlotRequest{
			PerformerID: performerID,
			SlotDate:    date,
			StartTime:   "20:00",
			EndTime:     "23:00",
		})
		require.NoError(t, err)
	}

	slots, err := svc.SearchOpen(ctx, availdomain.SlotSearchFilter{})
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	slots, err = svc.SearchOpen(ctx, availdomain.SlotSearchFilter{Date: "2026-03-07"})
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}
