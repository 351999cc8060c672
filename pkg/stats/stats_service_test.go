package stats

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.February, 5, 9, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, time.February, 5+offset, 0, 0, 0, 0, time.UTC)
}

func TestCategoryStats_CountsScheduledOnly(t *testing.T) {
	events := []event.Event{
		{ID: 1, Category: event.Hearing, Status: event.Scheduled},
		{ID: 2, Category: event.Hearing, Status: event.Cancelled},
		{ID: 3, Category: event.Deadline, Status: event.Scheduled},
		{ID: 4, Category: event.Consultation, Status: event.Completed},
		{ID: 5, Category: event.Meeting, Status: event.Scheduled},
		{ID: 6, Category: event.Meeting, Status: event.Scheduled},
		{ID: 7, Category: event.Internal, Status: event.Scheduled},
	}

	counts := CategoryStats(events)

	assert.Equal(t, CategoryCounts{
		Total:         5,
		Hearings:      1,
		Deadlines:     1,
		Consultations: 0,
		Meetings:      2,
		Internal:      1,
	}, counts)
}

func TestCategoryStats_CancelledContributesNothing(t *testing.T) {
	counts := CategoryStats([]event.Event{{ID: 1, Category: event.Deadline, Status: event.Cancelled}})

	assert.Equal(t, CategoryCounts{}, counts)
}

func TestUpcoming_CapsAndSorts(t *testing.T) {
	var events []event.Event
	for i := 10; i >= 1; i-- {
		events = append(events, event.Event{ID: i, Date: day(i), Status: event.Scheduled})
	}

	upcoming := Upcoming(events, now, 6)

	require.Len(t, upcoming, 6)
	for i, e := range upcoming {
		assert.Equal(t, i+1, e.ID)
	}
}

func TestUpcoming_FiltersPastAndNonScheduled(t *testing.T) {
	events := []event.Event{
		{ID: 1, Date: day(-1), Status: event.Scheduled},
		{ID: 2, Date: day(1), Status: event.Cancelled},
		{ID: 3, Date: day(2), Status: event.Scheduled},
		{ID: 4, Date: now, Status: event.Scheduled},
		{ID: 5, Date: day(0), Status: event.Scheduled}, // midnight today is before now
	}

	upcoming := Upcoming(events, now, DefaultUpcomingLimit)

	assert.Equal(t, []int{4, 3}, ids(upcoming))
}

func TestUpcoming_TiesKeepOriginalOrder(t *testing.T) {
	events := []event.Event{
		{ID: 3, Date: day(2), Status: event.Scheduled},
		{ID: 1, Date: day(1), Status: event.Scheduled},
		{ID: 7, Date: day(2), Status: event.Scheduled},
		{ID: 2, Date: day(1), Status: event.Scheduled},
	}

	assert.Equal(t, []int{1, 2, 3, 7}, ids(Upcoming(events, now, 6)))
}

func TestStatsService_ReadsClockOnEveryCall(t *testing.T) {
	repo := event.NewMemoryRepository()
	repo.Insert(event.Draft{Date: day(1)}, day(0))
	fixed := &clock.Fixed{FixedNow: now}
	service := NewStatsServiceImpl(repo, fixed, 0)

	assert.Len(t, service.GetUpcoming(context.Background()), 1)

	fixed.Advance(48 * time.Hour)
	assert.Empty(t, service.GetUpcoming(context.Background()))
	assert.Equal(t, now.Add(48*time.Hour), service.GetStats(context.Background()).GeneratedAt)
}

func TestEndToEndScenario(t *testing.T) {
	ctx := context.Background()
	today := day(0)
	repo := event.NewMemoryRepository()
	service := NewStatsServiceImpl(repo, &clock.Fixed{FixedNow: now}, DefaultUpcomingLimit)

	a := repo.Insert(event.Draft{Title: "Hearing A", Category: event.Hearing, Date: today, StartTime: "9:00 AM"}, today)
	all := repo.All()
	require.Len(t, all, 1)
	assert.Equal(t, 1, a.ID)

	b := repo.Insert(event.Draft{Title: "Client meeting B", Category: event.Meeting, Date: today}, today)
	assert.Equal(t, 2, b.ID)

	hearings := filter.ByCategory(repo.All(), "hearing")
	assert.Equal(t, []int{1}, ids(hearings))

	found := filter.BySearch(repo.All(), "meeting")
	assert.Equal(t, []int{2}, ids(found))

	repo.Delete(1)
	all = repo.All()
	require.Len(t, all, 1)
	assert.Equal(t, 2, all[0].ID)

	counts := service.GetStats(ctx).Counts
	assert.Equal(t, 1, counts.Meetings)
	assert.Equal(t, 0, counts.Hearings)
}

func ids(events []event.Event) []int {
	result := make([]int, 0, len(events))
	for _, e := range events {
		result = append(result, e.ID)
	}
	return result
}
