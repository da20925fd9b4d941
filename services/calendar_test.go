package services

import (
	"testing"
	"time"

	"taskcal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestDayKeyOfZeroBasedMonth(t *testing.T) {
	key := DayKeyOf(day(2024, time.May, 1))
	want := DayKey{Year: 2024, Month: 4, Day: 1}
	if key != want {
		t.Fatalf("DayKeyOf = %v, want %v", key, want)
	}
	if key.String() != "2024-4-1" {
		t.Fatalf("String() = %q, want %q", key.String(), "2024-4-1")
	}
}

func TestIndexByDayOneEntryPerDistinctDate(t *testing.T) {
	task := model.Task{
		ID:       "t1",
		Title:    "Pay rent",
		Priority: model.PriorityHigh,
		Status:   model.TaskStatusActive,
		Dates:    []time.Time{day(2024, time.May, 1), day(2024, time.June, 1)},
	}

	index := IndexByDay([]model.Task{task})

	if len(index) != 2 {
		t.Fatalf("got %d day keys, want 2", len(index))
	}
	for _, key := range []DayKey{{2024, 4, 1}, {2024, 5, 1}} {
		tasks := index[key]
		if len(tasks) != 1 || tasks[0].ID != "t1" {
			t.Errorf("key %v: got %d tasks, want exactly one t1", key, len(tasks))
		}
	}
}

func TestIndexByDayCollapsesDuplicateDays(t *testing.T) {
	task := model.Task{
		ID:     "t1",
		Status: model.TaskStatusActive,
		Dates: []time.Time{
			time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC),
			time.Date(2024, time.May, 1, 20, 0, 0, 0, time.UTC),
		},
	}

	index := IndexByDay([]model.Task{task})

	if got := len(index[DayKey{2024, 4, 1}]); got != 1 {
		t.Fatalf("got %d entries for the duplicated day, want 1", got)
	}
}

func TestIndexByDayExcludesInactiveTasks(t *testing.T) {
	completedAt := day(2024, time.May, 2)
	tasks := []model.Task{
		{ID: "t1", Status: model.TaskStatusCompleted, CompletedAt: &completedAt, Dates: []time.Time{day(2024, time.May, 1)}},
		{ID: "t2", Status: model.TaskStatusDeleted, Dates: []time.Time{day(2024, time.May, 1)}},
	}

	index := IndexByDay(tasks)

	if len(index) != 0 {
		t.Fatalf("inactive tasks leaked into the index: %v", index)
	}
}

func TestIndexByDayEmptyDates(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Status: model.TaskStatusActive},
		{ID: "t2", Status: model.TaskStatusActive, Dates: []time.Time{}},
	}

	index := IndexByDay(tasks)

	if len(index) != 0 {
		t.Fatalf("dateless tasks contributed entries: %v", index)
	}
}

func TestDueTodayComparesInDateZone(t *testing.T) {
	manila := time.FixedZone("UTC+10", 10*60*60)

	// 2024-05-02 09:00 +10:00 is still 2024-05-01 in UTC, but in its own
	// zone the date is May 2 -- and so is "now" seen from that zone.
	scheduled := time.Date(2024, time.May, 2, 9, 0, 0, 0, manila)
	now := time.Date(2024, time.May, 1, 23, 30, 0, 0, time.UTC)

	due, ok := DueToday([]time.Time{scheduled}, now)
	if !ok {
		t.Fatal("date on the client's current day was not reported due")
	}
	if !due.Equal(scheduled) {
		t.Fatalf("due = %v, want %v", due, scheduled)
	}
}

func TestDueTodayRejectsYesterdayInDateZone(t *testing.T) {
	manila := time.FixedZone("UTC+10", 10*60*60)

	// Both instants fall on May 1 in UTC, but in the date's zone the
	// schedule is May 1 while "now" is already May 2.
	scheduled := time.Date(2024, time.May, 1, 23, 0, 0, 0, manila)
	now := time.Date(2024, time.May, 1, 15, 0, 0, 0, time.UTC)

	if _, ok := DueToday([]time.Time{scheduled}, now); ok {
		t.Fatal("a date already past in its own zone was reported due")
	}
}

func TestDueTodayEmptyDates(t *testing.T) {
	if _, ok := DueToday(nil, time.Now()); ok {
		t.Fatal("no dates reported due")
	}
}

func TestIndexByDayPreservesSourceOrder(t *testing.T) {
	d := day(2024, time.May, 3)
	tasks := []model.Task{
		{ID: "a", Status: model.TaskStatusActive, Dates: []time.Time{d}},
		{ID: "b", Status: model.TaskStatusActive, Dates: []time.Time{d}},
		{ID: "c", Status: model.TaskStatusActive, Dates: []time.Time{d}},
	}

	got := IndexByDay(tasks)[DayKeyOf(d)]

	if len(got) != 3 {
		t.Fatalf("got %d tasks, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].ID, want)
		}
	}
}
