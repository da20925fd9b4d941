package services

import (
	"fmt"
	"time"

	"taskcal/model"
)

// DayKey buckets tasks for calendar rendering. Month is zero-based to match
// the keys the web client builds from Date.getMonth().
type DayKey struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (k DayKey) String() string {
	return fmt.Sprintf("%d-%d-%d", k.Year, k.Month, k.Day)
}

// DayKeyOf derives the calendar bucket for a scheduled date.
func DayKeyOf(t time.Time) DayKey {
	return DayKey{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}
}

// IndexByDay rebuilds the day-key lookup from scratch. Only active tasks
// contribute; per-day order follows the order of the source slice, and a task
// whose date list hits the same day twice appears once.
func IndexByDay(tasks []model.Task) map[DayKey][]model.Task {
	index := make(map[DayKey][]model.Task)

	for _, task := range tasks {
		if task.Status != model.TaskStatusActive {
			continue
		}
		for _, d := range task.Dates {
			key := DayKeyOf(d)
			if containsTask(index[key], task.ID) {
				continue
			}
			index[key] = append(index[key], task)
		}
	}

	return index
}

// DueToday returns the first scheduled date falling on the given instant's
// day. Each date is compared in its own timezone, so a client a few hours
// ahead of the server still gets the right day.
func DueToday(dates []time.Time, now time.Time) (time.Time, bool) {
	for _, d := range dates {
		if DayKeyOf(d) == DayKeyOf(now.In(d.Location())) {
			return d, true
		}
	}
	return time.Time{}, false
}

func containsTask(tasks []model.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
