package service

import (
	"time"

	m "guildku_backend/internals/features/activities/activity_types/model"
)

// NextStartAt hitung jadwal terdekat dari rule mingguan sebuah activity type.
// Slot hari ini yang jamnya sudah lewat digeser ke minggu depan.
// nil kalau rule tidak lengkap (tanpa hari atau tanpa jam).
func NextStartAt(t m.ActivityTypeModel, now time.Time) *time.Time {
	if len(t.ActivityTypeScheduleWeekdays) == 0 || t.ActivityTypeScheduleTime == nil {
		return nil
	}

	hour := t.ActivityTypeScheduleTime.Hour()
	minute := t.ActivityTypeScheduleTime.Minute()

	var best *time.Time
	for _, wd := range t.ActivityTypeScheduleWeekdays {
		target := int(wd % 7)
		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		delta := (target - int(now.Weekday()) + 7) % 7
		if delta == 0 && candidate.Before(now) {
			delta = 7
		}
		candidate = candidate.AddDate(0, 0, delta)

		if best == nil || candidate.Before(*best) {
			c := candidate
			best = &c
		}
	}
	return best
}

// DefaultEndAt hitung end_at default dari start + durasi type.
func DefaultEndAt(t m.ActivityTypeModel, startAt time.Time) time.Time {
	minutes := t.ActivityTypeDurationMinutes
	if minutes <= 0 {
		minutes = 120
	}
	return startAt.Add(time.Duration(minutes) * time.Minute)
}
