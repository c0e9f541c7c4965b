package service

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	m "guildku_backend/internals/features/activities/activity_types/model"
	"guildku_backend/internals/helpers/dbtime"
)

func ruleType(weekdays []int64, at string, duration int) m.ActivityTypeModel {
	tod, _ := dbtime.Parse(at)
	return m.ActivityTypeModel{
		ActivityTypeScheduleWeekdays: pq.Int64Array(weekdays),
		ActivityTypeScheduleTime:     &tod,
		ActivityTypeDurationMinutes:  duration,
	}
}

func TestNextStartAtPicksNearestWeekday(t *testing.T) {
	// Rabu 2026-01-07 12:00
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

	// Jumat (5) & Minggu (0) jam 20:00 → terdekat Jumat 9 Jan
	got := NextStartAt(ruleType([]int64{5, 0}, "20:00", 120), now)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2026, 1, 9, 20, 0, 0, 0, time.UTC), *got)
}

func TestNextStartAtSameDay(t *testing.T) {
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC) // Rabu

	// jam hari ini yang belum lewat → hari ini juga
	got := NextStartAt(ruleType([]int64{3}, "20:00", 120), now)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2026, 1, 7, 20, 0, 0, 0, time.UTC), *got)

	// jam hari ini yang sudah lewat → minggu depan
	got = NextStartAt(ruleType([]int64{3}, "08:00", 120), now)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2026, 1, 14, 8, 0, 0, 0, time.UTC), *got)
}

func TestNextStartAtIncompleteRule(t *testing.T) {
	now := time.Now()
	require.Nil(t, NextStartAt(m.ActivityTypeModel{}, now))
	require.Nil(t, NextStartAt(ruleType(nil, "20:00", 120), now))

	noTime := m.ActivityTypeModel{ActivityTypeScheduleWeekdays: pq.Int64Array{1}}
	require.Nil(t, NextStartAt(noTime, now))
}

func TestDefaultEndAt(t *testing.T) {
	start := time.Date(2026, 1, 7, 20, 0, 0, 0, time.UTC)

	end := DefaultEndAt(ruleType([]int64{3}, "20:00", 90), start)
	require.Equal(t, start.Add(90*time.Minute), end)

	// durasi tidak valid jatuh ke default 120 menit
	end = DefaultEndAt(m.ActivityTypeModel{}, start)
	require.Equal(t, start.Add(120*time.Minute), end)
}
