package dto

import (
	"time"

	"github.com/google/uuid"
)

// FilterLeaderboardRequest rentang waktu bisa preset (period, plus
// year/quarter/month untuk memilih periode tertentu) atau eksplisit
// (from/to, inklusif). Kalau dua-duanya dikirim, from/to menang.
type FilterLeaderboardRequest struct {
	Period  *string    `query:"period" validate:"omitempty,oneof=month quarter year"`
	Year    *int       `query:"year" validate:"omitempty,min=2000,max=2100"`
	Quarter *int       `query:"quarter" validate:"omitempty,min=1,max=4"`
	Month   *int       `query:"month" validate:"omitempty,min=1,max=12"`
	TypeID  *uuid.UUID `query:"type_id"`
	From    *time.Time `query:"from"`
	To      *time.Time `query:"to"`
	Sort    *string    `query:"sort" validate:"omitempty,oneof=total_score avg_score attendance"`
}

type LeaderboardEntryResponse struct {
	Rank           int       `json:"rank"`
	MemberID       uuid.UUID `json:"member_id"`
	MemberNickname string    `json:"member_nickname"`
	MemberRole     string    `json:"member_role"`
	TotalScore     float64   `json:"total_score"`
	Times          int       `json:"times"`
	AvgScore       float64   `json:"avg_score"`
	Attendance     float64   `json:"attendance"`
	Participated   int       `json:"participated"`
	Leave          int       `json:"leave"`
	Unknown        int       `json:"unknown"`
}
