package dto

import (
	"time"

	"github.com/google/uuid"

	m "guildku_backend/internals/features/participations/model"
	ledger "guildku_backend/internals/features/participations/service"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Body bulk-upsert adalah array item langsung (mengikuti klien lama).
type BulkUpsertItem struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Status   *string   `json:"status" validate:"omitempty,oneof=participated leave unknown unset"`
	Score    *float64  `json:"score" validate:"omitempty,gte=0"`
	Note     *string   `json:"note" validate:"omitempty,max=500"`
}

func (it BulkUpsertItem) ToMergeItem() ledger.MergeItem {
	out := ledger.MergeItem{
		MemberID: it.MemberID,
		Score:    it.Score,
		Note:     it.Note,
	}
	if it.Status != nil {
		st := m.ParticipationStatus(*it.Status)
		out.Status = &st
	}
	return out
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type ParticipationResponse struct {
	ParticipationID        uuid.UUID `json:"participation_id"`
	ParticipationSessionID uuid.UUID `json:"participation_session_id"`
	ParticipationMemberID  uuid.UUID `json:"participation_member_id"`
	ParticipationStatus    string    `json:"participation_status"`
	ParticipationScore     float64   `json:"participation_score"`
	ParticipationNote      *string   `json:"participation_note,omitempty"`
	ParticipationSetBy     uuid.UUID `json:"participation_set_by"`
	ParticipationSetAt     time.Time `json:"participation_set_at"`
}

func FromParticipationModel(mdl m.ParticipationModel) ParticipationResponse {
	return ParticipationResponse{
		ParticipationID:        mdl.ParticipationID,
		ParticipationSessionID: mdl.ParticipationSessionID,
		ParticipationMemberID:  mdl.ParticipationMemberID,
		ParticipationStatus:    string(mdl.ParticipationStatus),
		ParticipationScore:     mdl.ParticipationScore,
		ParticipationNote:      mdl.ParticipationNote,
		ParticipationSetBy:     mdl.ParticipationSetBy,
		ParticipationSetAt:     mdl.ParticipationSetAt,
	}
}

func FromParticipationModels(mdls []m.ParticipationModel) []ParticipationResponse {
	out := make([]ParticipationResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, FromParticipationModel(mdl))
	}
	return out
}
