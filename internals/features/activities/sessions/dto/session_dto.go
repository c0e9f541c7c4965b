package dto

import (
	"time"

	"github.com/google/uuid"

	m "guildku_backend/internals/features/activities/sessions/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateSessionRequest struct {
	SessionTypeID  uuid.UUID  `json:"session_type_id" validate:"required"`
	SessionName    string     `json:"session_name" validate:"required,max=150"`
	SessionStartAt time.Time  `json:"session_start_at" validate:"required"`
	SessionEndAt   *time.Time `json:"session_end_at"`
	SessionStatus  *string    `json:"session_status" validate:"omitempty,oneof=draft closed locked"`
	SessionNotes   *string    `json:"session_notes" validate:"omitempty,max=1000"`
}

// Update (partial)
type UpdateSessionRequest struct {
	SessionName    *string    `json:"session_name" validate:"omitempty,max=150"`
	SessionStartAt *time.Time `json:"session_start_at"`
	SessionEndAt   *time.Time `json:"session_end_at"`
	SessionStatus  *string    `json:"session_status" validate:"omitempty,oneof=draft closed locked"`
	SessionNotes   *string    `json:"session_notes" validate:"omitempty,max=1000"`
}

type FilterSessionRequest struct {
	TypeID *uuid.UUID `query:"type_id"`
	Status *string    `query:"status" validate:"omitempty,oneof=draft closed locked"`
	From   *time.Time `query:"from"`
	To     *time.Time `query:"to"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type SessionResponse struct {
	SessionID      uuid.UUID  `json:"session_id"`
	SessionTypeID  uuid.UUID  `json:"session_type_id"`
	SessionName    string     `json:"session_name"`
	SessionStartAt time.Time  `json:"session_start_at"`
	SessionEndAt   *time.Time `json:"session_end_at,omitempty"`
	SessionStatus  string     `json:"session_status"`
	SessionNotes   *string    `json:"session_notes,omitempty"`
	SessionCreatedAt time.Time `json:"session_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r UpdateSessionRequest) ToUpdates() map[string]any {
	updates := map[string]any{}
	if r.SessionName != nil {
		updates["session_name"] = *r.SessionName
	}
	if r.SessionStartAt != nil {
		updates["session_start_at"] = *r.SessionStartAt
	}
	if r.SessionEndAt != nil {
		updates["session_end_at"] = *r.SessionEndAt
	}
	if r.SessionStatus != nil {
		updates["session_status"] = *r.SessionStatus
	}
	if r.SessionNotes != nil {
		updates["session_notes"] = *r.SessionNotes
	}
	return updates
}

func FromSessionModel(mdl m.SessionModel) SessionResponse {
	return SessionResponse{
		SessionID:        mdl.SessionID,
		SessionTypeID:    mdl.SessionTypeID,
		SessionName:      mdl.SessionName,
		SessionStartAt:   mdl.SessionStartAt,
		SessionEndAt:     mdl.SessionEndAt,
		SessionStatus:    string(mdl.SessionStatus),
		SessionNotes:     mdl.SessionNotes,
		SessionCreatedAt: mdl.SessionCreatedAt,
	}
}

func FromSessionModels(mdls []m.SessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, FromSessionModel(mdl))
	}
	return out
}
