package dto

import (
	"time"

	"github.com/google/uuid"

	"guildku_backend/internals/features/parses/model"
)

/* ===================== REQUEST ===================== */

// ParseCallbackRequest payload dari workflow eksternal (webhook).
type ParseCallbackRequest struct {
	ParseJobID uuid.UUID             `json:"job_id" validate:"required"`
	Status     model.ParseJobStatus  `json:"status" validate:"required,oneof=queued processing succeeded failed canceled timeout"`
	Data       []model.ExtractedPair `json:"data,omitempty"`
	Error      *string               `json:"error,omitempty"`
}

type FilterParseJobRequest struct {
	Status *model.ParseJobStatus `query:"status" validate:"omitempty,oneof=queued processing succeeded failed canceled timeout"`
}

// ReconcileCommitRequest body POST reconcile: koreksi manual per baris
// (opsional) plus daftar nama baris yang dibuang sebelum commit. Baris yang
// tidak disentuh memakai hasil fuzzy match + status otomatis dari skor.
type ReconcileCommitRequest struct {
	Overrides []ReconcileOverride `json:"overrides" validate:"omitempty,dive"`
	Removals  []string            `json:"removals" validate:"omitempty,dive,required"`
}

// ReconcileOverride koreksi satu baris hasil parse: member_id untuk baris yang
// salah/gagal dipetakan, status/score untuk mengubah hasil otomatis.
type ReconcileOverride struct {
	Name     string     `json:"name" validate:"required"`
	MemberID *uuid.UUID `json:"member_id,omitempty"`
	Status   *string    `json:"status,omitempty" validate:"omitempty,oneof=unset participated leave unknown"`
	Score    *float64   `json:"score,omitempty" validate:"omitempty,gte=0"`
}

/* ===================== RESPONSE ===================== */

type ParseJobResponse struct {
	ParseJobID        uuid.UUID             `json:"parse_job_id"`
	ParseJobSessionID uuid.UUID             `json:"parse_job_session_id"`
	ParseJobImageURL  string                `json:"parse_job_image_url"`
	ParseJobMime      string                `json:"parse_job_mime"`
	ParseJobStatus    model.ParseJobStatus  `json:"parse_job_status"`
	ParseJobData      []model.ExtractedPair `json:"parse_job_data,omitempty"`
	ParseJobError     *string               `json:"parse_job_error,omitempty"`
	ParseJobCreatedAt time.Time             `json:"parse_job_created_at"`
	ParseJobUpdatedAt *time.Time            `json:"parse_job_updated_at,omitempty"`
}

func FromParseJobModel(m model.ParseJobModel, pairs []model.ExtractedPair) ParseJobResponse {
	return ParseJobResponse{
		ParseJobID:        m.ParseJobID,
		ParseJobSessionID: m.ParseJobSessionID,
		ParseJobImageURL:  m.ParseJobImageURL,
		ParseJobMime:      m.ParseJobMime,
		ParseJobStatus:    m.ParseJobStatus,
		ParseJobData:      pairs,
		ParseJobError:     m.ParseJobError,
		ParseJobCreatedAt: m.ParseJobCreatedAt,
		ParseJobUpdatedAt: m.ParseJobUpdatedAt,
	}
}

// ReconcileRowResponse satu baris hasil perakitan untuk review admin.
type ReconcileRowResponse struct {
	Name           string     `json:"name"`
	Score          float64    `json:"score"`
	MemberID       *uuid.UUID `json:"member_id,omitempty"`
	MemberNickname *string    `json:"member_nickname,omitempty"`
	Matched        bool       `json:"matched"`
	Status         string     `json:"status"`
}

type ReconcileResponse struct {
	ParseJobID uuid.UUID              `json:"parse_job_id"`
	SessionID  uuid.UUID              `json:"session_id"`
	Rows       []ReconcileRowResponse `json:"rows"`
	Matched    int                    `json:"matched"`
	Unmatched  int                    `json:"unmatched"`
}
