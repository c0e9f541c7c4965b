package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ParseJobStatus string

const (
	ParseJobStatusQueued     ParseJobStatus = "queued"
	ParseJobStatusProcessing ParseJobStatus = "processing"
	ParseJobStatusSucceeded  ParseJobStatus = "succeeded"
	ParseJobStatusFailed     ParseJobStatus = "failed"
	ParseJobStatusCanceled   ParseJobStatus = "canceled"
	ParseJobStatusTimeout    ParseJobStatus = "timeout"
)

// IsTerminal: succeeded/failed/canceled/timeout bersifat absorbing.
func (s ParseJobStatus) IsTerminal() bool {
	switch s {
	case ParseJobStatusSucceeded, ParseJobStatusFailed,
		ParseJobStatusCanceled, ParseJobStatusTimeout:
		return true
	}
	return false
}

func ValidParseJobStatus(s ParseJobStatus) bool {
	switch s {
	case ParseJobStatusQueued, ParseJobStatusProcessing:
		return true
	}
	return s.IsTerminal()
}

// ExtractedPair satu baris hasil OCR workflow: nama + skor.
type ExtractedPair struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

type ParseJobModel struct {
	ParseJobID uuid.UUID `gorm:"type:uuid;primaryKey;column:parse_job_id" json:"parse_job_id"`

	ParseJobSessionID uuid.UUID `gorm:"type:uuid;not null;index;column:parse_job_session_id" json:"parse_job_session_id"`

	ParseJobImageURL string `gorm:"not null;column:parse_job_image_url" json:"parse_job_image_url"`
	ParseJobMime     string `gorm:"size:50;not null;default:'image/webp';column:parse_job_mime" json:"parse_job_mime"`

	ParseJobStatus ParseJobStatus `gorm:"size:20;not null;default:'queued';index;column:parse_job_status" json:"parse_job_status"`

	// Hasil ekstraksi (array JSON {name, score}); immutable setelah succeeded.
	ParseJobData  datatypes.JSON `gorm:"column:parse_job_data" json:"parse_job_data,omitempty"`
	ParseJobError *string        `gorm:"column:parse_job_error" json:"parse_job_error,omitempty"`

	ParseJobCreatedAt time.Time  `gorm:"column:parse_job_created_at;autoCreateTime" json:"parse_job_created_at"`
	ParseJobUpdatedAt *time.Time `gorm:"column:parse_job_updated_at;autoUpdateTime" json:"parse_job_updated_at,omitempty"`
}

func (ParseJobModel) TableName() string { return "parse_jobs" }

func (m *ParseJobModel) BeforeCreate(tx *gorm.DB) error {
	if m.ParseJobID == uuid.Nil {
		m.ParseJobID = uuid.New()
	}
	return nil
}
