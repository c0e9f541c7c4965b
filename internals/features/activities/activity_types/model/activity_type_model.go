package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"guildku_backend/internals/helpers/dbtime"
)

type ActivityTypeModel struct {
	ActivityTypeID uuid.UUID `gorm:"type:uuid;primaryKey;column:activity_type_id" json:"activity_type_id"`

	ActivityTypeCode    string `gorm:"size:50;not null;uniqueIndex;column:activity_type_code" json:"activity_type_code"`
	ActivityTypeName    string `gorm:"size:100;not null;column:activity_type_name" json:"activity_type_name"`
	ActivityTypeEnabled bool   `gorm:"not null;default:true;column:activity_type_enabled" json:"activity_type_enabled"`

	// Jadwal mingguan: hari (0=Minggu..6=Sabtu, bisa lebih dari satu) + jam mulai
	ActivityTypeScheduleWeekdays pq.Int64Array `gorm:"type:int[];column:activity_type_schedule_weekdays" json:"activity_type_schedule_weekdays,omitempty"`
	ActivityTypeScheduleTime     *dbtime.Tod   `gorm:"type:time;column:activity_type_schedule_time" json:"activity_type_schedule_time,omitempty"`

	ActivityTypeDurationMinutes int `gorm:"not null;default:120;column:activity_type_duration_minutes" json:"activity_type_duration_minutes"`

	ActivityTypeCreatedAt time.Time  `gorm:"column:activity_type_created_at;autoCreateTime" json:"activity_type_created_at"`
	ActivityTypeUpdatedAt *time.Time `gorm:"column:activity_type_updated_at;autoUpdateTime" json:"activity_type_updated_at,omitempty"`
}

func (ActivityTypeModel) TableName() string { return "activity_types" }

func (m *ActivityTypeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ActivityTypeID == uuid.Nil {
		m.ActivityTypeID = uuid.New()
	}
	return nil
}
