package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	m "guildku_backend/internals/features/activities/activity_types/model"
	"guildku_backend/internals/helpers/dbtime"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type ScheduleRuleRequest struct {
	Weekdays []int64 `json:"weekdays" validate:"required,min=1,dive,min=0,max=6"`
	Time     string  `json:"time" validate:"required,len=5"` // "HH:MM"
}

type CreateActivityTypeRequest struct {
	ActivityTypeCode            string               `json:"activity_type_code" validate:"required,max=50"`
	ActivityTypeName            string               `json:"activity_type_name" validate:"required,max=100"`
	ActivityTypeEnabled         *bool                `json:"activity_type_enabled"`
	ActivityTypeScheduleRule    *ScheduleRuleRequest `json:"activity_type_schedule_rule"`
	ActivityTypeDurationMinutes *int                 `json:"activity_type_duration_minutes" validate:"omitempty,min=1,max=1440"`
}

// Update (partial)
type UpdateActivityTypeRequest struct {
	ActivityTypeCode            *string              `json:"activity_type_code" validate:"omitempty,max=50"`
	ActivityTypeName            *string              `json:"activity_type_name" validate:"omitempty,max=100"`
	ActivityTypeEnabled         *bool                `json:"activity_type_enabled"`
	ActivityTypeScheduleRule    *ScheduleRuleRequest `json:"activity_type_schedule_rule"`
	ActivityTypeDurationMinutes *int                 `json:"activity_type_duration_minutes" validate:"omitempty,min=1,max=1440"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type ScheduleRuleResponse struct {
	Weekdays []int64 `json:"weekdays"`
	Time     string  `json:"time"`
}

type ActivityTypeResponse struct {
	ActivityTypeID              uuid.UUID             `json:"activity_type_id"`
	ActivityTypeCode            string                `json:"activity_type_code"`
	ActivityTypeName            string                `json:"activity_type_name"`
	ActivityTypeEnabled         bool                  `json:"activity_type_enabled"`
	ActivityTypeScheduleRule    *ScheduleRuleResponse `json:"activity_type_schedule_rule,omitempty"`
	ActivityTypeDurationMinutes int                   `json:"activity_type_duration_minutes"`
	ActivityTypeNextStartAt     *time.Time            `json:"activity_type_next_start_at,omitempty"`
	ActivityTypeCreatedAt       time.Time             `json:"activity_type_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateActivityTypeRequest) ToModel() (m.ActivityTypeModel, error) {
	mdl := m.ActivityTypeModel{
		ActivityTypeCode:            r.ActivityTypeCode,
		ActivityTypeName:            r.ActivityTypeName,
		ActivityTypeEnabled:         true,
		ActivityTypeDurationMinutes: 120,
	}
	if r.ActivityTypeEnabled != nil {
		mdl.ActivityTypeEnabled = *r.ActivityTypeEnabled
	}
	if r.ActivityTypeDurationMinutes != nil {
		mdl.ActivityTypeDurationMinutes = *r.ActivityTypeDurationMinutes
	}
	if r.ActivityTypeScheduleRule != nil {
		tod, err := dbtime.Parse(r.ActivityTypeScheduleRule.Time)
		if err != nil {
			return mdl, err
		}
		mdl.ActivityTypeScheduleWeekdays = pq.Int64Array(r.ActivityTypeScheduleRule.Weekdays)
		mdl.ActivityTypeScheduleTime = &tod
	}
	return mdl, nil
}

func (r UpdateActivityTypeRequest) ToUpdates() (map[string]any, error) {
	updates := map[string]any{}
	if r.ActivityTypeCode != nil {
		updates["activity_type_code"] = *r.ActivityTypeCode
	}
	if r.ActivityTypeName != nil {
		updates["activity_type_name"] = *r.ActivityTypeName
	}
	if r.ActivityTypeEnabled != nil {
		updates["activity_type_enabled"] = *r.ActivityTypeEnabled
	}
	if r.ActivityTypeDurationMinutes != nil {
		updates["activity_type_duration_minutes"] = *r.ActivityTypeDurationMinutes
	}
	if r.ActivityTypeScheduleRule != nil {
		tod, err := dbtime.Parse(r.ActivityTypeScheduleRule.Time)
		if err != nil {
			return nil, err
		}
		updates["activity_type_schedule_weekdays"] = pq.Int64Array(r.ActivityTypeScheduleRule.Weekdays)
		updates["activity_type_schedule_time"] = tod
	}
	return updates, nil
}

func FromActivityTypeModel(mdl m.ActivityTypeModel, nextStartAt *time.Time) ActivityTypeResponse {
	resp := ActivityTypeResponse{
		ActivityTypeID:              mdl.ActivityTypeID,
		ActivityTypeCode:            mdl.ActivityTypeCode,
		ActivityTypeName:            mdl.ActivityTypeName,
		ActivityTypeEnabled:         mdl.ActivityTypeEnabled,
		ActivityTypeDurationMinutes: mdl.ActivityTypeDurationMinutes,
		ActivityTypeNextStartAt:     nextStartAt,
		ActivityTypeCreatedAt:       mdl.ActivityTypeCreatedAt,
	}
	if len(mdl.ActivityTypeScheduleWeekdays) > 0 && mdl.ActivityTypeScheduleTime != nil {
		resp.ActivityTypeScheduleRule = &ScheduleRuleResponse{
			Weekdays: mdl.ActivityTypeScheduleWeekdays,
			Time:     mdl.ActivityTypeScheduleTime.Format("15:04"),
		}
	}
	return resp
}
