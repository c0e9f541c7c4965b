package dto

import (
	"time"

	"github.com/google/uuid"

	m "guildku_backend/internals/features/members/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateMemberRequest struct {
	MemberNickname string     `json:"member_nickname" validate:"required,max=100"`
	MemberQQ       *string    `json:"member_qq" validate:"omitempty,max=20"`
	MemberStatus   *string    `json:"member_status" validate:"omitempty,oneof=active departed"`
	MemberRole     *string    `json:"member_role" validate:"omitempty,oneof=trainee member senior leader"`
	MemberJoinAt   *time.Time `json:"member_join_at"`
	MemberRemark   *string    `json:"member_remark" validate:"omitempty,max=500"`
}

// Update (partial)
type UpdateMemberRequest struct {
	MemberNickname *string    `json:"member_nickname" validate:"omitempty,max=100"`
	MemberQQ       *string    `json:"member_qq" validate:"omitempty,max=20"`
	MemberStatus   *string    `json:"member_status" validate:"omitempty,oneof=active departed"`
	MemberRole     *string    `json:"member_role" validate:"omitempty,oneof=trainee member senior leader"`
	MemberJoinAt   *time.Time `json:"member_join_at"`
	MemberLeaveAt  *time.Time `json:"member_leave_at"`
	MemberRemark   *string    `json:"member_remark" validate:"omitempty,max=500"`
}

type FilterMemberRequest struct {
	Keyword *string `query:"keyword" validate:"omitempty,max=100"`
	Status  *string `query:"status" validate:"omitempty,oneof=active departed"`
	Role    *string `query:"role" validate:"omitempty,oneof=trainee member senior leader"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type MemberResponse struct {
	MemberID       uuid.UUID  `json:"member_id"`
	MemberNickname string     `json:"member_nickname"`
	MemberQQ       *string    `json:"member_qq,omitempty"`
	MemberStatus   string     `json:"member_status"`
	MemberRole     string     `json:"member_role"`
	MemberJoinAt   time.Time  `json:"member_join_at"`
	MemberLeaveAt  *time.Time `json:"member_leave_at,omitempty"`
	MemberRemark   *string    `json:"member_remark,omitempty"`
	MemberCreatedAt time.Time `json:"member_created_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateMemberRequest) ToModel() m.MemberModel {
	mdl := m.MemberModel{
		MemberNickname: r.MemberNickname,
		MemberQQ:       r.MemberQQ,
		MemberStatus:   m.MemberStatusActive,
		MemberRole:     "member",
		MemberRemark:   r.MemberRemark,
	}
	if r.MemberStatus != nil {
		mdl.MemberStatus = m.MemberStatus(*r.MemberStatus)
	}
	if r.MemberRole != nil {
		mdl.MemberRole = *r.MemberRole
	}
	if r.MemberJoinAt != nil {
		mdl.MemberJoinAt = *r.MemberJoinAt
	}
	return mdl
}

// ToUpdates bikin map kolom→nilai; field nil tidak ikut diupdate (partial).
func (r UpdateMemberRequest) ToUpdates() map[string]any {
	updates := map[string]any{}
	if r.MemberNickname != nil {
		updates["member_nickname"] = *r.MemberNickname
	}
	if r.MemberQQ != nil {
		updates["member_qq"] = *r.MemberQQ
	}
	if r.MemberStatus != nil {
		updates["member_status"] = *r.MemberStatus
	}
	if r.MemberRole != nil {
		updates["member_role"] = *r.MemberRole
	}
	if r.MemberJoinAt != nil {
		updates["member_join_at"] = *r.MemberJoinAt
	}
	if r.MemberLeaveAt != nil {
		updates["member_leave_at"] = *r.MemberLeaveAt
	}
	if r.MemberRemark != nil {
		updates["member_remark"] = *r.MemberRemark
	}
	return updates
}

func FromMemberModel(mdl m.MemberModel) MemberResponse {
	return MemberResponse{
		MemberID:        mdl.MemberID,
		MemberNickname:  mdl.MemberNickname,
		MemberQQ:        mdl.MemberQQ,
		MemberStatus:    string(mdl.MemberStatus),
		MemberRole:      mdl.MemberRole,
		MemberJoinAt:    mdl.MemberJoinAt,
		MemberLeaveAt:   mdl.MemberLeaveAt,
		MemberRemark:    mdl.MemberRemark,
		MemberCreatedAt: mdl.MemberCreatedAt,
	}
}

func FromMemberModels(mdls []m.MemberModel) []MemberResponse {
	out := make([]MemberResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, FromMemberModel(mdl))
	}
	return out
}
