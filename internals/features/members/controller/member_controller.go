package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"guildku_backend/internals/features/members/dto"
	"guildku_backend/internals/features/members/model"
	helper "guildku_backend/internals/helpers"
)

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

/* ===================== LIST ===================== */
// GET /members?keyword=&status=&role=
func (ctrl *MemberController) List(c *fiber.Ctx) error {
	var filter dto.FilterMemberRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctrl.DB.Model(&model.MemberModel{})
	if filter.Keyword != nil && *filter.Keyword != "" {
		kw := "%" + *filter.Keyword + "%"
		q = q.Where("member_nickname LIKE ? OR member_qq LIKE ?", kw, kw)
	}
	if filter.Status != nil {
		q = q.Where("member_status = ?", *filter.Status)
	}
	if filter.Role != nil {
		q = q.Where("member_role = ?", *filter.Role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.MemberModel
	if err := q.Order("member_created_at ASC, member_id ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil members")
	}

	return helper.JsonList(c, "ok",
		dto.FromMemberModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	)
}

/* ===================== DETAIL ===================== */
// GET /members/:id
func (ctrl *MemberController) GetByID(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID member tidak valid")
	}

	var mb model.MemberModel
	if err := ctrl.DB.First(&mb, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", dto.FromMemberModel(mb))
}

/* ===================== CREATE ===================== */
// POST /members
func (ctrl *MemberController) Create(c *fiber.Ctx) error {
	var req dto.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Nickname sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat member")
	}
	return helper.JsonCreated(c, "Member berhasil dibuat", dto.FromMemberModel(mdl))
}

/* ===================== UPDATE ===================== */
// PUT /members/:id
func (ctrl *MemberController) Update(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID member tidak valid")
	}

	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates := req.ToUpdates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada field yang diubah")
	}

	res := ctrl.DB.Model(&model.MemberModel{}).
		Where("member_id = ?", memberID).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update member")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Member tidak ditemukan")
	}

	var mb model.MemberModel
	if err := ctrl.DB.First(&mb, "member_id = ?", memberID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonUpdated(c, "Member berhasil diperbarui", dto.FromMemberModel(mb))
}

/* ===================== RIWAYAT PARTISIPASI ===================== */

type memberHistoryRow struct {
	ParticipationID     uuid.UUID `gorm:"column:participation_id" json:"participation_id"`
	ParticipationStatus string    `gorm:"column:participation_status" json:"participation_status"`
	ParticipationScore  float64   `gorm:"column:participation_score" json:"participation_score"`
	SessionID           uuid.UUID `gorm:"column:session_id" json:"session_id"`
	SessionName         string    `gorm:"column:session_name" json:"session_name"`
	SessionTypeID       uuid.UUID `gorm:"column:session_type_id" json:"session_type_id"`
	SessionStartAt      time.Time `gorm:"column:session_start_at" json:"session_start_at"`
}

// GET /members/:id/participations?type_id=&from=&to=
func (ctrl *MemberController) ListParticipations(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID member tidak valid")
	}

	var mb model.MemberModel
	if err := ctrl.DB.Select("member_id").First(&mb, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Table("participations").
		Select(`participations.participation_id,
			participations.participation_status,
			participations.participation_score,
			sessions.session_id,
			sessions.session_name,
			sessions.session_type_id,
			sessions.session_start_at`).
		Joins("JOIN sessions ON sessions.session_id = participations.participation_session_id").
		Where("participations.participation_member_id = ?", memberID)

	if raw := c.Query("type_id"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "type_id tidak valid")
		}
		q = q.Where("sessions.session_type_id = ?", typeID)
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from tidak valid (RFC3339)")
		}
		q = q.Where("sessions.session_start_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to tidak valid (RFC3339)")
		}
		q = q.Where("sessions.session_start_at <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []memberHistoryRow
	if err := q.Order("sessions.session_start_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil riwayat partisipasi")
	}

	return helper.JsonList(c, "ok", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
