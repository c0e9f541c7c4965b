package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"guildku_backend/internals/features/activities/sessions/dto"
	"guildku_backend/internals/features/activities/sessions/model"
	"guildku_backend/internals/features/activities/sessions/service"
	helper "guildku_backend/internals/helpers"
)

type SessionController struct {
	DB      *gorm.DB
	Service *service.SessionService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{
		DB:      db,
		Service: service.NewSessionService(db),
	}
}

/* ===================== LIST ===================== */
// GET /sessions?type_id=&status=&from=&to=
func (ctrl *SessionController) List(c *fiber.Ctx) error {
	var filter dto.FilterSessionRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.SessionModel{})
	if filter.TypeID != nil {
		q = q.Where("session_type_id = ?", *filter.TypeID)
	}
	if filter.Status != nil {
		q = q.Where("session_status = ?", *filter.Status)
	}
	if filter.From != nil {
		q = q.Where("session_start_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("session_start_at <= ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.SessionModel
	if err := q.Order("session_start_at DESC, session_id").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil sessions")
	}

	return helper.JsonList(c, "ok",
		dto.FromSessionModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	)
}

/* ===================== DETAIL ===================== */
// GET /sessions/:id
func (ctrl *SessionController) GetByID(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	var sess model.SessionModel
	if err := ctrl.DB.First(&sess, "session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", dto.FromSessionModel(sess))
}

/* ===================== CREATE ===================== */
// POST /sessions
func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	created, seeded, err := ctrl.Service.Create(req, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Session berhasil dibuat", fiber.Map{
		"session":            dto.FromSessionModel(created),
		"seeded_participants": seeded,
	})
}

/* ===================== UPDATE ===================== */
// PUT /sessions/:id
func (ctrl *SessionController) Update(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	var req dto.UpdateSessionRequest
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

	res := ctrl.DB.Model(&model.SessionModel{}).
		Where("session_id = ?", sessionID).
		Updates(updates)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal update session")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Session tidak ditemukan")
	}

	var sess model.SessionModel
	if err := ctrl.DB.First(&sess, "session_id = ?", sessionID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonUpdated(c, "Session berhasil diperbarui", dto.FromSessionModel(sess))
}

/* ===================== DELETE ===================== */
// DELETE /sessions/:id — cascade ke participations & parse jobs
func (ctrl *SessionController) Delete(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	if err := ctrl.Service.Delete(sessionID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Session berhasil dihapus", fiber.Map{"session_id": sessionID})
}
