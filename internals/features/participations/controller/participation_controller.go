package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"guildku_backend/internals/features/participations/dto"
	"guildku_backend/internals/features/participations/model"
	"guildku_backend/internals/features/participations/service"
	helper "guildku_backend/internals/helpers"
)

type ParticipationController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewParticipationController(db *gorm.DB) *ParticipationController {
	return &ParticipationController{
		DB:     db,
		Ledger: service.NewLedgerService(db),
	}
}

/* ===================== LIST ===================== */
// GET /sessions/:id/participations
func (ctrl *ParticipationController) ListBySession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	paging := helper.ResolvePaging(c, 20, 200)

	var total int64
	if err := ctrl.DB.Model(&model.ParticipationModel{}).
		Where("participation_session_id = ?", sessionID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.ParticipationModel
	if err := ctrl.DB.
		Where("participation_session_id = ?", sessionID).
		Order("participation_created_at ASC, participation_id ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil participations")
	}

	return helper.JsonList(c, "ok",
		dto.FromParticipationModels(rows),
		helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	)
}

/* ===================== BULK UPSERT (merge) ===================== */
// POST /sessions/:id/participations/bulk-upsert
func (ctrl *ParticipationController) BulkUpsert(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var items []dto.BulkUpsertItem
	if err := c.BodyParser(&items); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	for i := range items {
		if err := v.Struct(items[i]); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	merge := make([]service.MergeItem, 0, len(items))
	for _, it := range items {
		merge = append(merge, it.ToMergeItem())
	}

	merged, err := ctrl.Ledger.BulkMerge(sessionID, merge, actor)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Participations berhasil di-merge", dto.FromParticipationModels(merged))
}

/* ===================== DELETE ===================== */
// DELETE /sessions/:id/participations/:pid
func (ctrl *ParticipationController) Delete(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}
	participationID, err := uuid.Parse(c.Params("pid"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID participation tidak valid")
	}

	if err := ctrl.Ledger.Delete(sessionID, participationID); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Participation berhasil dihapus", fiber.Map{"participation_id": participationID})
}
