package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"guildku_backend/internals/features/activities/activity_types/dto"
	"guildku_backend/internals/features/activities/activity_types/model"
	"guildku_backend/internals/features/activities/activity_types/service"
	sessionModel "guildku_backend/internals/features/activities/sessions/model"
	helper "guildku_backend/internals/helpers"
)

type ActivityTypeController struct {
	DB *gorm.DB
}

func NewActivityTypeController(db *gorm.DB) *ActivityTypeController {
	return &ActivityTypeController{DB: db}
}

/* ===================== LIST ===================== */
// GET /activity-types
func (ctrl *ActivityTypeController) List(c *fiber.Ctx) error {
	var types []model.ActivityTypeModel
	if err := ctrl.DB.Order("activity_type_created_at ASC").Find(&types).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar activity type")
	}

	now := time.Now()
	out := make([]dto.ActivityTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, dto.FromActivityTypeModel(t, service.NextStartAt(t, now)))
	}
	return helper.JsonOK(c, "ok", out)
}

/* ===================== CREATE ===================== */
// POST /activity-types
func (ctrl *ActivityTypeController) Create(c *fiber.Ctx) error {
	var req dto.CreateActivityTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	mdl, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format jam jadwal tidak valid (pakai HH:MM)")
	}

	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Kode activity type sudah dipakai")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat activity type")
	}

	return helper.JsonCreated(c, "Activity type berhasil dibuat", dto.FromActivityTypeModel(mdl, service.NextStartAt(mdl, time.Now())))
}

/* ===================== UPDATE (partial) ===================== */
// PUT /activity-types/:id
func (ctrl *ActivityTypeController) Update(c *fiber.Ctx) error {
	typeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateActivityTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	updates, err := req.ToUpdates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format jam jadwal tidak valid (pakai HH:MM)")
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", nil)
	}

	tx := ctrl.DB.Model(&model.ActivityTypeModel{}).
		Where("activity_type_id = ?", typeID).
		Updates(updates)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengubah activity type")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Activity type tidak ditemukan")
	}

	var updated model.ActivityTypeModel
	if err := ctrl.DB.Where("activity_type_id = ?", typeID).First(&updated).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca data terbaru")
	}
	return helper.JsonUpdated(c, "Activity type berhasil diubah", dto.FromActivityTypeModel(updated, service.NextStartAt(updated, time.Now())))
}

/* ===================== DELETE ===================== */
// DELETE /activity-types/:id
func (ctrl *ActivityTypeController) Delete(c *fiber.Ctx) error {
	typeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	// tolak hapus kalau masih ada session yang menunjuk ke type ini
	var count int64
	if err := ctrl.DB.Model(&sessionModel.SessionModel{}).
		Where("session_type_id = ?", typeID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Masih ada session yang memakai activity type ini")
	}

	tx := ctrl.DB.Where("activity_type_id = ?", typeID).Delete(&model.ActivityTypeModel{})
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus activity type")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Activity type tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Activity type berhasil dihapus", fiber.Map{"activity_type_id": typeID})
}
