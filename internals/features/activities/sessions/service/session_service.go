package service

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	typeModel "guildku_backend/internals/features/activities/activity_types/model"
	typeService "guildku_backend/internals/features/activities/activity_types/service"
	"guildku_backend/internals/features/activities/sessions/dto"
	"guildku_backend/internals/features/activities/sessions/model"
	parseModel "guildku_backend/internals/features/parses/model"
	participationModel "guildku_backend/internals/features/participations/model"
	ledger "guildku_backend/internals/features/participations/service"
)

// SessionService pegang side effect pembuatan/penghapusan session:
// create men-seed ledger, delete cascade ke ledger & parse jobs.
// Dua-duanya satu transaksi, bukan efek samping tersembunyi.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// Create bikin session baru + seed satu baris unset per member aktif.
func (s *SessionService) Create(req dto.CreateSessionRequest, actor uuid.UUID) (model.SessionModel, int, error) {
	var created model.SessionModel
	seeded := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var actType typeModel.ActivityTypeModel
		if err := tx.Where("activity_type_id = ?", req.SessionTypeID).
			First(&actType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Activity type tidak ditemukan")
			}
			return err
		}

		created = model.SessionModel{
			SessionTypeID:  req.SessionTypeID,
			SessionName:    req.SessionName,
			SessionStartAt: req.SessionStartAt,
			SessionEndAt:   req.SessionEndAt,
			SessionStatus:  model.SessionStatusDraft,
			SessionNotes:   req.SessionNotes,
		}
		if req.SessionStatus != nil {
			created.SessionStatus = model.SessionStatus(*req.SessionStatus)
		}
		if created.SessionEndAt == nil {
			end := typeService.DefaultEndAt(actType, created.SessionStartAt)
			created.SessionEndAt = &end
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		// invariant: ledger dense untuk semua member aktif saat create
		n, err := ledger.NewLedgerService(tx).SeedForSession(tx, created.SessionID, actor)
		if err != nil {
			return err
		}
		seeded = n
		return nil
	})
	if err != nil {
		return model.SessionModel{}, 0, err
	}
	return created, seeded, nil
}

// Delete hapus session + seluruh participation & parse job miliknya.
func (s *SessionService) Delete(sessionID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("session_id = ?", sessionID).Delete(&model.SessionModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Session tidak ditemukan")
		}

		if err := tx.Where("participation_session_id = ?", sessionID).
			Delete(&participationModel.ParticipationModel{}).Error; err != nil {
			return err
		}
		return tx.Where("parse_job_session_id = ?", sessionID).
			Delete(&parseModel.ParseJobModel{}).Error
	})
}
