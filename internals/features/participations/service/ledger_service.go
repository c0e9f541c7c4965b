package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "guildku_backend/internals/features/activities/sessions/model"
	memberModel "guildku_backend/internals/features/members/model"
	"guildku_backend/internals/features/participations/model"
)

// LedgerService semua tulisan ke ledger lewat sini (satu pintu merge).
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// MergeItem satu entri merge. Field pointer yang nil artinya "tidak dikirim":
// nilai lama dipertahankan (partial overwrite, bukan replace penuh).
type MergeItem struct {
	MemberID uuid.UUID
	Status   *model.ParticipationStatus
	Score    *float64
	Note     *string
}

// BulkMerge terapkan satu batch merge ke ledger sebuah session.
// Seluruh batch jalan dalam satu transaksi: satu item gagal = batch batal.
// Idempotent: batch yang sama diterapkan dua kali menghasilkan state sama
// (kecuali set_at yang maju).
func (s *LedgerService) BulkMerge(sessionID uuid.UUID, items []MergeItem, actor uuid.UUID) ([]model.ParticipationModel, error) {
	if len(items) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Batch merge kosong")
	}

	// Validasi dulu sebelum menyentuh DB: batch invalid ditolak utuh.
	for i, it := range items {
		if it.MemberID == uuid.Nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Item #%d: member_id wajib diisi", i+1))
		}
		if it.Status != nil && !model.ValidParticipationStatus(*it.Status) {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Item #%d: status %q tidak dikenal", i+1, *it.Status))
		}
		if it.Score != nil && *it.Score < 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Item #%d: score tidak boleh negatif", i+1))
		}
	}

	var merged []model.ParticipationModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Session harus ada
		var sess sessionModel.SessionModel
		if err := tx.Select("session_id").
			Where("session_id = ?", sessionID).
			First(&sess).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Session tidak ditemukan")
			}
			return err
		}

		// Semua member di batch harus dikenal
		memberIDs := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			memberIDs = append(memberIDs, it.MemberID)
		}
		var known int64
		if err := tx.Model(&memberModel.MemberModel{}).
			Where("member_id IN ?", memberIDs).
			Count(&known).Error; err != nil {
			return err
		}
		if known < int64(len(uniqueIDs(memberIDs))) {
			return fiber.NewError(fiber.StatusNotFound, "Ada member di batch yang tidak ditemukan")
		}

		now := time.Now()
		merged = merged[:0]
		for _, it := range items {
			var existing model.ParticipationModel
			err := tx.Where("participation_session_id = ? AND participation_member_id = ?", sessionID, it.MemberID).
				First(&existing).Error

			switch {
			case err == nil:
				// partial overwrite: hanya field yang dikirim
				updates := map[string]any{
					"participation_set_by": actor,
					"participation_set_at": now,
				}
				if it.Status != nil {
					updates["participation_status"] = *it.Status
				}
				if it.Score != nil {
					updates["participation_score"] = *it.Score
				}
				if it.Note != nil {
					updates["participation_note"] = *it.Note
				}
				if err := tx.Model(&model.ParticipationModel{}).
					Where("participation_id = ?", existing.ParticipationID).
					Updates(updates).Error; err != nil {
					return err
				}
				if err := tx.Where("participation_id = ?", existing.ParticipationID).
					First(&existing).Error; err != nil {
					return err
				}
				merged = append(merged, existing)

			case errors.Is(err, gorm.ErrRecordNotFound):
				rec := model.ParticipationModel{
					ParticipationSessionID: sessionID,
					ParticipationMemberID:  it.MemberID,
					ParticipationStatus:    model.ParticipationStatusUnset,
					ParticipationScore:     0,
					ParticipationNote:      it.Note,
					ParticipationSetBy:     actor,
					ParticipationSetAt:     now,
				}
				if it.Status != nil {
					rec.ParticipationStatus = *it.Status
				}
				if it.Score != nil {
					rec.ParticipationScore = *it.Score
				}
				if err := tx.Create(&rec).Error; err != nil {
					return err
				}
				merged = append(merged, rec)

			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// SeedForSession isi satu baris unset per member aktif untuk session baru.
// Dipanggil dalam transaksi pembuatan session supaya ledger selalu dense.
func (s *LedgerService) SeedForSession(tx *gorm.DB, sessionID uuid.UUID, actor uuid.UUID) (int, error) {
	var actives []memberModel.MemberModel
	if err := tx.Select("member_id").
		Where("member_status = ?", memberModel.MemberStatusActive).
		Order("member_created_at ASC, member_id ASC").
		Find(&actives).Error; err != nil {
		return 0, err
	}
	if len(actives) == 0 {
		return 0, nil
	}

	now := time.Now()
	rows := make([]model.ParticipationModel, 0, len(actives))
	for _, mb := range actives {
		rows = append(rows, model.ParticipationModel{
			ParticipationSessionID: sessionID,
			ParticipationMemberID:  mb.MemberID,
			ParticipationStatus:    model.ParticipationStatusUnset,
			ParticipationScore:     0,
			ParticipationSetBy:     actor,
			ParticipationSetAt:     now,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Delete hapus satu baris ledger by id (scoped ke session).
func (s *LedgerService) Delete(sessionID, participationID uuid.UUID) error {
	tx := s.DB.Where("participation_id = ? AND participation_session_id = ?", participationID, sessionID).
		Delete(&model.ParticipationModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Participation tidak ditemukan")
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
