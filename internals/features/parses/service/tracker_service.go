package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"guildku_backend/internals/features/parses/dto"
	"guildku_backend/internals/features/parses/model"
	sessionModel "guildku_backend/internals/features/activities/sessions/model"
)

// TrackerService mengelola daur hidup parse job:
// queued → processing → (succeeded | failed | canceled | timeout).
// Status terminal bersifat absorbing; update mundur diabaikan.
type TrackerService struct {
	DB *gorm.DB
}

func NewTrackerService(db *gorm.DB) *TrackerService {
	return &TrackerService{DB: db}
}

// UploadedScreenshot satu gambar yang sudah dikompres & diunggah ke storage.
type UploadedScreenshot struct {
	URL      string
	Mime     string
	Filename string
	Data     []byte
}

/* ===================== CREATE ===================== */

// CreateJobs membuat job queued untuk tiap screenshot lalu submit ke workflow.
// Satu submit gagal = seluruh batch rollback (tidak ada job setengah jadi).
func (s *TrackerService) CreateJobs(sessionID uuid.UUID, uploads []UploadedScreenshot, client *WorkflowClient) ([]model.ParseJobModel, error) {
	if len(uploads) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Minimal satu screenshot")
	}

	var jobs []model.ParseJobModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var session sessionModel.SessionModel
		if err := tx.First(&session, "session_id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Sesi tidak ditemukan")
			}
			return err
		}

		for _, up := range uploads {
			job := model.ParseJobModel{
				ParseJobSessionID: sessionID,
				ParseJobImageURL:  up.URL,
				ParseJobMime:      up.Mime,
				ParseJobStatus:    model.ParseJobStatusQueued,
			}
			if err := tx.Create(&job).Error; err != nil {
				return err
			}
			if err := client.Submit(job.ParseJobID, sessionID, up.Filename, up.Mime, up.Data); err != nil {
				log.Printf("[PARSE] ❌ submit job %s gagal: %v", job.ParseJobID, err)
				return fiber.NewError(fiber.StatusBadGateway, "Workflow eksternal tidak tersedia")
			}
			jobs = append(jobs, job)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

/* ===================== UPDATE ===================== */

// ApplyExternalUpdate menerapkan laporan status dari workflow (webhook).
// Idempoten: status sama = no-op. Monoton: job terminal tidak berubah lagi,
// dan processing tidak bisa mundur ke queued.
func (s *TrackerService) ApplyExternalUpdate(jobID uuid.UUID, status model.ParseJobStatus, pairs []model.ExtractedPair, errText *string) (model.ParseJobModel, error) {
	var job model.ParseJobModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "parse_job_id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Parse job tidak ditemukan")
			}
			return err
		}

		if job.ParseJobStatus.IsTerminal() || job.ParseJobStatus == status {
			return nil // absorbing / idempoten
		}
		if status == model.ParseJobStatusQueued {
			return nil // laporan basi, abaikan
		}

		updates := map[string]interface{}{
			"parse_job_status":     status,
			"parse_job_updated_at": time.Now(),
		}
		if status == model.ParseJobStatusSucceeded {
			raw, err := sonic.Marshal(pairs)
			if err != nil {
				return fmt.Errorf("gagal serialisasi hasil parse: %w", err)
			}
			updates["parse_job_data"] = datatypes.JSON(raw)
		}
		if errText != nil {
			updates["parse_job_error"] = *errText
		}

		if err := tx.Model(&model.ParseJobModel{}).
			Where("parse_job_id = ?", jobID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&job, "parse_job_id = ?", jobID).Error
	})
	return job, err
}

// Cancel membatalkan job yang belum terminal. Job terminal dibiarkan apa
// adanya (data hasil parse tidak dihapus).
func (s *TrackerService) Cancel(jobID uuid.UUID) (model.ParseJobModel, error) {
	var job model.ParseJobModel
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&job, "parse_job_id = ?", jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Parse job tidak ditemukan")
			}
			return err
		}
		if job.ParseJobStatus.IsTerminal() {
			return nil // sudah selesai, cancel = no-op
		}
		if err := tx.Model(&model.ParseJobModel{}).
			Where("parse_job_id = ?", jobID).
			Updates(map[string]interface{}{
				"parse_job_status":     model.ParseJobStatusCanceled,
				"parse_job_updated_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		return tx.First(&job, "parse_job_id = ?", jobID).Error
	})
	return job, err
}

/* ===================== LIST ===================== */

func (s *TrackerService) List(sessionID uuid.UUID, filter dto.FilterParseJobRequest, limit, offset int) ([]model.ParseJobModel, int64, error) {
	q := s.DB.Model(&model.ParseJobModel{}).
		Where("parse_job_session_id = ?", sessionID)
	if filter.Status != nil {
		q = q.Where("parse_job_status = ?", *filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []model.ParseJobModel
	if err := q.Order("parse_job_created_at DESC, parse_job_id").
		Limit(limit).Offset(offset).
		Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

/* ===================== TIMEOUT SWEEP ===================== */

// SweepStale menandai job queued/processing yang melewati batas umur sebagai
// timeout. Dipanggil berkala oleh scheduler.
func (s *TrackerService) SweepStale(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res := s.DB.Model(&model.ParseJobModel{}).
		Where("parse_job_status IN ?", []model.ParseJobStatus{
			model.ParseJobStatusQueued,
			model.ParseJobStatusProcessing,
		}).
		Where("parse_job_created_at < ?", cutoff).
		Updates(map[string]interface{}{
			"parse_job_status":     model.ParseJobStatusTimeout,
			"parse_job_updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

// DecodePairs membaca kolom JSON hasil ekstraksi.
func DecodePairs(raw datatypes.JSON) []model.ExtractedPair {
	if len(raw) == 0 {
		return nil
	}
	var pairs []model.ExtractedPair
	if err := sonic.Unmarshal(raw, &pairs); err != nil {
		return nil
	}
	return pairs
}
