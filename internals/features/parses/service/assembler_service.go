package service

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "guildku_backend/internals/features/members/model"
	"guildku_backend/internals/features/parses/dto"
	"guildku_backend/internals/features/parses/model"
	participationModel "guildku_backend/internals/features/participations/model"
	ledger "guildku_backend/internals/features/participations/service"
)

// AssemblerService merakit hasil satu parse job jadi baris siap merge ke
// ledger. Skor > 0 → participated, selain itu unknown (muncul di screenshot
// tapi tidak tercatat nilainya).
type AssemblerService struct {
	DB *gorm.DB
}

func NewAssemblerService(db *gorm.DB) *AssemblerService {
	return &AssemblerService{DB: db}
}

// AssembledRow satu baris kandidat hasil pencocokan.
type AssembledRow struct {
	Name   string
	Score  float64
	Member *memberModel.MemberModel
}

// Assemble mencocokkan pairs sebuah job succeeded ke roster aktif via fuzzy
// matcher. Nama duplikat (setelah normalisasi) diambil kemunculan terakhir.
func (s *AssemblerService) Assemble(jobID uuid.UUID) (model.ParseJobModel, []AssembledRow, error) {
	var job model.ParseJobModel
	if err := s.DB.First(&job, "parse_job_id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return job, nil, fiber.NewError(fiber.StatusNotFound, "Parse job tidak ditemukan")
		}
		return job, nil, err
	}
	if job.ParseJobStatus != model.ParseJobStatusSucceeded {
		return job, nil, fiber.NewError(fiber.StatusConflict, "Parse job belum succeeded")
	}

	var members []memberModel.MemberModel
	if err := s.DB.
		Where("member_status = ?", memberModel.MemberStatusActive).
		Order("member_created_at, member_id").
		Find(&members).Error; err != nil {
		return job, nil, err
	}

	index := map[string]int{} // normalized name -> posisi di rows
	var rows []AssembledRow
	for _, pair := range DecodePairs(job.ParseJobData) {
		key := normalizeName(pair.Name)
		if key == "" {
			continue
		}
		row := AssembledRow{
			Name:   pair.Name,
			Score:  pair.Score,
			Member: MatchMember(pair.Name, members),
		}
		if pos, ok := index[key]; ok {
			rows[pos] = row
		} else {
			index[key] = len(rows)
			rows = append(rows, row)
		}
	}
	return job, rows, nil
}

// InferStatus aturan status dari skor hasil parse.
func InferStatus(score float64) participationModel.ParticipationStatus {
	if score > 0 {
		return participationModel.ParticipationStatusParticipated
	}
	return participationModel.ParticipationStatusUnknown
}

// ToResponse bentuk review untuk admin sebelum commit.
func ToResponse(job model.ParseJobModel, rows []AssembledRow) dto.ReconcileResponse {
	out := dto.ReconcileResponse{
		ParseJobID: job.ParseJobID,
		SessionID:  job.ParseJobSessionID,
		Rows:       make([]dto.ReconcileRowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp := dto.ReconcileRowResponse{
			Name:    r.Name,
			Score:   r.Score,
			Matched: r.Member != nil,
			Status:  string(InferStatus(r.Score)),
		}
		if r.Member != nil {
			id := r.Member.MemberID
			nick := r.Member.MemberNickname
			resp.MemberID = &id
			resp.MemberNickname = &nick
			out.Matched++
		} else {
			out.Unmatched++
		}
		out.Rows = append(out.Rows, resp)
	}
	return out
}

// Commit menerapkan hasil rakitan sebuah job ke ledger session-nya. Admin bisa
// membuang baris (removals) dan mengoreksi member/status/score per baris
// (overrides) sebelum commit. Semua baris yang tersisa harus punya anggota;
// satu saja tak cocok = seluruh commit ditolak.
func (s *AssemblerService) Commit(jobID uuid.UUID, overrides []dto.ReconcileOverride, removals []string, actor uuid.UUID) ([]participationModel.ParticipationModel, map[string][]string, error) {
	job, rows, err := s.Assemble(jobID)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Job ini tidak punya baris hasil parse")
	}

	removed := map[string]bool{}
	for _, name := range removals {
		removed[normalizeName(name)] = true
	}
	manual := map[string]dto.ReconcileOverride{}
	for _, ov := range overrides {
		manual[normalizeName(ov.Name)] = ov
	}

	unresolved := map[string][]string{}
	items := make([]ledger.MergeItem, 0, len(rows))
	for i, r := range rows {
		key := normalizeName(r.Name)
		if removed[key] {
			continue
		}

		memberID := uuid.Nil
		if r.Member != nil {
			memberID = r.Member.MemberID
		}
		status := InferStatus(r.Score)
		score := r.Score
		if ov, ok := manual[key]; ok {
			if ov.MemberID != nil {
				memberID = *ov.MemberID
			}
			if ov.Status != nil {
				status = participationModel.ParticipationStatus(*ov.Status)
			}
			if ov.Score != nil {
				score = *ov.Score
			}
		}
		if memberID == uuid.Nil {
			field := fmt.Sprintf("rows[%d]", i)
			unresolved[field] = append(unresolved[field], fmt.Sprintf("nama %q tidak cocok dengan anggota manapun", r.Name))
			continue
		}

		items = append(items, ledger.MergeItem{
			MemberID: memberID,
			Status:   &status,
			Score:    &score,
		})
	}
	if len(unresolved) > 0 {
		return nil, unresolved, fiber.NewError(fiber.StatusUnprocessableEntity, "Masih ada baris yang belum terpetakan")
	}
	if len(items) == 0 {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Semua baris dibuang, tidak ada yang di-commit")
	}

	recs, err := ledger.NewLedgerService(s.DB).BulkMerge(job.ParseJobSessionID, items, actor)
	if err != nil {
		return nil, nil, err
	}
	return recs, nil, nil
}
