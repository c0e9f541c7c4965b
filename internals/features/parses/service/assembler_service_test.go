package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	memberModel "guildku_backend/internals/features/members/model"
	"guildku_backend/internals/features/parses/dto"
	"guildku_backend/internals/features/parses/model"
	participationModel "guildku_backend/internals/features/participations/model"
)

func seedMember(t *testing.T, db *gorm.DB, nickname string) memberModel.MemberModel {
	t.Helper()
	mb := memberModel.MemberModel{
		MemberNickname: nickname,
		MemberStatus:   memberModel.MemberStatusActive,
		MemberRole:     "member",
		MemberJoinAt:   time.Now(),
	}
	require.NoError(t, db.Create(&mb).Error)
	return mb
}

func seedSucceededJob(t *testing.T, db *gorm.DB, tracker *TrackerService, sessionID uuid.UUID, pairs []model.ExtractedPair) model.ParseJobModel {
	t.Helper()
	job := seedJob(t, db, sessionID, model.ParseJobStatusQueued)
	done, err := tracker.ApplyExternalUpdate(job.ParseJobID, model.ParseJobStatusSucceeded, pairs, nil)
	require.NoError(t, err)
	return done
}

func TestAssembleMatchesAndInfersStatus(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)

	naruto := seedMember(t, db, "Naruto Uzumaki")
	sasuke := seedMember(t, db, "Sasuke")
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 80},
		{Name: "sasuke", Score: 0},
		{Name: "Hantu", Score: 10},
	})

	got, rows, err := asm.Assemble(job.ParseJobID)
	require.NoError(t, err)
	require.Equal(t, job.ParseJobID, got.ParseJobID)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].Member)
	require.Equal(t, naruto.MemberID, rows[0].Member.MemberID)
	require.NotNil(t, rows[1].Member)
	require.Equal(t, sasuke.MemberID, rows[1].Member.MemberID)
	require.Nil(t, rows[2].Member)

	resp := ToResponse(got, rows)
	require.Equal(t, sess.SessionID, resp.SessionID)
	require.Equal(t, 2, resp.Matched)
	require.Equal(t, 1, resp.Unmatched)
	require.Equal(t, string(participationModel.ParticipationStatusParticipated), resp.Rows[0].Status)
	require.Equal(t, string(participationModel.ParticipationStatusUnknown), resp.Rows[1].Status)
}

func TestAssembleRejectsNonSucceededJob(t *testing.T) {
	db := newTestDB(t)
	asm := NewAssemblerService(db)
	sess := seedSession(t, db)

	job := seedJob(t, db, sess.SessionID, model.ParseJobStatusProcessing)

	_, _, err := asm.Assemble(job.ParseJobID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusConflict, fe.Code)

	_, _, err = asm.Assemble(uuid.New())
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestAssembleLastPairWinsOnDuplicateName(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)

	seedMember(t, db, "Naruto Uzumaki")
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 30},
		{Name: "NARUTO", Score: 75},
	})

	_, rows, err := asm.Assemble(job.ParseJobID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 75.0, rows[0].Score)
}

func TestCommitRejectsUnresolvedRowsWhole(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)

	seedMember(t, db, "Naruto Uzumaki")
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 80},
		{Name: "Hantu", Score: 10},
	})

	_, unresolved, err := asm.Commit(job.ParseJobID, nil, nil, uuid.New())
	require.NotEmpty(t, unresolved)

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)

	// satu baris tak terpetakan = tidak ada satu pun yang ditulis
	var count int64
	require.NoError(t, db.Model(&participationModel.ParticipationModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCommitWithOverrideWritesLedger(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)
	actor := uuid.New()

	naruto := seedMember(t, db, "Naruto Uzumaki")
	hinata := seedMember(t, db, "Hinata")
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 80},
		{Name: "Hantu", Score: 0},
	})

	recs, unresolved, err := asm.Commit(job.ParseJobID, []dto.ReconcileOverride{
		{Name: "Hantu", MemberID: &hinata.MemberID},
	}, nil, actor)
	require.NoError(t, err)
	require.Empty(t, unresolved)
	require.Len(t, recs, 2)

	var narutoRec participationModel.ParticipationModel
	require.NoError(t, db.Where("participation_session_id = ? AND participation_member_id = ?",
		sess.SessionID, naruto.MemberID).First(&narutoRec).Error)
	require.Equal(t, participationModel.ParticipationStatusParticipated, narutoRec.ParticipationStatus)
	require.Equal(t, 80.0, narutoRec.ParticipationScore)
	require.Equal(t, actor, narutoRec.ParticipationSetBy)

	var hinataRec participationModel.ParticipationModel
	require.NoError(t, db.Where("participation_session_id = ? AND participation_member_id = ?",
		sess.SessionID, hinata.MemberID).First(&hinataRec).Error)
	require.Equal(t, participationModel.ParticipationStatusUnknown, hinataRec.ParticipationStatus)
	require.Equal(t, 0.0, hinataRec.ParticipationScore)
}

func TestCommitAfterRemovingUnresolvedRow(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)
	actor := uuid.New()

	naruto := seedMember(t, db, "Naruto Uzumaki")
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 80},
		{Name: "Hantu", Score: 10},
	})

	// tanpa removal baris "Hantu" menggagalkan seluruh commit
	_, unresolved, err := asm.Commit(job.ParseJobID, nil, nil, actor)
	require.Error(t, err)
	require.NotEmpty(t, unresolved)

	recs, unresolved, err := asm.Commit(job.ParseJobID, nil, []string{"HANTU "}, actor)
	require.NoError(t, err)
	require.Empty(t, unresolved)
	require.Len(t, recs, 1)
	require.Equal(t, naruto.MemberID, recs[0].ParticipationMemberID)
	require.Equal(t, 80.0, recs[0].ParticipationScore)

	var count int64
	require.NoError(t, db.Model(&participationModel.ParticipationModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCommitHonorsStatusAndScoreOverride(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)
	actor := uuid.New()

	naruto := seedMember(t, db, "Naruto Uzumaki")
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 0},
	})

	// skor 0 normalnya jadi unknown; admin koreksi jadi leave dengan skor baru
	leave := string(participationModel.ParticipationStatusLeave)
	score := 15.0
	recs, unresolved, err := asm.Commit(job.ParseJobID, []dto.ReconcileOverride{
		{Name: "naruto", Status: &leave, Score: &score},
	}, nil, actor)
	require.NoError(t, err)
	require.Empty(t, unresolved)
	require.Len(t, recs, 1)
	require.Equal(t, naruto.MemberID, recs[0].ParticipationMemberID)
	require.Equal(t, participationModel.ParticipationStatusLeave, recs[0].ParticipationStatus)
	require.Equal(t, 15.0, recs[0].ParticipationScore)
}

func TestCommitRejectsWhenAllRowsRemoved(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)
	sess := seedSession(t, db)

	seedMember(t, db, "Naruto Uzumaki")
	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{
		{Name: "naruto", Score: 80},
	})

	_, _, err := asm.Commit(job.ParseJobID, nil, []string{"naruto"}, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestCommitWithoutParsedRows(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	asm := NewAssemblerService(db)
	sess := seedSession(t, db)

	job := seedSucceededJob(t, db, tracker, sess.SessionID, []model.ExtractedPair{})

	_, _, err := asm.Commit(job.ParseJobID, nil, nil, uuid.New())
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusBadRequest, fe.Code)
}
