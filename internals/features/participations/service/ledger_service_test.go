package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	sessionModel "guildku_backend/internals/features/activities/sessions/model"
	memberModel "guildku_backend/internals/features/members/model"
	"guildku_backend/internals/features/participations/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&memberModel.MemberModel{},
		&sessionModel.SessionModel{},
		&model.ParticipationModel{},
	))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, nickname string, status memberModel.MemberStatus) memberModel.MemberModel {
	t.Helper()
	mb := memberModel.MemberModel{
		MemberNickname: nickname,
		MemberStatus:   status,
		MemberRole:     "member",
		MemberJoinAt:   time.Now(),
	}
	require.NoError(t, db.Create(&mb).Error)
	return mb
}

func seedSession(t *testing.T, db *gorm.DB, name string, startAt time.Time) sessionModel.SessionModel {
	t.Helper()
	sess := sessionModel.SessionModel{
		SessionTypeID:  uuid.New(),
		SessionName:    name,
		SessionStartAt: startAt,
		SessionStatus:  sessionModel.SessionStatusDraft,
	}
	require.NoError(t, db.Create(&sess).Error)
	return sess
}

func ptrStatus(s model.ParticipationStatus) *model.ParticipationStatus { return &s }
func ptrFloat(f float64) *float64                                     { return &f }

func requireFiberCode(t *testing.T, err error, code int) {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, code, fe.Code)
}

func TestBulkMergePartialOverwrite(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	actor := uuid.New()

	mb := seedMember(t, db, "naruto", memberModel.MemberStatusActive)
	sess := seedSession(t, db, "Perang Guild", time.Now())

	// set status=leave, score=0
	_, err := svc.BulkMerge(sess.SessionID, []MergeItem{
		{MemberID: mb.MemberID, Status: ptrStatus(model.ParticipationStatusLeave), Score: ptrFloat(0)},
	}, actor)
	require.NoError(t, err)

	// merge cuma score: status lama harus bertahan
	_, err = svc.BulkMerge(sess.SessionID, []MergeItem{
		{MemberID: mb.MemberID, Score: ptrFloat(50)},
	}, actor)
	require.NoError(t, err)

	var rec model.ParticipationModel
	require.NoError(t, db.Where("participation_session_id = ? AND participation_member_id = ?",
		sess.SessionID, mb.MemberID).First(&rec).Error)
	require.Equal(t, model.ParticipationStatusLeave, rec.ParticipationStatus)
	require.Equal(t, 50.0, rec.ParticipationScore)
	require.Equal(t, actor, rec.ParticipationSetBy)

	// merge cuma status: score lama harus bertahan
	_, err = svc.BulkMerge(sess.SessionID, []MergeItem{
		{MemberID: mb.MemberID, Status: ptrStatus(model.ParticipationStatusParticipated)},
	}, actor)
	require.NoError(t, err)

	require.NoError(t, db.Where("participation_id = ?", rec.ParticipationID).First(&rec).Error)
	require.Equal(t, model.ParticipationStatusParticipated, rec.ParticipationStatus)
	require.Equal(t, 50.0, rec.ParticipationScore)
}

func TestBulkMergeIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	actor := uuid.New()

	mb := seedMember(t, db, "sasuke", memberModel.MemberStatusActive)
	sess := seedSession(t, db, "Latihan", time.Now())

	batch := []MergeItem{
		{MemberID: mb.MemberID, Status: ptrStatus(model.ParticipationStatusParticipated), Score: ptrFloat(80)},
	}
	_, err := svc.BulkMerge(sess.SessionID, batch, actor)
	require.NoError(t, err)
	_, err = svc.BulkMerge(sess.SessionID, batch, actor)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.ParticipationModel{}).
		Where("participation_session_id = ?", sess.SessionID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)

	var rec model.ParticipationModel
	require.NoError(t, db.Where("participation_session_id = ?", sess.SessionID).First(&rec).Error)
	require.Equal(t, model.ParticipationStatusParticipated, rec.ParticipationStatus)
	require.Equal(t, 80.0, rec.ParticipationScore)
}

func TestBulkMergeUnknownTargets(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	actor := uuid.New()

	mb := seedMember(t, db, "sakura", memberModel.MemberStatusActive)
	sess := seedSession(t, db, "Raid", time.Now())

	// session tidak ada
	_, err := svc.BulkMerge(uuid.New(), []MergeItem{{MemberID: mb.MemberID}}, actor)
	requireFiberCode(t, err, fiber.StatusNotFound)

	// member tidak ada
	_, err = svc.BulkMerge(sess.SessionID, []MergeItem{{MemberID: uuid.New()}}, actor)
	requireFiberCode(t, err, fiber.StatusNotFound)
}

func TestBulkMergeRejectsInvalidBatchWhole(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	actor := uuid.New()

	mb := seedMember(t, db, "kakashi", memberModel.MemberStatusActive)
	sess := seedSession(t, db, "Misi", time.Now())

	bad := model.ParticipationStatus("hadir_banget")
	_, err := svc.BulkMerge(sess.SessionID, []MergeItem{
		{MemberID: mb.MemberID, Score: ptrFloat(10)},
		{MemberID: mb.MemberID, Status: &bad},
	}, actor)
	requireFiberCode(t, err, fiber.StatusBadRequest)

	// item valid di batch yang sama tidak boleh ikut tertulis
	var count int64
	require.NoError(t, db.Model(&model.ParticipationModel{}).Count(&count).Error)
	require.EqualValues(t, 0, count)

	// score negatif juga ditolak utuh
	_, err = svc.BulkMerge(sess.SessionID, []MergeItem{
		{MemberID: mb.MemberID, Score: ptrFloat(-1)},
	}, actor)
	requireFiberCode(t, err, fiber.StatusBadRequest)
}

func TestSeedForSessionOnlyActiveMembers(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	actor := uuid.New()

	for _, name := range []string{"a", "b", "c", "d"} {
		seedMember(t, db, name, memberModel.MemberStatusActive)
	}
	seedMember(t, db, "mantan", memberModel.MemberStatusDeparted)
	sess := seedSession(t, db, "Ekspedisi", time.Now())

	n, err := svc.SeedForSession(db, sess.SessionID, actor)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	var rows []model.ParticipationModel
	require.NoError(t, db.Where("participation_session_id = ?", sess.SessionID).Find(&rows).Error)
	require.Len(t, rows, 4)
	for _, r := range rows {
		require.Equal(t, model.ParticipationStatusUnset, r.ParticipationStatus)
		require.Equal(t, 0.0, r.ParticipationScore)
	}
}

func TestDeleteParticipation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	actor := uuid.New()

	mb := seedMember(t, db, "gaara", memberModel.MemberStatusActive)
	sess := seedSession(t, db, "Turnamen", time.Now())

	recs, err := svc.BulkMerge(sess.SessionID, []MergeItem{
		{MemberID: mb.MemberID, Score: ptrFloat(5)},
	}, actor)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	require.NoError(t, svc.Delete(sess.SessionID, recs[0].ParticipationID))

	err = svc.Delete(sess.SessionID, recs[0].ParticipationID)
	requireFiberCode(t, err, fiber.StatusNotFound)
}
