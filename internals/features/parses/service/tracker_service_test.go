package service

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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
	"guildku_backend/internals/features/parses/model"
	participationModel "guildku_backend/internals/features/participations/model"
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
		&participationModel.ParticipationModel{},
		&model.ParseJobModel{},
	))
	return db
}

func seedSession(t *testing.T, db *gorm.DB) sessionModel.SessionModel {
	t.Helper()
	sess := sessionModel.SessionModel{
		SessionTypeID:  uuid.New(),
		SessionName:    "Perang Guild",
		SessionStartAt: time.Now(),
		SessionStatus:  sessionModel.SessionStatusDraft,
	}
	require.NoError(t, db.Create(&sess).Error)
	return sess
}

func seedJob(t *testing.T, db *gorm.DB, sessionID uuid.UUID, status model.ParseJobStatus) model.ParseJobModel {
	t.Helper()
	job := model.ParseJobModel{
		ParseJobSessionID: sessionID,
		ParseJobImageURL:  "https://cdn.example.com/ss.webp",
		ParseJobStatus:    status,
	}
	require.NoError(t, db.Create(&job).Error)
	return job
}

func TestCreateJobsSubmitsEachScreenshot(t *testing.T) {
	db := newTestDB(t)
	sess := seedSession(t, db)

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.NotEmpty(t, r.FormValue("job_id"))
		require.Equal(t, sess.SessionID.String(), r.FormValue("session_id"))
		require.Equal(t, "rahasia", r.Header.Get("X-API-Key"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tracker := NewTrackerService(db)
	client := NewWorkflowClient(srv.URL, "rahasia")

	jobs, err := tracker.CreateJobs(sess.SessionID, []UploadedScreenshot{
		{URL: "https://cdn.example.com/a.webp", Mime: "image/webp", Filename: "a.webp", Data: []byte("aaa")},
		{URL: "https://cdn.example.com/b.webp", Mime: "image/webp", Filename: "b.webp", Data: []byte("bbb")},
	}, client)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	require.EqualValues(t, 2, atomic.LoadInt32(&hits))
	for _, j := range jobs {
		require.Equal(t, model.ParseJobStatusQueued, j.ParseJobStatus)
	}
}

func TestCreateJobsRollsBackWhenWorkflowDown(t *testing.T) {
	db := newTestDB(t)
	sess := seedSession(t, db)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tracker := NewTrackerService(db)
	client := NewWorkflowClient(srv.URL, "")

	_, err := tracker.CreateJobs(sess.SessionID, []UploadedScreenshot{
		{URL: "https://cdn.example.com/a.webp", Mime: "image/webp", Filename: "a.webp", Data: []byte("aaa")},
	}, client)

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusBadGateway, fe.Code)

	// rollback: tidak ada job setengah jadi
	var count int64
	require.NoError(t, db.Model(&model.ParseJobModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateJobsUnknownSession(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)

	_, err := tracker.CreateJobs(uuid.New(), []UploadedScreenshot{
		{URL: "x", Mime: "image/webp", Filename: "x.webp"},
	}, NewWorkflowClient("http://127.0.0.1:0", ""))

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestApplyExternalUpdateMonotonic(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	sess := seedSession(t, db)
	job := seedJob(t, db, sess.SessionID, model.ParseJobStatusQueued)

	// queued → processing
	got, err := tracker.ApplyExternalUpdate(job.ParseJobID, model.ParseJobStatusProcessing, nil, nil)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusProcessing, got.ParseJobStatus)

	// laporan basi: processing → queued diabaikan
	got, err = tracker.ApplyExternalUpdate(job.ParseJobID, model.ParseJobStatusQueued, nil, nil)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusProcessing, got.ParseJobStatus)

	// processing → succeeded + data
	pairs := []model.ExtractedPair{{Name: "naruto", Score: 80}}
	got, err = tracker.ApplyExternalUpdate(job.ParseJobID, model.ParseJobStatusSucceeded, pairs, nil)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusSucceeded, got.ParseJobStatus)
	require.Equal(t, pairs, DecodePairs(got.ParseJobData))

	// terminal = absorbing: laporan processing yang telat tidak mengubah apa pun
	got, err = tracker.ApplyExternalUpdate(job.ParseJobID, model.ParseJobStatusProcessing, nil, nil)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusSucceeded, got.ParseJobStatus)
	require.Equal(t, pairs, DecodePairs(got.ParseJobData))

	// ulang laporan succeeded = idempoten
	got, err = tracker.ApplyExternalUpdate(job.ParseJobID, model.ParseJobStatusSucceeded, nil, nil)
	require.NoError(t, err)
	require.Equal(t, pairs, DecodePairs(got.ParseJobData))
}

func TestApplyExternalUpdateUnknownJob(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)

	_, err := tracker.ApplyExternalUpdate(uuid.New(), model.ParseJobStatusProcessing, nil, nil)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestCancel(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	sess := seedSession(t, db)

	// queued → canceled
	job := seedJob(t, db, sess.SessionID, model.ParseJobStatusQueued)
	got, err := tracker.Cancel(job.ParseJobID)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusCanceled, got.ParseJobStatus)

	// cancel kedua kali = no-op
	got, err = tracker.Cancel(job.ParseJobID)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusCanceled, got.ParseJobStatus)

	// job yang sudah succeeded tidak berubah & datanya utuh
	done := seedJob(t, db, sess.SessionID, model.ParseJobStatusQueued)
	pairs := []model.ExtractedPair{{Name: "sasuke", Score: 40}}
	_, err = tracker.ApplyExternalUpdate(done.ParseJobID, model.ParseJobStatusSucceeded, pairs, nil)
	require.NoError(t, err)

	got, err = tracker.Cancel(done.ParseJobID)
	require.NoError(t, err)
	require.Equal(t, model.ParseJobStatusSucceeded, got.ParseJobStatus)
	require.Equal(t, pairs, DecodePairs(got.ParseJobData))
}

func TestSweepStale(t *testing.T) {
	db := newTestDB(t)
	tracker := NewTrackerService(db)
	sess := seedSession(t, db)

	old := time.Now().Add(-2 * time.Hour)

	stale := seedJob(t, db, sess.SessionID, model.ParseJobStatusProcessing)
	require.NoError(t, db.Model(&model.ParseJobModel{}).
		Where("parse_job_id = ?", stale.ParseJobID).
		Update("parse_job_created_at", old).Error)

	staleDone := seedJob(t, db, sess.SessionID, model.ParseJobStatusSucceeded)
	require.NoError(t, db.Model(&model.ParseJobModel{}).
		Where("parse_job_id = ?", staleDone.ParseJobID).
		Update("parse_job_created_at", old).Error)

	fresh := seedJob(t, db, sess.SessionID, model.ParseJobStatusQueued)

	affected, err := tracker.SweepStale(30 * time.Minute)
	require.NoError(t, err)
	require.EqualValues(t, 1, affected)

	// struct tujuan harus baru tiap lookup; primary key lama ikut jadi kondisi
	var swept model.ParseJobModel
	require.NoError(t, db.First(&swept, "parse_job_id = ?", stale.ParseJobID).Error)
	require.Equal(t, model.ParseJobStatusTimeout, swept.ParseJobStatus)

	var untouched model.ParseJobModel
	require.NoError(t, db.First(&untouched, "parse_job_id = ?", staleDone.ParseJobID).Error)
	require.Equal(t, model.ParseJobStatusSucceeded, untouched.ParseJobStatus)

	var recent model.ParseJobModel
	require.NoError(t, db.First(&recent, "parse_job_id = ?", fresh.ParseJobID).Error)
	require.Equal(t, model.ParseJobStatusQueued, recent.ParseJobStatus)
}
