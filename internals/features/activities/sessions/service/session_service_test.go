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

	typeModel "guildku_backend/internals/features/activities/activity_types/model"
	"guildku_backend/internals/features/activities/sessions/dto"
	"guildku_backend/internals/features/activities/sessions/model"
	parseModel "guildku_backend/internals/features/parses/model"
	memberModel "guildku_backend/internals/features/members/model"
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
		&model.SessionModel{},
		&participationModel.ParticipationModel{},
		&parseModel.ParseJobModel{},
	))
	// activity_types punya kolom bertipe Postgres (int[], time), bikin manual
	require.NoError(t, db.Exec(`CREATE TABLE activity_types (
		activity_type_id text PRIMARY KEY,
		activity_type_code text NOT NULL,
		activity_type_name text NOT NULL,
		activity_type_enabled numeric NOT NULL DEFAULT true,
		activity_type_schedule_weekdays text,
		activity_type_schedule_time text,
		activity_type_duration_minutes integer NOT NULL DEFAULT 120,
		activity_type_created_at datetime,
		activity_type_updated_at datetime
	)`).Error)
	return db
}

func seedActivityType(t *testing.T, db *gorm.DB, code string, durationMinutes int) typeModel.ActivityTypeModel {
	t.Helper()
	at := typeModel.ActivityTypeModel{
		ActivityTypeCode:            code,
		ActivityTypeName:            code,
		ActivityTypeEnabled:         true,
		ActivityTypeDurationMinutes: durationMinutes,
	}
	require.NoError(t, db.Create(&at).Error)
	return at
}

func TestCreateSeedsLedgerAndDefaultsEndAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	actor := uuid.New()

	at := seedActivityType(t, db, "guild_war", 90)
	for _, name := range []string{"naruto", "sasuke"} {
		mb := memberModel.MemberModel{
			MemberNickname: name,
			MemberStatus:   memberModel.MemberStatusActive,
			MemberRole:     "member",
			MemberJoinAt:   time.Now(),
		}
		require.NoError(t, db.Create(&mb).Error)
	}

	startAt := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	created, seeded, err := svc.Create(dto.CreateSessionRequest{
		SessionTypeID:  at.ActivityTypeID,
		SessionName:    "Perang Minggu Ini",
		SessionStartAt: startAt,
	}, actor)
	require.NoError(t, err)
	require.Equal(t, 2, seeded)
	require.NotNil(t, created.SessionEndAt)
	require.True(t, created.SessionEndAt.Equal(startAt.Add(90*time.Minute)))

	var count int64
	require.NoError(t, db.Model(&participationModel.ParticipationModel{}).
		Where("participation_session_id = ?", created.SessionID).
		Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestCreateUnknownActivityType(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)

	_, _, err := svc.Create(dto.CreateSessionRequest{
		SessionTypeID:  uuid.New(),
		SessionName:    "Tanpa Type",
		SessionStartAt: time.Now(),
	}, uuid.New())

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewSessionService(db)
	actor := uuid.New()

	at := seedActivityType(t, db, "dungeon", 120)
	mb := memberModel.MemberModel{
		MemberNickname: "gaara",
		MemberStatus:   memberModel.MemberStatusActive,
		MemberRole:     "member",
		MemberJoinAt:   time.Now(),
	}
	require.NoError(t, db.Create(&mb).Error)

	created, _, err := svc.Create(dto.CreateSessionRequest{
		SessionTypeID:  at.ActivityTypeID,
		SessionName:    "Dungeon Malam",
		SessionStartAt: time.Now(),
	}, actor)
	require.NoError(t, err)

	job := parseModel.ParseJobModel{
		ParseJobSessionID: created.SessionID,
		ParseJobImageURL:  "https://cdn.example.com/ss.webp",
		ParseJobStatus:    parseModel.ParseJobStatusQueued,
	}
	require.NoError(t, db.Create(&job).Error)

	require.NoError(t, svc.Delete(created.SessionID))

	var sessions, participations, jobs int64
	require.NoError(t, db.Model(&model.SessionModel{}).Count(&sessions).Error)
	require.NoError(t, db.Model(&participationModel.ParticipationModel{}).Count(&participations).Error)
	require.NoError(t, db.Model(&parseModel.ParseJobModel{}).Count(&jobs).Error)
	require.Zero(t, sessions)
	require.Zero(t, participations)
	require.Zero(t, jobs)

	// hapus kedua kali = 404
	err = svc.Delete(created.SessionID)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, fiber.StatusNotFound, fe.Code)
}
