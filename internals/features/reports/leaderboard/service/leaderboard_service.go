package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sessionModel "guildku_backend/internals/features/activities/sessions/model"
	memberModel "guildku_backend/internals/features/members/model"
	participationModel "guildku_backend/internals/features/participations/model"
	"guildku_backend/internals/features/reports/leaderboard/dto"
)

// LeaderboardService agregasi skor per member dalam satu rentang sesi.
// Semua baris ikut dihitung, termasuk baris unset hasil seeding; member
// tanpa satu pun catatan dalam rentang tidak muncul di papan.
type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// ResolveRange terjemahkan preset period ke rentang kalender [from, to]
// inklusif. year/quarter/month memilih periode tertentu; tanpa itu dipakai
// periode berjalan. from/to eksplisit menang atas preset.
func ResolveRange(filter dto.FilterLeaderboardRequest, now time.Time) (*time.Time, *time.Time) {
	from, to := filter.From, filter.To
	if from != nil || to != nil {
		return from, to
	}
	if filter.Period == nil {
		return nil, nil
	}

	year := now.Year()
	if filter.Year != nil {
		year = *filter.Year
	}

	var start, end time.Time
	switch *filter.Period {
	case "month":
		month := now.Month()
		if filter.Month != nil {
			month = time.Month(*filter.Month)
		}
		start = time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Second)
	case "quarter":
		quarter := (int(now.Month())-1)/3 + 1
		if filter.Quarter != nil {
			quarter = *filter.Quarter
		}
		start = time.Date(year, time.Month((quarter-1)*3+1), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 3, 0).Add(-time.Second)
	case "year":
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0).Add(-time.Second)
	default:
		return nil, nil
	}
	return &start, &end
}

// Compute hitung papan peringkat penuh (belum dipaginasi).
func (s *LeaderboardService) Compute(filter dto.FilterLeaderboardRequest, now time.Time) ([]dto.LeaderboardEntryResponse, error) {
	from, to := ResolveRange(filter, now)

	// 1) Sesi yang masuk rentang
	sq := s.DB.Model(&sessionModel.SessionModel{})
	if filter.TypeID != nil {
		sq = sq.Where("session_type_id = ?", *filter.TypeID)
	}
	if from != nil {
		sq = sq.Where("session_start_at >= ?", *from)
	}
	if to != nil {
		sq = sq.Where("session_start_at <= ?", *to)
	}
	var sessionIDs []uuid.UUID
	if err := sq.Pluck("session_id", &sessionIDs).Error; err != nil {
		return nil, err
	}
	if len(sessionIDs) == 0 {
		return []dto.LeaderboardEntryResponse{}, nil
	}

	// 2) Seluruh catatan dalam sesi tersebut
	var records []participationModel.ParticipationModel
	if err := s.DB.
		Where("participation_session_id IN ?", sessionIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []dto.LeaderboardEntryResponse{}, nil
	}

	type acc struct {
		total        float64
		times        int
		participated int
		leave        int
		unknown      int
	}
	byMember := map[uuid.UUID]*acc{}
	for _, rec := range records {
		a := byMember[rec.ParticipationMemberID]
		if a == nil {
			a = &acc{}
			byMember[rec.ParticipationMemberID] = a
		}
		a.total += rec.ParticipationScore
		a.times++
		switch rec.ParticipationStatus {
		case participationModel.ParticipationStatusParticipated:
			a.participated++
		case participationModel.ParticipationStatusLeave:
			a.leave++
		case participationModel.ParticipationStatusUnknown:
			a.unknown++
		}
	}

	memberIDs := make([]uuid.UUID, 0, len(byMember))
	for id := range byMember {
		memberIDs = append(memberIDs, id)
	}
	var members []memberModel.MemberModel
	if err := s.DB.Where("member_id IN ?", memberIDs).Find(&members).Error; err != nil {
		return nil, err
	}
	info := make(map[uuid.UUID]memberModel.MemberModel, len(members))
	for _, mb := range members {
		info[mb.MemberID] = mb
	}

	// 3) Susun + urutkan: total desc, lalu member_id asc biar stabil
	entries := make([]dto.LeaderboardEntryResponse, 0, len(byMember))
	for id, a := range byMember {
		mb := info[id]
		e := dto.LeaderboardEntryResponse{
			MemberID:       id,
			MemberNickname: mb.MemberNickname,
			MemberRole:     mb.MemberRole,
			TotalScore:     a.total,
			Times:          a.times,
			Participated:   a.participated,
			Leave:          a.leave,
			Unknown:        a.unknown,
		}
		if a.times > 0 {
			e.AvgScore = a.total / float64(a.times)
			e.Attendance = float64(a.participated) / float64(a.times)
		}
		entries = append(entries, e)
	}
	key := func(e dto.LeaderboardEntryResponse) float64 { return e.TotalScore }
	if filter.Sort != nil {
		switch *filter.Sort {
		case "avg_score":
			key = func(e dto.LeaderboardEntryResponse) float64 { return e.AvgScore }
		case "attendance":
			key = func(e dto.LeaderboardEntryResponse) float64 { return e.Attendance }
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if key(entries[i]) != key(entries[j]) {
			return key(entries[i]) > key(entries[j])
		}
		return entries[i].MemberID.String() < entries[j].MemberID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
