package constants

import "fmt"

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyLeadersCanAccess = "❌ Hanya leader atau admin yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorLeader(feature string) string {
	return fmt.Sprintf(ErrOnlyLeadersCanAccess, feature)
}

// ==========================
// ✅ Role akun (pemakai aplikasi)
// ==========================
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	AllRoles  = []string{RoleUser, RoleAdmin}
	AdminOnly = []string{RoleAdmin}
)

// ==========================
// ✅ Tier anggota guild (urut dari terendah)
// ==========================
const (
	MemberRoleTrainee = "trainee"
	MemberRoleMember  = "member"
	MemberRoleSenior  = "senior"
	MemberRoleLeader  = "leader"
)

// MemberRoleTiers dipakai untuk sorting & validasi (trainee < member < senior < leader)
var MemberRoleTiers = map[string]int{
	MemberRoleTrainee: 0,
	MemberRoleMember:  1,
	MemberRoleSenior:  2,
	MemberRoleLeader:  3,
}

var AllMemberRoles = []string{
	MemberRoleTrainee,
	MemberRoleMember,
	MemberRoleSenior,
	MemberRoleLeader,
}
