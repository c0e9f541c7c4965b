package service

import (
	"strings"
	"unicode"

	memberModel "guildku_backend/internals/features/members/model"
)

// normalizeName: buang seluruh whitespace lalu lowercase.
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// MatchMember mencocokkan nama hasil OCR ke daftar anggota secara fuzzy:
// sama persis, atau salah satu substring dari yang lain (setelah normalisasi).
// Kandidat harus sudah terurut (member_created_at, member_id); yang pertama
// cocok yang dipakai.
func MatchMember(name string, members []memberModel.MemberModel) *memberModel.MemberModel {
	needle := normalizeName(name)
	if needle == "" {
		return nil
	}
	for i := range members {
		nick := normalizeName(members[i].MemberNickname)
		if nick == "" {
			continue
		}
		if nick == needle || strings.Contains(nick, needle) || strings.Contains(needle, nick) {
			return &members[i]
		}
	}
	return nil
}
