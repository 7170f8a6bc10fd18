package models

import "strings"

// InviteCodeAlphabet contains the symbols invite codes are drawn from.
const InviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// InviteCodeLength is the number of symbols in an invite code.
const InviteCodeLength = 4

// PossibleInviteCodeCombinations is the size of the invite code address
// space. Codes consist of four distinct letters, so the space is
// 26*25*24*23 ordered draws.
const PossibleInviteCodeCombinations = 26 * 25 * 24 * 23

// InviteCode is the 4-letter human-shareable identifier of a lobby.
// Codes are case-insensitive and stored upper-cased.
type InviteCode string

// NormalizeInviteCode upper-cases a raw code for lookup and comparison.
func NormalizeInviteCode(raw string) InviteCode {
	return InviteCode(strings.ToUpper(strings.TrimSpace(raw)))
}
