package services

import "math/rand"

// inviteCodeAlphabet avoids ambiguous characters (0/O, 1/I/L) so codes
// survive being read aloud or handwritten.
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// inviteCodeLength is the fixed length of guild invite codes.
const inviteCodeLength = 6

// generateInviteCode draws a random invite code. Uniqueness is enforced by
// the store's constraint, not by the generator; callers retry on collision.
func generateInviteCode(rng *rand.Rand) string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		code[i] = inviteCodeAlphabet[rng.Intn(len(inviteCodeAlphabet))]
	}
	return string(code)
}
