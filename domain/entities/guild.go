package entities

import "time"

// MembershipRole represents a principal's role within a guild
type MembershipRole string

const (
	RoleLeader MembershipRole = "leader"
	RoleMember MembershipRole = "member"
)

// Guild is the tenant boundary: a group of principals sharing a currency
// pool and mission/shop catalog.
type Guild struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	LeaderID    string    `db:"leader_id"`
	Description string    `db:"description"`
	MemberCount int       `db:"member_count"`
	CreatedAt   time.Time `db:"created_at"`
}

// Membership links a principal to a guild. A principal belongs to at most
// one guild at a time; the membership row and the guild's member count are
// always updated in the same transaction.
type Membership struct {
	ID          int64          `db:"id"`
	GuildID     int64          `db:"guild_id"`
	PrincipalID string         `db:"principal_id"`
	Role        MembershipRole `db:"role"`
	JoinedAt    time.Time      `db:"joined_at"`
}

// IsLeader reports whether this membership carries the leader role.
func (m *Membership) IsLeader() bool {
	return m.Role == RoleLeader
}
