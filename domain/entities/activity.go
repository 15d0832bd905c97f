package entities

import "time"

// ActivityKind distinguishes income from expense entries in the feed
type ActivityKind string

const (
	ActivityIncome  ActivityKind = "income"
	ActivityExpense ActivityKind = "expense"
)

// ActivityEntry is the common shape mission and usage log entries are
// normalized into for the activity feed.
type ActivityEntry struct {
	ID        int64
	Kind      ActivityKind
	Title     string
	Names     []string
	Amount    int64
	Timestamp time.Time
}

// Day returns the UTC calendar day this entry belongs to.
func (e ActivityEntry) Day() string {
	return e.Timestamp.UTC().Format(DayFormat)
}

// ActivityDay is one day-bucket of the feed: most recent day first, entries
// within a day most-recent-first.
type ActivityDay struct {
	Date    string
	Entries []ActivityEntry
}
