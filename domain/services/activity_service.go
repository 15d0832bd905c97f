package services

import (
	"context"
	"sort"

	"guildledger/application"
	"guildledger/domain/entities"
)

// defaultActivityLimit bounds each of the two ledger reads when the caller
// passes no limit.
const defaultActivityLimit = 50

// ActivityService is the read-only projection of the ledger into a
// day-grouped activity feed. It enforces no invariants and performs no
// writes.
type ActivityService struct {
	uowFactory application.UnitOfWorkFactory
}

// NewActivityService creates a new activity service
func NewActivityService(uowFactory application.UnitOfWorkFactory) *ActivityService {
	return &ActivityService{uowFactory: uowFactory}
}

// ListActivity reads the most recent mission and usage log entries (two
// independent bounded reads), merges them strictly time-descending, and
// groups contiguous same-day runs into day buckets.
func (s *ActivityService) ListActivity(ctx context.Context, guildID int64, limit int) ([]entities.ActivityDay, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	missionLogs, err := uow.MissionLogRepository().GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	usageLogs, err := uow.UsageLogRepository().GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return groupByDay(mergeEntries(missionLogs, usageLogs)), nil
}

// mergeEntries normalizes both ledger sides into the common feed shape and
// sorts the combined set strictly by timestamp descending.
func mergeEntries(missionLogs []*entities.MissionLog, usageLogs []*entities.UsageLog) []entities.ActivityEntry {
	entries := make([]entities.ActivityEntry, 0, len(missionLogs)+len(usageLogs))

	for _, ml := range missionLogs {
		entries = append(entries, entities.ActivityEntry{
			ID:        ml.ID,
			Kind:      entities.ActivityIncome,
			Title:     ml.MissionTitle,
			Names:     ml.PerformerNames,
			Amount:    ml.TotalReward,
			Timestamp: ml.CreatedAt,
		})
	}

	for _, ul := range usageLogs {
		entries = append(entries, entities.ActivityEntry{
			ID:        ul.ID,
			Kind:      entities.ActivityExpense,
			Title:     ul.ItemName,
			Names:     []string{ul.CharacterName},
			Amount:    ul.Cost,
			Timestamp: ul.UsedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	return entries
}

// groupByDay buckets contiguous runs sharing the same UTC calendar day.
// Entries are already sorted, so each day appears exactly once, most recent
// day first.
func groupByDay(entries []entities.ActivityEntry) []entities.ActivityDay {
	var days []entities.ActivityDay
	for _, entry := range entries {
		day := entry.Day()
		if len(days) > 0 && days[len(days)-1].Date == day {
			last := &days[len(days)-1]
			last.Entries = append(last.Entries, entry)
			continue
		}
		days = append(days, entities.ActivityDay{
			Date:    day,
			Entries: []entities.ActivityEntry{entry},
		})
	}
	return days
}
