package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"guildledger/application"
	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/events"

	log "github.com/sirupsen/logrus"
)

const (
	// bonusChestChance is the probability that a completion finds a bonus
	// chest.
	bonusChestChance = 0.20

	// bonusGoldMax is the inclusive upper bound of the bonus gold draw.
	bonusGoldMax = 35

	// maxConflictRetries bounds transparent retries after a store-level
	// write conflict. Each retry re-runs the whole logical operation:
	// fresh duplicate-guard read, fresh bonus roll.
	maxConflictRetries = 3
)

// LedgerService is the transactional heart of the economy: it records
// mission completions and shop purchases as immutable log entries and, in
// the same atomic unit, mutates the balances of every affected character.
// All cross-caller safety comes from the store's transactions; the service
// keeps no balance state in memory.
type LedgerService struct {
	uowFactory application.UnitOfWorkFactory
	rng        *rand.Rand
	now        func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory application.UnitOfWorkFactory) *LedgerService {
	return &LedgerService{
		uowFactory: uowFactory,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

// rollBonus draws the bonus chest outcome: a 20% chance of a chest carrying
// a uniform amount in [0, bonusGoldMax].
func (s *LedgerService) rollBonus() (bool, int64) {
	if s.rng.Float64() >= bonusChestChance {
		return false, 0
	}
	return true, int64(s.rng.Intn(bonusGoldMax + 1))
}

// today returns the current calendar day in UTC, the single zone used for
// all performed-date computations.
func (s *LedgerService) today() string {
	return s.now().UTC().Format(entities.DayFormat)
}

// CompleteMission grants the mission reward to every listed character and
// writes one mission log entry, all in one transaction. A mission can be
// rewarded at most once per calendar day regardless of who performs it.
// Participant count bounds are the caller's responsibility; only
// non-emptiness is enforced here.
func (s *LedgerService) CompleteMission(ctx context.Context, guildID, missionID int64, characterIDs []int64, approverID string) (*entities.CompletionResult, error) {
	if len(characterIDs) == 0 {
		return nil, domain.NewValidationError("at least one participating character is required")
	}
	if approverID == "" {
		return nil, domain.NewValidationError("approving principal is required")
	}

	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		result, err := s.completeMissionOnce(ctx, guildID, missionID, characterIDs, approverID)
		if errors.Is(err, domain.ErrTransactionConflict) {
			log.WithFields(log.Fields{
				"guild_id":   guildID,
				"mission_id": missionID,
				"attempt":    attempt + 1,
			}).Warn("Transaction conflict completing mission, retrying")
			lastErr = err
			continue
		}
		return result, err
	}

	return nil, lastErr
}

func (s *LedgerService) completeMissionOnce(ctx context.Context, guildID, missionID int64, characterIDs []int64, approverID string) (*entities.CompletionResult, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// Locking the mission row serializes concurrent completions of the same
	// mission, so the guard read below cannot race a concurrent insert.
	mission, err := uow.MissionRepository().GetForUpdate(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("mission %d: %w", missionID, domain.ErrNotFound)
	}
	if !mission.IsActive() {
		return nil, fmt.Errorf("mission %d: %w", missionID, domain.ErrMissionInactive)
	}

	day := s.today()
	existing, err := uow.MissionLogRepository().GetByMissionAndDate(ctx, missionID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyCompletedToday
	}

	chestFound, bonusGold := s.rollBonus()
	rewardPerCharacter := mission.Cost + bonusGold

	// All participant reads happen before any write. A single missing
	// character aborts the whole reward event.
	characters, err := uow.CharacterRepository().GetForUpdate(ctx, characterIDs)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(characters))
	for i, c := range characters {
		names[i] = c.Name
	}

	entry := &entities.MissionLog{
		MissionID:             mission.ID,
		MissionTitle:          mission.Title,
		PerformerCharacterIDs: characterIDs,
		PerformerNames:        names,
		ApproverUserID:        approverID,
		TotalReward:           rewardPerCharacter * int64(len(characters)),
		BonusGold:             bonusGold,
		IsChestFound:          chestFound,
		PerformedDate:         day,
	}
	if err := uow.MissionLogRepository().Create(ctx, entry); err != nil {
		return nil, err
	}

	for _, c := range characters {
		goldBefore := c.Gold
		c.ApplyReward(rewardPerCharacter)
		if err := uow.CharacterRepository().UpdateProgress(ctx, c.ID, c.Gold, c.Experience, c.Level); err != nil {
			return nil, err
		}

		uow.EventBus().Publish(events.GoldChangedEvent{
			GuildID:      guildID,
			CharacterID:  c.ID,
			GoldBefore:   goldBefore,
			GoldAfter:    c.Gold,
			ChangeAmount: rewardPerCharacter,
			Reason:       "mission_reward",
		})
	}

	uow.EventBus().Publish(events.MissionCompletedEvent{
		GuildID:       guildID,
		MissionID:     mission.ID,
		MissionLogID:  entry.ID,
		PerformerIDs:  characterIDs,
		TotalReward:   entry.TotalReward,
		BonusGold:     bonusGold,
		IsChestFound:  chestFound,
		PerformedDate: day,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id":     guildID,
		"mission_id":   missionID,
		"performers":   len(characters),
		"total_reward": entry.TotalReward,
		"chest_found":  chestFound,
	}).Info("Mission completed")

	return &entities.CompletionResult{
		ChestFound:  chestFound,
		BonusGold:   bonusGold,
		TotalReward: entry.TotalReward,
	}, nil
}

// SpendGold debits a character's gold for a purchase and writes the usage
// log entry in the same transaction. Fails with InsufficientFundsError and
// zero writes when the balance does not cover the cost.
func (s *LedgerService) SpendGold(ctx context.Context, guildID, characterID int64, itemName string, cost int64, principalID string) error {
	if itemName == "" {
		return domain.NewValidationError("item name is required")
	}
	if cost <= 0 {
		return domain.NewValidationError("cost must be positive, got %d", cost)
	}

	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err := s.spendGoldOnce(ctx, guildID, characterID, itemName, cost, principalID)
		if errors.Is(err, domain.ErrTransactionConflict) {
			log.WithFields(log.Fields{
				"guild_id":     guildID,
				"character_id": characterID,
				"attempt":      attempt + 1,
			}).Warn("Transaction conflict spending gold, retrying")
			lastErr = err
			continue
		}
		return err
	}

	return lastErr
}

func (s *LedgerService) spendGoldOnce(ctx context.Context, guildID, characterID int64, itemName string, cost int64, principalID string) error {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	characters, err := uow.CharacterRepository().GetForUpdate(ctx, []int64{characterID})
	if err != nil {
		return err
	}
	character := characters[0]

	if !character.CanAfford(cost) {
		return &domain.InsufficientFundsError{Have: character.Gold, Need: cost}
	}

	entry := &entities.UsageLog{
		CharacterID:   character.ID,
		CharacterName: character.Name,
		ItemName:      itemName,
		Cost:          cost,
		UsedByUserID:  principalID,
	}
	if err := uow.UsageLogRepository().Create(ctx, entry); err != nil {
		return err
	}

	goldBefore := character.Gold
	character.ApplySpend(cost)
	if err := uow.CharacterRepository().UpdateProgress(ctx, character.ID, character.Gold, character.Experience, character.Level); err != nil {
		return err
	}

	uow.EventBus().Publish(events.GoldChangedEvent{
		GuildID:      guildID,
		CharacterID:  character.ID,
		GoldBefore:   goldBefore,
		GoldAfter:    character.Gold,
		ChangeAmount: -cost,
		Reason:       "shop_purchase",
	})

	if err := uow.Commit(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guild_id":     guildID,
		"character_id": characterID,
		"item":         itemName,
		"cost":         cost,
	}).Info("Gold spent")

	return nil
}
