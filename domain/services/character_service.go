package services

import (
	"context"
	"fmt"
	"strings"

	"guildledger/application"
	"guildledger/domain"
	"guildledger/domain/entities"

	log "github.com/sirupsen/logrus"
)

// CharacterService manages the per-guild roster of characters. It never
// touches gold, experience, or level; those belong to the reward ledger.
type CharacterService struct {
	uowFactory application.UnitOfWorkFactory
}

// NewCharacterService creates a new character service
func NewCharacterService(uowFactory application.UnitOfWorkFactory) *CharacterService {
	return &CharacterService{uowFactory: uowFactory}
}

// CreateCharacter adds a character to the guild roster with zeroed progress
func (s *CharacterService) CreateCharacter(ctx context.Context, guildID int64, name string, jobClass entities.JobClass, description, createdBy string) (*entities.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("character name is required")
	}
	if !entities.ValidJobClass(jobClass) {
		return nil, domain.NewValidationError("unknown job class %q", jobClass)
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	character := &entities.Character{
		Name:        name,
		JobClass:    jobClass,
		Description: description,
		Gold:        0,
		Experience:  0,
		Level:       1,
		CreatedBy:   createdBy,
	}
	if err := uow.CharacterRepository().Create(ctx, character); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id":     guildID,
		"character_id": character.ID,
		"job_class":    jobClass,
	}).Info("Character created")

	return character, nil
}

// GetCharacter retrieves one character from the guild roster
func (s *CharacterService) GetCharacter(ctx context.Context, guildID, characterID int64) (*entities.Character, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	character, err := uow.CharacterRepository().GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("character %d: %w", characterID, domain.ErrNotFound)
	}

	return character, nil
}

// ListCharacters returns the guild roster, newest first
func (s *CharacterService) ListCharacters(ctx context.Context, guildID int64) ([]*entities.Character, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.CharacterRepository().List(ctx)
}

// UpdateCharacter changes a character's descriptive fields. Gold,
// experience, and level cannot be set through this path.
func (s *CharacterService) UpdateCharacter(ctx context.Context, guildID, characterID int64, name string, jobClass entities.JobClass, description string) (*entities.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("character name is required")
	}
	if !entities.ValidJobClass(jobClass) {
		return nil, domain.NewValidationError("unknown job class %q", jobClass)
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	character, err := uow.CharacterRepository().GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, fmt.Errorf("character %d: %w", characterID, domain.ErrNotFound)
	}

	character.Name = name
	character.JobClass = jobClass
	character.Description = description
	if err := uow.CharacterRepository().Update(ctx, character); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return character, nil
}

// DeleteCharacter hard-deletes a character. Existing ledger entries keep
// their name snapshots and remain valid historical records.
func (s *CharacterService) DeleteCharacter(ctx context.Context, guildID, characterID int64) error {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.CharacterRepository().Delete(ctx, characterID); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guild_id":     guildID,
		"character_id": characterID,
	}).Info("Character deleted")

	return nil
}
