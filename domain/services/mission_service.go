package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"guildledger/application"
	"guildledger/domain"
	"guildledger/domain/entities"

	log "github.com/sirupsen/logrus"
)

// MissionService manages the per-guild mission catalog. Missions are only
// ever soft-deleted so mission log entries keep a valid join target.
type MissionService struct {
	uowFactory application.UnitOfWorkFactory
	now        func() time.Time
}

// NewMissionService creates a new mission service
func NewMissionService(uowFactory application.UnitOfWorkFactory) *MissionService {
	return &MissionService{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// MissionInput carries the caller-editable fields of a mission
type MissionInput struct {
	Title           string
	Description     string
	Cost            int64
	Type            entities.MissionType
	MinParticipants int
	MaxParticipants int
}

func (in *MissionInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.NewValidationError("mission title is required")
	}
	if in.Cost < 0 {
		return domain.NewValidationError("mission cost cannot be negative, got %d", in.Cost)
	}
	if in.Type != entities.MissionSolo && in.Type != entities.MissionParty {
		return domain.NewValidationError("unknown mission type %q", in.Type)
	}
	if in.MinParticipants < 1 || in.MaxParticipants < in.MinParticipants {
		return domain.NewValidationError("invalid participant bounds [%d, %d]", in.MinParticipants, in.MaxParticipants)
	}
	return nil
}

// CreateMission adds an active mission with the acting principal as creator
func (s *MissionService) CreateMission(ctx context.Context, guildID int64, input MissionInput, principalID string) (*entities.Mission, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	mission := &entities.Mission{
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Cost:            input.Cost,
		Type:            input.Type,
		MinParticipants: input.MinParticipants,
		MaxParticipants: input.MaxParticipants,
		CreatorID:       principalID,
		Status:          entities.MissionActive,
	}
	if err := uow.MissionRepository().Create(ctx, mission); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id":   guildID,
		"mission_id": mission.ID,
		"cost":       mission.Cost,
	}).Info("Mission created")

	return mission, nil
}

// GetMission retrieves one mission
func (s *MissionService) GetMission(ctx context.Context, guildID, missionID int64) (*entities.Mission, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	mission, err := uow.MissionRepository().GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("mission %d: %w", missionID, domain.ErrNotFound)
	}

	return mission, nil
}

// ListMissions returns the guild's missions, newest first. With activeOnly
// set, soft-deleted missions are excluded (the completion-candidate view).
func (s *MissionService) ListMissions(ctx context.Context, guildID int64, activeOnly bool) ([]*entities.Mission, error) {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.MissionRepository().List(ctx, activeOnly)
}

// UpdateMission rewrites a mission's editable fields and stamps the update
// time
func (s *MissionService) UpdateMission(ctx context.Context, guildID, missionID int64, input MissionInput) (*entities.Mission, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	mission, err := uow.MissionRepository().GetByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission == nil {
		return nil, fmt.Errorf("mission %d: %w", missionID, domain.ErrNotFound)
	}

	mission.Title = strings.TrimSpace(input.Title)
	mission.Description = input.Description
	mission.Cost = input.Cost
	mission.Type = input.Type
	mission.MinParticipants = input.MinParticipants
	mission.MaxParticipants = input.MaxParticipants
	if err := uow.MissionRepository().Update(ctx, mission); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return mission, nil
}

// DeleteMission soft-deletes a mission: the status flips to inactive and
// the row stays behind as the join target for historical log entries.
func (s *MissionService) DeleteMission(ctx context.Context, guildID, missionID int64) error {
	uow := s.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MissionRepository().SoftDelete(ctx, missionID, s.now().UTC()); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"guild_id":   guildID,
		"mission_id": missionID,
	}).Info("Mission deactivated")

	return nil
}
