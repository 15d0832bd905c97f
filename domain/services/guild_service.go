package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"guildledger/application"
	"guildledger/domain"
	"guildledger/domain/entities"
	"guildledger/domain/events"

	log "github.com/sirupsen/logrus"
)

// maxInviteCodeAttempts bounds regeneration when a fresh code collides with
// an existing guild. With a 31^6 code space collisions are already rare.
const maxInviteCodeAttempts = 5

// GuildService creates guilds and manages membership. Guild creation and
// join/leave are single transactions: the guild record, the membership row,
// and the member count always change together or not at all.
type GuildService struct {
	uowFactory application.UnitOfWorkFactory
	rng        *rand.Rand
}

// NewGuildService creates a new guild service
func NewGuildService(uowFactory application.UnitOfWorkFactory) *GuildService {
	return &GuildService{
		uowFactory: uowFactory,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateGuild creates a guild with the acting principal as leader. The
// principal must not already belong to a guild; the membership constraint
// rolls the whole creation back otherwise.
func (s *GuildService) CreateGuild(ctx context.Context, name, principalID string) (*entities.Guild, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("guild name is required")
	}
	if principalID == "" {
		return nil, domain.NewValidationError("acting principal is required")
	}

	var lastErr error
	for attempt := 0; attempt < maxInviteCodeAttempts; attempt++ {
		guild, err := s.createGuildOnce(ctx, name, principalID, generateInviteCode(s.rng))
		if errors.Is(err, domain.ErrDuplicateInviteCode) {
			log.WithFields(log.Fields{
				"attempt": attempt + 1,
				"name":    name,
			}).Warn("Invite code collision, regenerating")
			lastErr = err
			continue
		}
		return guild, err
	}

	return nil, fmt.Errorf("failed to generate a unique invite code: %w", lastErr)
}

func (s *GuildService) createGuildOnce(ctx context.Context, name, principalID, code string) (*entities.Guild, error) {
	uow := s.uowFactory.CreateForGuild(0)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	guild := &entities.Guild{
		Name:        name,
		Code:        code,
		LeaderID:    principalID,
		MemberCount: 1,
	}
	if err := uow.GuildRepository().Create(ctx, guild); err != nil {
		return nil, err
	}

	membership := &entities.Membership{
		GuildID:     guild.ID,
		PrincipalID: principalID,
		Role:        entities.RoleLeader,
	}
	if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.GuildCreatedEvent{
		GuildID:    guild.ID,
		Name:       guild.Name,
		InviteCode: guild.Code,
		LeaderID:   principalID,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id": guild.ID,
		"leader":   principalID,
	}).Info("Guild created")

	return guild, nil
}

// JoinGuild resolves an invite code and enrolls the principal as a member.
// The membership insert and the member-count increment commit together.
func (s *GuildService) JoinGuild(ctx context.Context, inviteCode, principalID string) (*entities.Guild, error) {
	inviteCode = strings.ToUpper(strings.TrimSpace(inviteCode))
	if inviteCode == "" {
		return nil, domain.NewValidationError("invite code is required")
	}

	uow := s.uowFactory.CreateForGuild(0)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	guild, err := uow.GuildRepository().GetByCode(ctx, inviteCode)
	if err != nil {
		return nil, err
	}
	if guild == nil {
		return nil, fmt.Errorf("invite code %s: %w", inviteCode, domain.ErrNotFound)
	}

	membership := &entities.Membership{
		GuildID:     guild.ID,
		PrincipalID: principalID,
		Role:        entities.RoleMember,
	}
	if err := uow.MembershipRepository().Create(ctx, membership); err != nil {
		return nil, err
	}

	newCount, err := uow.GuildRepository().AdjustMemberCount(ctx, guild.ID, 1)
	if err != nil {
		return nil, err
	}
	guild.MemberCount = newCount

	uow.EventBus().Publish(events.MemberJoinedEvent{
		GuildID:     guild.ID,
		PrincipalID: principalID,
		MemberCount: newCount,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild_id":  guild.ID,
		"principal": principalID,
	}).Info("Member joined guild")

	return guild, nil
}

// LeaveGuild removes the principal's membership and decrements the member
// count atomically. The leader cannot leave their own guild.
func (s *GuildService) LeaveGuild(ctx context.Context, principalID string) error {
	uow := s.uowFactory.CreateForGuild(0)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	membership, err := uow.MembershipRepository().GetByPrincipal(ctx, principalID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("membership for principal %s: %w", principalID, domain.ErrNotFound)
	}
	if membership.IsLeader() {
		return domain.NewValidationError("guild leader cannot leave the guild")
	}

	if err := uow.MembershipRepository().Delete(ctx, principalID); err != nil {
		return err
	}

	newCount, err := uow.GuildRepository().AdjustMemberCount(ctx, membership.GuildID, -1)
	if err != nil {
		return err
	}

	uow.EventBus().Publish(events.MemberLeftEvent{
		GuildID:     membership.GuildID,
		PrincipalID: principalID,
		MemberCount: newCount,
	})

	return uow.Commit()
}

// GetMembership returns the principal's current guild link, or nil if the
// principal is unaffiliated.
func (s *GuildService) GetMembership(ctx context.Context, principalID string) (*entities.Membership, error) {
	uow := s.uowFactory.CreateForGuild(0)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return uow.MembershipRepository().GetByPrincipal(ctx, principalID)
}
