package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/planweave/planweave-backend/internal/data/repos"
	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/pkg/dbctx"
	"github.com/planweave/planweave-backend/internal/platform/apierr"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type CreateMemberInput struct {
	DisplayName          string                 `json:"display_name"`
	ExperienceLevel      domain.ExperienceLevel `json:"experience_level"`
	WeeklyCapacityMin    int                    `json:"weekly_capacity_min"`
	DailyCapacityMin     int                    `json:"daily_capacity_min"`
	PreferredStyle       domain.LearningStyle   `json:"preferred_style"`
	PrefersKoreanContent bool                   `json:"prefers_korean_content"`
	KnownSkillCount      int                    `json:"known_skill_count"`
}

type MemberService interface {
	CreateMember(ctx context.Context, in CreateMemberInput) (*domain.Member, error)
	GetMember(ctx context.Context, id uuid.UUID) (*domain.Member, error)
}

type memberService struct {
	log        *logger.Logger
	memberRepo repos.MemberRepo
}

func NewMemberService(baseLog *logger.Logger, memberRepo repos.MemberRepo) MemberService {
	return &memberService{log: baseLog.With("service", "MemberService"), memberRepo: memberRepo}
}

func (s *memberService) CreateMember(ctx context.Context, in CreateMemberInput) (*domain.Member, error) {
	if strings.TrimSpace(in.DisplayName) == "" {
		return nil, apierr.BadRequest("invalid_member", fmt.Errorf("display name required"))
	}
	level := in.ExperienceLevel
	if level == "" {
		level = domain.ExperienceBeginner
	}
	if !level.Valid() {
		return nil, apierr.BadRequest("invalid_member", fmt.Errorf("unknown experience level %q", in.ExperienceLevel))
	}
	style := in.PreferredStyle
	if style == "" {
		style = domain.StyleMixed
	}
	if in.WeeklyCapacityMin < 0 || in.DailyCapacityMin < 0 || in.KnownSkillCount < 0 {
		return nil, apierr.BadRequest("invalid_member", fmt.Errorf("capacities and skill count must not be negative"))
	}

	row := &domain.Member{
		ID:                   uuid.New(),
		DisplayName:          strings.TrimSpace(in.DisplayName),
		ExperienceLevel:      level,
		WeeklyCapacityMin:    in.WeeklyCapacityMin,
		DailyCapacityMin:     in.DailyCapacityMin,
		PreferredStyle:       style,
		PrefersKoreanContent: in.PrefersKoreanContent,
		KnownSkillCount:      in.KnownSkillCount,
	}
	if _, err := s.memberRepo.Create(dbctx.From(ctx), []*domain.Member{row}); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return row, nil
}

func (s *memberService) GetMember(ctx context.Context, id uuid.UUID) (*domain.Member, error) {
	row, err := s.memberRepo.GetByID(dbctx.From(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	if row == nil {
		return nil, apierr.NotFound("member_not_found", fmt.Errorf("member %s not found", id))
	}
	return row, nil
}
