package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

func (e ExperienceLevel) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

type LearningStyle string

const (
	StyleHandsOn LearningStyle = "hands_on"
	StyleVideo   LearningStyle = "video_first"
	StyleReading LearningStyle = "doc_first"
	StyleMixed   LearningStyle = "mixed"
)

type Member struct {
	ID                   uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DisplayName          string          `gorm:"column:display_name;not null" json:"display_name"`
	ExperienceLevel      ExperienceLevel `gorm:"column:experience_level;not null;default:beginner" json:"experience_level"`
	WeeklyCapacityMin    int             `gorm:"column:weekly_capacity_min;not null;default:300" json:"weekly_capacity_min"`
	DailyCapacityMin     int             `gorm:"column:daily_capacity_min;not null;default:60" json:"daily_capacity_min"`
	PreferredStyle       LearningStyle   `gorm:"column:preferred_style;not null;default:mixed" json:"preferred_style"`
	PrefersKoreanContent bool            `gorm:"column:prefers_korean_content;not null;default:false" json:"prefers_korean_content"`
	KnownSkillCount      int             `gorm:"column:known_skill_count;not null;default:0" json:"known_skill_count"`
	CreatedAt            time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time       `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string { return "member" }

// LearnerProfile is the immutable snapshot of a member that a single
// planning run works from.
type LearnerProfile struct {
	MemberID             uuid.UUID       `json:"member_id"`
	DisplayName          string          `json:"display_name"`
	ExperienceLevel      ExperienceLevel `json:"experience_level"`
	WeeklyCapacityMin    int             `json:"weekly_capacity_min"`
	DailyCapacityMin     int             `json:"daily_capacity_min"`
	PreferredStyle       LearningStyle   `json:"preferred_style"`
	PrefersKoreanContent bool            `json:"prefers_korean_content"`
	KnownSkillCount      int             `json:"known_skill_count"`
}

func (m *Member) Profile() LearnerProfile {
	return LearnerProfile{
		MemberID:             m.ID,
		DisplayName:          m.DisplayName,
		ExperienceLevel:      m.ExperienceLevel,
		WeeklyCapacityMin:    m.WeeklyCapacityMin,
		DailyCapacityMin:     m.DailyCapacityMin,
		PreferredStyle:       m.PreferredStyle,
		PrefersKoreanContent: m.PrefersKoreanContent,
		KnownSkillCount:      m.KnownSkillCount,
	}
}

// WeeklyHours is the whole-hour weekly budget used for week estimates
// and hybrid step sizing. Integer division matches the scheduling math
// downstream; a sub-hour capacity rounds to zero and is floored where
// division happens.
func (p LearnerProfile) WeeklyHours() int {
	return p.WeeklyCapacityMin / 60
}
