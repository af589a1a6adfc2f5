package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanMetadata records what a planning run actually executed, not what
// was requested: on-demand materialization can run a stage even when an
// adjacent stage asked to skip it.
type PlanMetadata struct {
	PathTaken          string `json:"path_taken"`
	DepthLabel         string `json:"depth_label"`
	GapAnalysisRan     bool   `json:"gap_analysis_ran"`
	ResourcesEnriched  bool   `json:"resources_enriched"`
	TechnologyFellBack bool   `json:"technology_fell_back"`
}

// GeneratedLearningPlan is the finalized plan artifact. It is created
// once by the finalizer and never mutated; a new run produces a new plan.
type GeneratedLearningPlan struct {
	MemberID           uuid.UUID           `json:"member_id"`
	TechnologyKey      string              `json:"technology_key"`
	TechnologyName     string              `json:"technology_name"`
	Title              string              `json:"title"`
	Description        string              `json:"description"`
	BackgroundAnalysis string              `json:"background_analysis"`
	TotalHours         int                 `json:"total_hours"`
	EstimatedWeeks     int                 `json:"estimated_weeks"`
	StartDate          time.Time           `json:"start_date"`
	TargetEndDate      time.Time           `json:"target_end_date"`
	Steps              []EnrichedStep      `json:"steps"`
	Schedule           []DailyScheduleItem `json:"schedule"`
	Metadata           PlanMetadata        `json:"metadata"`
}

// LearningPlan is the persisted form of a generated plan. Steps,
// schedule and metadata are stored as JSONB documents.
type LearningPlan struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MemberID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"member_id"`
	Member             *Member        `gorm:"constraint:OnDelete:CASCADE;foreignKey:MemberID;references:ID" json:"member,omitempty"`
	TechnologyKey      string         `gorm:"column:technology_key;not null;index" json:"technology_key"`
	TechnologyName     string         `gorm:"column:technology_name;not null" json:"technology_name"`
	Title              string         `gorm:"column:title;not null" json:"title"`
	Description        string         `gorm:"column:description" json:"description"`
	BackgroundAnalysis string         `gorm:"column:background_analysis" json:"background_analysis"`
	TotalHours         int            `gorm:"column:total_hours;not null" json:"total_hours"`
	EstimatedWeeks     int            `gorm:"column:estimated_weeks;not null" json:"estimated_weeks"`
	StartDate          time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	TargetEndDate      time.Time      `gorm:"column:target_end_date;not null" json:"target_end_date"`
	Steps              datatypes.JSON `gorm:"column:steps;type:jsonb" json:"steps"`
	Schedule           datatypes.JSON `gorm:"column:schedule;type:jsonb" json:"schedule"`
	Metadata           datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningPlan) TableName() string { return "learning_plan" }
