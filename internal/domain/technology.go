package domain

import (
	"time"

	"github.com/google/uuid"
)

// Technology is a catalog row for a known technology.
type Technology struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Key          string    `gorm:"column:key;not null;uniqueIndex" json:"key"`
	DisplayName  string    `gorm:"column:display_name;not null" json:"display_name"`
	Category     string    `gorm:"column:category;not null" json:"category"`
	Ecosystem    string    `gorm:"column:ecosystem;not null" json:"ecosystem"`
	OfficialSite string    `gorm:"column:official_site" json:"official_site,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Technology) TableName() string { return "technology" }

// TechnologyDescriptor is the canonical reference a planning run works
// with. IsFallback=true means the descriptor was synthesized from the
// raw input because no catalog row matched.
type TechnologyDescriptor struct {
	Key          string `json:"key"`
	DisplayName  string `json:"display_name"`
	Category     string `json:"category"`
	Ecosystem    string `json:"ecosystem"`
	OfficialSite string `json:"official_site,omitempty"`
	IsFallback   bool   `json:"is_fallback"`
}

func (t *Technology) Descriptor() TechnologyDescriptor {
	return TechnologyDescriptor{
		Key:          t.Key,
		DisplayName:  t.DisplayName,
		Category:     t.Category,
		Ecosystem:    t.Ecosystem,
		OfficialSite: t.OfficialSite,
		IsFallback:   false,
	}
}
