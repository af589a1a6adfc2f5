package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/planweave/planweave-backend/internal/data/repos"
	"github.com/planweave/planweave-backend/internal/domain"
	"github.com/planweave/planweave-backend/internal/pkg/dbctx"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

// TechnologyCatalogService answers catalog lookups for the descriptor
// resolver and seeds the catalog from a YAML file at startup.
type TechnologyCatalogService interface {
	FindByKey(ctx context.Context, key string) (*domain.Technology, error)
	SeedFromFile(ctx context.Context, path string) error
}

type technologyCatalogService struct {
	log      *logger.Logger
	techRepo repos.TechnologyRepo
}

func NewTechnologyCatalogService(baseLog *logger.Logger, techRepo repos.TechnologyRepo) TechnologyCatalogService {
	return &technologyCatalogService{
		log:      baseLog.With("service", "TechnologyCatalogService"),
		techRepo: techRepo,
	}
}

func (s *technologyCatalogService) FindByKey(ctx context.Context, key string) (*domain.Technology, error) {
	return s.techRepo.FindByKey(dbctx.From(ctx), key)
}

type catalogSeedEntry struct {
	Key          string `yaml:"key"`
	DisplayName  string `yaml:"display_name"`
	Category     string `yaml:"category"`
	Ecosystem    string `yaml:"ecosystem"`
	OfficialSite string `yaml:"official_site"`
}

type catalogSeedFile struct {
	Technologies []catalogSeedEntry `yaml:"technologies"`
}

func (s *technologyCatalogService) SeedFromFile(ctx context.Context, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog seed %s: %w", path, err)
	}

	var seed catalogSeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse catalog seed %s: %w", path, err)
	}

	rows := make([]*domain.Technology, 0, len(seed.Technologies))
	for _, e := range seed.Technologies {
		key := strings.TrimSpace(e.Key)
		if key == "" || strings.TrimSpace(e.DisplayName) == "" {
			s.log.Warn("skipping catalog seed entry without key or display name", "key", e.Key)
			continue
		}
		category := e.Category
		if category == "" {
			category = "Framework"
		}
		ecosystem := e.Ecosystem
		if ecosystem == "" {
			ecosystem = "General"
		}
		rows = append(rows, &domain.Technology{
			Key:          key,
			DisplayName:  e.DisplayName,
			Category:     category,
			Ecosystem:    ecosystem,
			OfficialSite: e.OfficialSite,
		})
	}

	if err := s.techRepo.UpsertByKey(dbctx.From(ctx), rows); err != nil {
		return fmt.Errorf("upsert catalog seed: %w", err)
	}
	s.log.Info("technology catalog seeded", "entries", len(rows))
	return nil
}
