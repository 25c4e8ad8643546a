// Package seed populates the default category tree on startup. Seeding is
// best-effort: any failure is logged and startup continues, so a broken
// seed never takes the storefront down.
package seed

import (
	"context"
	"fmt"
	"strings"

	"paper-mart/internal/model"
	"paper-mart/internal/repository"

	"github.com/rs/zerolog"
)

// defaultRoots are created when the category store is completely empty.
var defaultRoots = []string{
	"Planners",
	"Custom Bags",
	"Mugs",
	"New Arrivals",
}

// subSeed attaches a subcategory to a root matched by name.
type subSeed struct {
	Name   string
	Parent string
}

// defaultSubs are created under the named roots, both on a fresh store and
// as a backfill when roots exist but no subcategory does.
var defaultSubs = []subSeed{
	{Name: "Planners 2026", Parent: "Planners"},
	{Name: "Weekly Agendas", Parent: "Planners"},
	{Name: "Tote Bags", Parent: "Custom Bags"},
	{Name: "Ceramic Mugs", Parent: "Mugs"},
}

// Seeder performs the one-shot category bootstrap.
type Seeder struct {
	categories repository.CategoryRepository
	roots      []string
	subs       []subSeed
	logger     zerolog.Logger
}

// New creates a seeder for the default category tree.
func New(categories repository.CategoryRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		categories: categories,
		roots:      defaultRoots,
		subs:       defaultSubs,
		logger:     logger.With().Str("component", "seed").Logger(),
	}
}

// Run seeds the category tree idempotently:
//   - empty store: create the default roots, then the default subcategories;
//   - roots present but no subcategory anywhere: backfill the default
//     subcategories against the existing roots, skipping name+parent pairs
//     that already exist;
//   - roots and at least one subcategory present: do nothing.
//
// Run never returns an error; failures are logged and startup proceeds.
// The check-then-insert sequence is not safe against two processes seeding
// at once, which is acceptable for a single-instance deployment.
func (s *Seeder) Run(ctx context.Context) {
	if err := s.run(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("category seeding failed, continuing startup")
	}
}

func (s *Seeder) run(ctx context.Context) error {
	total, err := s.categories.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect category store: %w", err)
	}

	if total == 0 {
		return s.seedFresh(ctx)
	}

	subs, err := s.categories.CountSubcategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect category store: %w", err)
	}

	if subs > 0 {
		s.logger.Debug().
			Int("categories", total).
			Int("subcategories", subs).
			Msg("category tree already seeded")
		return nil
	}

	return s.backfillSubs(ctx)
}

// seedFresh populates roots and subcategories into an empty store.
func (s *Seeder) seedFresh(ctx context.Context) error {
	rootIDs := make(map[string]int64, len(s.roots))

	for _, name := range s.roots {
		id, err := s.categories.Create(ctx, &model.Category{Name: name})
		if err != nil {
			return fmt.Errorf("failed to seed root category %q: %w", name, err)
		}
		rootIDs[strings.ToLower(name)] = id
	}

	created := len(s.roots)
	for _, sub := range s.subs {
		parentID, ok := rootIDs[strings.ToLower(sub.Parent)]
		if !ok {
			s.logger.Warn().
				Str("subcategory", sub.Name).
				Str("parent", sub.Parent).
				Msg("seed subcategory has no matching root, skipping")
			continue
		}
		if _, err := s.categories.Create(ctx, &model.Category{Name: sub.Name, ParentID: &parentID}); err != nil {
			return fmt.Errorf("failed to seed subcategory %q: %w", sub.Name, err)
		}
		created++
	}

	s.logger.Info().Int("categories", created).Msg("seeded default category tree")
	return nil
}

// backfillSubs attaches the default subcategories to existing roots,
// matching parents by case-insensitive name and skipping pairs that exist.
func (s *Seeder) backfillSubs(ctx context.Context) error {
	roots, err := s.categories.GetRoots(ctx)
	if err != nil {
		return fmt.Errorf("failed to list root categories: %w", err)
	}

	rootIDs := make(map[string]int64, len(roots))
	for _, root := range roots {
		rootIDs[strings.ToLower(root.Name)] = root.ID
	}

	created := 0
	for _, sub := range s.subs {
		parentID, ok := rootIDs[strings.ToLower(sub.Parent)]
		if !ok {
			continue
		}

		exists, err := s.categories.ExistsByNameAndParent(ctx, sub.Name, parentID)
		if err != nil {
			return fmt.Errorf("failed to check subcategory %q: %w", sub.Name, err)
		}
		if exists {
			continue
		}

		if _, err := s.categories.Create(ctx, &model.Category{Name: sub.Name, ParentID: &parentID}); err != nil {
			return fmt.Errorf("failed to backfill subcategory %q: %w", sub.Name, err)
		}
		created++
	}

	s.logger.Info().Int("subcategories", created).Msg("backfilled default subcategories")
	return nil
}
