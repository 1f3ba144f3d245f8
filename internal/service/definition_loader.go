package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// definitionsFile is the YAML document shape for seeded journey definitions.
type definitionsFile struct {
	Definitions []definitionSpec `yaml:"definitions"`
}

type definitionSpec struct {
	Name       string                   `yaml:"name"`
	Version    int                      `yaml:"version"`
	Category   string                   `yaml:"category"`
	Active     *bool                    `yaml:"active"`
	Tags       []string                 `yaml:"tags"`
	Config     domain.JourneyConfig     `yaml:"config"`
	Thresholds domain.JourneyThresholds `yaml:"thresholds"`
}

// DefinitionLoader seeds journey definitions from a YAML file into the
// definition store, optionally reloading on file changes.
type DefinitionLoader struct {
	repo  ports.DefinitionRepository
	clock ports.Clock
	log   zerolog.Logger
}

// NewDefinitionLoader creates a loader.
func NewDefinitionLoader(repo ports.DefinitionRepository, clock ports.Clock, log zerolog.Logger) *DefinitionLoader {
	return &DefinitionLoader{repo: repo, clock: clock, log: log}
}

// Load parses the YAML file, validates every definition, and upserts them
// keyed by (name, version). A validation failure in any definition aborts the
// whole load so a partially applied file never goes live.
func (l *DefinitionLoader) Load(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read definitions file: %w", err)
	}

	var file definitionsFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return 0, fmt.Errorf("parse definitions file: %w", err)
	}
	if len(file.Definitions) == 0 {
		return 0, fmt.Errorf("definitions file %s declares no definitions", path)
	}

	defs := make([]*domain.JourneyDefinition, 0, len(file.Definitions))
	for i, spec := range file.Definitions {
		def, err := l.buildDefinition(spec)
		if err != nil {
			return 0, fmt.Errorf("definition %d (%q): %w", i, spec.Name, err)
		}
		defs = append(defs, def)
	}

	for _, def := range defs {
		if err := l.repo.Upsert(ctx, def); err != nil {
			return 0, fmt.Errorf("upsert definition %q v%d: %w", def.Name, def.Version, err)
		}
	}

	l.log.Info().Int("count", len(defs)).Str("path", path).Msg("journey definitions loaded")
	return len(defs), nil
}

func (l *DefinitionLoader) buildDefinition(spec definitionSpec) (*domain.JourneyDefinition, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if spec.Version <= 0 {
		return nil, fmt.Errorf("version must be positive")
	}
	if err := spec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Inbound topics are normalized before matching, so a declared type that
	// differs from its own normalization can never match a stored event.
	for _, et := range spec.Config.EventTypes() {
		if norm := domain.NormalizeTopic(et); norm != et {
			l.log.Warn().
				Str("definition", spec.Name).
				Str("declared", et).
				Str("normalized", norm).
				Msg("declared event type is not in normalized form and will never match")
		}
	}

	active := true
	if spec.Active != nil {
		active = *spec.Active
	}

	now := l.clock.Now()
	return &domain.JourneyDefinition{
		// Deterministic per (name, version): reloading the file maps to the
		// same row and keeps instance references stable.
		ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("journey:%s#%d", spec.Name, spec.Version))),
		Name:       spec.Name,
		Version:    spec.Version,
		Category:   spec.Category,
		Active:     active,
		Tags:       spec.Tags,
		Config:     spec.Config,
		Thresholds: spec.Thresholds,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Watch reloads the definitions file whenever it changes, until ctx ends.
// A failed reload keeps the previously loaded definitions in place.
func (l *DefinitionLoader) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory rather than the file: editors and config mounts
	// replace the file by rename, which drops a direct file watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		base := filepath.Base(path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if _, err := l.Load(ctx, path); err != nil {
					l.log.Error().Err(err).Str("path", path).Msg("definition reload failed, keeping previous definitions")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				l.log.Error().Err(err).Msg("definition watcher error")
			}
		}
	}()

	l.log.Info().Str("path", path).Msg("watching journey definitions for changes")
	return nil
}
