package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"payment-journey-tracker/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDefinitionsYAML = `
definitions:
  - name: Standard ACH Transfer
    version: 1
    category: payments
    config:
      start_events:
        - event_type: transfer_created
          resource_type: transfer
      end_events:
        - event_type: transfer_completed
      failure_events:
        - event_type: transfer_failed
      expected_steps:
        - name: Transfer Pending
          event_type: transfer_pending
          required: true
          max_minutes: 60
      timeout_minutes: 120
      conflict_resolution: oldest
  - name: Customer Verification
    version: 2
    active: false
    config:
      start_events:
        - event_type: customer_created
      end_events:
        - event_type: customer_verified
      conflict_resolution: newest
`

func writeDefinitionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journeys.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func setupLoader(t *testing.T) (*DefinitionLoader, *memDefRepo) {
	t.Helper()
	repo := newMemDefRepo()
	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	return NewDefinitionLoader(repo, clock, zerolog.Nop()), repo
}

func TestDefinitionLoader_LoadsAndUpserts(t *testing.T) {
	loader, repo := setupLoader(t)
	path := writeDefinitionsFile(t, validDefinitionsYAML)

	n, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1, "inactive definitions are stored but not listed")
	def := active[0]
	assert.Equal(t, "Standard ACH Transfer", def.Name)
	assert.Equal(t, 1, def.Version)
	assert.Equal(t, "payments", def.Category)
	assert.Equal(t, domain.ConflictOldest, def.Config.ConflictResolution)
	require.Len(t, def.Config.ExpectedSteps, 1)
	require.NotNil(t, def.Config.ExpectedSteps[0].MaxMinutes)
	assert.Equal(t, 60, *def.Config.ExpectedSteps[0].MaxMinutes)
}

func TestDefinitionLoader_DeterministicIDsAcrossReloads(t *testing.T) {
	loader, repo := setupLoader(t)
	path := writeDefinitionsFile(t, validDefinitionsYAML)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)
	first, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = loader.Load(context.Background(), path)
	require.NoError(t, err)
	second, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1, "reload maps onto the same row")
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestDefinitionLoader_InvalidDefinitionAbortsWholeLoad(t *testing.T) {
	loader, repo := setupLoader(t)
	// Second definition has no start events, which fails config validation.
	path := writeDefinitionsFile(t, `
definitions:
  - name: Good
    version: 1
    config:
      start_events:
        - event_type: a
      end_events:
        - event_type: b
      conflict_resolution: oldest
  - name: Broken
    version: 1
    config:
      end_events:
        - event_type: b
      conflict_resolution: oldest
`)

	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active, "nothing applied when any definition is invalid")
}

func TestDefinitionLoader_MissingFile(t *testing.T) {
	loader, _ := setupLoader(t)
	_, err := loader.Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefinitionLoader_EmptyFileRejected(t *testing.T) {
	loader, _ := setupLoader(t)
	path := writeDefinitionsFile(t, "definitions: []\n")
	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
}

func TestDefinitionLoader_WarnsOnNonNormalizedEventType(t *testing.T) {
	repo := newMemDefRepo()
	clock := newFakeClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	var logs bytes.Buffer
	loader := NewDefinitionLoader(repo, clock, zerolog.New(&logs))

	// customer_verification_document_uploaded normalizes to
	// verification_document_uploaded before matching, so as declared the
	// step could never fire.
	path := writeDefinitionsFile(t, `
definitions:
  - name: Customer Verification
    version: 1
    config:
      start_events:
        - event_type: customer_created
      end_events:
        - event_type: customer_verified
      expected_steps:
        - name: Document Uploaded
          event_type: customer_verification_document_uploaded
      conflict_resolution: newest
`)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err, "non-normalized types load, with a warning")
	assert.Contains(t, logs.String(), "customer_verification_document_uploaded")
	assert.Contains(t, logs.String(), "will never match")
}

func TestDefinitionLoader_SeedFileTypesAreNormalized(t *testing.T) {
	loader, repo := setupLoader(t)

	// The shipped seed file must only declare event types that inbound
	// topic normalization can actually produce.
	n, err := loader.Load(context.Background(), filepath.Join("..", "..", "config", "journeys.yaml"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	for _, def := range active {
		for _, et := range def.Config.EventTypes() {
			assert.Equal(t, domain.NormalizeTopic(et), et,
				"definition %q declares %q, which cannot match a normalized event", def.Name, et)
		}
		for _, step := range def.Config.ExpectedSteps {
			assert.NotNil(t, def.Config.FindExpectedStep(domain.NormalizeTopic(step.EventType)),
				"definition %q: step %q unreachable after normalization", def.Name, step.Name)
		}
	}
}

func TestDefinitionLoader_WatchReloadsOnChange(t *testing.T) {
	loader, repo := setupLoader(t)
	path := writeDefinitionsFile(t, validDefinitionsYAML)

	_, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, loader.Watch(ctx, path))

	updated := `
definitions:
  - name: Standard ACH Transfer
    version: 2
    config:
      start_events:
        - event_type: transfer_created
      end_events:
        - event_type: transfer_completed
      conflict_resolution: oldest
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o600))

	assert.Eventually(t, func() bool {
		active, err := repo.ListActive(context.Background())
		if err != nil {
			return false
		}
		for _, d := range active {
			if d.Name == "Standard ACH Transfer" && d.Version == 2 {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)
}
