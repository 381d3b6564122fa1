package zones

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwlog "github.com/msto63/chronik/foundation/core/log"
	"github.com/msto63/chronik/foundation/utils/timex"
	"github.com/msto63/chronik/pkg/core/config"
	"github.com/msto63/chronik/pkg/core/logging"
)

func quietLogger() *logging.Logger {
	return logging.Wrap("zones", mdwlog.NewWithConfig(mdwlog.Config{Output: io.Discard}))
}

func scenarioConfig() config.ZoneConfig {
	return config.ZoneConfig{
		ID:         "Test/Scenario",
		BaseOffset: "+01:00",
		Rules: []config.RuleConfig{{
			FromYear: 2000,
			ToYear:   2100,
			Delta:    "1h",
			Start:    "08-26 02:00",
			End:      "10-26 03:00",
		}},
	}
}

func scenarioDefinition(t *testing.T) Definition {
	t.Helper()
	def, err := DefinitionFromConfig(scenarioConfig())
	require.NoError(t, err)
	return def
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(StoreConfig{Path: filepath.Join(t.TempDir(), "data", "zones.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefinitionFromConfig(t *testing.T) {
	def := scenarioDefinition(t)

	assert.Equal(t, "Test/Scenario", def.ID)
	assert.Equal(t, SourceConfig, def.Source)
	assert.Equal(t, timex.Hour, def.BaseOffset)
	require.Len(t, def.Rules, 1)
	assert.Equal(t, timex.Hour, def.Rules[0].DaylightDelta)
	assert.Equal(t, time.August, def.Rules[0].Start.Month)
	assert.Equal(t, 26, def.Rules[0].Start.Day)

	zone, err := def.Build()
	require.NoError(t, err)
	assert.Equal(t, "Test/Scenario", zone.ID())

	roundTrip, err := DefinitionFromConfig(def.Config())
	require.NoError(t, err)
	assert.Equal(t, def.Rules, roundTrip.Rules)
	assert.Equal(t, def.BaseOffset, roundTrip.BaseOffset)
}

func TestDefinitionFromConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.ZoneConfig)
	}{
		{"bad offset", func(zc *config.ZoneConfig) { zc.BaseOffset = "one" }},
		{"bad delta", func(zc *config.ZoneConfig) { zc.Rules[0].Delta = "an hour" }},
		{"bad start", func(zc *config.ZoneConfig) { zc.Rules[0].Start = "13-01 02:00" }},
		{"bad end", func(zc *config.ZoneConfig) { zc.Rules[0].End = "someday" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zc := scenarioConfig()
			tt.mutate(&zc)
			_, err := DefinitionFromConfig(zc)
			require.Error(t, err)
			e, ok := mdwerror.As(err)
			require.True(t, ok)
			zone, _ := e.Detail("zone")
			assert.Equal(t, "Test/Scenario", zone)
		})
	}
}

func TestBuildRejectsOverlappingRules(t *testing.T) {
	def := scenarioDefinition(t)
	def.Rules = append(def.Rules, def.Rules[0])

	_, err := def.Build()
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestStoreSaveGetListDelete(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	def := scenarioDefinition(t)

	rec, err := store.Save(ctx, def)
	require.NoError(t, err)
	assert.Len(t, rec.UUID, 36)
	assert.Equal(t, SourceStore, rec.Definition.Source)

	got, err := store.Get(ctx, "Test/Scenario")
	require.NoError(t, err)
	assert.Equal(t, rec.UUID, got.UUID)
	assert.Equal(t, def.BaseOffset, got.Definition.BaseOffset)
	assert.Equal(t, def.Rules, got.Definition.Rules)

	_, err = store.Save(ctx, Definition{ID: "Test/Fixed", BaseOffset: -3 * timex.Hour})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Test/Fixed", list[0].Definition.ID)
	assert.Empty(t, list[0].Definition.Rules)
	assert.Equal(t, "Test/Scenario", list[1].Definition.ID)

	require.NoError(t, store.Delete(ctx, "Test/Scenario"))
	_, err = store.Get(ctx, "Test/Scenario")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	err = store.Delete(ctx, "Test/Scenario")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
}

func TestStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	def := scenarioDefinition(t)

	first, err := store.Save(ctx, def)
	require.NoError(t, err)

	def.BaseOffset = 2 * timex.Hour
	def.Rules[0].DaylightDelta = 30 * timex.Minute
	second, err := store.Save(ctx, def)
	require.NoError(t, err)
	assert.Equal(t, first.UUID, second.UUID, "replacing keeps the record id")

	got, err := store.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*timex.Hour, got.Definition.BaseOffset)
	require.Len(t, got.Definition.Rules, 1)
	assert.Equal(t, 30*timex.Minute, got.Definition.Rules[0].DaylightDelta)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func subMinuteConfig() config.ZoneConfig {
	return config.ZoneConfig{
		ID:         "Test/Precise",
		BaseOffset: "+01:00",
		Rules: []config.RuleConfig{{
			Delta: "1h",
			Start: "last Sunday of March 01:59:59.5",
			End:   "10-31 23:59:59.999",
		}},
	}
}

func TestSubMinuteTransitionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	def, err := DefinitionFromConfig(subMinuteConfig())
	require.NoError(t, err)
	require.Equal(t, 59, def.Rules[0].End.TimeOfDay.Second())
	require.Equal(t, 999, def.Rules[0].End.TimeOfDay.Millisecond())

	exported := def.Config()
	assert.Equal(t, "10-31 23:59:59.999", exported.Rules[0].End)
	assert.Equal(t, "last Sunday of March 01:59:59.5", exported.Rules[0].Start)
	reimported, err := DefinitionFromConfig(exported)
	require.NoError(t, err)
	assert.Equal(t, def.Rules, reimported.Rules)

	store := openStore(t)
	_, err = store.Save(ctx, def)
	require.NoError(t, err)
	got, err := store.Get(ctx, def.ID)
	require.NoError(t, err)
	assert.Equal(t, def.Rules, got.Definition.Rules)
}

func TestStoreRejectsSubMinuteDelta(t *testing.T) {
	zc := subMinuteConfig()
	zc.Rules[0].Delta = "1h0m30s"
	def, err := DefinitionFromConfig(zc)
	require.NoError(t, err)

	_, err = openStore(t).Save(context.Background(), def)
	require.Error(t, err)
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}

func TestStorePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "zones.db")

	store, err := OpenStore(StoreConfig{Path: path})
	require.NoError(t, err)
	_, err = store.Save(ctx, scenarioDefinition(t))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := OpenStore(StoreConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.PingContext(ctx))
	list, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry(nil, quietLogger())
	require.NoError(t, reg.Add(scenarioDefinition(t)))

	tests := []struct {
		id     string
		wantID string
		base   timex.Duration
	}{
		{"UTC", "UTC", 0},
		{"z", "UTC", 0},
		{"Test/Scenario", "Test/Scenario", timex.Hour},
		{"UTC+05:30", "UTC+05:30", 5*timex.Hour + 30*timex.Minute},
		{"-03", "UTC-03:00", -3 * timex.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			zone, err := reg.Resolve(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, zone.ID())
			assert.Equal(t, tt.base, zone.BaseUtcOffset())
		})
	}

	_, err := reg.Resolve("")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))

	_, err = reg.Resolve("UTC+99:00")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUnknownTimeZone))
}

func TestRegistryResolveIANA(t *testing.T) {
	reg := NewRegistry(nil, quietLogger())
	calls := 0
	reg.loadIANA = func(name string) (*timex.LocationZone, error) {
		calls++
		return timex.LoadLocationZone(name)
	}

	_, err := reg.Resolve("Nowhere/Atlantis")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeUnknownTimeZone))

	if _, err := time.LoadLocation("Europe/Berlin"); err != nil {
		t.Skip("host has no tzdata")
	}
	calls = 0
	first, err := reg.Resolve("Europe/Berlin")
	require.NoError(t, err)
	second, err := reg.Resolve("Europe/Berlin")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls, "second lookup is served from the cache")
}

func TestRegistryDefineAndRemove(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	reg := NewRegistry(store, quietLogger())

	def := scenarioDefinition(t)
	def.Source = ""
	require.NoError(t, reg.Define(ctx, def))

	zone, err := reg.Resolve("Test/Scenario")
	require.NoError(t, err)
	day, err := timex.NewZonedDay(2021, time.August, 26, zone)
	require.NoError(t, err)
	assert.Equal(t, 23*timex.Hour, day.Duration())

	// a fresh registry over the same store sees the zone
	fresh := NewRegistry(store, quietLogger())
	require.NoError(t, fresh.LoadStore(ctx))
	assert.Equal(t, 1, fresh.Len())
	assert.Equal(t, SourceStore, fresh.Definitions()[0].Source)

	require.NoError(t, reg.Remove(ctx, "Test/Scenario"))
	_, err = store.Get(ctx, "Test/Scenario")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	err = reg.Remove(ctx, "Test/Scenario")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
}

func TestRegistryProtectsConfigZones(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	reg := NewRegistry(store, quietLogger())
	require.NoError(t, reg.Add(scenarioDefinition(t)))

	stored := scenarioDefinition(t)
	stored.BaseOffset = 2 * timex.Hour
	_, err := store.Save(ctx, stored)
	require.NoError(t, err)
	require.NoError(t, reg.LoadStore(ctx))

	zone, err := reg.Resolve("Test/Scenario")
	require.NoError(t, err)
	assert.Equal(t, timex.Hour, zone.BaseUtcOffset(), "config definition wins")

	err = reg.Define(ctx, scenarioDefinition(t))
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeDuplicateEntry))

	err = reg.Remove(ctx, "Test/Scenario")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))

	err = reg.Define(ctx, Definition{ID: "UTC+01:00", BaseOffset: timex.Hour})
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))
}
