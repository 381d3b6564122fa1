package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	"github.com/msto63/chronik/foundation/utils/timex"
	"github.com/msto63/chronik/internal/calendar/service"
	"github.com/msto63/chronik/pkg/core/config"
)

const testConfig = `
[general]
log_level = "error"

[calendar]
default_zone = "Test/Scenario"

[store]
enabled = true
path = "%STORE%"

[server]
shutdown_timeout = "2s"

[[zones]]
id = "Test/Scenario"
base_offset = "+01:00"

[[zones.rules]]
delta = "1h"
start = "08-26 02:00"
end = "10-26 03:00"
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chronik.toml")
	content := strings.ReplaceAll(testConfig, "%STORE%", filepath.ToSlash(filepath.Join(dir, "zones.db")))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the CLI with args against the config at path
func run(t *testing.T, path string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(append(args, "--config", path))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDayCommand(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, path, "day", "2021-08-26")
	require.NoError(t, err)
	assert.Contains(t, out, "2021-08-26 +01:00/+02:00 (Test/Scenario) (Thursday)")
	assert.Contains(t, out, "Dauer:   23h0m0s (23 h)")
	assert.Contains(t, out, "Ungültig: 2021-08-26 02:00:00.0000000 bis 2021-08-26 02:59:59.9999999")

	out, err = run(t, path, "day", "26.10.2021", "-f", "json")
	require.NoError(t, err)
	var day service.DayView
	require.NoError(t, json.Unmarshal([]byte(out), &day))
	assert.Equal(t, 25.0, day.Hours)
	require.NotNil(t, day.Overlap)

	out, err = run(t, path, "day", "2021-08-26", "-z", "UTC")
	require.NoError(t, err)
	assert.Contains(t, out, "24h0m0s")
}

func TestWeekCommand(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, path, "week", "--year", "2021", "--week", "34", "-f", "yaml")
	require.NoError(t, err)
	var week service.WeekView
	require.NoError(t, yaml.Unmarshal([]byte(out), &week))
	assert.Equal(t, 167.0, week.Hours)
	assert.Len(t, week.Days, 7)

	out, err = run(t, path, "week", "2021-08-26")
	require.NoError(t, err)
	assert.Contains(t, out, "2021-08-26 Thursday    23.0 h  Sommerzeit beginnt")

	_, err = run(t, path, "week", "--year", "2021", "--week", "54")
	assert.True(t, timex.IsOutOfRange(err), "got %v", err)
}

func TestAddAndOffsetCommands(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, path, "add", "2021-08-25 12:00", "1", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "Verstrichen: 23h0m0s, Sommerzeit: ja")

	_, err = run(t, path, "add", "2021-08-25 02:30", "1 day")
	assert.True(t, timex.IsInvalidZonedDateTime(err), "got %v", err)

	out, err = run(t, path, "offset", "2021-01-31", "2021-03-15", "-z", "UTC", "--units", "months|days")
	require.NoError(t, err)
	assert.Contains(t, out, "Periode (months|days): 1 month(s), 15 day(s)")

	out, err = run(t, path, "offset", "2021-01-31", "2021-02-28", "-z", "UTC", "--units", "months|days")
	require.NoError(t, err)
	assert.Contains(t, out, "Periode (months|days): 28 day(s)")

	out, err = run(t, path, "offset", "2021-01-31", "2021-02-28", "-z", "UTC", "--units", "months|days", "--greedy")
	require.NoError(t, err)
	assert.Contains(t, out, "Periode (months|days): 1 month(s)")
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, writeConfig(t), "day", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestZonesCommands(t *testing.T) {
	path := writeConfig(t)

	out, err := run(t, path, "zones", "add", "Custom/South", "--base", "-03:00",
		"--rule", "2000-2100;30m;10-15 00:00;02-20 00:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Zone Custom/South gespeichert (1 Regeln)")

	out, err = run(t, path, "zones", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Custom/South  UTC-03:00  [store]")
	assert.Contains(t, out, "Test/Scenario  UTC+01:00  [config]")

	// the stored zone survives the process and resolves
	out, err = run(t, path, "day", "2021-10-15", "-z", "Custom/South")
	require.NoError(t, err)
	assert.Contains(t, out, "23h30m0s")

	out, err = run(t, path, "zones", "export", "Custom/South")
	require.NoError(t, err)
	var exported struct {
		Zones []config.ZoneConfig `toml:"zones"`
	}
	_, err = toml.Decode(out, &exported)
	require.NoError(t, err)
	require.Len(t, exported.Zones, 1)
	assert.Equal(t, "-03:00", exported.Zones[0].BaseOffset)
	assert.Equal(t, "30m0s", exported.Zones[0].Rules[0].Delta)

	_, err = run(t, path, "zones", "export", "Nowhere/Atlantis")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))

	_, err = run(t, path, "zones", "add", "Test/Scenario", "--rule", "1h;03-01 02:00;10-01 03:00")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeDuplicateEntry))

	_, err = run(t, path, "zones", "remove", "Test/Scenario")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidInput))

	_, err = run(t, path, "zones", "remove", "Custom/South")
	require.NoError(t, err)
	_, err = run(t, path, "zones", "remove", "Custom/South")
	assert.True(t, mdwerror.HasCode(err, mdwerror.CodeNotFound))
}

func TestParseRuleFlag(t *testing.T) {
	tests := []struct {
		raw     string
		want    config.RuleConfig
		wantErr bool
	}{
		{"1h;08-26 02:00;10-26 03:00", config.RuleConfig{Delta: "1h", Start: "08-26 02:00", End: "10-26 03:00"}, false},
		{"1996-2099; 1h ;last Sunday of March 02:00;last Sunday of October 03:00", config.RuleConfig{
			FromYear: 1996, ToYear: 2099, Delta: "1h",
			Start: "last Sunday of March 02:00", End: "last Sunday of October 03:00",
		}, false},
		{"1h;08-26 02:00", config.RuleConfig{}, true},
		{"1996;1h;03-01 02:00;10-01 03:00", config.RuleConfig{}, true},
		{"x-2000;1h;03-01 02:00;10-01 03:00", config.RuleConfig{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseRuleFlag(tt.raw)
			if tt.wantErr {
				assert.True(t, mdwerror.HasCode(err, mdwerror.CodeInvalidFormat), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServeAndRemote(t *testing.T) {
	path := writeConfig(t)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	target := lis.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runServer(ctx, &rootOptions{format: "text", cfg: cfg}, lis, io.Discard)
	}()
	defer func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	}()

	require.Eventually(t, func() bool {
		_, err := run(t, path, "remote", "health", "--target", target)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	out, err := run(t, path, "remote", "day", "2021-08-26", "--target", target)
	require.NoError(t, err)
	assert.Contains(t, out, "23h0m0s")

	out, err = run(t, path, "remote", "week", "2021-08-26", "--target", target, "-f", "json")
	require.NoError(t, err)
	var week service.WeekView
	require.NoError(t, json.Unmarshal([]byte(out), &week))
	assert.Equal(t, 167.0, week.Hours)

	_, err = run(t, path, "remote", "add", "2021-08-25 02:30", "1 day", "--target", target)
	assert.True(t, timex.IsInvalidZonedDateTime(err), "got %v", err)

	out, err = run(t, path, "remote", "zones", "--target", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Test/Scenario")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"version", "--config", "/does/not/exist.toml"})
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "chronik v")
}
