package zones

import (
	"fmt"
	"time"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
	"github.com/msto63/chronik/foundation/utils/timex"
	"github.com/msto63/chronik/pkg/core/config"
)

// Source tells where a custom zone definition came from
type Source string

const (
	SourceConfig Source = "config"
	SourceStore  Source = "store"
)

// Definition is a custom rule zone in its editable form
type Definition struct {
	ID         string
	BaseOffset timex.Duration
	Rules      []timex.AdjustmentRule
	Source     Source
}

// Build validates the definition and creates the zone
func (d Definition) Build() (*timex.RuleZone, error) {
	zone, err := timex.NewRuleZone(d.ID, d.BaseOffset, d.Rules...)
	if err != nil {
		return nil, mdwerrors.ModuleError(mdwerrors.ModuleZones, "Build", mdwerror.CodeInvalidInput, err).
			WithDetail("zone", d.ID)
	}
	return zone, nil
}

// DefinitionFromConfig converts a [[zones]] entry
func DefinitionFromConfig(zc config.ZoneConfig) (Definition, error) {
	const op = "DefinitionFromConfig"

	base, err := timex.ParseOffset(zc.BaseOffset)
	if err != nil {
		return Definition{}, mdwerrors.ModuleError(mdwerrors.ModuleZones, op, mdwerror.GetCode(err), err).
			WithDetail("zone", zc.ID)
	}

	def := Definition{ID: zc.ID, BaseOffset: base, Source: SourceConfig}
	for i, rc := range zc.Rules {
		rule, err := ruleFromConfig(rc)
		if err != nil {
			return Definition{}, mdwerrors.ModuleError(mdwerrors.ModuleZones, op, mdwerror.GetCode(err),
				fmt.Errorf("rule %d: %w", i, err)).WithDetail("zone", zc.ID)
		}
		def.Rules = append(def.Rules, rule)
	}
	return def, nil
}

func ruleFromConfig(rc config.RuleConfig) (timex.AdjustmentRule, error) {
	delta, err := time.ParseDuration(rc.Delta)
	if err != nil {
		return timex.AdjustmentRule{}, mdwerrors.InvalidFormat(mdwerrors.ModuleZones, "ruleFromConfig", rc.Delta, "Go duration such as 1h or 30m")
	}
	start, err := timex.ParseTransitionTime(rc.Start)
	if err != nil {
		return timex.AdjustmentRule{}, err
	}
	end, err := timex.ParseTransitionTime(rc.End)
	if err != nil {
		return timex.AdjustmentRule{}, err
	}
	return timex.AdjustmentRule{
		FromYear:      rc.FromYear,
		ToYear:        rc.ToYear,
		DaylightDelta: timex.DurationFromTimeDuration(delta),
		Start:         start,
		End:           end,
	}, nil
}

// Config renders the definition as a [[zones]] entry
func (d Definition) Config() config.ZoneConfig {
	zc := config.ZoneConfig{ID: d.ID, BaseOffset: timex.FormatOffset(d.BaseOffset)}
	for _, r := range d.Rules {
		zc.Rules = append(zc.Rules, config.RuleConfig{
			FromYear: r.FromYear,
			ToYear:   r.ToYear,
			Delta:    r.DaylightDelta.TimeDuration().String(),
			Start:    r.Start.String(),
			End:      r.End.String(),
		})
	}
	return zc
}
