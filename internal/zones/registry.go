package zones

import (
	"context"
	"sort"
	"strings"
	"sync"

	mdwerror "github.com/msto63/chronik/foundation/core/error"
	mdwerrors "github.com/msto63/chronik/foundation/core/errors"
	"github.com/msto63/chronik/foundation/utils/timex"
	"github.com/msto63/chronik/pkg/core/cache"
	"github.com/msto63/chronik/pkg/core/logging"
)

// Registry resolves zone ids to rules. Ids are tried in this order: UTC,
// custom definitions, fixed offsets such as "UTC+01:00", then the host
// time zone database. Offset and host zones are kept in a bounded cache.
type Registry struct {
	mu       sync.RWMutex
	built    map[string]*timex.RuleZone
	custom   map[string]Definition
	lookups  *cache.Cache[timex.TimeZoneRules]
	store    *Store
	logger   *logging.Logger
	loadIANA func(name string) (*timex.LocationZone, error)
}

// NewRegistry creates a registry. store may be nil, custom zones are then
// kept in memory only.
func NewRegistry(store *Store, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.New("zones")
	}
	return &Registry{
		built:    make(map[string]*timex.RuleZone),
		custom:   make(map[string]Definition),
		lookups:  cache.New[timex.TimeZoneRules](cache.DefaultConfig()),
		store:    store,
		logger:   logger,
		loadIANA: timex.LoadLocationZone,
	}
}

// Add registers definitions without persisting them. Config zones are added
// this way.
func (r *Registry) Add(defs ...Definition) error {
	built := make(map[string]*timex.RuleZone, len(defs))
	for _, def := range defs {
		zone, err := def.Build()
		if err != nil {
			return err
		}
		built[def.ID] = zone
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		r.custom[def.ID] = def
		r.built[def.ID] = built[def.ID]
		r.lookups.Delete(def.ID)
	}
	r.logger.Debug("custom zones registered", "count", len(defs))
	return nil
}

// LoadStore registers all definitions of the store. Definitions already
// registered from config win over stored ones.
func (r *Registry) LoadStore(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	records, err := r.store.List(ctx)
	if err != nil {
		return err
	}

	var defs []Definition
	r.mu.RLock()
	for _, rec := range records {
		if existing, ok := r.custom[rec.Definition.ID]; ok && existing.Source == SourceConfig {
			r.logger.Warn("stored zone shadowed by config", "zone", rec.Definition.ID)
			continue
		}
		defs = append(defs, rec.Definition)
	}
	r.mu.RUnlock()

	if err := r.Add(defs...); err != nil {
		return err
	}
	r.logger.Info("stored zones loaded", "count", len(defs))
	return nil
}

// Resolve returns the rules of id
func (r *Registry) Resolve(id string) (timex.TimeZoneRules, error) {
	const op = "Resolve"

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModuleZones, op, "zone id must not be empty")
	}
	if isUTC(id) {
		return timex.UTC, nil
	}

	r.mu.RLock()
	custom, ok := r.built[id]
	r.mu.RUnlock()
	if ok {
		return custom, nil
	}

	return r.lookups.GetOrSet(id, func() (timex.TimeZoneRules, error) {
		if looksLikeOffset(id) {
			offset, err := timex.ParseOffset(id)
			if err != nil {
				return nil, mdwerrors.ModuleError(mdwerrors.ModuleZones, op, mdwerror.CodeUnknownTimeZone, err).
					WithDetail("zone", id)
			}
			return timex.NewFixedZone("UTC"+timex.FormatOffset(offset), offset), nil
		}
		loc, err := r.loadIANA(id)
		if err != nil {
			r.logger.Debug("zone lookup failed", "zone", id, "error", err)
			return nil, err
		}
		return loc, nil
	})
}

// Define validates def, persists it when a store is configured and makes
// it resolvable
func (r *Registry) Define(ctx context.Context, def Definition) error {
	const op = "Define"

	if isUTC(def.ID) || looksLikeOffset(def.ID) {
		return mdwerrors.InvalidInput(mdwerrors.ModuleZones, op, "zone id "+def.ID+" is reserved")
	}
	r.mu.RLock()
	existing, ok := r.custom[def.ID]
	r.mu.RUnlock()
	if ok && existing.Source == SourceConfig {
		return mdwerrors.StandardError(mdwerrors.ModuleZones, op, mdwerror.CodeDuplicateEntry,
			"zone "+def.ID+" is defined in the configuration").WithDetail("zone", def.ID)
	}

	if _, err := def.Build(); err != nil {
		return err
	}
	if r.store != nil {
		rec, err := r.store.Save(ctx, def)
		if err != nil {
			return err
		}
		def = rec.Definition
	}
	if err := r.Add(def); err != nil {
		return err
	}
	r.logger.Info("zone defined", "zone", def.ID, "rules", len(def.Rules))
	return nil
}

// Remove deletes a stored definition
func (r *Registry) Remove(ctx context.Context, id string) error {
	const op = "Remove"

	r.mu.RLock()
	def, ok := r.custom[id]
	r.mu.RUnlock()
	if !ok {
		return mdwerrors.NotFound(mdwerrors.ModuleZones, op, id)
	}
	if def.Source == SourceConfig {
		return mdwerrors.InvalidInput(mdwerrors.ModuleZones, op, "zone "+id+" is defined in the configuration")
	}
	if r.store != nil {
		if err := r.store.Delete(ctx, id); err != nil {
			return err
		}
	}

	r.mu.Lock()
	delete(r.custom, id)
	delete(r.built, id)
	r.mu.Unlock()
	r.logger.Info("zone removed", "zone", id)
	return nil
}

// Definitions returns the custom definitions ordered by id
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defs := make([]Definition, 0, len(r.custom))
	for _, def := range r.custom {
		defs = append(defs, def)
	}
	r.mu.RUnlock()

	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Len returns the number of custom definitions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.custom)
}

func isUTC(id string) bool {
	switch strings.ToUpper(id) {
	case "UTC", "Z", "ETC/UTC", "GMT":
		return true
	}
	return false
}

func looksLikeOffset(id string) bool {
	upper := strings.ToUpper(id)
	return strings.HasPrefix(upper, "UTC+") || strings.HasPrefix(upper, "UTC-") ||
		strings.HasPrefix(id, "+") || strings.HasPrefix(id, "-")
}
