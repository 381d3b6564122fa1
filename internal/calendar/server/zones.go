package server

import (
	"github.com/msto63/chronik/internal/zones"
	"github.com/msto63/chronik/pkg/core/config"
)

// ZoneInfo is a custom zone as returned by ListZones
type ZoneInfo struct {
	config.ZoneConfig `yaml:",inline"`
	Source            string `json:"source" yaml:"source"`
}

// ZoneList is the ListZones response
type ZoneList struct {
	DefaultZone string     `json:"default_zone" yaml:"default_zone"`
	Zones       []ZoneInfo `json:"zones" yaml:"zones"`
}

// DescribeZones lists the custom zones of registry, which may be nil
func DescribeZones(defaultZone string, registry *zones.Registry) ZoneList {
	list := ZoneList{DefaultZone: defaultZone, Zones: []ZoneInfo{}}
	if registry == nil {
		return list
	}
	for _, def := range registry.Definitions() {
		list.Zones = append(list.Zones, ZoneInfo{
			ZoneConfig: def.Config(),
			Source:     string(def.Source),
		})
	}
	return list
}
