// Package feed delivers weather snapshots to the scene engine
package feed

import (
	"strings"
	"time"

	"github.com/lixenwraith/wxscene/weather"
)

// Sink receives snapshots, *engine.Engine satisfies it
type Sink interface {
	SetWeather(s *weather.Snapshot) error
}

// defaultCodes is the representative condition code per category when none is given
var defaultCodes = map[weather.Category]int{
	weather.CategoryClear:        800,
	weather.CategoryClouds:       803,
	weather.CategoryRain:         500,
	weather.CategoryDrizzle:      300,
	weather.CategoryThunderstorm: 200,
	weather.CategorySnow:         601,
	weather.CategoryAtmospheric:  701,
	weather.CategoryOther:        771,
}

// presetDayHalf places dt half a day inside or outside the sun window
const presetDayHalf = 6 * time.Hour

// DefaultCode returns the representative code for c, 0 for None
func DefaultCode(c weather.Category) int {
	return defaultCodes[c]
}

// Preset builds a snapshot without a provider fetch
// main accepts category or provider names, "none" yields a nil snapshot; id 0 selects the category default
func Preset(main string, id int, daytime bool, now time.Time) (*weather.Snapshot, error) {
	cat, err := weather.ParseCategory(main)
	if err != nil {
		return nil, err
	}
	if cat == weather.CategoryNone {
		return nil, nil
	}
	if id == 0 {
		id = DefaultCode(cat)
	}

	dt := now.Unix()
	sunrise := now.Add(-presetDayHalf).Unix()
	sunset := now.Add(presetDayHalf).Unix()
	if !daytime {
		sunrise = now.Add(presetDayHalf).Unix()
		sunset = now.Add(3 * presetDayHalf).Unix()
	}

	return &weather.Snapshot{
		Weather: []weather.Condition{{ID: id, Main: providerMain(main, cat)}},
		Dt:      dt,
		Sys:     weather.Sys{Sunrise: sunrise, Sunset: sunset},
		Name:    "preset",
	}, nil
}

// providerMain returns the provider spelling of main, or a representative name for grouped categories
func providerMain(main string, cat weather.Category) string {
	key := strings.ToLower(strings.TrimSpace(main))
	for _, n := range weather.ProviderNames() {
		if strings.ToLower(n) == key {
			return n
		}
	}
	switch cat {
	case weather.CategoryAtmospheric:
		return "Mist"
	case weather.CategoryOther:
		return "Squall"
	default:
		return cat.String()
	}
}
