package weather

import (
	"errors"
	"fmt"
	"strings"
)

// Category is the coarse weather classification driving scene composition
type Category uint8

const (
	CategoryNone Category = iota
	CategoryClear
	CategoryClouds
	CategoryRain
	CategoryDrizzle
	CategoryThunderstorm
	CategorySnow
	CategoryAtmospheric
	CategoryOther
)

// ErrUnknownCategory is returned by ParseCategory for names outside the table
var ErrUnknownCategory = errors.New("unknown weather category")

var categoryNames = [...]string{
	CategoryNone:         "None",
	CategoryClear:        "Clear",
	CategoryClouds:       "Clouds",
	CategoryRain:         "Rain",
	CategoryDrizzle:      "Drizzle",
	CategoryThunderstorm: "Thunderstorm",
	CategorySnow:         "Snow",
	CategoryAtmospheric:  "Atmospheric",
	CategoryOther:        "Other",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "Unknown"
}

// RainFamily reports categories rendered with rain streaks
func (c Category) RainFamily() bool {
	return c == CategoryRain || c == CategoryDrizzle || c == CategoryThunderstorm
}

// SnowFamily reports categories rendered with snowflakes
func (c Category) SnowFamily() bool {
	return c == CategorySnow
}

// atmosphericNames are the provider "main" values grouped as Atmospheric
var atmosphericNames = map[string]struct{}{
	"mist": {}, "fog": {}, "haze": {}, "smoke": {}, "dust": {}, "sand": {}, "ash": {},
}

// knownNames maps lowercase provider names to categories
// Squall and Tornado are valid provider values rendered as Other
var knownNames = map[string]Category{
	"clear":        CategoryClear,
	"clouds":       CategoryClouds,
	"rain":         CategoryRain,
	"drizzle":      CategoryDrizzle,
	"thunderstorm": CategoryThunderstorm,
	"snow":         CategorySnow,
	"squall":       CategoryOther,
	"tornado":      CategoryOther,
}

// CategoryFromMain maps a provider "main" string, unknown names degrade to Other
func CategoryFromMain(main string) Category {
	key := strings.ToLower(strings.TrimSpace(main))
	if c, ok := knownNames[key]; ok {
		return c
	}
	if _, ok := atmosphericNames[key]; ok {
		return CategoryAtmospheric
	}
	return CategoryOther
}

// ParseCategory is the strict variant used for user input
// Accepts category names and provider names, rejects anything else
func ParseCategory(name string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if strings.ToLower(n) == key {
			return Category(i), nil
		}
	}
	if c, ok := knownNames[key]; ok {
		return c, nil
	}
	if _, ok := atmosphericNames[key]; ok {
		return CategoryAtmospheric, nil
	}
	return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// ProviderNames lists every accepted provider "main" value
func ProviderNames() []string {
	return []string{
		"Clear", "Clouds", "Rain", "Drizzle", "Thunderstorm", "Snow",
		"Mist", "Fog", "Haze", "Smoke", "Dust", "Sand", "Ash",
		"Squall", "Tornado",
	}
}
