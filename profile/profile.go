// Package profile resolves particle pool parameters from a weather condition code
package profile

import (
	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/weather"
)

// Family selects the particle rule table
type Family uint8

const (
	FamilyNone Family = iota
	FamilyRain
	FamilySnow
)

func (f Family) String() string {
	switch f {
	case FamilyRain:
		return "rain"
	case FamilySnow:
		return "snow"
	default:
		return "none"
	}
}

// FamilyOf maps a category to its particle family
func FamilyOf(c weather.Category) Family {
	switch {
	case c.RainFamily():
		return FamilyRain
	case c.SnowFamily():
		return FamilySnow
	default:
		return FamilyNone
	}
}

// Profile governs one particle pool
type Profile struct {
	Count    int
	MinSpeed float64
	MaxSpeed float64
	MinSize  float64
	MaxSize  float64
}

// Empty reports a profile that spawns nothing
func (p Profile) Empty() bool {
	return p.Count <= 0
}

// Rule pairs a code predicate with the profile it selects
type Rule struct {
	Name    string
	Codes   string // human-readable form of Match
	Match   func(code int) bool
	Profile Profile
}

func codeIs(codes ...int) func(int) bool {
	return func(code int) bool {
		for _, c := range codes {
			if code == c {
				return true
			}
		}
		return false
	}
}

func inRange(lo, hi int) func(int) bool {
	return func(code int) bool { return code >= lo && code <= hi }
}

func anyOf(preds ...func(int) bool) func(int) bool {
	return func(code int) bool {
		for _, p := range preds {
			if p(code) {
				return true
			}
		}
		return false
	}
}

func always(int) bool { return true }

// Ordered, first match wins, last rule always matches
var rainRules = []Rule{
	{"light", "500", codeIs(500), Profile{Count: 150, MinSpeed: 3, MaxSpeed: 6, MinSize: 1.5, MaxSize: 3}},
	{"moderate", "501 300 310", codeIs(501, 300, 310), Profile{Count: 300, MinSpeed: 5, MaxSpeed: 9, MinSize: 2, MaxSize: 4}},
	{"heavy", "502-531 200-232 302 312 314", anyOf(inRange(502, 531), inRange(200, 232), codeIs(302, 312, 314)), Profile{Count: 500, MinSpeed: 8, MaxSpeed: 15, MinSize: 3, MaxSize: 6}},
	{"default", "*", always, Profile{Count: 200, MinSpeed: 4, MaxSpeed: 7, MinSize: 2, MaxSize: 3.5}},
}

var snowRules = []Rule{
	{"light", "600 615 616", codeIs(600, 615, 616), Profile{Count: 50, MinSpeed: 1, MaxSpeed: 3, MinSize: 1.5, MaxSize: 3}},
	{"moderate", "601 620", codeIs(601, 620), Profile{Count: 80, MinSpeed: 2, MaxSpeed: 4, MinSize: 2.5, MaxSize: 4.5}},
	{"heavy", "602-622", inRange(602, 622), Profile{Count: 150, MinSpeed: 3, MaxSpeed: 6, MinSize: 4, MaxSize: 7}},
	{"default", "*", always, Profile{Count: 80, MinSpeed: 2, MaxSpeed: 4, MinSize: 2.5, MaxSize: 4.5}},
}

// Rules returns the ordered table for family, nil for FamilyNone
func Rules(f Family) []Rule {
	switch f {
	case FamilyRain:
		return rainRules
	case FamilySnow:
		return snowRules
	default:
		return nil
	}
}

// Resolve returns the first matching profile, capped at MaxParticles
func Resolve(f Family, code int) Profile {
	p, _ := Match(f, code)
	return p
}

// Match is Resolve plus the name of the rule that fired
func Match(f Family, code int) (Profile, string) {
	for _, r := range Rules(f) {
		if r.Match(code) {
			p := r.Profile
			if p.Count > constants.MaxParticles {
				p.Count = constants.MaxParticles
			}
			return p, r.Name
		}
	}
	return Profile{}, "none"
}

// ForClassification resolves the profile for a classified snapshot
func ForClassification(cl weather.Classification) Profile {
	return Resolve(FamilyOf(cl.Category), cl.ProfileCode)
}
