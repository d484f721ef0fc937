package profile

import (
	"testing"

	"github.com/lixenwraith/wxscene/constants"
	"github.com/lixenwraith/wxscene/weather"
)

func TestResolveRain(t *testing.T) {
	light := Profile{Count: 150, MinSpeed: 3, MaxSpeed: 6, MinSize: 1.5, MaxSize: 3}
	moderate := Profile{Count: 300, MinSpeed: 5, MaxSpeed: 9, MinSize: 2, MaxSize: 4}
	heavy := Profile{Count: 500, MinSpeed: 8, MaxSpeed: 15, MinSize: 3, MaxSize: 6}
	fallback := Profile{Count: 200, MinSpeed: 4, MaxSpeed: 7, MinSize: 2, MaxSize: 3.5}

	tests := []struct {
		code int
		want Profile
	}{
		{500, light},
		{501, moderate},
		{300, moderate},
		{310, moderate},
		{502, heavy},
		{504, heavy},
		{531, heavy},
		{200, heavy},
		{232, heavy},
		{302, heavy},
		{312, heavy},
		{314, heavy},
		{301, fallback},
		{311, fallback},
		{313, fallback},
		{321, fallback},
		{532, fallback},
		{233, fallback},
		{0, fallback},
		{-1, fallback},
	}

	for _, tt := range tests {
		if got := Resolve(FamilyRain, tt.code); got != tt.want {
			t.Errorf("Resolve(rain, %d) = %+v, want %+v", tt.code, got, tt.want)
		}
	}
}

func TestResolveSnow(t *testing.T) {
	light := Profile{Count: 50, MinSpeed: 1, MaxSpeed: 3, MinSize: 1.5, MaxSize: 3}
	moderate := Profile{Count: 80, MinSpeed: 2, MaxSpeed: 4, MinSize: 2.5, MaxSize: 4.5}
	heavy := Profile{Count: 150, MinSpeed: 3, MaxSpeed: 6, MinSize: 4, MaxSize: 7}

	tests := []struct {
		code int
		want Profile
	}{
		{600, light},
		{615, light},
		{616, light},
		{601, moderate},
		{620, moderate},
		{602, heavy},
		{611, heavy},
		{622, heavy},
		{623, moderate},
		{500, moderate},
	}

	for _, tt := range tests {
		if got := Resolve(FamilySnow, tt.code); got != tt.want {
			t.Errorf("Resolve(snow, %d) = %+v, want %+v", tt.code, got, tt.want)
		}
	}
}

func TestResolveNoneFamily(t *testing.T) {
	p := Resolve(FamilyNone, 500)
	if !p.Empty() {
		t.Errorf("FamilyNone should resolve empty, got %+v", p)
	}
}

func TestMatchRuleNames(t *testing.T) {
	if _, name := Match(FamilyRain, 500); name != "light" {
		t.Errorf("rule = %q, want light", name)
	}
	if _, name := Match(FamilySnow, 999); name != "default" {
		t.Errorf("rule = %q, want default", name)
	}
	if _, name := Match(FamilyNone, 0); name != "none" {
		t.Errorf("rule = %q, want none", name)
	}
}

func TestRulesOrderedWithFallback(t *testing.T) {
	for _, f := range []Family{FamilyRain, FamilySnow} {
		rules := Rules(f)
		if len(rules) == 0 {
			t.Fatalf("%v: empty table", f)
		}
		last := rules[len(rules)-1]
		for _, code := range []int{-100, 0, 12345} {
			if !last.Match(code) {
				t.Errorf("%v: last rule must match everything, missed %d", f, code)
			}
		}
		for _, r := range rules {
			if r.Profile.Count > constants.MaxParticles {
				t.Errorf("%v/%s: count %d above cap", f, r.Name, r.Profile.Count)
			}
			if r.Profile.MinSpeed > r.Profile.MaxSpeed || r.Profile.MinSize > r.Profile.MaxSize {
				t.Errorf("%v/%s: inverted range", f, r.Name)
			}
		}
	}
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		cat  weather.Category
		want Family
	}{
		{weather.CategoryRain, FamilyRain},
		{weather.CategoryDrizzle, FamilyRain},
		{weather.CategoryThunderstorm, FamilyRain},
		{weather.CategorySnow, FamilySnow},
		{weather.CategoryClear, FamilyNone},
		{weather.CategoryClouds, FamilyNone},
		{weather.CategoryAtmospheric, FamilyNone},
		{weather.CategoryOther, FamilyNone},
		{weather.CategoryNone, FamilyNone},
	}
	for _, tt := range tests {
		if got := FamilyOf(tt.cat); got != tt.want {
			t.Errorf("FamilyOf(%v) = %v, want %v", tt.cat, got, tt.want)
		}
	}
}

func TestForClassificationThunderstorm(t *testing.T) {
	s := &weather.Snapshot{Weather: []weather.Condition{{ID: 200, Main: "Thunderstorm"}}}
	p := ForClassification(weather.Classify(s))
	if p.Count != 500 || p.MinSpeed != 8 || p.MaxSpeed != 15 || p.MinSize != 3 || p.MaxSize != 6 {
		t.Errorf("thunderstorm profile = %+v, want heavy tier", p)
	}

	// 299 matches no rain rule on its own
	s.Weather[0].ID = 299
	if got := ForClassification(weather.Classify(s)); got.Count != 500 {
		t.Errorf("thunderstorm code 299 count = %d, want forced heavy 500", got.Count)
	}
}

func TestForClassificationNeutral(t *testing.T) {
	if p := ForClassification(weather.Classify(nil)); !p.Empty() {
		t.Errorf("nil snapshot profile = %+v, want empty", p)
	}
}
