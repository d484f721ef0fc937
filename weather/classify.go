package weather

import "github.com/lixenwraith/wxscene/constants"

// Signature is the reinitialization key of the particle pool
// Code is the reported code, not the forced profile code
type Signature struct {
	Category Category
	Code     int
}

// Classification is the classifier output for one snapshot
type Classification struct {
	Category Category
	// Code is the reported condition code
	Code int
	// ProfileCode feeds the profile resolver, forced for thunderstorms
	ProfileCode int
	// Daytime is sunrise <= dt < sunset
	Daytime bool
	// Present is false for a nil snapshot
	Present bool
	// Main is the raw provider name, kept for logs and overlays
	Main string
}

// Signature returns the reinitialization key
func (c Classification) Signature() Signature {
	return Signature{Category: c.Category, Code: c.Code}
}

// Classify maps a snapshot to category, code and daylight
// A nil snapshot, or one without conditions, classifies as None
func Classify(s *Snapshot) Classification {
	cond, ok := s.Primary()
	if !ok {
		return Classification{Category: CategoryNone}
	}

	cat := CategoryFromMain(cond.Main)
	cl := Classification{
		Category:    cat,
		Code:        cond.ID,
		ProfileCode: cond.ID,
		Daytime:     s.Dt >= s.Sys.Sunrise && s.Dt < s.Sys.Sunset,
		Present:     true,
		Main:        cond.Main,
	}
	if cat == CategoryThunderstorm {
		cl.ProfileCode = constants.ThunderstormProfileCode
	}
	return cl
}
