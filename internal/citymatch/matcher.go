// Package citymatch extracts a (departure, arrival) city pair from a noisy
// French sentence using an ordered list of travel-construct patterns plus
// fuzzy matching against the city registry.
package citymatch

import (
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"cheminot.railnav.org/internal/cities"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/textnorm"
)

// FailureKind classifies why a sentence did not yield a valid city pair.
// These are per-sentence outcomes, never errors in the Go sense.
type FailureKind string

const (
	FailEmptyInput        FailureKind = "empty_input"
	FailNoTravelKeyword   FailureKind = "no_travel_keyword"
	FailPatternNoMatch    FailureKind = "pattern_no_match"
	FailAmbiguousFragment FailureKind = "ambiguous_fragment"
	FailUnresolvableCity  FailureKind = "unresolvable_city"
	FailSameCity          FailureKind = "same_city"
)

// Failure describes a rejected sentence.
type Failure struct {
	Kind   FailureKind
	Detail string
}

// Match is a successfully extracted city pair. Departure and Arrival are
// canonical registry names. Pattern is the name of the template that fired.
type Match struct {
	Departure string
	Arrival   string
	Pattern   string
}

// travelKeywords is the lexical gate: a sentence whose normalized form
// contains none of these as a whole word cannot be a travel order.
var travelKeywords = []string{
	"de", "depuis", "vers", "a",
	"aller", "vais", "rendre",
	"train", "trajet", "voyage",
}

// pattern templates for canonical French travel constructs, tried in order
// against the normalized sentence ("à" has already folded to "a").
type pattern struct {
	name string
	re   *regexp.Regexp
}

var patterns = []pattern{
	{"de_X_a_Y", regexp.MustCompile(`\bde\s+(?P<dep>.+?)\s+a\s+(?P<dest>.+?)\b`)},
	{"depuis_X_a_Y", regexp.MustCompile(`\bdepuis\s+(?P<dep>.+?)\s+a\s+(?P<dest>.+?)\b`)},
	{"de_X_vers_Y", regexp.MustCompile(`\bde\s+(?P<dep>.+?)\s+vers\s+(?P<dest>.+?)\b`)},
	{"depuis_X_vers_Y", regexp.MustCompile(`\bdepuis\s+(?P<dep>.+?)\s+vers\s+(?P<dest>.+?)\b`)},
	{"aller_a_Y_depuis_X", regexp.MustCompile(`\b(?:aller|vais|va|allons|allez)\s+a\s+(?P<dest>.+?)\s+depuis\s+(?P<dep>.+?)\b`)},
	{"rendre_a_Y_depuis_X", regexp.MustCompile(`\b(?:me\s+rendre|rendre)\s+a\s+(?P<dest>.+?)\s+depuis\s+(?P<dep>.+?)\b`)},
}

// trailingNoise cuts temporal and politeness words off a captured slot.
var trailingNoise = regexp.MustCompile(`\b(?:aujourd|demain|ce\s+soir|svp|s'il\s+te\s+plait|merci)\b`)

// Matcher resolves sentences against a fixed city registry. It is immutable
// and safe for concurrent use.
type Matcher struct {
	registry *cities.Registry
	cfg      scoring.Matcher
}

// New builds a matcher over the given registry and cutoffs.
func New(registry *cities.Registry, cfg scoring.Matcher) *Matcher {
	return &Matcher{registry: registry, cfg: cfg}
}

// Parse extracts a (departure, arrival) pair. On rejection it returns a nil
// Match and a Failure describing the first decisive reason.
func (m *Matcher) Parse(sentence string) (*Match, *Failure) {
	norm := textnorm.Normalize(sentence)
	if norm == "" {
		return nil, &Failure{Kind: FailEmptyInput}
	}

	if !m.hasTravelKeyword(norm) {
		return nil, &Failure{Kind: FailNoTravelKeyword}
	}

	var lastFailure *Failure
	for _, p := range patterns {
		match := p.re.FindStringSubmatch(norm)
		if match == nil {
			continue
		}
		depRaw := cleanSlot(match[p.re.SubexpIndex("dep")])
		destRaw := cleanSlot(match[p.re.SubexpIndex("dest")])

		dep, fail := m.resolveSlot(depRaw)
		if fail != nil {
			lastFailure = fail
			continue
		}
		dest, fail := m.resolveSlot(destRaw)
		if fail != nil {
			lastFailure = fail
			continue
		}
		if dep == dest {
			lastFailure = &Failure{Kind: FailSameCity, Detail: dep}
			continue
		}
		return &Match{Departure: dep, Arrival: dest, Pattern: p.name}, nil
	}

	if lastFailure != nil {
		return nil, lastFailure
	}
	return nil, &Failure{Kind: FailPatternNoMatch}
}

func (m *Matcher) hasTravelKeyword(norm string) bool {
	for _, kw := range travelKeywords {
		if textnorm.ContainsWord(norm, kw) {
			return true
		}
	}
	return false
}

// cleanSlot trims trailing temporal/politeness words and punctuation from a
// captured fragment.
func cleanSlot(s string) string {
	if loc := trailingNoise.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.Trim(s, " ,;:.!?")
}

// resolveSlot maps a cleaned fragment to a canonical city name.
//
// Containment against every known city name comes first: exactly one
// contained name resolves the slot, more than one makes the fragment
// ambiguous (this also catches compound fragments accidentally spanning two
// cities). Otherwise a fuzzy nearest-neighbor search runs over the whole
// registry, guarded by a similarity cutoff and a length delta bound.
func (m *Matcher) resolveSlot(fragment string) (string, *Failure) {
	frag := textnorm.Normalize(fragment)
	if len(frag) < m.cfg.MinFragmentLen {
		return "", &Failure{Kind: FailUnresolvableCity, Detail: fragment}
	}

	if exact, ok := m.registry.Canonical(frag); ok {
		return exact, nil
	}

	var contained []string
	for _, cityNorm := range m.registry.NormalizedNames() {
		if textnorm.ContainsWord(frag, cityNorm) {
			contained = append(contained, cityNorm)
			if len(contained) > 1 {
				return "", &Failure{Kind: FailAmbiguousFragment, Detail: frag}
			}
		}
	}
	if len(contained) == 1 {
		name, _ := m.registry.Canonical(contained[0])
		return name, nil
	}

	bestScore := -1
	bestNorm := ""
	for _, cityNorm := range m.registry.NormalizedNames() {
		score := fuzzy.WRatio(frag, cityNorm)
		if score > bestScore {
			bestScore = score
			bestNorm = cityNorm
		}
	}
	if bestScore < m.cfg.FuzzyCutoff {
		return "", &Failure{Kind: FailUnresolvableCity, Detail: frag}
	}
	if delta := len(frag) - len(bestNorm); delta > m.cfg.MaxLengthDelta || -delta > m.cfg.MaxLengthDelta {
		return "", &Failure{Kind: FailUnresolvableCity, Detail: frag}
	}
	name, _ := m.registry.Canonical(bestNorm)
	return name, nil
}
