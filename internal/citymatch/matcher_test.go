package citymatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cheminot.railnav.org/internal/cities"
	"cheminot.railnav.org/internal/scoring"
)

func newTestMatcher() *Matcher {
	registry := cities.FromNames([]string{"Paris", "Lyon", "Marseille", "Nice", "Bordeaux"})
	return New(registry, scoring.Default().Matcher)
}

func TestParsePatterns(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name      string
		sentence  string
		departure string
		arrival   string
		pattern   string
	}{
		{
			name:      "de X a Y",
			sentence:  "Je veux aller de Paris à Lyon",
			departure: "Paris",
			arrival:   "Lyon",
			pattern:   "de_X_a_Y",
		},
		{
			name:      "depuis X vers Y",
			sentence:  "depuis Marseille vers Lyon",
			departure: "Marseille",
			arrival:   "Lyon",
			pattern:   "depuis_X_vers_Y",
		},
		{
			name:      "de X vers Y",
			sentence:  "un trajet de Bordeaux vers Nice",
			departure: "Bordeaux",
			arrival:   "Nice",
			pattern:   "de_X_vers_Y",
		},
		{
			name:      "aller a Y depuis X",
			sentence:  "Je vais à Lyon depuis Marseille",
			departure: "Marseille",
			arrival:   "Lyon",
			pattern:   "aller_a_Y_depuis_X",
		},
		{
			name:      "rendre a Y depuis X",
			sentence:  "Je souhaite me rendre à Nice depuis Paris",
			departure: "Paris",
			arrival:   "Nice",
			pattern:   "rendre_a_Y_depuis_X",
		},
		{
			name:      "accents and case folded",
			sentence:  "DE PARIS À MARSEILLE",
			departure: "Paris",
			arrival:   "Marseille",
			pattern:   "de_X_a_Y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, fail := m.Parse(tt.sentence)
			require.Nil(t, fail)
			require.NotNil(t, match)
			assert.Equal(t, tt.departure, match.Departure)
			assert.Equal(t, tt.arrival, match.Arrival)
			assert.Equal(t, tt.pattern, match.Pattern)
		})
	}
}

func TestParseTrimsTrailingNoise(t *testing.T) {
	m := newTestMatcher()

	match, fail := m.Parse("Je vais à Lyon demain depuis Marseille")
	require.Nil(t, fail)
	assert.Equal(t, "Marseille", match.Departure)
	assert.Equal(t, "Lyon", match.Arrival)
}

func TestParseFuzzyFragment(t *testing.T) {
	m := newTestMatcher()

	// "Marseile" is close enough to "marseille" to pass the similarity cutoff.
	match, fail := m.Parse("de Marseile à Lyon")
	require.Nil(t, fail)
	assert.Equal(t, "Marseille", match.Departure)
	assert.Equal(t, "Lyon", match.Arrival)
}

func TestParseFuzzySingleCharTruncation(t *testing.T) {
	m := newTestMatcher()

	// Dropping the final character must stay resolvable. "pari" vs
	// "paris" scores exactly 89, right at the edge of the cutoff.
	match, fail := m.Parse("de Pari à Lyon")
	require.Nil(t, fail)
	assert.Equal(t, "Paris", match.Departure)
	assert.Equal(t, "Lyon", match.Arrival)

	match, fail = m.Parse("de Lyon vers Marseill")
	require.Nil(t, fail)
	assert.Equal(t, "Marseille", match.Arrival)
}

func TestParseStationStyleFragment(t *testing.T) {
	m := newTestMatcher()

	// A fragment that contains exactly one known city resolves to it.
	match, fail := m.Parse("de Marseille Saint Charles vers Lyon")
	require.Nil(t, fail)
	assert.Equal(t, "Marseille", match.Departure)
}

func TestParseFailures(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name     string
		sentence string
		kind     FailureKind
	}{
		{"empty input", "", FailEmptyInput},
		{"whitespace only", "   ", FailEmptyInput},
		{"no travel keyword", "Bonjour tout le monde", FailNoTravelKeyword},
		{"keyword but no pattern", "je veux un train", FailPatternNoMatch},
		{"unknown city", "de Xyzabc à Lyon", FailUnresolvableCity},
		{"fragment too short", "de ax à Lyon", FailUnresolvableCity},
		{"same city both slots", "de Paris à Paris", FailSameCity},
		{"fragment spans two cities", "de Paris Lyon à Marseille", FailAmbiguousFragment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, fail := m.Parse(tt.sentence)
			assert.Nil(t, match)
			require.NotNil(t, fail)
			assert.Equal(t, tt.kind, fail.Kind)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	m := newTestMatcher()

	first, fail := m.Parse("Je veux aller de Paris à Lyon")
	require.Nil(t, fail)
	for range 20 {
		match, fail := m.Parse("Je veux aller de Paris à Lyon")
		require.Nil(t, fail)
		assert.Equal(t, first, match)
	}
}
