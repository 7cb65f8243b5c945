// Package scoring centralizes every heuristic constant used by city
// matching, station ranking, confidence scoring, and journey search. The
// values are empirically chosen; keeping them in one validated structure
// makes them independently testable and tunable without code changes.
package scoring

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Matcher holds cutoffs for fuzzy city resolution.
type Matcher struct {
	// FuzzyCutoff is the minimum WRatio similarity for a fuzzy city match.
	FuzzyCutoff int `yaml:"fuzzy_cutoff" validate:"gte=0,lte=100"`
	// MaxLengthDelta rejects fuzzy matches whose length differs from the
	// fragment by more than this many characters.
	MaxLengthDelta int `yaml:"max_length_delta" validate:"gte=0"`
	// MinFragmentLen rejects fragments shorter than this after normalization.
	MinFragmentLen int `yaml:"min_fragment_len" validate:"gte=1"`
}

// Confidence holds the resolver's base confidences and penalty magnitudes.
type Confidence struct {
	BothLiteral    float64 `yaml:"both_literal" validate:"gte=0,lte=1"`
	OneLiteral     float64 `yaml:"one_literal" validate:"gte=0,lte=1"`
	NoLiteral      float64 `yaml:"no_literal" validate:"gte=0,lte=1"`
	Invalid        float64 `yaml:"invalid" validate:"gte=0,lte=1"`
	AmbiguityStep  float64 `yaml:"ambiguity_step" validate:"gte=0"`
	AmbiguityCap   float64 `yaml:"ambiguity_cap" validate:"gte=0"`
	AmbiguityFree  int     `yaml:"ambiguity_free" validate:"gte=0"`
	Contamination  float64 `yaml:"contamination" validate:"gte=0"`
	CandidateLimit int     `yaml:"candidate_limit" validate:"gte=1"`
}

// Stations holds the additive ranking weights for station candidate search.
type Stations struct {
	PrefixBonus    int            `yaml:"prefix_bonus"`
	KeywordBonuses map[string]int `yaml:"keyword_bonuses" validate:"required"`
	LengthBase     int            `yaml:"length_base"`
	LengthCap      int            `yaml:"length_cap" validate:"gte=1"`
	LengthDivisor  int            `yaml:"length_divisor" validate:"gte=1"`
}

// HubOverride pins a city to stations whose normalized name contains a
// substring, bypassing the generic hub weights.
type HubOverride struct {
	City      string `yaml:"city" validate:"required"`
	Substring string `yaml:"substring" validate:"required"`
	Score     int    `yaml:"score"`
}

// Hub holds the weights for choosing the station that represents a city in
// schedule lookups.
type Hub struct {
	Overrides     []HubOverride `yaml:"overrides"`
	TGVBonus      int           `yaml:"tgv_bonus"`
	GareBonus     int           `yaml:"gare_bonus"`
	CentreBonus   int           `yaml:"centre_bonus"`
	HaltePenalty  int           `yaml:"halte_penalty"`
	CarPenalty    int           `yaml:"car_penalty"`
	LengthBase    int           `yaml:"length_base"`
	LengthDivisor int           `yaml:"length_divisor" validate:"gte=1"`
}

// Journeys holds the hard candidate caps that keep the schedule joins from
// going quadratic on a full feed.
type Journeys struct {
	DirectPoolCap   int `yaml:"direct_pool_cap" validate:"gte=1"`
	TransferPoolCap int `yaml:"transfer_pool_cap" validate:"gte=1"`
	MaxPerLeg       int `yaml:"max_per_leg" validate:"gte=1"`
	MaxStopIDs      int `yaml:"max_stop_ids" validate:"gte=1"`
}

// Config aggregates all heuristic tables.
type Config struct {
	Matcher    Matcher    `yaml:"matcher"`
	Confidence Confidence `yaml:"confidence"`
	Stations   Stations   `yaml:"stations"`
	Hub        Hub        `yaml:"hub"`
	Journeys   Journeys   `yaml:"journeys"`
}

// Default returns the built-in heuristic values.
func Default() Config {
	return Config{
		Matcher: Matcher{
			// 88 keeps single-character truncations resolvable:
			// WRatio("pari", "paris") rounds to 89.
			FuzzyCutoff:    88,
			MaxLengthDelta: 4,
			MinFragmentLen: 3,
		},
		Confidence: Confidence{
			BothLiteral:    0.92,
			OneLiteral:     0.82,
			NoLiteral:      0.75,
			Invalid:        0.15,
			AmbiguityStep:  0.02,
			AmbiguityCap:   0.10,
			AmbiguityFree:  3,
			Contamination:  0.05,
			CandidateLimit: 12,
		},
		Stations: Stations{
			PrefixBonus: 20,
			KeywordBonuses: map[string]int{
				"gare":      10,
				"part dieu": 8,
				"perrache":  7,
				"saint":     2,
				"st":        2,
				"centre":    2,
			},
			LengthBase:    12,
			LengthCap:     60,
			LengthDivisor: 5,
		},
		Hub: Hub{
			Overrides: []HubOverride{
				{City: "paris", Substring: "gare de lyon", Score: 10000},
				{City: "lyon", Substring: "part dieu", Score: 9000},
				{City: "lyon", Substring: "perrache", Score: 8000},
			},
			TGVBonus:      200,
			GareBonus:     100,
			CentreBonus:   40,
			HaltePenalty:  -60,
			CarPenalty:    -80,
			LengthBase:    30,
			LengthDivisor: 3,
		},
		Journeys: Journeys{
			DirectPoolCap:   200,
			TransferPoolCap: 200,
			MaxPerLeg:       400,
			MaxStopIDs:      30,
		},
	}
}

// LoadFile overlays a YAML file on top of the defaults and validates the
// result. An empty path returns the defaults unchanged.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading scoring config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid scoring config: %w", err)
	}
	return nil
}
