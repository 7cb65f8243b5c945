// Package resolver orchestrates city matching and station disambiguation
// into a confidence-scored resolution of a free-form travel sentence.
package resolver

import (
	"math"
	"strings"

	"cheminot.railnav.org/internal/citymatch"
	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
	"cheminot.railnav.org/internal/textnorm"
)

// Mode selects the sentence parser backing the resolver. Alternative NLP
// implementations (NER-based, retrieval-based) plug in behind the same
// OrderParser contract and are selected by mode.
type Mode string

// ModeRules is the rule-based + fuzzy parser.
const ModeRules Mode = "rules"

// OrderParser is the contract every sentence parser implements: a sentence
// either yields a city pair or a structured failure, never an error.
type OrderParser interface {
	Parse(sentence string) (*citymatch.Match, *citymatch.Failure)
}

// FollowupQuestion is the fixed helpful-mode prompt returned together with
// proposed station candidates when the sentence could not be resolved.
const FollowupQuestion = "Je n'ai pas compris votre trajet. Parmi ces gares, laquelle vous intéresse ?"

// Reasons attached to invalid results.
const (
	ReasonEmptyInput         = "empty_input"
	ReasonInvalidOrAmbiguous = "invalid_or_ambiguous"
	ReasonUnknownMode        = "unknown_mode"
)

// Debug is the reproducible breakdown of every scoring factor applied to a
// resolution. Identical inputs always produce an identical Debug value.
type Debug struct {
	Mode                 string  `json:"mode"`
	Resolver             string  `json:"resolver,omitempty"`
	Reason               string  `json:"reason,omitempty"`
	MatcherFailure       string  `json:"matcherFailure,omitempty"`
	Pattern              string  `json:"pattern,omitempty"`
	DepartureLiteral     bool    `json:"departureLiteralInSentence"`
	ArrivalLiteral       bool    `json:"arrivalLiteralInSentence"`
	DepartureCandidates  int     `json:"departureCandidateCount"`
	ArrivalCandidates    int     `json:"arrivalCandidateCount"`
	BaseConfidence       float64 `json:"baseConfidence"`
	AmbiguityPenalty     float64 `json:"ambiguityPenalty"`
	ContaminationPenalty float64 `json:"contaminationPenalty"`
}

// Result is the outcome of resolving one sentence.
type Result struct {
	OK                  bool               `json:"ok"`
	Departure           string             `json:"departure,omitempty"`
	Arrival             string             `json:"arrival,omitempty"`
	Confidence          float64            `json:"confidence"`
	DepartureCandidates []stations.Station `json:"departureCandidates,omitempty"`
	ArrivalCandidates   []stations.Station `json:"arrivalCandidates,omitempty"`
	FollowupQuestion    string             `json:"followupQuestion,omitempty"`
	ProposedCandidates  []stations.Station `json:"proposedCandidates,omitempty"`
	Debug               Debug              `json:"debug"`
}

// Resolver is immutable and safe for concurrent use once constructed.
type Resolver struct {
	mode     Mode
	parser   OrderParser
	stations *stations.Index
	cfg      scoring.Confidence
}

// New builds a resolver in rules mode.
func New(parser OrderParser, idx *stations.Index, cfg scoring.Confidence) *Resolver {
	return NewWithMode(ModeRules, parser, idx, cfg)
}

// NewWithMode builds a resolver with an explicit mode. An unrecognized mode
// is kept and reported per call rather than silently replaced.
func NewWithMode(mode Mode, parser OrderParser, idx *stations.Index, cfg scoring.Confidence) *Resolver {
	return &Resolver{mode: mode, parser: parser, stations: idx, cfg: cfg}
}

// Resolve turns a sentence into a scored city pair with station candidates
// using the resolver's default mode. When helpful is set, an unresolvable
// sentence also yields a follow-up question and station candidates scanned
// out of the raw text.
func (r *Resolver) Resolve(sentence string, helpful bool) Result {
	return r.ResolveWithMode(r.mode, sentence, helpful)
}

// ResolveWithMode resolves with an explicit parser mode. Callers accepting
// a mode from the outside forward it here, so an unsupported mode is
// reported per call instead of silently falling back to rules.
func (r *Resolver) ResolveWithMode(mode Mode, sentence string, helpful bool) Result {
	if strings.TrimSpace(sentence) == "" {
		return Result{
			Confidence: 0.0,
			Debug:      Debug{Mode: string(mode), Reason: ReasonEmptyInput},
		}
	}

	if mode != ModeRules {
		return Result{
			Confidence: 0.0,
			Debug:      Debug{Mode: string(mode), Reason: ReasonUnknownMode},
		}
	}

	match, fail := r.parser.Parse(sentence)
	if fail != nil {
		result := Result{
			Confidence: r.cfg.Invalid,
			Debug: Debug{
				Mode:           string(mode),
				Resolver:       "citymatch",
				Reason:         ReasonInvalidOrAmbiguous,
				MatcherFailure: string(fail.Kind),
			},
		}
		if helpful {
			result.FollowupQuestion = FollowupQuestion
			result.ProposedCandidates = r.stations.CandidatesFromFreeText(sentence, r.cfg.CandidateLimit)
		}
		return result
	}

	return r.score(mode, sentence, match)
}

// score computes the base confidence from literal presence of the resolved
// city names, then applies the ambiguity and contamination penalties.
func (r *Resolver) score(mode Mode, sentence string, match *citymatch.Match) Result {
	lower := strings.ToLower(sentence)
	depLiteral := strings.Contains(lower, strings.ToLower(match.Departure))
	arrLiteral := strings.Contains(lower, strings.ToLower(match.Arrival))

	var base float64
	switch {
	case depLiteral && arrLiteral:
		base = r.cfg.BothLiteral
	case depLiteral || arrLiteral:
		base = r.cfg.OneLiteral
	default:
		base = r.cfg.NoLiteral
	}

	depCands := r.stations.CandidatesForCity(match.Departure, r.cfg.CandidateLimit)
	arrCands := r.stations.CandidatesForCity(match.Arrival, r.cfg.CandidateLimit)

	ambiguity := r.ambiguityPenalty(len(depCands)) + r.ambiguityPenalty(len(arrCands))
	contamination := r.contaminationPenalty(match, depCands, arrCands)

	confidence := base - ambiguity - contamination
	if confidence < 0 {
		confidence = 0
	}
	confidence = math.Min(confidence, base)

	return Result{
		OK:                  true,
		Departure:           match.Departure,
		Arrival:             match.Arrival,
		Confidence:          confidence,
		DepartureCandidates: depCands,
		ArrivalCandidates:   arrCands,
		Debug: Debug{
			Mode:                 string(mode),
			Resolver:             "citymatch",
			Pattern:              match.Pattern,
			DepartureLiteral:     depLiteral,
			ArrivalLiteral:       arrLiteral,
			DepartureCandidates:  len(depCands),
			ArrivalCandidates:    len(arrCands),
			BaseConfidence:       base,
			AmbiguityPenalty:     ambiguity,
			ContaminationPenalty: contamination,
		},
	}
}

// ambiguityPenalty charges for candidate lists longer than the free
// allowance, capped so one crowded side cannot dominate the score.
func (r *Resolver) ambiguityPenalty(count int) float64 {
	if count <= r.cfg.AmbiguityFree {
		return 0
	}
	penalty := r.cfg.AmbiguityStep * float64(count-r.cfg.AmbiguityFree)
	return math.Min(penalty, r.cfg.AmbiguityCap)
}

// contaminationPenalty checks for cross-talk between similarly named
// stations: the arrival city showing up inside the departure-side candidate
// names (or the reverse) costs a fixed amount per direction.
func (r *Resolver) contaminationPenalty(match *citymatch.Match, depCands, arrCands []stations.Station) float64 {
	depNorm := textnorm.Normalize(match.Departure)
	arrNorm := textnorm.Normalize(match.Arrival)

	penalty := 0.0
	if strings.Contains(joinedNames(depCands), arrNorm) {
		penalty += r.cfg.Contamination
	}
	if strings.Contains(joinedNames(arrCands), depNorm) {
		penalty += r.cfg.Contamination
	}
	return penalty
}

func joinedNames(list []stations.Station) string {
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = textnorm.Normalize(s.Name)
	}
	return strings.Join(names, " | ")
}
