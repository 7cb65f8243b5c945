package schedule

import (
	"strings"

	"cheminot.railnav.org/internal/scoring"
	"cheminot.railnav.org/internal/stations"
	"cheminot.railnav.org/internal/textnorm"
)

// HubUIC picks the single station that best represents a city in schedule
// lookups. Stations whose name starts with the city are preferred; the
// containment set is only used when no prefix match exists. Among the
// subset, a hand-tuned additive score decides: a few hardcoded city
// overrides, bonuses for main-station markers, penalties for halts and
// coach stops, and a slight preference for shorter names. Ties keep the
// original table order. The heuristic is intentionally not optimal.
func HubUIC(city string, idx *stations.Index, cfg scoring.Hub) (string, bool) {
	cityNorm := textnorm.Normalize(city)
	if cityNorm == "" {
		return "", false
	}

	all := idx.All()
	var subset []stations.Station
	for _, s := range all {
		if strings.HasPrefix(textnorm.Normalize(s.Name), cityNorm+" ") {
			subset = append(subset, s)
		}
	}
	if len(subset) == 0 {
		for _, s := range all {
			if strings.Contains(textnorm.Normalize(s.Name), cityNorm) {
				subset = append(subset, s)
			}
		}
	}
	if len(subset) == 0 {
		return "", false
	}

	best := subset[0]
	bestScore := hubScore(cityNorm, textnorm.Normalize(best.Name), cfg)
	for _, s := range subset[1:] {
		if score := hubScore(cityNorm, textnorm.Normalize(s.Name), cfg); score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best.UIC, true
}

func hubScore(cityNorm, nameNorm string, cfg scoring.Hub) int {
	for _, o := range cfg.Overrides {
		if cityNorm == o.City && strings.Contains(nameNorm, o.Substring) {
			return o.Score
		}
	}

	score := 0
	if strings.Contains(nameNorm, "tgv") {
		score += cfg.TGVBonus
	}
	if strings.Contains(nameNorm, "gare") {
		score += cfg.GareBonus
	}
	if strings.Contains(nameNorm, "centre") {
		score += cfg.CentreBonus
	}
	if strings.Contains(nameNorm, "halte") {
		score += cfg.HaltePenalty
	}
	if strings.Contains(nameNorm, "car") {
		score += cfg.CarPenalty
	}
	if bonus := cfg.LengthBase - len(nameNorm)/cfg.LengthDivisor; bonus > 0 {
		score += bonus
	}
	return score
}
