package stations

import (
	"sort"
	"strings"

	"cheminot.railnav.org/internal/textnorm"
)

// CandidatesForCity returns up to limit stations whose normalized name
// contains the normalized city as a whole word, ranked by the additive
// heuristic score (score desc, name asc).
func (idx *Index) CandidatesForCity(city string, limit int) []Station {
	cityNorm := textnorm.Normalize(city)
	if cityNorm == "" {
		return nil
	}

	var matched []int
	for i, norm := range idx.norms {
		if textnorm.ContainsWord(norm, cityNorm) {
			matched = append(matched, i)
		}
	}
	return idx.rank(matched, cityNorm, limit)
}

// CandidatesFromFreeText returns up to limit stations whose normalized name
// occurs as a whole-word substring of the free text. This is the
// helpful-mode fallback scan used when no city pair could be extracted.
func (idx *Index) CandidatesFromFreeText(text string, limit int) []Station {
	textNorm := textnorm.Normalize(text)
	if textNorm == "" {
		return nil
	}

	var matched []int
	for i, norm := range idx.norms {
		if norm != "" && textnorm.ContainsWord(textNorm, norm) {
			matched = append(matched, i)
		}
	}
	return idx.rank(matched, "", limit)
}

// rank orders the matched rows by (score desc, display name asc) and
// returns the top limit stations.
func (idx *Index) rank(matched []int, cityNorm string, limit int) []Station {
	if len(matched) == 0 {
		return nil
	}
	type ranked struct {
		row   int
		score int
	}
	rows := make([]ranked, 0, len(matched))
	for _, i := range matched {
		rows = append(rows, ranked{row: i, score: idx.score(idx.norms[i], cityNorm)})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].score != rows[b].score {
			return rows[a].score > rows[b].score
		}
		return idx.stations[rows[a].row].Name < idx.stations[rows[b].row].Name
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]Station, len(rows))
	for i, r := range rows {
		out[i] = idx.stations[r.row]
	}
	return out
}

// score computes the additive ranking heuristic for a normalized station
// name: a prefix bonus when the name starts with "<city> ", a fixed bonus
// per recognized keyword present, and a small bonus favoring shorter names.
func (idx *Index) score(nameNorm, cityNorm string) int {
	sc := 0
	if cityNorm != "" && strings.HasPrefix(nameNorm, cityNorm+" ") {
		sc += idx.cfg.PrefixBonus
	}
	for kw, pts := range idx.cfg.KeywordBonuses {
		if strings.Contains(nameNorm, kw) {
			sc += pts
		}
	}
	n := len(nameNorm)
	if n > idx.cfg.LengthCap {
		n = idx.cfg.LengthCap
	}
	if bonus := idx.cfg.LengthBase - n/idx.cfg.LengthDivisor; bonus > 0 {
		sc += bonus
	}
	return sc
}
