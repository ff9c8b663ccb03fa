package main

import (
	"sort"
	"strings"
	"unicode/utf8"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	defaultSearchLimit = 8

	// Weighted-ratio scores run 0-100; anything under the cutoff is noise.
	searchScoreCutoff = 45
	minQueryLength    = 2
)

// SearchResult is one autocomplete suggestion.
type SearchResult struct {
	PlayerID  int    `json:"player_id"`
	ShortName string `json:"short_name"`
	LongName  string `json:"long_name"`
	Club      string `json:"club_name"`
	FaceURL   string `json:"player_face_url"`
	Score     int    `json:"score"`
}

// Search fuzzy-matches the query against every player's search name and
// returns up to limit suggestions, best score first. Ties keep roster
// order, so identical queries always produce identical results. Queries
// shorter than two characters after trimming return nothing.
func (r *Roster) Search(query string, limit int) []SearchResult {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if utf8.RuneCountInString(strings.TrimSpace(query)) < minQueryLength {
		return []SearchResult{}
	}

	q := normalizeSearchName(query)

	type scored struct {
		index int
		score int
	}

	var matches []scored

	for i := range r.players {
		score := fuzzy.WRatio(q, r.players[i].SearchName)
		if score >= searchScoreCutoff {
			matches = append(matches, scored{index: i, score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		p := r.players[m.index]

		out = append(out, SearchResult{
			PlayerID:  p.PlayerID,
			ShortName: p.ShortName,
			LongName:  p.LongName,
			Club:      p.Club,
			FaceURL:   p.FaceURL,
			Score:     m.score,
		})
	}

	return out
}
