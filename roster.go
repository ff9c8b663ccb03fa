package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StatLine holds the six radar-chart attributes. Stats are zero where a
// position has no meaningful value (e.g. goalkeeper pace).
type StatLine struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physic    int `json:"physic"`
}

// PlayerRecord is a single roster entry, immutable after load.
// SearchName is the accent-stripped lowercase form used only for matching.
type PlayerRecord struct {
	PlayerID    int    `json:"player_id"`
	ShortName   string `json:"short_name"`
	LongName    string `json:"long_name"`
	SearchName  string `json:"-"`
	Club        string `json:"club_name"`
	League      string `json:"league_name"`
	Nationality string `json:"nationality_name"`
	Position    string `json:"primary_position"`
	Age         int    `json:"age"`
	Overall     int    `json:"overall"`
	FaceURL     string `json:"player_face_url"`
	StatLine
}

// Roster is the read-only player store. It is built once at startup and
// never mutated afterwards, so it is safe for concurrent readers.
type Roster struct {
	players []PlayerRecord
	byID    map[int]int
}

var errEmptyRoster = errors.New("roster contains no players")

var requiredColumns = []string{
	"player_id",
	"short_name",
	"long_name",
	"overall",
	"age",
	"club_name",
	"league_name",
	"nationality_name",
}

// LoadRoster reads the cleaned player CSV into memory. Any missing file,
// missing column, or unparseable row is fatal: the game cannot run on a
// partial roster.
func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	roster, err := readRoster(f)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	return roster, nil
}

func readRoster(r io.Reader) (*Roster, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errEmptyRoster
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	if _, ok := cols["primary_position"]; !ok {
		if _, ok := cols["player_positions"]; !ok {
			return nil, errors.New(`missing required column "primary_position" or "player_positions"`)
		}
	}

	roster := &Roster{
		byID: make(map[int]int),
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		id, err := strconv.Atoi(field("player_id"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad player_id %q", line, field("player_id"))
		}
		overall, err := strconv.Atoi(field("overall"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad overall %q", line, field("overall"))
		}
		age, err := strconv.Atoi(field("age"))
		if err != nil {
			return nil, fmt.Errorf("line %d: bad age %q", line, field("age"))
		}

		// The cleaning step dedupes, but keep first occurrence regardless
		// so the unique-id invariant holds on any input.
		if _, dup := roster.byID[id]; dup {
			continue
		}

		position := field("primary_position")
		if position == "" {
			position = primaryPosition(field("player_positions"))
		}

		searchName := field("search_name")
		if searchName == "" {
			searchName = normalizeSearchName(field("long_name"))
		}

		p := PlayerRecord{
			PlayerID:    id,
			ShortName:   field("short_name"),
			LongName:    field("long_name"),
			SearchName:  searchName,
			Club:        field("club_name"),
			League:      field("league_name"),
			Nationality: field("nationality_name"),
			Position:    position,
			Age:         age,
			Overall:     overall,
			FaceURL:     field("player_face_url"),
			StatLine: StatLine{
				Pace:      statValue(field("pace")),
				Shooting:  statValue(field("shooting")),
				Passing:   statValue(field("passing")),
				Dribbling: statValue(field("dribbling")),
				Defending: statValue(field("defending")),
				Physic:    statValue(field("physic")),
			},
		}

		roster.byID[id] = len(roster.players)
		roster.players = append(roster.players, p)
	}

	if len(roster.players) == 0 {
		return nil, errEmptyRoster
	}

	return roster, nil
}

// GetByID returns the player with the given id, if present.
func (r *Roster) GetByID(id int) (PlayerRecord, bool) {
	i, ok := r.byID[id]
	if !ok {
		return PlayerRecord{}, false
	}
	return r.players[i], true
}

// All returns every player in load order. Callers must not modify the slice.
func (r *Roster) All() []PlayerRecord {
	return r.players
}

func (r *Roster) Len() int {
	return len(r.players)
}

// primaryPosition extracts the first entry of a "CAM, CM" style list.
func primaryPosition(positions string) string {
	first, _, _ := strings.Cut(positions, ",")
	return strings.TrimSpace(first)
}

// statValue coerces a stat cell to an int, treating anything unparseable
// (including the empty cells pandas leaves for goalkeepers) as zero.
func statValue(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

var searchNameStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeSearchName produces the matching form of a display name:
// compatibility-decomposed, combining marks stripped, lowercased.
func normalizeSearchName(name string) string {
	stripped, _, err := transform.String(searchNameStripper, name)
	if err != nil {
		stripped = name
	}
	return strings.ToLower(strings.TrimSpace(stripped))
}
