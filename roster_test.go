package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testRosterCSV is a small but representative cleaned dataset: elite and
// non-elite ratings, accented names with and without a precomputed
// search_name, a goalkeeper with empty stats, and a Smith cluster for
// fuzzy-search tests.
const testRosterCSV = `player_id,short_name,long_name,search_name,club_name,league_name,nationality_name,primary_position,age,overall,player_face_url,pace,shooting,passing,dribbling,defending,physic
1001,K. Walker,Kyle Walker,,Manchester City,Premier League,England,RB,34,84,https://cdn.example.com/p/1001.png,89,60,72,75,80,77
1002,A. Robertson,Andrew Robertson,,Liverpool,Premier League,Scotland,LB,30,85,https://cdn.example.com/p/1002.png,80,60,78,77,81,74
1003,Vini Jr.,Vinícius José de Oliveira Júnior,vinicius jose de oliveira junior,Real Madrid,La Liga,Brazil,LW,24,90,https://cdn.example.com/p/1003.png,95,84,78,92,29,68
1004,R. Lewandowski,Robert Lewandowski,,FC Barcelona,La Liga,Poland,ST,36,88,https://cdn.example.com/p/1004.png,75,91,79,85,44,84
1005,T. Müller,Thomas Müller,,FC Bayern München,Bundesliga,Germany,CAM,35,84,https://cdn.example.com/p/1005.png,68,84,82,83,42,70
1006,M. Neuer,Manuel Neuer,,FC Bayern München,Bundesliga,Germany,GK,38,84,https://cdn.example.com/p/1006.png,,,,,,
1007,H. Kane,Harry Kane,,FC Bayern München,Bundesliga,England,ST,31,90,https://cdn.example.com/p/1007.png,68,93,84,83,49,83
1008,J. Smith,John Smith,,Everton,Premier League,England,CB,28,80,https://cdn.example.com/p/1008.png,70,45,60,58,81,80
1009,J. Smithson,Jon Smithson,,Fulham,Premier League,England,CM,26,81,https://cdn.example.com/p/1009.png,72,68,77,74,70,73
1010,A. Smithers,Alan Smithers,,Brentford,Premier League,Scotland,CDM,29,80,https://cdn.example.com/p/1010.png,68,55,72,70,78,82
1011,K. Mbappé,Kylian Mbappé Lottin,,Real Madrid,La Liga,France,ST,25,91,https://cdn.example.com/p/1011.png,97,90,80,92,36,78
1012,A. Mooy,Aaron Mooy,,Celtic,Premier League,Australia,CM,33,80,https://cdn.example.com/p/1012.png,55,70,78,74,65,68
1013,G. Bale,Gareth Bale,,Tottenham Hotspur,Premier League,Wales,RW,34,82,https://cdn.example.com/p/1013.png,88,85,76,84,40,70
`

func testRoster(t *testing.T) *Roster {
	t.Helper()

	roster, err := readRoster(strings.NewReader(testRosterCSV))
	if err != nil {
		t.Fatalf("reading fixture roster: %v", err)
	}

	return roster
}

func TestLoadRosterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.csv")
	if err := os.WriteFile(path, []byte(testRosterCSV), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	roster, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("loading roster: %v", err)
	}

	if roster.Len() != 13 {
		t.Errorf("expected 13 players, got %d", roster.Len())
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	if _, err := LoadRoster(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing dataset")
	}
}

func TestGetByIDRoundTrip(t *testing.T) {
	roster := testRoster(t)

	for _, p := range roster.All() {
		got, ok := roster.GetByID(p.PlayerID)
		if !ok {
			t.Fatalf("player %d not found after load", p.PlayerID)
		}
		if got.PlayerID != p.PlayerID {
			t.Errorf("expected id %d, got %d", p.PlayerID, got.PlayerID)
		}
	}

	if _, ok := roster.GetByID(999999); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestAllPreservesLoadOrder(t *testing.T) {
	roster := testRoster(t)

	players := roster.All()
	if players[0].PlayerID != 1001 || players[len(players)-1].PlayerID != 1013 {
		t.Errorf("expected load order 1001..1013, got %d..%d",
			players[0].PlayerID, players[len(players)-1].PlayerID)
	}
}

func TestSearchNameDerivation(t *testing.T) {
	roster := testRoster(t)

	mueller, _ := roster.GetByID(1005)
	if mueller.SearchName != "thomas muller" {
		t.Errorf("expected derived search name %q, got %q", "thomas muller", mueller.SearchName)
	}

	mbappe, _ := roster.GetByID(1011)
	if mbappe.SearchName != "kylian mbappe lottin" {
		t.Errorf("expected derived search name %q, got %q", "kylian mbappe lottin", mbappe.SearchName)
	}

	// A precomputed search_name column wins over derivation.
	vini, _ := roster.GetByID(1003)
	if vini.SearchName != "vinicius jose de oliveira junior" {
		t.Errorf("expected provided search name to be kept, got %q", vini.SearchName)
	}
}

func TestGoalkeeperStatsCoerceToZero(t *testing.T) {
	roster := testRoster(t)

	neuer, _ := roster.GetByID(1006)
	if neuer.StatLine != (StatLine{}) {
		t.Errorf("expected empty stats to coerce to zero, got %+v", neuer.StatLine)
	}
}

func TestFloatStatsTruncate(t *testing.T) {
	csv := `player_id,short_name,long_name,club_name,league_name,nationality_name,primary_position,age,overall,pace,shooting,passing,dribbling,defending,physic
1,A,Alpha,C,L,England,ST,25,85,84.0,70.5,66,60,50,75
`
	roster, err := readRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("reading roster: %v", err)
	}

	p, _ := roster.GetByID(1)
	if p.Pace != 84 || p.Shooting != 70 {
		t.Errorf("expected pandas-style floats to truncate, got pace=%d shooting=%d", p.Pace, p.Shooting)
	}
}

func TestDuplicateIDKeepsFirst(t *testing.T) {
	csv := `player_id,short_name,long_name,club_name,league_name,nationality_name,primary_position,age,overall
7,First,First Player,C,L,England,ST,25,85
7,Second,Second Player,C,L,England,ST,26,86
`
	roster, err := readRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("reading roster: %v", err)
	}

	if roster.Len() != 1 {
		t.Fatalf("expected 1 player after dedupe, got %d", roster.Len())
	}
	p, _ := roster.GetByID(7)
	if p.ShortName != "First" {
		t.Errorf("expected first occurrence kept, got %q", p.ShortName)
	}
}

func TestPlayerPositionsFallback(t *testing.T) {
	csv := `player_id,short_name,long_name,club_name,league_name,nationality_name,player_positions,age,overall
1,A,Alpha,C,L,England,"CAM, CM",25,85
`
	roster, err := readRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("reading roster: %v", err)
	}

	p, _ := roster.GetByID(1)
	if p.Position != "CAM" {
		t.Errorf("expected primary position CAM, got %q", p.Position)
	}
}

func TestReadRosterRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"header only", "player_id,short_name,long_name,club_name,league_name,nationality_name,primary_position,age,overall\n"},
		{"missing column", "player_id,short_name\n1,A\n"},
		{"bad player_id", "player_id,short_name,long_name,club_name,league_name,nationality_name,primary_position,age,overall\nxyz,A,Alpha,C,L,England,ST,25,85\n"},
		{"bad age", "player_id,short_name,long_name,club_name,league_name,nationality_name,primary_position,age,overall\n1,A,Alpha,C,L,England,ST,young,85\n"},
		{"bad overall", "player_id,short_name,long_name,club_name,league_name,nationality_name,primary_position,age,overall\n1,A,Alpha,C,L,England,ST,25,elite\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := readRoster(strings.NewReader(tc.csv)); err == nil {
				t.Errorf("expected error for %s input", tc.name)
			}
		})
	}
}

func TestNormalizeSearchName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kylian Mbappé Lottin", "kylian mbappe lottin"},
		{"Thomas Müller", "thomas muller"},
		{"Vinícius Júnior", "vinicius junior"},
		{"  Harry Kane  ", "harry kane"},
		{"João Félix", "joao felix"},
	}

	for _, tc := range cases {
		if got := normalizeSearchName(tc.in); got != tc.want {
			t.Errorf("normalizeSearchName(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
