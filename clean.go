package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"
)

// Only clubs from the top five European leagues make the game dataset.
var topFiveLeagues = map[string]bool{
	"Premier League": true,
	"La Liga":        true,
	"Bundesliga":     true,
	"Serie A":        true,
	"Ligue 1":        true,
}

// Players below this rating are too obscure to guess.
const cleanOverallFloor = 80

// gameColumns is the raw-export subset the game needs, in output order.
// search_name and primary_position are derived and appended after these.
var gameColumns = []string{
	"player_id",
	"short_name",
	"long_name",
	"player_positions",
	"overall",
	"age",
	"club_name",
	"league_name",
	"nationality_name",
	"player_face_url",
	"pace",
	"shooting",
	"passing",
	"dribbling",
	"defending",
	"physic",
}

var (
	// Some raw names have non-Latin script glued on, e.g.
	// "Achraf Hakimi Mouhأشرف حكيمي". Keep Latin, spaces, ' - and .
	nonLatinRunes = regexp.MustCompile(`[^\x{0000}-\x{024F}\x{1E00}-\x{1EFF}\s'\-.]`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// cleanName strips stray non-Latin script from a display name, collapses
// runs of whitespace, and normalizes what remains to NFC.
func cleanName(name string) string {
	cleaned := nonLatinRunes.ReplaceAllString(name, "")
	cleaned = strings.TrimSpace(multiSpace.ReplaceAllString(cleaned, " "))

	return norm.NFC.String(cleaned)
}

// numericValue parses an integer that pandas may have written as a float.
func numericValue(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}

	return 0, false
}

func newCleanCmd() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Build the game dataset from a raw EA FC export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cleanDataset(cmd, input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "data/FC26_20250921.csv", "raw EA FC export to clean")
	cmd.Flags().StringVarP(&output, "output", "o", "data/footle_players.csv", "destination for the cleaned dataset")

	return cmd
}

func cleanDataset(cmd *cobra.Command, input, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("opening raw dataset: %w", err)
	}
	defer in.Close()

	cr := csv.NewReader(in)

	header, err := cr.Read()
	if err == io.EOF {
		return errors.New("raw dataset is empty")
	}
	if err != nil {
		return err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	for _, name := range gameColumns {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("raw dataset is missing column %q", name)
		}
	}

	var (
		raw             int
		inLeagues       int
		rated           int
		droppedCritical int
		duplicates      int
	)

	seen := make(map[int]bool)

	var rows [][]string

	leagues := make(map[string]int)
	clubs := make(map[string]bool)
	nationalities := make(map[string]bool)
	positions := make(map[string]bool)

	minOverall, maxOverall := 99, 0
	minAge, maxAge := 99, 0

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		raw++

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if !topFiveLeagues[field("league_name")] {
			continue
		}
		inLeagues++

		overall, ok := numericValue(field("overall"))
		if !ok || overall < cleanOverallFloor {
			continue
		}
		rated++

		shortName := cleanName(field("short_name"))
		longName := cleanName(field("long_name"))

		age, ageOK := numericValue(field("age"))

		playerID, idOK := numericValue(field("player_id"))
		if !idOK {
			droppedCritical++
			continue
		}

		critical := []string{
			field("short_name"),
			field("long_name"),
			field("club_name"),
			field("nationality_name"),
		}
		missing := !ageOK
		for _, v := range critical {
			if v == "" {
				missing = true
				break
			}
		}
		if missing {
			droppedCritical++
			continue
		}

		if seen[playerID] {
			duplicates++
			continue
		}
		seen[playerID] = true

		primary := "Unknown"
		if field("player_positions") != "" {
			primary = primaryPosition(field("player_positions"))
		}

		// Ids and numerics go out as plain integers, whatever the export had.
		rows = append(rows, []string{
			strconv.Itoa(playerID),
			shortName,
			longName,
			field("player_positions"),
			strconv.Itoa(overall),
			strconv.Itoa(age),
			field("club_name"),
			field("league_name"),
			field("nationality_name"),
			field("player_face_url"),
			field("pace"),
			field("shooting"),
			field("passing"),
			field("dribbling"),
			field("defending"),
			field("physic"),
			normalizeSearchName(longName),
			primary,
		})

		leagues[field("league_name")]++
		clubs[field("club_name")] = true
		nationalities[field("nationality_name")] = true
		positions[primary] = true

		if overall < minOverall {
			minOverall = overall
		}
		if overall > maxOverall {
			maxOverall = overall
		}
		if age < minAge {
			minAge = age
		}
		if age > maxAge {
			maxAge = age
		}
	}

	if len(rows) == 0 {
		return errors.New("no players survived cleaning")
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating cleaned dataset: %w", err)
	}
	defer out.Close()

	cw := csv.NewWriter(out)

	outHeader := append(append([]string{}, gameColumns...), "search_name", "primary_position")
	if err := cw.Write(outHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	cmd.Printf("Raw dataset: %d players\n", raw)
	cmd.Printf("After league filter (top 5): %d players\n", inLeagues)
	cmd.Printf("After overall >= %d filter: %d players\n", cleanOverallFloor, rated)
	if droppedCritical > 0 {
		cmd.Printf("Dropped %d rows with missing critical data\n", droppedCritical)
	}
	if duplicates > 0 {
		cmd.Printf("Dropped %d duplicate player_id rows\n", duplicates)
	}

	cmd.Printf("\nCleaned dataset: %d players\n", len(rows))
	cmd.Printf("  Leagues:       %d\n", len(leagues))
	cmd.Printf("  Clubs:         %d\n", len(clubs))
	cmd.Printf("  Nationalities: %d\n", len(nationalities))
	cmd.Printf("  Overall range: %d-%d\n", minOverall, maxOverall)
	cmd.Printf("  Age range:     %d-%d\n", minAge, maxAge)
	cmd.Printf("  Positions:     %s\n", strings.Join(sortedKeys(positions), " "))

	cmd.Printf("\nLeague breakdown:\n")
	for _, league := range sortedByCount(leagues) {
		cmd.Printf("  %-16s %d\n", league, leagues[league])
	}

	cmd.Printf("\nSaved cleaned dataset to %s (%d players)\n", output, len(rows))

	return nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// sortedByCount orders keys by descending count, ties alphabetical.
func sortedByCount(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})

	return keys
}
