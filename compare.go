package main

// Feedback statuses, in decreasing order of warmth.
const (
	statusCorrect = "correct"
	statusClose   = "close"
	statusWrong   = "wrong"
)

// Direction hints for the numeric fields.
const (
	directionHigher = "higher"
	directionLower  = "lower"
	directionEqual  = "equal"
)

const (
	// Age and overall count as close within this distance.
	numericCloseness = 2

	// A game ends after this many guesses, right or wrong.
	maxGuesses = 8
)

// positionGroups maps each specific position onto its coarse group, used
// for the close tier. Anything unlisted falls through to OTHER.
var positionGroups = map[string]string{
	"GK": "GK",

	"LB": "DEF", "RB": "DEF", "CB": "DEF", "LWB": "DEF", "RWB": "DEF",

	"CDM": "MID", "CM": "MID", "CAM": "MID", "LM": "MID", "RM": "MID",

	"LW": "FWD", "RW": "FWD", "LF": "FWD", "RF": "FWD",
	"ST": "FWD", "CF": "FWD",
}

const continentUnknown = "Unknown"

// continents maps nationalities onto continents for the close tier.
// Unlisted nationalities map to Unknown, which never matches itself.
var continents = map[string]string{
	"Algeria": "Africa", "Burkina Faso": "Africa", "Cameroon": "Africa",
	"Congo DR": "Africa", "Côte d'Ivoire": "Africa", "Egypt": "Africa",
	"Gabon": "Africa", "Ghana": "Africa", "Guinea": "Africa",
	"Morocco": "Africa", "Nigeria": "Africa", "Senegal": "Africa",
	"Tunisia": "Africa",

	"Argentina": "South America", "Brazil": "South America",
	"Colombia": "South America", "Ecuador": "South America",
	"Uruguay": "South America", "Venezuela": "South America",

	"Canada": "North America", "United States": "North America",

	"Armenia": "Europe", "Austria": "Europe", "Belgium": "Europe",
	"Bosnia and Herzegovina": "Europe", "Croatia": "Europe",
	"Czechia": "Europe", "Denmark": "Europe", "England": "Europe",
	"Finland": "Europe", "France": "Europe", "Georgia": "Europe",
	"Germany": "Europe", "Hungary": "Europe", "Italy": "Europe",
	"Kosovo": "Europe", "Netherlands": "Europe", "Norway": "Europe",
	"Poland": "Europe", "Portugal": "Europe", "Scotland": "Europe",
	"Serbia": "Europe", "Slovakia": "Europe", "Slovenia": "Europe",
	"Spain": "Europe", "Sweden": "Europe", "Switzerland": "Europe",
	"Türkiye": "Europe", "Ukraine": "Europe",

	"Japan": "Asia", "Korea Republic": "Asia",

	"New Zealand": "Oceania",
}

// FieldFeedback grades one categorical field of a guess.
type FieldFeedback struct {
	Value  string `json:"value"`
	Status string `json:"status"`
}

// NumericFeedback grades a numeric field and points at the target.
type NumericFeedback struct {
	Value     int    `json:"value"`
	Status    string `json:"status"`
	Direction string `json:"direction"`
}

// GuessFeedback is the full per-field grading of one guess, plus both
// stat lines for the radar chart.
type GuessFeedback struct {
	Nationality  FieldFeedback   `json:"nationality"`
	Club         FieldFeedback   `json:"club"`
	League       FieldFeedback   `json:"league"`
	Position     FieldFeedback   `json:"position"`
	Age          NumericFeedback `json:"age"`
	Overall      NumericFeedback `json:"overall"`
	GuessStats   StatLine        `json:"guess_stats"`
	TargetStats  StatLine        `json:"target_stats"`
	GuessName    string          `json:"guess_name"`
	GuessFaceURL string          `json:"guess_face_url"`
	IsCorrect    bool            `json:"is_correct"`
}

// Compare grades a guessed player against the target, field by field.
// Pure function: the two records are its only inputs. Winning is decided
// by identity alone, never by matching every field.
func Compare(guess, target PlayerRecord) GuessFeedback {
	return GuessFeedback{
		Nationality: FieldFeedback{
			Value:  guess.Nationality,
			Status: nationalityStatus(guess.Nationality, target.Nationality),
		},
		Club: FieldFeedback{
			Value:  guess.Club,
			Status: exactStatus(guess.Club == target.Club),
		},
		League: FieldFeedback{
			Value:  guess.League,
			Status: exactStatus(guess.League == target.League),
		},
		Position: FieldFeedback{
			Value:  guess.Position,
			Status: positionStatus(guess.Position, target.Position),
		},
		Age:          numericFeedback(guess.Age, target.Age),
		Overall:      numericFeedback(guess.Overall, target.Overall),
		GuessStats:   guess.StatLine,
		TargetStats:  target.StatLine,
		GuessName:    guess.ShortName,
		GuessFaceURL: guess.FaceURL,
		IsCorrect:    guess.PlayerID == target.PlayerID,
	}
}

func continentOf(nationality string) string {
	if c, ok := continents[nationality]; ok {
		return c
	}
	return continentUnknown
}

func positionGroup(position string) string {
	if g, ok := positionGroups[position]; ok {
		return g
	}
	return "OTHER"
}

func nationalityStatus(guess, target string) string {
	switch {
	case guess == target:
		return statusCorrect
	case continentOf(guess) != continentUnknown && continentOf(guess) == continentOf(target):
		return statusClose
	default:
		return statusWrong
	}
}

func positionStatus(guess, target string) string {
	switch {
	case guess == target:
		return statusCorrect
	case positionGroup(guess) == positionGroup(target):
		return statusClose
	default:
		return statusWrong
	}
}

func exactStatus(match bool) string {
	if match {
		return statusCorrect
	}
	return statusWrong
}

func numericFeedback(guess, target int) NumericFeedback {
	fb := NumericFeedback{Value: guess}

	if guess == target {
		fb.Status = statusCorrect
		fb.Direction = directionEqual

		return fb
	}

	if absDiff(guess, target) <= numericCloseness {
		fb.Status = statusClose
	} else {
		fb.Status = statusWrong
	}

	if target > guess {
		fb.Direction = directionHigher
	} else {
		fb.Direction = directionLower
	}

	return fb
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}

	return b - a
}
