package main

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"math/big"
	"time"
)

const (
	// Only well-known players make viable targets.
	eliteOverallFloor = 85

	dailySaltPrefix = "footle-"
	dailyDateLayout = "2006-01-02"
)

var errNoElitePlayers = errors.New("no players at or above the elite overall floor")

// eliteIDs returns the ids of every player rated at or above the elite
// floor, in roster order. Roster order is what makes the daily index stable.
func (r *Roster) eliteIDs() []int {
	var ids []int

	for i := range r.players {
		if r.players[i].Overall >= eliteOverallFloor {
			ids = append(ids, r.players[i].PlayerID)
		}
	}

	return ids
}

// DailyTargetID picks the target for the given day. The salted UTC date is
// hashed and reduced onto the elite subset, so every instance serving the
// same roster agrees on the day's player without coordination.
func (r *Roster) DailyTargetID(day time.Time) (int, error) {
	elite := r.eliteIDs()
	if len(elite) == 0 {
		return 0, errNoElitePlayers
	}

	sum := sha256.Sum256([]byte(dailySaltPrefix + day.UTC().Format(dailyDateLayout)))

	n := new(big.Int).SetBytes(sum[:])
	index := n.Mod(n, big.NewInt(int64(len(elite)))).Int64()

	return elite[index], nil
}

// RandomTargetID picks a uniformly random target from the whole roster,
// independent of rating.
func (r *Roster) RandomTargetID() (int, error) {
	if len(r.players) == 0 {
		return 0, errEmptyRoster
	}

	index, err := rand.Int(rand.Reader, big.NewInt(int64(len(r.players))))
	if err != nil {
		return 0, err
	}

	return r.players[index.Int64()].PlayerID, nil
}
