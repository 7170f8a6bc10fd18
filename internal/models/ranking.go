package models

import "sort"

// RankedPlayer is one line of the aftermath standings.
type RankedPlayer struct {
	// ID is the player's connection-scoped identifier
	ID PlayerID `json:"id"`

	// Name is the player's display name
	Name PlayerName `json:"name"`

	// Points is the player's final score for the round
	Points uint16 `json:"points"`

	// Rank is the dense rank: 1 plus the number of distinct point totals
	// strictly greater than the player's own, so ties share a rank and the
	// next distinct total follows without a gap
	Rank int `json:"rank"`
}

// RankPlayers snapshots the standings of all non-watcher players, ordered
// by points descending with names breaking ties for a stable listing.
func RankPlayers(players []Player) []RankedPlayer {
	ranked := make([]RankedPlayer, 0, len(players))
	for i := range players {
		if players[i].IsWatcher() {
			continue
		}
		ranked = append(ranked, RankedPlayer{
			ID:     players[i].ID,
			Name:   players[i].Name,
			Points: players[i].Points,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Name < ranked[j].Name
	})

	rank := 0
	for i := range ranked {
		if i == 0 || ranked[i].Points != ranked[i-1].Points {
			rank++
		}
		ranked[i].Rank = rank
	}

	return ranked
}
