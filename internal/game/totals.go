package game

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

// Totals is the outcome of summing every round for every player
type Totals struct {
	Now        map[string]int   // playerID -> total across all rounds
	AfterRound []map[string]int // AfterRound[i] is the cumulative totals right after round i
	End        EndState
}

// EndState describes whether and where the game ended
type EndState struct {
	Ended    bool
	EndIndex int // index of the first round whose max total reached WinThreshold, -1 if none
	Winners  []string
	MaxTotal int
}

// ComputeTotals recomputes all totals from scratch. A player without an entry
// in a round contributes 0. The game ends at the first round after which the
// highest total is at least WinThreshold; later rounds never move the end.
func ComputeTotals(players []models.Player, rounds []models.Round) Totals {
	totals := make(map[string]int, len(players))
	for _, p := range players {
		totals[p.ID] = 0
	}

	result := Totals{
		AfterRound: make([]map[string]int, 0, len(rounds)),
		End:        EndState{EndIndex: -1},
	}

	for i, r := range rounds {
		for _, p := range players {
			totals[p.ID] += r.Score(p.ID)
		}
		result.AfterRound = append(result.AfterRound, copyTotals(totals))

		if !result.End.Ended && len(players) > 0 && maxTotal(players, totals) >= WinThreshold {
			result.End.Ended = true
			result.End.EndIndex = i
		}
	}

	if result.End.Ended {
		atEnd := result.AfterRound[result.End.EndIndex]
		result.End.MaxTotal = maxTotal(players, atEnd)
		for _, p := range players {
			if atEnd[p.ID] == result.End.MaxTotal {
				result.End.Winners = append(result.End.Winners, p.ID)
			}
		}
	}

	result.Now = copyTotals(totals)
	return result
}

// IsWinner reports whether the player is among the winners
func (e EndState) IsWinner(playerID string) bool {
	for _, id := range e.Winners {
		if id == playerID {
			return true
		}
	}
	return false
}

// Standing is one row of the sorted scoreboard
type Standing struct {
	Player models.Player
	Total  int
	Winner bool
}

// SortedByTotal orders players by total descending, ties broken by name
// ascending using locale-aware collation.
func SortedByTotal(players []models.Player, t Totals) []Standing {
	standings := make([]Standing, 0, len(players))
	for _, p := range players {
		standings = append(standings, Standing{
			Player: p,
			Total:  t.Now[p.ID],
			Winner: t.End.Ended && t.End.IsWinner(p.ID),
		})
	}

	c := collate.New(language.Und)
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return c.CompareString(standings[i].Player.Name, standings[j].Player.Name) < 0
	})
	return standings
}

// Banner holds what the renderer needs for the end-of-game banner
type Banner struct {
	Ended       bool
	Round       int // 1-based round the game ended on
	WinnerNames []string
}

// EndBanner resolves the winners' names for the end-of-game banner
func EndBanner(state *models.AppState, t Totals) Banner {
	if !t.End.Ended {
		return Banner{}
	}
	return Banner{
		Ended:       true,
		Round:       t.End.EndIndex + 1,
		WinnerNames: state.PlayerNames(t.End.Winners),
	}
}

// Text renders the banner line, or "" when the game is still running
func (b Banner) Text() string {
	if !b.Ended {
		return ""
	}
	return "End of Game (Round " + strconv.Itoa(b.Round) + ") • Winner: " + strings.Join(b.WinnerNames, ", ")
}

// CurrentRoundNumber is the number of the round being entered
func CurrentRoundNumber(state *models.AppState) int {
	return len(state.Rounds) + 1
}

// HistoryEntry is one round as shown in the history list
type HistoryEntry struct {
	Number    int
	Timestamp string
	Lines     []HistoryLine
}

// HistoryLine is one player's score within a round and their total after it
type HistoryLine struct {
	Player models.Player
	Score  int
	Total  int
}

// History lists every round in order with scores and running totals, players
// in roster order.
func History(state *models.AppState, t Totals) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(state.Rounds))
	for i, r := range state.Rounds {
		entry := HistoryEntry{Number: i + 1, Timestamp: r.Timestamp}
		for _, p := range state.Players {
			entry.Lines = append(entry.Lines, HistoryLine{
				Player: p,
				Score:  r.Score(p.ID),
				Total:  t.AfterRound[i][p.ID],
			})
		}
		entries = append(entries, entry)
	}
	return entries
}

func maxTotal(players []models.Player, totals map[string]int) int {
	best := totals[players[0].ID]
	for _, p := range players[1:] {
		if totals[p.ID] > best {
			best = totals[p.ID]
		}
	}
	return best
}

func copyTotals(totals map[string]int) map[string]int {
	out := make(map[string]int, len(totals))
	for id, v := range totals {
		out[id] = v
	}
	return out
}
