package game

import (
	"reflect"
	"testing"

	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

func twoPlayers() []models.Player {
	return []models.Player{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
}

func round(scores map[string]int) models.Round {
	return models.Round{Timestamp: "2026-01-01T00:00:00.000Z", Scores: scores}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(twoPlayers(), nil)
	if want := map[string]int{"a": 0, "b": 0}; !reflect.DeepEqual(got.Now, want) {
		t.Fatalf("Now = %v, want %v", got.Now, want)
	}
	if len(got.AfterRound) != 0 {
		t.Fatalf("AfterRound len = %d, want 0", len(got.AfterRound))
	}
	if got.End.Ended || got.End.EndIndex != -1 {
		t.Fatalf("End = %+v, want not ended", got.End)
	}
}

func TestComputeTotalsScenarios(t *testing.T) {
	tests := []struct {
		name     string
		rounds   []models.Round
		wantNow  map[string]int
		ended    bool
		endIndex int
		winners  []string
	}{
		{
			name:     "below threshold",
			rounds:   []models.Round{round(map[string]int{"a": 5, "b": 10})},
			wantNow:  map[string]int{"a": 5, "b": 10},
			endIndex: -1,
		},
		{
			name: "ends on second round",
			rounds: []models.Round{
				round(map[string]int{"a": 5, "b": 10}),
				round(map[string]int{"a": 200, "b": 0}),
			},
			wantNow:  map[string]int{"a": 205, "b": 10},
			ended:    true,
			endIndex: 1,
			winners:  []string{"a"},
		},
		{
			name:     "tie at threshold",
			rounds:   []models.Round{round(map[string]int{"a": 200, "b": 200})},
			wantNow:  map[string]int{"a": 200, "b": 200},
			ended:    true,
			endIndex: 0,
			winners:  []string{"a", "b"},
		},
		{
			name:     "missing entry counts as zero",
			rounds:   []models.Round{round(map[string]int{"a": 7}), round(map[string]int{"b": -3})},
			wantNow:  map[string]int{"a": 7, "b": -3},
			endIndex: -1,
		},
		{
			name: "first crossing wins even if later rounds exist",
			rounds: []models.Round{
				round(map[string]int{"a": 150, "b": 210}),
				round(map[string]int{"a": 100, "b": 0}),
			},
			wantNow:  map[string]int{"a": 250, "b": 210},
			ended:    true,
			endIndex: 0,
			winners:  []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(twoPlayers(), tt.rounds)
			if !reflect.DeepEqual(got.Now, tt.wantNow) {
				t.Fatalf("Now = %v, want %v", got.Now, tt.wantNow)
			}
			if !reflect.DeepEqual(got.Now, got.AfterRound[len(got.AfterRound)-1]) {
				t.Fatalf("Now %v differs from last AfterRound %v", got.Now, got.AfterRound[len(got.AfterRound)-1])
			}
			if got.End.Ended != tt.ended || got.End.EndIndex != tt.endIndex {
				t.Fatalf("End = %+v, want ended=%v index=%d", got.End, tt.ended, tt.endIndex)
			}
			if !reflect.DeepEqual(got.End.Winners, tt.winners) {
				t.Fatalf("Winners = %v, want %v", got.End.Winners, tt.winners)
			}
		})
	}
}

func TestComputeTotalsNoEarlierEndRound(t *testing.T) {
	rounds := []models.Round{
		round(map[string]int{"a": 50, "b": 60}),
		round(map[string]int{"a": 50, "b": 60}),
		round(map[string]int{"a": 50, "b": 90}),
		round(map[string]int{"a": 50, "b": 90}),
	}
	got := ComputeTotals(twoPlayers(), rounds)
	if got.End.EndIndex != 2 {
		t.Fatalf("EndIndex = %d, want 2", got.End.EndIndex)
	}
	for i := 0; i < got.End.EndIndex; i++ {
		after := got.AfterRound[i]
		if after["a"] >= WinThreshold || after["b"] >= WinThreshold {
			t.Fatalf("round %d already reached threshold: %v", i, after)
		}
	}
}

func TestEditedRoundOnlyAffectsLaterTotals(t *testing.T) {
	rounds := []models.Round{
		round(map[string]int{"a": 1, "b": 2}),
		round(map[string]int{"a": 3, "b": 4}),
		round(map[string]int{"a": 5, "b": 6}),
	}
	before := ComputeTotals(twoPlayers(), rounds)

	rounds[1].Scores = map[string]int{"a": 30, "b": 40}
	after := ComputeTotals(twoPlayers(), rounds)

	if !reflect.DeepEqual(before.AfterRound[0], after.AfterRound[0]) {
		t.Fatalf("round 1 totals changed: %v -> %v", before.AfterRound[0], after.AfterRound[0])
	}
	if want := map[string]int{"a": 36, "b": 48}; !reflect.DeepEqual(after.AfterRound[2], want) {
		t.Fatalf("round 3 totals = %v, want %v", after.AfterRound[2], want)
	}
	if !reflect.DeepEqual(after.Now, after.AfterRound[2]) {
		t.Fatalf("Now = %v, want %v", after.Now, after.AfterRound[2])
	}

	fresh := []models.Round{rounds[0], round(map[string]int{"a": 30, "b": 40}), rounds[2]}
	if got := ComputeTotals(twoPlayers(), fresh); !reflect.DeepEqual(got.Now, after.Now) {
		t.Fatalf("edited totals %v differ from never-recorded totals %v", after.Now, got.Now)
	}
}

func TestSortedByTotal(t *testing.T) {
	players := []models.Player{
		{ID: "1", Name: "zoe"},
		{ID: "2", Name: "Ann"},
		{ID: "3", Name: "bob"},
		{ID: "4", Name: "Cy"},
	}
	rounds := []models.Round{round(map[string]int{"1": 10, "2": 5, "3": 5, "4": 20})}

	got := SortedByTotal(players, ComputeTotals(players, rounds))
	var names []string
	for _, s := range got {
		names = append(names, s.Player.Name)
	}
	if want := []string{"Cy", "zoe", "Ann", "bob"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("order = %v, want %v", names, want)
	}
}

func TestEndBanner(t *testing.T) {
	state := models.NewAppState()
	state.Players = twoPlayers()
	state.Rounds = []models.Round{round(map[string]int{"a": 200, "b": 200})}

	banner := EndBanner(state, ComputeTotals(state.Players, state.Rounds))
	if want := "End of Game (Round 1) • Winner: A, B"; banner.Text() != want {
		t.Fatalf("Text() = %q, want %q", banner.Text(), want)
	}

	state.Rounds = nil
	if banner := EndBanner(state, ComputeTotals(state.Players, state.Rounds)); banner.Ended || banner.Text() != "" {
		t.Fatalf("banner = %+v, want empty", banner)
	}
}

func TestHistory(t *testing.T) {
	state := models.NewAppState()
	state.Players = twoPlayers()
	state.Rounds = []models.Round{
		round(map[string]int{"a": 4, "b": 1}),
		round(map[string]int{"a": 6}),
	}

	entries := History(state, ComputeTotals(state.Players, state.Rounds))
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	last := entries[1]
	if last.Number != 2 {
		t.Fatalf("Number = %d, want 2", last.Number)
	}
	if last.Lines[1].Score != 0 || last.Lines[1].Total != 1 {
		t.Fatalf("line for B = %+v, want score 0 total 1", last.Lines[1])
	}
	if last.Lines[0].Total != 10 {
		t.Fatalf("total for A = %d, want 10", last.Lines[0].Total)
	}
}
