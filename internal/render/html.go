package render

import (
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/aaronzipp/flip7-scorekeeper/internal/game"
	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

// Scoreboard generates HTML for the standings pushed to other open tabs
func Scoreboard(state *models.AppState) string {
	totals := game.ComputeTotals(state.Players, state.Rounds)
	standings := game.SortedByTotal(state.Players, totals)
	banner := game.EndBanner(state, totals)

	var b strings.Builder
	if banner.Ended {
		b.WriteString(`<div class="end-banner">`)
		b.WriteString(htmlpkg.EscapeString(banner.Text()))
		b.WriteString(`</div>`)
	}
	b.WriteString(`<p class="round-number">Round `)
	b.WriteString(strconv.Itoa(game.CurrentRoundNumber(state)))
	b.WriteString(`</p><table class="score-table" aria-label="Scoreboard sorted by total"><thead><tr><th>Player</th><th aria-sort="descending">Total ↓</th></tr></thead><tbody>`)
	for _, s := range standings {
		b.WriteString(`<tr`)
		if s.Winner {
			b.WriteString(` class="winner"`)
		}
		b.WriteString(`><td class="score-player">`)
		b.WriteString(htmlpkg.EscapeString(s.Player.Name))
		b.WriteString(`</td><td><span class="badge-pill">`)
		b.WriteString(strconv.Itoa(s.Total))
		b.WriteString(`</span></td></tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

// SaveStatus generates HTML for the persistence indicator
func SaveStatus(status string) string {
	var b strings.Builder
	b.WriteString(`<span class="save-status">`)
	b.WriteString(htmlpkg.EscapeString(status))
	b.WriteString(`</span>`)
	return b.String()
}
