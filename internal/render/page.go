package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"sort"

	"github.com/aaronzipp/flip7-scorekeeper/internal/game"
	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets rooted at the static directory
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var subtitles = map[models.View]string{
	models.ViewSetup:   "Setup",
	models.ViewScore:   "Scoring",
	models.ViewHistory: "History",
	models.ViewEdit:    "Edit Round",
}

var funcs = template.FuncMap{
	// prev turns a 1-based round number back into its index
	"prev": func(n int) int { return n - 1 },
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	t, err := template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// ConfirmPrompt asks the user to repeat an action with confirm=yes
type ConfirmPrompt struct {
	Message string
	Action  string
	Fields  []Field
}

// Field is a hidden form value carried into the confirmation form
type Field struct {
	Name  string
	Value string
}

// Page is everything the page template renders
type Page struct {
	View       models.View
	Subtitle   string
	SaveStatus string
	Alerts     []string
	Confirm    *ConfirmPrompt

	Setup      SetupView
	Score      ScoreView
	History    []game.HistoryEntry
	Scoreboard template.HTML
	Edit       EditView
}

// SetupView lists the roster being set up
type SetupView struct {
	Players  []SetupPlayer
	CanAdd   bool
	CanStart bool
}

// SetupPlayer is one row of the setup list
type SetupPlayer struct {
	models.Player
	Position  int
	Removable bool
}

// ScoreView is the score entry screen
type ScoreView struct {
	RoundNumber int
	Banner      string
	Ended       bool
	Rows        []ScoreRow
	CanUndo     bool
	HasRounds   bool
}

// ScoreRow is one standing with its pending input
type ScoreRow struct {
	game.Standing
	Input string
	Last  bool
}

// EditView is the round editor
type EditView struct {
	RoundNumber int
	Rows        []EditRow
}

// EditRow is one player's editable score
type EditRow struct {
	models.Player
	Input string
}

// NewPage projects the state onto the page model. Totals are computed once here.
func NewPage(state *models.AppState, saveStatus string) Page {
	totals := game.ComputeTotals(state.Players, state.Rounds)
	page := Page{
		View:       state.View,
		Subtitle:   subtitles[state.View],
		SaveStatus: saveStatus,
	}

	switch state.View {
	case models.ViewSetup:
		for i, p := range state.Players {
			page.Setup.Players = append(page.Setup.Players, SetupPlayer{
				Player:    p,
				Position:  i + 1,
				Removable: len(state.Players) > game.MinPlayers,
			})
		}
		page.Setup.CanAdd = len(state.Players) < game.MaxPlayers
		page.Setup.CanStart = len(state.Players) >= game.MinPlayers && len(state.Players) <= game.MaxPlayers

	case models.ViewScore:
		banner := game.EndBanner(state, totals)
		page.Score = ScoreView{
			RoundNumber: game.CurrentRoundNumber(state),
			Banner:      banner.Text(),
			Ended:       banner.Ended,
			CanUndo:     len(state.Rounds) > 0,
			HasRounds:   len(state.Rounds) > 0,
		}
		standings := game.SortedByTotal(state.Players, totals)
		for i, s := range standings {
			input, ok := state.PendingInputs[s.Player.ID]
			if !ok {
				input = game.DefaultInput
			}
			page.Score.Rows = append(page.Score.Rows, ScoreRow{Standing: s, Input: input, Last: i == len(standings)-1})
		}

	case models.ViewHistory:
		page.History = game.History(state, totals)
		page.Scoreboard = template.HTML(Scoreboard(state))

	case models.ViewEdit:
		inputs, err := game.EditInputs(state)
		if err != nil {
			// Renders as history; the session repairs the view on the next action.
			page.View = models.ViewHistory
			page.Subtitle = subtitles[models.ViewHistory]
			page.History = game.History(state, totals)
			page.Scoreboard = template.HTML(Scoreboard(state))
			break
		}
		page.Edit.RoundNumber = *state.EditIndex + 1
		for _, p := range state.Players {
			page.Edit.Rows = append(page.Edit.Rows, EditRow{Player: p, Input: inputs[p.ID]})
		}
	}
	return page
}

// WithConfirm attaches a confirmation prompt. Fields are sorted by name.
func (p Page) WithConfirm(message, action string, fields map[string]string) Page {
	prompt := &ConfirmPrompt{Message: message, Action: action}
	for name, value := range fields {
		if name == "confirm" {
			continue
		}
		prompt.Fields = append(prompt.Fields, Field{Name: name, Value: value})
	}
	sort.Slice(prompt.Fields, func(i, j int) bool { return prompt.Fields[i].Name < prompt.Fields[j].Name })
	p.Confirm = prompt
	return p
}

// Execute renders the page
func Execute(w io.Writer, t *template.Template, page Page) error {
	if err := t.ExecuteTemplate(w, "page.html", page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
