package models

// View represents the screen the scorekeeper is currently showing
type View string

const (
	ViewSetup   View = "setup"
	ViewScore   View = "score"
	ViewHistory View = "history"
	ViewEdit    View = "edit"
)

// Valid reports whether v is one of the known views
func (v View) Valid() bool {
	switch v {
	case ViewSetup, ViewScore, ViewHistory, ViewEdit:
		return true
	default:
		return false
	}
}
