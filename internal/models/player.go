package models

// Player represents a player on the scoreboard
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
