package game

import "time"

const (
	// MinPlayers is the minimum number of players on the scoreboard once a game has started
	MinPlayers = 2

	// MaxPlayers is the maximum number of players on the scoreboard
	MaxPlayers = 8

	// WinThreshold is the total that ends the game when any player reaches it
	WinThreshold = 200

	// DefaultInput is the pending input every player starts a round with
	DefaultInput = "0"

	// SubmitCooldown is how long a second round submission is refused after the first
	SubmitCooldown = 650 * time.Millisecond

	// TimestampLayout formats round timestamps (UTC, millisecond precision)
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)
