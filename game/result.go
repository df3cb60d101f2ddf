package game

// Result is the outcome of a terminal state.
type Result int

const (
	Draw Result = iota
	PlayerOneWins
	PlayerTwoWins
)

// Win returns the result where player wins.
func Win(player Player) Result {
	if player == PlayerOne {
		return PlayerOneWins
	}
	return PlayerTwoWins
}

// Winner returns the winning player, or false for a draw.
func (r Result) Winner() (Player, bool) {
	switch r {
	case PlayerOneWins:
		return PlayerOne, true
	case PlayerTwoWins:
		return PlayerTwo, true
	default:
		return 0, false
	}
}

// Favors reports whether the result is a win for player.
func (r Result) Favors(player Player) bool {
	winner, ok := r.Winner()
	return ok && winner == player
}

// String returns a score line, as in "1-0".
func (r Result) String() string {
	switch r {
	case PlayerOneWins:
		return "1-0"
	case PlayerTwoWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}
