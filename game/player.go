package game

// Player identifies one side of a two-player game.
type Player int

const (
	PlayerOne Player = iota + 1
	PlayerTwo
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Mark is the conventional board symbol: X moves first, O second.
func (p Player) Mark() string {
	switch p {
	case PlayerOne:
		return "X"
	case PlayerTwo:
		return "O"
	default:
		return "?"
	}
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "player one"
	case PlayerTwo:
		return "player two"
	default:
		return "no player"
	}
}
