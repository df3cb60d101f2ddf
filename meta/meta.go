// meta/meta.go
package meta

// DefaultSimulations is the MCTS budget per move when neither a game nor the
// user picks one.
const DefaultSimulations = 200

// MaxTurns bounds a game loop. No supported game lasts longer than 81 plies.
const MaxTurns = 100

// GoRoutines is the default number of games an arena plays at once.
const GoRoutines = 8

// Games is the default number of games per arena match up.
const Games = 20
