package experiments

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"tictac/experiments/metrics"
)

// Score tallies a match up from the point of view of its first agent.
type Score struct {
	Wins   int
	Draws  int
	Losses int
}

func (s Score) Games() int {
	return s.Wins + s.Draws + s.Losses
}

// Points counts a win as 1 and a draw as 1/2.
func (s Score) Points() float64 {
	return float64(s.Wins) + float64(s.Draws)/2
}

// Elo returns the likely Elo difference of the first agent along with its
// p < 0.05 lower and upper bounds.
func (s Score) Elo() (lower, elo, upper float64) {
	n := float64(s.Games())
	if n == 0 {
		return 0, 0, 0
	}

	w := float64(s.Wins) / n
	d := float64(s.Draws) / n
	l := float64(s.Losses) / n

	// empirical mean of random variable
	mu := w + d/2

	// standard deviation of the random variable
	sigma := math.Sqrt(w*math.Pow(1-mu, 2)+d*math.Pow(0.5-mu, 2)+l*math.Pow(0-mu, 2)) / math.Sqrt(n)

	muMin := mu + distuv.UnitNormal.Quantile(0.025)*sigma
	muMax := mu + distuv.UnitNormal.Quantile(0.975)*sigma

	return scoreToElo(muMin), scoreToElo(mu), scoreToElo(muMax)
}

// scoreToElo converts an expected score to an Elo difference. Perfect scores
// map to infinities.
func scoreToElo(x float64) float64 {
	switch {
	case x <= 0:
		return math.Inf(-1)
	case x >= 1:
		return math.Inf(1)
	default:
		return -400 * math.Log10(1/x-1)
	}
}

// ThinkingTime is the mean and standard deviation of the search time per
// move of one agent.
func ThinkingTime(moves []metrics.MoveMetric) (mean, std time.Duration) {
	if len(moves) == 0 {
		return 0, 0
	}
	durations := make([]float64, len(moves))
	for i, m := range moves {
		durations[i] = float64(m.Duration)
	}
	if len(durations) == 1 {
		return time.Duration(durations[0]), 0
	}
	mu, sigma := stat.MeanStdDev(durations, nil)
	return time.Duration(mu), time.Duration(sigma)
}
