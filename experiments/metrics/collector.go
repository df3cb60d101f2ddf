package metrics

import (
	"time"
)

// SearchMetric summarizes one call to a search algorithm.
type SearchMetric struct {
	Algorithm    string
	Duration     time.Duration
	Episodes     int // MCTS simulations
	Rollouts     int
	RolloutPlies int
	Nodes        int // tree nodes (MCTS) or positions visited (Minimax)
}

// MeanRolloutPlies returns the average length of a rollout.
func (m SearchMetric) MeanRolloutPlies() float64 {
	if m.Rollouts == 0 {
		return 0
	}
	return float64(m.RolloutPlies) / float64(m.Rollouts)
}

type MoveMetric struct {
	Step   int
	Player int // 1 or 2
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Result         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates statistics during a single search. A search owns its
// collector, so implementations need no synchronization.
type Collector interface {
	Start(algorithm string)
	AddEpisode()
	AddRollout(plies int)
	AddNode()
	Complete() SearchMetric
}

type collector struct {
	metric    SearchMetric
	startTime time.Time
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(algorithm string) {
	c.metric = SearchMetric{Algorithm: algorithm}
	c.startTime = time.Now()
}

func (c *collector) AddEpisode() {
	c.metric.Episodes++
}

func (c *collector) AddRollout(plies int) {
	c.metric.Rollouts++
	c.metric.RolloutPlies += plies
}

func (c *collector) AddNode() {
	c.metric.Nodes++
}

func (c *collector) Complete() SearchMetric {
	c.metric.Duration = time.Since(c.startTime)
	return c.metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return dummyCollector{}
}

func (dummyCollector) Start(algorithm string) {}
func (dummyCollector) AddEpisode()            {}
func (dummyCollector) AddRollout(plies int)   {}
func (dummyCollector) AddNode()               {}
func (dummyCollector) Complete() SearchMetric { return SearchMetric{} }
