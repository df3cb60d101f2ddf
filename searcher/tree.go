package searcher

import (
	"fmt"
	"strconv"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"

	"tictac/experiments/metrics"
	"tictac/game"
	"tictac/utils"
)

// Tree is the read-only result of one MCTS search.
type Tree struct {
	tree    *tree
	Metrics metrics.SearchMetric
}

// ChildStats are the statistics of one root child. Rewards are counted from
// the point of view of the player to move at the root.
type ChildStats struct {
	Action  game.Action
	Visits  int
	Rewards float64
}

// WinRate is the mean reward of the child, 0 when unvisited.
func (c ChildStats) WinRate() float64 {
	if c.Visits == 0 {
		return 0
	}
	return c.Rewards / float64(c.Visits)
}

// Children lists the root children in expansion order.
func (t *Tree) Children() []ChildStats {
	root := t.tree.node(rootID)
	stats := make([]ChildStats, 0, len(root.children))
	for _, id := range root.children {
		child := t.tree.node(id)
		stats = append(stats, ChildStats{
			Action:  child.action,
			Visits:  child.visits,
			Rewards: child.rewards,
		})
	}
	return stats
}

func (t *Tree) RootVisits() int {
	return t.tree.node(rootID).visits
}

func (t *Tree) Size() int {
	return t.tree.size()
}

// BestAction returns the most visited root child, the first expanded one on
// ties. Without any expanded child it falls back to the first legal action.
func (t *Tree) BestAction() game.Action {
	children := t.Children()
	best := utils.ArgMax(children, func(c ChildStats) int { return c.Visits })
	if best < 0 {
		return t.tree.node(rootID).state.LegalActions()[0]
	}
	return children[best].Action
}

// Dot renders the tree down to maxDepth as a Graphviz digraph. Nodes are
// labelled with their visits and win rate.
func (t *Tree) Dot(maxDepth int) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("mcts"); err != nil {
		return "", errors.Wrap(err, "naming graph")
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.Wrap(err, "directing graph")
	}

	type entry struct {
		id    nodeID
		depth int
	}
	queue := []entry{{rootID, 0}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		n := t.tree.node(e.id)

		name := dotName(e.id)
		label := fmt.Sprintf("%d/%d", int(n.rewards), n.visits)
		if n.parent == nilNode {
			label = fmt.Sprintf("root %d", n.visits)
		}
		attrs := map[string]string{"label": strconv.Quote(label)}
		if err := g.AddNode("mcts", name, attrs); err != nil {
			return "", errors.Wrapf(err, "adding node %d", e.id)
		}
		if n.parent != nilNode {
			edge := map[string]string{"label": strconv.Quote(n.action.String())}
			if err := g.AddEdge(dotName(n.parent), name, true, edge); err != nil {
				return "", errors.Wrapf(err, "adding edge to node %d", e.id)
			}
		}

		if e.depth < maxDepth {
			for _, child := range n.children {
				queue = append(queue, entry{child, e.depth + 1})
			}
		}
	}
	return g.String(), nil
}

func dotName(id nodeID) string {
	return "n" + strconv.Itoa(int(id))
}
