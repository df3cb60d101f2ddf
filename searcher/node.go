package searcher

import (
	"math"

	"github.com/pkg/errors"

	"tictac/game"
)

// nodeID indexes a node in its tree's arena.
type nodeID int

const (
	nilNode nodeID = -1
	rootID  nodeID = 0
)

type node struct {
	state    game.State
	parent   nodeID
	action   game.Action // action played by the parent to reach this node
	mover    game.Player // player who played action
	children []nodeID    // in expansion order
	untried  []game.Action
	visits   int
	rewards  float64
}

// tree stores the nodes of a single search. Parents and children refer to
// each other by index, so growing the arena never invalidates a link.
type tree struct {
	nodes    []node
	cSquared float64
}

func newTree(state game.State, cSquared float64) *tree {
	t := &tree{cSquared: cSquared}
	t.nodes = append(t.nodes, node{
		state:   state,
		parent:  nilNode,
		mover:   state.Player().Opponent(),
		untried: state.LegalActions(),
	})
	return t
}

func (t *tree) node(id nodeID) *node {
	return &t.nodes[id]
}

// selectThenExpand descends from the root through fully expanded nodes and
// expands the first node with untried actions. A terminal node is returned
// as is.
func (t *tree) selectThenExpand() (nodeID, error) {
	id := rootID
	for {
		n := t.node(id)
		if len(n.untried) > 0 {
			return t.expand(id)
		}
		if len(n.children) == 0 { // Terminal node
			return id, nil
		}
		id = t.pickChild(id)
	}
}

// expand adds a child for the first untried action of parent.
func (t *tree) expand(parent nodeID) (nodeID, error) {
	p := t.node(parent)
	action := p.untried[0]
	state, err := p.state.Play(action)
	if err != nil {
		return nilNode, errors.WithMessagef(err, "expanding %s", action)
	}
	p.untried = p.untried[1:]
	mover := p.state.Player()

	child := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		state:   state,
		parent:  parent,
		action:  action,
		mover:   mover,
		untried: state.LegalActions(),
	})
	// p may point into the old backing array after append
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return child, nil
}

// pickChild returns the child with the highest UCB1 score, the first one on
// ties.
func (t *tree) pickChild(parent nodeID) nodeID {
	p := t.node(parent)
	if p.visits == 0 {
		panic("node has children but no visits")
	}

	normalizer := t.cSquared * math.Log(float64(p.visits))

	maxChild := nilNode
	maxScore := math.Inf(-1)
	for _, id := range p.children {
		child := t.node(id)
		score := ucb1(child.rewards, child.visits, normalizer)
		if score == math.Inf(1) {
			return id
		}
		if maxChild == nilNode || score > maxScore {
			maxScore = score
			maxChild = id
		}
	}
	return maxChild
}

// backup records a rollout result on the path from id to the root. Every
// node is credited from the point of view of the player who moved into it.
func (t *tree) backup(id nodeID, result game.Result) {
	reward := rewarder(result)
	for id != nilNode {
		n := t.node(id)
		n.visits++
		n.rewards += reward(n.mover)
		id = n.parent
	}
}

func (t *tree) size() int {
	return len(t.nodes)
}
