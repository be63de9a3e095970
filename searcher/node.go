package searcher

import (
	"math"

	"uno/game"
)

// Nodes live in one slice and refer to each other by index. Node 0 is the root.
type node struct {
	action   game.Action // Action that led here from the parent
	parent   int
	children []int
	visits   int
	rewards  float64
}

type tree struct {
	nodes []node
}

// visit is a node on the path of one simulation and the step count at which its action was taken.
type visit struct {
	node int
	step int
}

func newTree() *tree {
	return &tree{nodes: []node{{parent: -1}}}
}

func (t *tree) add(parent int, action game.Action) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{action: action, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

func (t *tree) child(id int, action game.Action) (int, bool) {
	for _, c := range t.nodes[id].children {
		if t.nodes[c].action == action {
			return c, true
		}
	}
	return 0, false
}

func (t *tree) mean(id int) float64 {
	n := t.nodes[id]
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

// selectOrExpand adds a child for an untried legal action, chosen by pick, or
// otherwise selects among the children legal in this determinization by UCB1.
func (t *tree) selectOrExpand(id int, legal []game.Action, c float64, pick func(n int) int) (int, bool) {
	var untried []game.Action
	var available []int
	for _, action := range legal {
		if child, ok := t.child(id, action); ok {
			available = append(available, child)
		} else {
			untried = append(untried, action)
		}
	}

	if len(untried) > 0 {
		return t.add(id, untried[pick(len(untried))]), true
	}
	return t.selectUCB(id, available, c), false
}

func (t *tree) selectUCB(id int, children []int, c float64) int {
	policy := newUCB(c, t.nodes[id].visits)
	best, bestScore := children[0], math.Inf(-1)
	for _, child := range children {
		n := t.nodes[child]
		if score := policy.evaluate(n.rewards, n.visits); score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// backup credits every node on the path, discounting by the steps played after its action.
func (t *tree) backup(path []visit, steps int, reward, gamma float64) {
	for _, v := range path {
		n := &t.nodes[v.node]
		n.visits++
		n.rewards += reward * math.Pow(gamma, float64(steps-v.step))
	}
}

// best is the most visited child of id; ties go to the higher mean, then to the earlier child.
func (t *tree) best(id int) (int, bool) {
	best := -1
	for _, c := range t.nodes[id].children {
		if best < 0 {
			best = c
			continue
		}
		n, b := t.nodes[c], t.nodes[best]
		if n.visits > b.visits || (n.visits == b.visits && t.mean(c) > t.mean(best)) {
			best = c
		}
	}
	return best, best >= 0
}

func (t *tree) policy(id int) []Stat {
	children := t.nodes[id].children
	stats := make([]Stat, 0, len(children))
	for _, c := range children {
		stats = append(stats, Stat{
			Action: t.nodes[c].action,
			Visits: t.nodes[c].visits,
			Mean:   t.mean(c),
		})
	}
	return stats
}
