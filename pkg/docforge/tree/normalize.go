package tree

import "reflect"

// Normalize coalesces adjacent plain runs with identical style inside every
// paragraph of the tree. It returns the number of runs removed.
func Normalize(root Node) int {
	removed := 0
	Walk(root, func(n Node) bool {
		if p, ok := n.(*Paragraph); ok {
			removed += mergeConsecutiveRuns(p)
			return false
		}
		return true
	})
	return removed
}

// runsEquivalent checks if two runs can be merged without changing how they
// render.
func runsEquivalent(a, b *Run) bool {
	if !a.IsPlain() || !b.IsPlain() {
		return false
	}
	if len(a.overrides) > 0 || len(b.overrides) > 0 {
		return false
	}
	return reflect.DeepEqual(a.spec, b.spec)
}

func mergeConsecutiveRuns(p *Paragraph) int {
	if len(p.children) < 2 {
		return 0
	}

	var merged []Node
	removed := 0
	var current *Run

	for _, child := range p.children {
		run, isRun := child.(*Run)
		if !isRun {
			current = nil
			merged = append(merged, child)
			continue
		}
		if current != nil && runsEquivalent(current, run) {
			current.Text += run.Text
			run.parent = nil
			removed++
			continue
		}
		current = run
		merged = append(merged, child)
	}

	p.children = merged
	return removed
}
