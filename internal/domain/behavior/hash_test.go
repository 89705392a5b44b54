package behavior_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
)

func buildSampleTree() behavior.Node {
	return behavior.NewSequence(
		behavior.NewSelect(succeedAction(), failAction(nil)),
		behavior.NewInvert(runningAction()),
	)
}

func TestTreeHash_IdenticalShapesHashEqual(t *testing.T) {
	assert.Equal(t, behavior.TreeHash(buildSampleTree()), behavior.TreeHash(buildSampleTree()))
}

func TestTreeHash_IgnoresAssignedIndex(t *testing.T) {
	idx := 7
	a := &behavior.ActionNode{Name: "leaf", Fn: func(tc *behavior.TickContext) (behavior.Status, error) {
		return behavior.Success, nil
	}}
	b := &behavior.ActionNode{Name: "leaf", Idx: &idx, Fn: a.Fn}

	assert.Equal(t, behavior.TreeHash(a), behavior.TreeHash(b))
}

func TestTreeHash_DifferentShapeHashesDiffer(t *testing.T) {
	tree1 := behavior.NewSequence(succeedAction(), failAction(nil))
	tree2 := behavior.NewSelect(succeedAction(), failAction(nil))

	assert.NotEqual(t, behavior.TreeHash(tree1), behavior.TreeHash(tree2))
}

func TestTreeHash_DifferentLeafNamesHashDiffer(t *testing.T) {
	a := behavior.NewAction("alpha", nil)
	b := behavior.NewAction("beta", nil)

	assert.NotEqual(t, behavior.TreeHash(a), behavior.TreeHash(b))
}
