package behavior_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcfleet/spacetrader-agent/internal/domain/behavior"
)

func newTickContext() *behavior.TickContext {
	return &behavior.TickContext{Ctx: context.Background()}
}

func succeedAction() *behavior.ActionNode {
	return behavior.NewAction("succeed", func(tc *behavior.TickContext) (behavior.Status, error) {
		return behavior.Success, nil
	})
}

func failAction(err error) *behavior.ActionNode {
	return behavior.NewAction("fail", func(tc *behavior.TickContext) (behavior.Status, error) {
		return behavior.Failure, err
	})
}

func runningAction() *behavior.ActionNode {
	return behavior.NewAction("running", func(tc *behavior.TickContext) (behavior.Status, error) {
		return behavior.Running, nil
	})
}

func TestInvertNode_FlipsSuccessAndFailure(t *testing.T) {
	tc := newTickContext()

	status, err := behavior.NewInvert(succeedAction()).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Failure, status)

	status, err = behavior.NewInvert(failAction(errors.New("boom"))).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Success, status)
}

func TestInvertNode_PassesRunningThrough(t *testing.T) {
	tc := newTickContext()
	status, err := behavior.NewInvert(runningAction()).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Running, status)
}

func TestSelectNode_ReturnsFirstSuccess(t *testing.T) {
	tc := newTickContext()
	called := false
	never := behavior.NewAction("never", func(tc *behavior.TickContext) (behavior.Status, error) {
		called = true
		return behavior.Success, nil
	})

	status, err := behavior.NewSelect(succeedAction(), never).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Success, status)
	assert.False(t, called, "select must stop at the first success")
}

func TestSelectNode_FailsOnlyWhenAllChildrenFail(t *testing.T) {
	tc := newTickContext()
	err1 := errors.New("first failure")
	err2 := errors.New("second failure")

	status, err := behavior.NewSelect(failAction(err1), failAction(err2)).Tick(tc)
	assert.Equal(t, behavior.Failure, status)
	require.Error(t, err)
	assert.Contains(t, err.Error(), err1.Error())
	assert.Contains(t, err.Error(), err2.Error())
}

func TestSelectNode_StopsAtRunningChild(t *testing.T) {
	tc := newTickContext()
	status, err := behavior.NewSelect(failAction(errors.New("x")), runningAction(), succeedAction()).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Running, status)
}

func TestSequenceNode_SucceedsOnlyWhenEveryChildSucceeds(t *testing.T) {
	tc := newTickContext()
	status, err := behavior.NewSequence(succeedAction(), succeedAction()).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Success, status)
}

func TestSequenceNode_StopsAtFirstNonSuccess(t *testing.T) {
	tc := newTickContext()
	called := false
	never := behavior.NewAction("never", func(tc *behavior.TickContext) (behavior.Status, error) {
		called = true
		return behavior.Success, nil
	})

	status, err := behavior.NewSequence(succeedAction(), failAction(errors.New("boom")), never).Tick(tc)
	require.Error(t, err)
	assert.Equal(t, behavior.Failure, status)
	assert.False(t, called)
}

func TestWhileNode_ExitsSuccessfullyWhenConditionFails(t *testing.T) {
	tc := newTickContext()
	bodyCalled := false
	body := behavior.NewAction("body", func(tc *behavior.TickContext) (behavior.Status, error) {
		bodyCalled = true
		return behavior.Success, nil
	})

	status, err := behavior.NewWhile(failAction(nil), body).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Success, status)
	assert.False(t, bodyCalled)
}

func TestWhileNode_FailsWhenBodyFails(t *testing.T) {
	tc := newTickContext()
	bodyErr := errors.New("body exploded")
	status, err := behavior.NewWhile(succeedAction(), failAction(bodyErr)).Tick(tc)
	require.Error(t, err)
	assert.ErrorIs(t, err, bodyErr)
	assert.Equal(t, behavior.Failure, status)
}

func TestWhileNode_SleepsAndLoopsUntilConditionFails(t *testing.T) {
	iterations := 0
	condition := behavior.NewAction("cond", func(tc *behavior.TickContext) (behavior.Status, error) {
		iterations++
		if iterations > 3 {
			return behavior.Failure, nil
		}
		return behavior.Success, nil
	})
	body := succeedAction()

	slept := 0
	tc := newTickContext()
	tc.Sleep = func(d time.Duration) { slept++ }

	status, err := behavior.NewWhile(condition, body).Tick(tc)
	require.NoError(t, err)
	assert.Equal(t, behavior.Success, status)
	assert.Equal(t, 4, iterations)
	assert.Equal(t, 3, slept)
}
