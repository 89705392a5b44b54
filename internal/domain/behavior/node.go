package behavior

import (
	"context"
	"time"
)

// TickContext carries the two side channels a tick may use (spec.md §4.1)
// plus whatever a leaf Action needs to suspend cooperatively at I/O points.
// StateChanged and ActionCompleted are buffered (capacity 32, spec.md §4.7)
// and owned by the runner; a full channel back-pressures the tick, which is
// the intended behavior — a slow admiral slows down ships.
type TickContext struct {
	Ctx             context.Context
	StateChanged    chan<- ShipSnapshot
	ActionCompleted chan<- Event
	TickDuration    time.Duration
	Sleep           func(time.Duration)
}

// emitState pushes a snapshot without blocking forever if the context is
// cancelled mid-send.
// EmitState is the exported counterpart to EmitCompleted, for leaves
// outside this package that mutate ship state.
func (tc *TickContext) EmitState(s ShipSnapshot) {
	tc.emitState(s)
}

func (tc *TickContext) emitState(s ShipSnapshot) {
	if tc.StateChanged == nil {
		return
	}
	select {
	case tc.StateChanged <- s:
	case <-tc.Ctx.Done():
	}
}

// EmitCompleted lets collaborators outside this package (leaf actions in
// internal/application/shipactions) push a structured event on the same
// channel and with the same cancellation-aware semantics as a tree node.
func (tc *TickContext) EmitCompleted(e Event) {
	tc.emitCompleted(e)
}

func (tc *TickContext) emitCompleted(e Event) {
	if tc.ActionCompleted == nil {
		return
	}
	select {
	case tc.ActionCompleted <- e:
	case <-tc.Ctx.Done():
	}
}

// Node is the tagged-variant behavior tree node. Every concrete node type
// in this file implements it.
type Node interface {
	Tick(tc *TickContext) (Status, error)
	// index returns the node's optional pre-assigned diagnostic index.
	index() *int
	// kind returns a stable tag used by TreeHash; it must not depend on
	// index so that re-indexed trees still hash identically.
	kind() string
}

// ActionFunc is a leaf's domain logic. It may push to tc.StateChanged and
// tc.ActionCompleted and must return a domain-typed error on failure
// (spec.md §4.1: "errors from leaf actions are domain-typed").
type ActionFunc func(tc *TickContext) (Status, error)

// ActionNode wraps a single domain action as a tree leaf.
type ActionNode struct {
	Name   string
	Fn     ActionFunc
	Idx    *int
}

func NewAction(name string, fn ActionFunc) *ActionNode {
	return &ActionNode{Name: name, Fn: fn}
}

func (n *ActionNode) Tick(tc *TickContext) (Status, error) {
	status, err := n.Fn(tc)
	tc.emitCompleted(Event{Kind: EventShipActionCompleted, ActionName: n.Name})
	return status, err
}
func (n *ActionNode) index() *int  { return n.Idx }
func (n *ActionNode) kind() string { return "Action:" + n.Name }

// InvertNode flips Success<->Failure and passes Running through unchanged.
type InvertNode struct {
	Child Node
	Idx   *int
}

func NewInvert(child Node) *InvertNode { return &InvertNode{Child: child} }

func (n *InvertNode) Tick(tc *TickContext) (Status, error) {
	status, err := n.Child.Tick(tc)
	switch status {
	case Success:
		return Failure, err
	case Failure:
		return Success, nil
	default: // Running
		return Running, err
	}
}
func (n *InvertNode) index() *int  { return n.Idx }
func (n *InvertNode) kind() string { return "Invert" }

// SelectNode runs children left to right, returning the first Success or
// Running; fails only if every child fails. Failures from earlier children
// are preserved (spec.md §9 open question) rather than collapsed into a
// single generic message.
type SelectNode struct {
	Children []Node
	Idx      *int
}

func NewSelect(children ...Node) *SelectNode { return &SelectNode{Children: children} }

func (n *SelectNode) Tick(tc *TickContext) (Status, error) {
	var errs []error
	for _, child := range n.Children {
		status, err := child.Tick(tc)
		switch status {
		case Success:
			return Success, nil
		case Running:
			return Running, nil
		default:
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	return Failure, newSelectFailure(errs)
}
func (n *SelectNode) index() *int  { return n.Idx }
func (n *SelectNode) kind() string { return "Select" }

// SequenceNode runs children left to right, stopping at the first Running
// or Failure; succeeds only if every child succeeds.
type SequenceNode struct {
	Children []Node
	Idx      *int
}

func NewSequence(children ...Node) *SequenceNode { return &SequenceNode{Children: children} }

func (n *SequenceNode) Tick(tc *TickContext) (Status, error) {
	for _, child := range n.Children {
		status, err := child.Tick(tc)
		if status != Success {
			return status, err
		}
	}
	return Success, nil
}
func (n *SequenceNode) index() *int  { return n.Idx }
func (n *SequenceNode) kind() string { return "Sequence" }

// WhileNode loops: tick Condition; if it fails, the while-node succeeds
// (loop is over); otherwise tick Body — on Running or Success, sleep
// TickDuration and iterate again; on Body Failure, the while-node fails.
//
// A single Tick call runs exactly one condition+body evaluation (the
// caller re-ticks the tree to continue the loop on the next scheduler
// pass) unless Body returns Running/Success, in which case this node
// sleeps and loops internally — matching spec.md §4.1's "each iteration"
// wording, which describes the while-node as long-lived across ticks of
// its host tree but self-looping once entered.
type WhileNode struct {
	Condition Node
	Body      Node
	Idx       *int
}

func NewWhile(condition, body Node) *WhileNode {
	return &WhileNode{Condition: condition, Body: body}
}

func (n *WhileNode) Tick(tc *TickContext) (Status, error) {
	for {
		condStatus, _ := n.Condition.Tick(tc)
		if condStatus != Success {
			return Success, nil
		}

		bodyStatus, err := n.Body.Tick(tc)
		if bodyStatus == Failure {
			return Failure, err
		}

		sleep := tc.Sleep
		if sleep == nil {
			sleep = time.Sleep
		}
		sleep(tc.TickDuration)

		select {
		case <-tc.Ctx.Done():
			return Running, tc.Ctx.Err()
		default:
		}
	}
}
func (n *WhileNode) index() *int  { return n.Idx }
func (n *WhileNode) kind() string { return "While" }
