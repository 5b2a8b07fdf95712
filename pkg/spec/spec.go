package spec

import (
	"fmt"
	"strings"
)

// Specification is a composable boolean rule over candidates of type T
type Specification[T any] interface {
	// IsSatisfiedBy reports whether the candidate satisfies the rule
	IsSatisfiedBy(candidate T) bool

	// And is satisfied when both this and other are satisfied
	And(other Specification[T]) Specification[T]

	// AndNot is satisfied when this is satisfied and other is not
	AndNot(other Specification[T]) Specification[T]

	// Or is satisfied when this or other is satisfied
	Or(other Specification[T]) Specification[T]

	// OrNot is satisfied when this is satisfied or other is not
	OrNot(other Specification[T]) Specification[T]

	// Not is satisfied when this is not satisfied
	Not() Specification[T]
}

// Satisfier is the evaluation half of Specification. Any Satisfier can be
// lifted into a full Specification with From.
type Satisfier[T any] interface {
	IsSatisfiedBy(candidate T) bool
}

// Predicate is the function wrapped by a leaf specification
type Predicate[T any] func(candidate T) bool

// Op identifies the kind of a specification node
type Op int

const (
	// OpPredicate is a leaf wrapping a Predicate
	OpPredicate Op = iota
	// OpAnd is left && right
	OpAnd
	// OpAndNot is left && !right
	OpAndNot
	// OpOr is left || right
	OpOr
	// OpOrNot is left || !right
	OpOrNot
	// OpNot is !inner
	OpNot
)

// String returns the lower-case operator name
func (o Op) String() string {
	switch o {
	case OpPredicate:
		return "predicate"
	case OpAnd:
		return "and"
	case OpAndNot:
		return "andNot"
	case OpOr:
		return "or"
	case OpOrNot:
		return "orNot"
	case OpNot:
		return "not"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// node is the single concrete Specification. Which fields are set depends on op:
// OpPredicate uses pred (and optionally name), OpNot uses left only, the
// binary operators use left and right.
type node[T any] struct {
	op    Op
	name  string
	pred  Predicate[T]
	left  Specification[T]
	right Specification[T]
}

// New creates a leaf specification from a predicate
func New[T any](pred Predicate[T]) Specification[T] {
	return Named[T]("", pred)
}

// Named creates a leaf specification carrying a name used by String
func Named[T any](name string, pred Predicate[T]) Specification[T] {
	if pred == nil {
		panic("spec: nil predicate")
	}
	return &node[T]{op: OpPredicate, name: name, pred: pred}
}

// From lifts a Satisfier into a Specification. A value that already is a
// Specification is returned unchanged.
func From[T any](s Satisfier[T]) Specification[T] {
	if s == nil {
		panic("spec: nil satisfier")
	}
	if full, ok := s.(Specification[T]); ok {
		return full
	}
	return &node[T]{op: OpPredicate, name: fmt.Sprintf("%T", s), pred: s.IsSatisfiedBy}
}

// IsSatisfiedBy evaluates the tree rooted at n against candidate
func (n *node[T]) IsSatisfiedBy(candidate T) bool {
	switch n.op {
	case OpPredicate:
		return n.pred(candidate)
	case OpAnd:
		return n.left.IsSatisfiedBy(candidate) && n.right.IsSatisfiedBy(candidate)
	case OpAndNot:
		return n.left.IsSatisfiedBy(candidate) && !n.right.IsSatisfiedBy(candidate)
	case OpOr:
		return n.left.IsSatisfiedBy(candidate) || n.right.IsSatisfiedBy(candidate)
	case OpOrNot:
		return n.left.IsSatisfiedBy(candidate) || !n.right.IsSatisfiedBy(candidate)
	case OpNot:
		return !n.left.IsSatisfiedBy(candidate)
	default:
		panic(fmt.Sprintf("spec: unknown operator %s", n.op))
	}
}

func (n *node[T]) And(other Specification[T]) Specification[T] {
	return binary[T](OpAnd, n, other)
}

func (n *node[T]) AndNot(other Specification[T]) Specification[T] {
	return binary[T](OpAndNot, n, other)
}

func (n *node[T]) Or(other Specification[T]) Specification[T] {
	return binary[T](OpOr, n, other)
}

func (n *node[T]) OrNot(other Specification[T]) Specification[T] {
	return binary[T](OpOrNot, n, other)
}

func (n *node[T]) Not() Specification[T] {
	return &node[T]{op: OpNot, left: n}
}

// Op returns the node's operator
func (n *node[T]) Op() Op {
	return n.op
}

// String renders the tree, e.g. "and(not(is-new), is-high-price)"
func (n *node[T]) String() string {
	var b strings.Builder
	n.describe(&b)
	return b.String()
}

func (n *node[T]) describe(b *strings.Builder) {
	switch n.op {
	case OpPredicate:
		if n.name == "" {
			b.WriteString("predicate")
			return
		}
		b.WriteString(n.name)
	case OpNot:
		b.WriteString("not(")
		describeChild(b, n.left)
		b.WriteString(")")
	default:
		b.WriteString(n.op.String())
		b.WriteString("(")
		describeChild(b, n.left)
		b.WriteString(", ")
		describeChild(b, n.right)
		b.WriteString(")")
	}
}

func describeChild[T any](b *strings.Builder, s Specification[T]) {
	switch child := s.(type) {
	case *node[T]:
		child.describe(b)
	case fmt.Stringer:
		b.WriteString(child.String())
	default:
		fmt.Fprintf(b, "%T", s)
	}
}

func binary[T any](op Op, left, right Specification[T]) Specification[T] {
	if right == nil {
		panic(fmt.Sprintf("spec: nil operand for %s", op))
	}
	return &node[T]{op: op, left: left, right: right}
}

// AllOf is satisfied when every spec is satisfied, evaluated left to right.
// With no specs it is always satisfied.
func AllOf[T any](specs ...Specification[T]) Specification[T] {
	if len(specs) == 0 {
		return Named[T]("true", func(T) bool { return true })
	}
	acc := specs[0]
	for _, s := range specs[1:] {
		acc = acc.And(s)
	}
	return acc
}

// AnyOf is satisfied when at least one spec is satisfied, evaluated left to
// right. With no specs it is never satisfied.
func AnyOf[T any](specs ...Specification[T]) Specification[T] {
	if len(specs) == 0 {
		return Named[T]("false", func(T) bool { return false })
	}
	acc := specs[0]
	for _, s := range specs[1:] {
		acc = acc.Or(s)
	}
	return acc
}
