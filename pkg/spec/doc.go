// Package spec implements composable boolean specifications over a candidate type.
//
// A specification answers a single question about a candidate: does it
// satisfy the rule? Leaf specifications wrap a predicate function, composite
// specifications combine other specifications with boolean operators. Trees
// are immutable once built and can be shared between larger expressions.
//
// Example usage:
//
//	isNew := spec.New(func(p Product) bool { return p.IsNew })
//	isHighPrice := spec.New(func(p Product) bool { return p.Price >= 200_000 })
//
//	originalAndHighPrice := isNew.Not().And(isHighPrice)
//
//	matched := spec.Filter(products, originalAndHighPrice)
//
// Supported operators:
//   - And, AndNot: the right operand is skipped when the left one is false
//   - Or, OrNot: the right operand is skipped when the left one is true
//   - Not
//
// Evaluation never recovers from a panicking predicate. Callers that want to
// skip a malformed candidate instead of crashing use Check.
package spec
