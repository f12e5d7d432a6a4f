// Package decorate provides the combinators that build property decorators
// out of descriptor transformations.
//
// A Decorator consumes a member's types.Descriptor and returns its
// replacement. Three combinators do the real work:
//
//   - Normalize and EnsureAccessors turn literal values and lazy initializers
//     into a memoizing getter/setter pair backed by the owner's Slots.
//   - ValueTransformer wraps the initializer, getter, and setter of a member
//     with a pure Mapping used identically for reads and writes.
//   - ValueValidator gates writes behind a Predicate, dropping rejected
//     values in loose mode and failing with types.InvalidValueError in
//     strict mode.
//
// Decorators stack with Apply. Decorators are listed in declaration order,
// farthest from the member first; the nearest one is applied first and ends
// up innermost. Reads through a stack of mappings a (nearest), b, c (farthest)
// yield c(b(a(raw))), and writes reach storage as a(b(c(v))).
//
//	multiplier := decorate.ValueTransformer(func(m int) decorate.Mapping {
//		return func(_ types.Owner, v any) (any, error) { return v.(int) * m, nil }
//	})
//	d, err := decorate.Apply(types.Literal("answer", 21), multiplier(2))
package decorate
