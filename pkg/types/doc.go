// Package types defines the Descriptor data model shared by every combinator,
// the Owner and Slots types that hold per-owner memoized member values, and
// the sentinel and typed errors raised when a member rejects a write.
//
// A Descriptor is either data kind (a literal Value or a lazy Initializer) or
// accessor kind (a Get and/or Set pair). Combinators in package decorate take
// a Descriptor and return its replacement; the owner is never stored in the
// descriptor and is passed explicitly to every callback.
package types
