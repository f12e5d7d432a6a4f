// Package decorators is a library of ready-made property decorators built
// only from the combinators in package decorate, and a Registry that builds
// them by name for configuration-driven hosts such as the propdeco CLI.
//
// Transformers (Multiply, Add, Clamp, Convert, TrimSpace, Lower, Title) map
// reads, writes, and initial values alike. Validators (MultipleOf, InRange,
// NonEmpty, OneOf) gate writes and initial values in loose or strict mode.
// Logged records every read and write on a zap logger.
package decorators
