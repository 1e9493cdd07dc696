// Package pinty attaches physical units to numeric values, tracks
// dimensional consistency through arithmetic, and converts between
// compatible units, including affine scales such as Celsius and
// logarithmic scales such as decibels.
//
// # Architecture
//
// Pinty is built from small layered packages:
//
//	┌─────────────────────────────────────┐
//	│            quantity                 │  Arithmetic contract:
//	│  (Add, Mul, Pow, Compare, To)       │  magnitude + units
//	└─────────────────────────────────────┘
//	           ↓ converts via
//	┌─────────────────────────────────────┐
//	│            registry                 │  Definition tables,
//	│  (Resolve, Dimensionality, Convert) │  contexts, memoization
//	└─────────────────────────────────────┘
//	           ↓ operates on
//	┌─────────────────────────────────────┐
//	│              unit                   │  Ratio, Container,
//	│     (symbolic exponent algebra)     │  Dimensionality
//	└─────────────────────────────────────┘
//
// The definition package supplies the structured records a registry is
// populated from, including an embedded default pack covering SI and
// common non-SI units.
//
// # Quick Start
//
// Build a registry and convert:
//
//	reg, err := registry.NewDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	km, _ := reg.ParseUnits("kilometer")
//	mi, _ := reg.ParseUnits("mile")
//	value, err := reg.Convert(42.0, km, mi)
//
// Quantities carry units through arithmetic:
//
//	distance, _ := quantity.Parse(reg, 120.0, "km")
//	duration, _ := quantity.Parse(reg, 2.0, "hour")
//	speed, _ := distance.Div(duration)
//	inMps, _ := speed.ToExpr("m/s")
//
// Adding meters to seconds fails with a DimensionalityError; ambiguous
// operations on offset units (multiplying two Celsius temperatures) and
// on logarithmic units (squaring decibels) fail with their own error
// types rather than silently guessing a meaning.
//
// # Contexts
//
// Contexts bridge otherwise-incompatible dimensionalities for the
// duration of an operation, e.g. the spectroscopy bridge between
// frequency and energy via E = h·f. Context stacks are operation-local
// values passed per conversion call, so concurrent conversions never
// observe each other's bridging rules.
//
// # Concurrency
//
// A registry is read-mostly shared state: definitions are registered up
// front, then resolution and conversion run concurrently under a read
// lock with memoized reductions. Registration is atomic; redefinition
// is rejected, so cached reductions can never go stale.
package pinty
