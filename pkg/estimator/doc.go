// Package estimator converts agricultural electricity consumption into an
// estimate of groundwater pumped by electric tube-wells, and reshapes the
// estimate for charting.
//
// The conversion is the hydraulic lift equation solved for volume:
//
//	V(m³) = E(kWh) * eff * (1 - loss) / (0.00273 * depth(m))
//
// scaled to million acre-feet. Whatever part of the recorded total extraction
// the electric estimate does not explain is attributed to diesel pumps.
//
// Pipeline
//
//	VolumeTable(energy, params)           -> []VolumeRecord (electric, diesel)
//	FillMissing(categories, 0)            -> []CategoryRecord (explicit default fill)
//	ShareTable(categories, volumes)       -> []ShareRecord (five categories, sum 100)
//	Estimate(energy, categories, params)  -> *Result (all of the above)
//
// Errors vs. warnings
//
// Precondition violations (depth <= 0, NaN/negative inputs, parameters out of
// range, unfilled category values) fail the whole table and are returned as
// errors wrapping the sentinels in errs.go. Data-consistency conditions are
// returned as []Warning next to the result:
//
//   - NegativeDiesel: the estimate exceeds the recorded total. The negative
//     diesel volume is reported as-is, never clamped.
//   - YearMismatch: a year exists in one table only. Share rows are joined by
//     year; unmatched category rows are skipped.
//   - ZeroRowSum: all five category values are zero; the row's shares are 0.
//
// All functions are pure. Inputs are never modified and every output is
// freshly allocated, so results may be shared between goroutines.
package estimator
