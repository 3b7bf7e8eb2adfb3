// Package window implements the sliding window that evaluates bounded temporal operators over a signal.
//
// For an interval [a, b] and a selective aggregator op, the window computes
//   - future: r(t) = op { s(τ) : τ in [t+a, t+b] }, defined on [start, end-b]
//   - past:   r(t) = op { s(τ) : τ in [t-b, t-a] }, defined on [start+b, end]
//
// The computation is a single left to right scan adapted from Lemire's streaming maximum: the window keeps a
// queue of candidate segments whose values are strictly decreasing in dominance, so its front is always the
// aggregate of the segments currently inside the horizon. Segments enter the horizon when their start is reached
// by the right edge and leave it when their end is passed by the left edge, which makes every output breakpoint
// an exact difference of input breakpoints and the bounds. The scan is amortized linear in the number of input
// segments.
//
// Signals are assumed complete: a window that cannot fit the signal anywhere yields an empty signal.
package window
