// Package algorithms implements the signal level evaluation of the monitoring operators: pointwise combinators,
// the unbounded until and since fixpoints, and the temporal operators built on the sliding window.
//
// Every function is pure: it reads sealed input signals and returns a fresh one, so the same input can be shared
// between concurrent evaluations.
package algorithms
