// Package signal implements piecewise-constant, right-continuous time signals.
//
// A Signal is an ordered list of breakpoints (t_0, v_0), ..., (t_{n-1}, v_{n-1}) sealed by an explicit end time.
// The value of the signal at time t is v_i for t in [t_i, t_{i+1}) and v_{n-1} for t in [t_{n-1}, end].
//
// Signals are built by appending points with strictly increasing times and sealed with EndAt. Every algorithm
// in this module treats a sealed signal as immutable and produces new signals instead of mutating its inputs,
// so a sealed signal can be read by any number of cursors at the same time.
package signal
