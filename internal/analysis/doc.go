// Package analysis inspects recorded runs.
//
//   - [Series]: one column of the per-tick samples
//   - [PowerSpectrum] and [DominantFrequency]: bounce periodicity via FFT
//   - [PhasePortrait]: two columns against each other, e.g. x vs vx
//
// # Bounce Period
//
// A body bouncing between two walls traces a periodic x; its dominant
// frequency is in cycles per tick, so the period in frames is 1/freq:
//
//	xs, _ := analysis.Series(samples, "x")
//	freq, _ := analysis.DominantFrequency(xs)
package analysis
