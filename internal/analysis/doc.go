// Package analysis extracts orbital characteristics from recorded traces.
//
//   - [EstimatePeriod]: dominant period of a uniformly sampled coordinate
//   - [PowerSpectrum]: magnitude spectrum used to find it
package analysis
