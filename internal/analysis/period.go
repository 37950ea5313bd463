package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooShort = errors.New("analysis: need at least 4 samples and a positive interval")
	ErrNoPeriod = errors.New("analysis: signal has no dominant frequency")
)

// PowerSpectrum returns |X_k| for k in [0, n/2] of the mean-removed signal.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// EstimatePeriod returns the period, in the units of interval, of the
// strongest non-constant component of samples. The peak bin is refined by
// parabolic interpolation. Periods longer than the record cannot be resolved.
func EstimatePeriod(samples []float64, interval float64) (float64, error) {
	if len(samples) < 4 || interval <= 0 {
		return 0, ErrTooShort
	}

	ps := PowerSpectrum(samples)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, ErrNoPeriod
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if den := a - 2*b + c; den != 0 {
			bin += 0.5 * (a - c) / den
		}
	}

	return float64(len(samples)) * interval / bin, nil
}
