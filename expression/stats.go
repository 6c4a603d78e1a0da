// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary holds population statistics for one gene's values: the row
// is treated as the whole population, so the variance divisor is n,
// not n-1.
type Summary struct {
	Mean     float64
	Variance float64
	StdDev   float64
}

// Describe computes the population mean, variance and standard
// deviation of values.
func Describe(values []float64) Summary {
	mean, variance := stat.PopMeanVariance(values, nil)
	return Summary{Mean: mean, Variance: variance, StdDev: math.Sqrt(variance)}
}

// ZScores returns (v - mean) / sd for each value, in order. When sd is
// zero the scores are NaN (or ±Inf); no special case is made.
func (s Summary) ZScores(values []float64) []float64 {
	z := make([]float64, len(values))
	for i, v := range values {
		z[i] = stat.StdScore(v, s.Mean, s.StdDev)
	}
	return z
}
