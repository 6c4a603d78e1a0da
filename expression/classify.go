// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package expression

import "math"

// DefaultThreshold is the z-score cutoff used when none is given.
const DefaultThreshold = 2.0

// TissueScore pairs a tissue name with a gene's z-score in that
// tissue.
type TissueScore struct {
	Tissue string  `json:"tissue"`
	ZScore float64 `json:"z"`
}

// Result lists the tissues in which one gene is notably up- or
// down-regulated, in tissue column order.
type Result struct {
	ID    string        `json:"id"`
	Label string        `json:"label"`
	Up    []TissueScore `json:"up,omitempty"`
	Down  []TissueScore `json:"down,omitempty"`
}

// Classifier applies an inclusive ±threshold to z-scores.
type Classifier struct {
	threshold float64
}

// NewClassifier returns a Classifier using |threshold|, or
// DefaultThreshold if threshold is zero.
func NewClassifier(threshold float64) Classifier {
	threshold = math.Abs(threshold)
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return Classifier{threshold: threshold}
}

// Threshold returns the (non-negative) cutoff in use.
func (c Classifier) Threshold() float64 { return c.threshold }

// Classify builds a Result from z-scores aligned with tissues. NaN
// scores fail both comparisons and land in neither list.
func (c Classifier) Classify(id, label string, tissues []string, z []float64) *Result {
	res := &Result{ID: id, Label: label}
	for i, score := range z {
		if score >= c.threshold {
			res.Up = append(res.Up, TissueScore{Tissue: tissues[i], ZScore: score})
		} else if score <= -c.threshold {
			res.Down = append(res.Down, TissueScore{Tissue: tissues[i], ZScore: score})
		}
	}
	return res
}
