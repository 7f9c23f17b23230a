// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package cliout

import "github.com/fatih/color"

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
)

// ColorReclusterOutcome colors a recluster decision: "accepted" in green,
// "rejected" in yellow, anything else (e.g. "skipped") left uncolored.
func ColorReclusterOutcome(outcome string) string {
	switch outcome {
	case "accepted":
		return colorGreen.Sprint(outcome)
	case "rejected":
		return colorYellow.Sprint(outcome)
	default:
		return outcome
	}
}

// ColorWorkerStatus colors a worker exit status: "ok" green, "missing"
// yellow (exit code 127, a warning), "failed" red.
func ColorWorkerStatus(status string) string {
	switch status {
	case "ok":
		return colorGreen.Sprint(status)
	case "missing":
		return colorYellow.Sprint(status)
	case "failed":
		return colorRed.Sprint(status)
	default:
		return status
	}
}

// ColorSimilarity colors a similarity score against the assignment
// threshold: at or above it in green, below in cyan. Both are valid
// outcomes; the color is informational, not a warning.
func ColorSimilarity(score float64, threshold float64) string {
	s := color.New(color.Reset)
	if score >= threshold {
		s = colorGreen
	} else {
		s = colorCyan
	}
	return s.Sprintf("%.4f", score)
}

// ColorSingletonFraction colors a cluster index's singleton fraction
// against the reclustering trigger's validity threshold: at or above it
// (too fragmented) in yellow, below in green.
func ColorSingletonFraction(fraction float64, threshold float64) string {
	if fraction >= threshold {
		return colorYellow.Sprintf("%.2f", fraction)
	}
	return colorGreen.Sprintf("%.2f", fraction)
}

// Bold renders s in bold, used for section headers in CLI output.
func Bold(s string) string {
	return colorBold.Sprint(s)
}
