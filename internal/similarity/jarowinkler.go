// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

// Package similarity provides the pure, thread-safe scoring functions the
// rest of rrcluster builds on: Jaro-Winkler similarity, optional
// import-prefix masking, and a Levenshtein wrapper kept for reference.
package similarity

// scalingFactor is the Winkler prefix-bonus weight.
const scalingFactor = 0.1

// maxPrefixLength caps how much of a common prefix earns the Winkler bonus.
const maxPrefixLength = 4

// jaroShortCircuit is the threshold below which the Winkler adjustment is
// skipped and the raw Jaro score is returned unadjusted. This matches the
// widely cited Python formulation and must be preserved verbatim.
const jaroShortCircuit = 0.7

// JaroWinkler computes the Jaro-Winkler similarity of s and a, in [0,1].
// Returns 0.0 if either string is empty or no matching characters are
// found. The matching window radius and the transposition count both use
// truncating integer division deliberately; floor-division on non-negative
// operands preserves the same behavior.
func JaroWinkler(s, a string) float64 {
	sr := []rune(s)
	ar := []rune(a)
	sLen := len(sr)
	aLen := len(ar)

	if sLen == 0 || aLen == 0 {
		return 0.0
	}

	matchDistance := max(sLen, aLen)/2 - 1
	if matchDistance < 0 {
		matchDistance = 0
	}

	sMatched := make([]bool, sLen)
	aMatched := make([]bool, aLen)

	matches := 0
	for i := 0; i < sLen; i++ {
		lo := i - matchDistance
		if lo < 0 {
			lo = 0
		}
		hi := i + matchDistance + 1
		if hi > aLen {
			hi = aLen
		}
		for j := lo; j < hi; j++ {
			if aMatched[j] || sr[i] != ar[j] {
				continue
			}
			sMatched[i] = true
			aMatched[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Count transpositions: walk matched characters from both strings in
	// order and count positions where they differ.
	transpositions := 0
	k := 0
	for i := 0; i < sLen; i++ {
		if !sMatched[i] {
			continue
		}
		for k < aLen && !aMatched[k] {
			k++
		}
		if k < aLen {
			if sr[i] != ar[k] {
				transpositions++
			}
			k++
		}
	}
	t := transpositions / 2 // truncating division, deliberate

	m := float64(matches)
	jaro := (m/float64(sLen) + m/float64(aLen) + (m-float64(t))/m) / 3.0

	if jaro <= jaroShortCircuit {
		return jaro
	}

	prefixLen := commonPrefixLength(sr, ar, maxPrefixLength)
	return jaro + float64(prefixLen)*scalingFactor*(1.0-jaro)
}

// commonPrefixLength returns the length of the common prefix of a and b,
// capped at limit.
func commonPrefixLength(a, b []rune, limit int) int {
	n := limit
	if len(a) < n {
		n = len(a)
	}
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
