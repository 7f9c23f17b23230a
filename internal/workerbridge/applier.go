// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package workerbridge

import (
	"fmt"
	"os"
	"strings"

	"github.com/localrr/rrcluster/internal/similarity"
	"github.com/localrr/rrcluster/internal/testable"
)

// Block is one candidate (regex, replacement, produced-resolution) triple
// the applier wrote to its output file.
type Block struct {
	Regex              string
	Replacement        string
	ProducedResolution string
}

// ParseApplierOutput reads the applier's output file at path and returns
// its one or two candidate blocks. A missing or empty file means "no rule
// applicable" and returns no blocks without error. Lines left over past
// the last complete group of three are dropped rather than treated as an
// error: the applier is an external process and a truncated write should
// degrade to "no candidate" rather than fail the whole record.
func ParseApplierOutput(fs testable.FileSystem, path string) ([]Block, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("workerbridge: read applier output %s: %w", path, err)
	}

	trimmed := strings.TrimRight(string(data), "\n")
	if trimmed == "" {
		return nil, nil
	}
	lines := strings.Split(trimmed, "\n")

	var blocks []Block
	for i := 0; i+3 <= len(lines); i += 3 {
		blocks = append(blocks, Block{
			Regex:              lines[i],
			Replacement:        lines[i+1],
			ProducedResolution: lines[i+2],
		})
	}
	return blocks, nil
}

// BestBlock scores every block's ProducedResolution against knownResolution
// via Jaro-Winkler and returns the best-scoring one, along with whether any
// block was present at all.
func BestBlock(blocks []Block, knownResolution string) (Block, float64, bool) {
	if len(blocks) == 0 {
		return Block{}, 0, false
	}
	best := blocks[0]
	bestScore := similarity.JaroWinkler(best.ProducedResolution, knownResolution)
	for _, b := range blocks[1:] {
		score := similarity.JaroWinkler(b.ProducedResolution, knownResolution)
		if score > bestScore {
			best = b
			bestScore = score
		}
	}
	return best, bestScore, true
}
