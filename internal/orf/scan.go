package orf

import "orfscan/internal/codon"

// candidate is an ORF span within the working (strand-specific) sequence.
// start is the 0-based index of the ATG; stop is one past the last
// nucleotide of the stop codon, or the frame's last codon boundary when the
// ORF runs to the end of the sequence. hasStop distinguishes the two.
type candidate struct {
	start   int
	stop    int
	hasStop bool
}

// scanFrame walks the working sequence codon by codon from the given frame
// offset and returns candidate ORFs at least minLen nucleotides long, in
// ascending start order. Every ATG opens a candidate; the first in-frame
// stop codon closes all open candidates at once, so overlapping ORFs
// sharing a stop are all emitted. Candidates still open at the end of the
// frame close at its last codon boundary, which keeps every span a
// multiple of three.
func scanFrame(s string, offset, minLen int) []candidate {
	var cands []candidate
	var open []int
	i := offset
	for ; i+3 <= len(s); i += 3 {
		c := s[i : i+3]
		if codon.IsStart(c) {
			open = append(open, i)
			continue
		}
		if codon.IsStop(c) {
			for _, st := range open {
				if i+3-st >= minLen {
					cands = append(cands, candidate{start: st, stop: i + 3, hasStop: true})
				}
			}
			open = open[:0]
		}
	}
	for _, st := range open {
		if i-st >= minLen {
			cands = append(cands, candidate{start: st, stop: i})
		}
	}
	return cands
}

// keepOutermost removes candidates fully contained within another candidate
// of the same frame. Scanner candidates nest only when they share a stop
// position, and within a stop group the outermost (smallest start) is
// emitted first, so one pass keeping the first candidate per stop suffices.
// Ascending start order is preserved.
func keepOutermost(cands []candidate) []candidate {
	if len(cands) < 2 {
		return cands
	}
	out := cands[:0]
	seen := make(map[int]struct{}, len(cands))
	for _, c := range cands {
		if _, dup := seen[c.stop]; dup {
			continue
		}
		seen[c.stop] = struct{}{}
		out = append(out, c)
	}
	return out
}
