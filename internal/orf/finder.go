package orf

import (
	"sync"

	"orfscan/internal/codon"
	"orfscan/internal/seq"
)

// Find scans sequence for ORFs of at least minLen nucleotides across both
// strands and all three frame offsets, removes spans contained within a
// larger span of the same frame, and translates the survivors. The six
// scans are independent and run concurrently; assembly of the result is
// deterministic. minLen is compared against span lengths, which are always
// multiples of three, so a threshold like 31 behaves the same as 33.
func Find(sequence string, minLen int) Result {
	working := [2]string{sequence, seq.ReverseComplement(sequence)}
	strands := [2]Strand{Forward, Reverse}

	var scans [2][3][]Record
	var wg sync.WaitGroup
	for si := 0; si < 2; si++ {
		for offset := 0; offset < 3; offset++ {
			wg.Add(1)
			go func(si, offset int) {
				defer wg.Done()
				scans[si][offset] = scanStrandFrame(working[si], strands[si], offset, minLen, len(sequence))
			}(si, offset)
		}
	}
	wg.Wait()

	result := make(Result)
	for si := 0; si < 2; si++ {
		for offset := 0; offset < 3; offset++ {
			for _, rec := range scans[si][offset] {
				frames, ok := result[strands[si]]
				if !ok {
					frames = make(map[int][]Record)
					result[strands[si]] = frames
				}
				frames[rec.Frame] = append(frames[rec.Frame], rec)
			}
		}
	}
	return result
}

// scanStrandFrame runs one frame scan over the working sequence of one
// strand and converts surviving candidates into reportable records, in
// ascending working-sequence start order.
func scanStrandFrame(working string, strand Strand, offset, minLen, genomeLen int) []Record {
	cands := keepOutermost(scanFrame(working, offset, minLen))
	recs := make([]Record, 0, len(cands))
	for _, c := range cands {
		startPos, stopPos := mapCoords(strand, c.start, c.stop, genomeLen)
		window := working[c.start:c.stop]
		recs = append(recs, Record{
			Strand:      strand,
			Frame:       (startPos-1)%3 + 1,
			StartPos:    startPos,
			StopPos:     stopPos,
			Protein:     codon.Translate(window),
			Nucleotides: window,
		})
	}
	return recs
}

// mapCoords converts a candidate's 0-based working-sequence span into the
// 1-based positions reported on the original input. Forward positions count
// up; reverse positions are mirrored through the sequence length, so a
// reverse ORF reports start > stop.
func mapCoords(strand Strand, start, stop, genomeLen int) (int, int) {
	if strand == Forward {
		return start + 1, stop
	}
	return genomeLen - start, genomeLen - stop + 1
}
