package orf

// Package orf locates open reading frames in a nucleotide sequence: spans
// starting at an ATG codon and ending at the first in-frame stop codon (or
// the end of the sequence), scanned over both strands and all three frame
// offsets, with nested spans removed and survivors translated to protein.

// Strand identifies which strand of the input an ORF was found on. The
// reverse strand is scanned as the reverse complement of the input.
type Strand int

const (
	Forward Strand = 1
	Reverse Strand = -1
)

// Record is one reported ORF. StartPos and StopPos are 1-based positions on
// the original input sequence; on the reverse strand StartPos > StopPos,
// reflecting the 5'→3' reading direction of the complementary strand. Frame
// is the reported frame number 1-3, derived from the genomic start
// position. Protein carries a trailing '*' only when the ORF ends at an
// explicit stop codon rather than at the end of the sequence.
type Record struct {
	Strand      Strand `json:"strand"`
	Frame       int    `json:"frame"`
	StartPos    int    `json:"start_pos"`
	StopPos     int    `json:"stop_pos"`
	Protein     string `json:"protein"`
	Nucleotides string `json:"nucleotides"`
}

// Result groups records by strand, then by frame number. Strands and frames
// with no surviving ORFs are absent.
type Result map[Strand]map[int][]Record

// Total returns the number of records across all strands and frames.
func (r Result) Total() int {
	n := 0
	for _, frames := range r {
		for _, recs := range frames {
			n += len(recs)
		}
	}
	return n
}

// Flatten returns all records as a single slice, forward strand first, then
// frames in ascending order, preserving per-frame ordering.
func (r Result) Flatten() []Record {
	var out []Record
	for _, strand := range []Strand{Forward, Reverse} {
		frames, ok := r[strand]
		if !ok {
			continue
		}
		for f := 1; f <= 3; f++ {
			out = append(out, frames[f]...)
		}
	}
	return out
}
