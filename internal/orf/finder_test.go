package orf

import (
	"strings"
	"testing"
)

// readmeSeq is the 411 nt example sequence the original analysis was
// cross-validated against NCBI ORFfinder with.
const readmeSeq = "GAGATCAGCTTTTGTTCAGAACCTGCGGCCGCTGAGGAGACGGTGACCTGGGTCCCCTGGCCCCAACAGTCCCTCTGATCGACTATCGGATCTCTGGCACAGTAATACACGGCCGTGTCCTCAGGGGTCACAGAGCTCAGCTGCAGGGAGAACTGGTTCTTGGACGTGTCCCTGGAGATGGAAGTGCGACTCTTGAGGGATGGACTGTAGTAAGTGCTGCCATCATAAGCTATGACTCCCATCCACTCCAGCCCCTTCCCTGAGGGCTGGCGGATCCAGCTCCAAGTATAATAGCTGGTTGTGATGGAGCCACCAGAGAAAGTGCAGGTGAGGGAGAGCGTCTGCGAGGGCTTCACCAGACTGGACCAGCTGCACCTGGGCCATGGCCGGCTGAGCTGCCAGCAGCAGCAA"

type span struct {
	start, stop int
	protein     string
}

func checkFrame(t *testing.T, res Result, strand Strand, frame int, want []span) {
	t.Helper()
	got := res[strand][frame]
	if len(got) != len(want) {
		t.Fatalf("strand %d frame %d: expected %d ORFs, got %d: %+v", strand, frame, len(want), len(got), got)
	}
	for i, w := range want {
		g := got[i]
		if g.StartPos != w.start || g.StopPos != w.stop {
			t.Errorf("strand %d frame %d orf %d: got (%d,%d), want (%d,%d)", strand, frame, i, g.StartPos, g.StopPos, w.start, w.stop)
		}
		if w.protein != "" && g.Protein != w.protein {
			t.Errorf("strand %d frame %d orf %d: protein %q, want %q", strand, frame, i, g.Protein, w.protein)
		}
	}
}

func TestFindReadmeExample(t *testing.T) {
	res := Find(readmeSeq, 30)

	checkFrame(t, res, Forward, 1, []span{
		{178, 210, "MEVRLLRDGL*"},
		{232, 291, "MTPIHSSPFPEGWRIQLQV*"},
		{304, 411, "MEPPEKVQVRESVCEGFTRLDQLHLGHGRLSCQQQQ"},
	})
	checkFrame(t, res, Forward, 2, []span{
		{200, 235, "MDCSKCCHHKL*"},
	})
	if _, ok := res[Forward][3]; ok {
		t.Fatal("forward frame 3 should be empty")
	}
	checkFrame(t, res, Reverse, 1, []span{
		{226, 137, "MMAALTTVHPSRVALPSPGTRPRTSSPCS*"},
	})
	checkFrame(t, res, Reverse, 2, []span{
		{242, 3, ""},
	})
	checkFrame(t, res, Reverse, 3, []span{
		{384, 223, ""},
	})

	// the reverse frame 3 ORF is the one cross-validated by protein prefix
	if p := res[Reverse][3][0].Protein; !strings.HasPrefix(p, "MAQVQLVQSGEALADALPHLHFL") {
		t.Fatalf("reverse frame 3 protein prefix wrong: %q", p)
	}
	// the run-to-end reverse frame 2 ORF carries no stop marker
	if p := res[Reverse][2][0].Protein; strings.HasSuffix(p, "*") || len(p) != 80 {
		t.Fatalf("reverse frame 2 protein unexpected: %q", p)
	}
	if res.Total() != 7 {
		t.Fatalf("expected 7 ORFs total, got %d", res.Total())
	}
}

func TestFindSimple(t *testing.T) {
	res := Find("ATGAAATGA", 0)
	checkFrame(t, res, Forward, 1, []span{{1, 9, "MK*"}})
	// the trailing ATG at offset 2 runs to the end of the frame
	checkFrame(t, res, Forward, 3, []span{{6, 8, "M"}})
	if _, ok := res[Reverse]; ok {
		t.Fatalf("reverse strand should be empty, got %+v", res[Reverse])
	}
}

func TestFindContainmentFiltered(t *testing.T) {
	res := Find("ATGATGTTTTAA", 0)
	checkFrame(t, res, Forward, 1, []span{{1, 12, "MMF*"}})
}

func TestFindNoStartCodon(t *testing.T) {
	res := Find("CCCCCCCCC", 0)
	if len(res) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
	if res.Total() != 0 {
		t.Fatalf("expected zero total, got %d", res.Total())
	}
}

func TestFindEmptySequence(t *testing.T) {
	if res := Find("", 0); len(res) != 0 {
		t.Fatalf("expected empty result for empty sequence, got %+v", res)
	}
}

func TestFindReverseFrameNumbering(t *testing.T) {
	// reverse complement of this input is ATGAAATGAATGTTTTAA; both of its
	// frame-offset-0 ORFs land in reported frame 3 because the frame number
	// follows the genomic start position, and they are ordered by ascending
	// working-sequence start, i.e. descending genomic start.
	res := Find("TTAAAACATTCATTTCAT", 0)
	checkFrame(t, res, Reverse, 3, []span{
		{18, 10, "MK*"},
		{9, 1, "MF*"},
	})
	checkFrame(t, res, Reverse, 1, []span{{13, 2, "MNVL"}})
}

func TestFindMinLenBoundaries(t *testing.T) {
	res := Find(readmeSeq, 30)
	base := res.Total()

	// raising the threshold above the longest span removes everything
	if got := Find(readmeSeq, 500).Total(); got != 0 {
		t.Fatalf("expected no ORFs above longest span, got %d", got)
	}
	// a threshold between spans removes only the shorter ones
	if got := Find(readmeSeq, 100).Total(); got >= base || got == 0 {
		t.Fatalf("expected partial removal at minLen 100, got %d of %d", got, base)
	}
	// a non-multiple-of-3 threshold behaves like the next lower multiple
	if a, b := Find(readmeSeq, 31).Total(), Find(readmeSeq, 33).Total(); a != b {
		t.Fatalf("minLen 31 and 33 disagree: %d vs %d", a, b)
	}
}

func TestFindInvariants(t *testing.T) {
	res := Find(readmeSeq, 30)
	L := len(readmeSeq)
	for strand, frames := range res {
		for frame, recs := range frames {
			for i, r := range recs {
				if r.Strand != strand || r.Frame != frame {
					t.Fatalf("record misfiled: %+v under strand %d frame %d", r, strand, frame)
				}
				// span length is a positive multiple of 3 and >= minLen
				n := len(r.Nucleotides)
				if n <= 0 || n%3 != 0 || n < 30 {
					t.Errorf("bad span length %d for %+v", n, r)
				}
				// every ORF starts at ATG and translates to a leading M
				if !strings.HasPrefix(r.Nucleotides, "ATG") || r.Protein[0] != 'M' {
					t.Errorf("ORF does not start with ATG/M: %+v", r)
				}
				// protein alphabet closure
				for _, c := range r.Protein {
					if !strings.ContainsRune("ACDEFGHIKLMNPQRSTVWYX*", c) {
						t.Errorf("unexpected protein symbol %c in %q", c, r.Protein)
					}
				}
				// genomic positions stay within the input
				lo, hi := r.StartPos, r.StopPos
				if strand == Reverse {
					lo, hi = hi, lo
				}
				if lo < 1 || hi > L || hi-lo+1 != n {
					t.Errorf("coordinates (%d,%d) inconsistent with span length %d", r.StartPos, r.StopPos, n)
				}
				// no span contains another in the same frame
				for _, other := range recs[i+1:] {
					if contains(r, other, strand) || contains(other, r, strand) {
						t.Errorf("containment survived filtering: %+v vs %+v", r, other)
					}
				}
			}
		}
	}
}

func contains(a, b Record, strand Strand) bool {
	alo, ahi := a.StartPos, a.StopPos
	blo, bhi := b.StartPos, b.StopPos
	if strand == Reverse {
		alo, ahi = ahi, alo
		blo, bhi = bhi, blo
	}
	return alo <= blo && bhi <= ahi
}

func TestFlatten(t *testing.T) {
	res := Find(readmeSeq, 30)
	flat := res.Flatten()
	if len(flat) != 7 {
		t.Fatalf("expected 7 records, got %d", len(flat))
	}
	if flat[0].Strand != Forward || flat[0].StartPos != 178 {
		t.Fatalf("unexpected first record: %+v", flat[0])
	}
	if last := flat[len(flat)-1]; last.Strand != Reverse || last.Frame != 3 {
		t.Fatalf("unexpected last record: %+v", last)
	}
}
