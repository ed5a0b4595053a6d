package fasta

import (
	"strings"
	"testing"
)

func TestParseSimple(t *testing.T) {
	input := ">seq1\nATGC\n>seq2 desc\nGGTT\n"
	recs := Parse(strings.NewReader(input))
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Header != "seq1" || recs[0].Sequence != "ATGC" {
		t.Fatalf("unexpected first record: %+v", recs[0])
	}
	if recs[1].Header != "seq2 desc" || recs[1].Sequence != "GGTT" {
		t.Fatalf("unexpected second record: %+v", recs[1])
	}
}

func TestParseMultilineAndCase(t *testing.T) {
	input := ">seq\natg\nAAA\n\ntga\n"
	recs := Parse(strings.NewReader(input))
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Sequence != "ATGAAATGA" {
		t.Fatalf("expected joined upper-case sequence, got %q", recs[0].Sequence)
	}
}

func TestParseEmpty(t *testing.T) {
	if recs := Parse(strings.NewReader("")); len(recs) != 0 {
		t.Fatalf("expected no records, got %+v", recs)
	}
	// sequence data before any header is ignored
	if recs := Parse(strings.NewReader("ATGC\n")); len(recs) != 0 {
		t.Fatalf("expected no records for headerless input, got %+v", recs)
	}
}
