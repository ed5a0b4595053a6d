package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"orfscan/internal/orf"
)

func sampleResult() orf.Result {
	return orf.Result{
		orf.Forward: {
			1: {
				{Strand: orf.Forward, Frame: 1, StartPos: 1, StopPos: 9, Protein: "MK*", Nucleotides: "ATGAAATGA"},
			},
		},
		orf.Reverse: {
			3: {
				{Strand: orf.Reverse, Frame: 3, StartPos: 18, StopPos: 10, Protein: "MK*", Nucleotides: "ATGAAATGA"},
			},
		},
	}
}

func TestWriteGrouping(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "seq0", sampleResult()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"----------------------------------- seq0",
		"STRAND 1:",
		"STRAND -1:",
		"\tframe 1\n",
		"\tframe 3\n",
		"\t\tstart_pos: 18,\tstop_pos: 10,\tseq_protein: MK*",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	// frames with no ORFs must not appear
	if strings.Contains(out, "frame 2") {
		t.Fatalf("empty frame reported:\n%s", out)
	}
}

func TestWriteEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "", orf.Result{}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if strings.Contains(buf.String(), "STRAND") {
		t.Fatalf("empty result should print no strands:\n%s", buf.String())
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var recs []orf.Record
	if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
		t.Fatalf("output not valid JSON: %v", err)
	}
	if len(recs) != 2 || recs[0].Strand != orf.Forward || recs[1].Strand != orf.Reverse {
		t.Fatalf("unexpected records: %+v", recs)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, orf.Result{}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %q", buf.String())
	}
}
