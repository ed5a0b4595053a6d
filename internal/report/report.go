package report

// Package report renders scan results as the grouped text report consumed
// by humans, and as JSON for the TUI and web front ends.

import (
	"encoding/json"
	"fmt"
	"io"

	"orfscan/internal/orf"
)

// Write prints res grouped by strand then frame. Strands and frames without
// ORFs are omitted entirely. name, when non-empty, is printed as a section
// header for the scanned record.
func Write(w io.Writer, name string, res orf.Result) error {
	if name != "" {
		if _, err := fmt.Fprintf(w, "----------------------------------- %s\n", name); err != nil {
			return err
		}
	}
	for _, strand := range []orf.Strand{orf.Forward, orf.Reverse} {
		frames, ok := res[strand]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "\nSTRAND %d:\n", strand); err != nil {
			return err
		}
		for f := 1; f <= 3; f++ {
			recs, ok := frames[f]
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "\tframe %d\n", f); err != nil {
				return err
			}
			for _, r := range recs {
				if _, err := fmt.Fprintf(w, "\t\tstart_pos: %d,\tstop_pos: %d,\tseq_protein: %s\n", r.StartPos, r.StopPos, r.Protein); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// WriteJSON writes the flattened records as indented JSON, the format the
// TUI and web commands read back.
func WriteJSON(w io.Writer, res orf.Result) error {
	recs := res.Flatten()
	if recs == nil {
		recs = []orf.Record{}
	}
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
