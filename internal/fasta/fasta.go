package fasta

// Package fasta contains minimal helpers to parse FASTA formatted data used
// by the project. Parsing is deliberately simple; sequence lines are
// concatenated, upper-cased and stripped of whitespace so the result can be
// handed to the scanner after validation.

import (
	"bufio"
	"io"
	"strings"
)

// Record represents a single FASTA record (header and sequence).
type Record struct {
	Header   string
	Sequence string
}

// Parse reads FASTA records from r and returns them in input order. Lines
// beginning with '>' denote headers; blank lines are ignored.
func Parse(r io.Reader) []Record {
	scanner := bufio.NewScanner(r)
	var records []Record
	var current Record
	var body strings.Builder
	flush := func() {
		if current.Header != "" {
			current.Sequence = body.String()
			records = append(records, current)
		}
		body.Reset()
	}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			current = Record{Header: strings.TrimSpace(line[1:])}
			continue
		}
		body.WriteString(strings.ToUpper(line))
	}
	flush()
	return records
}
