package seq

// Package seq contains small helpers over raw nucleotide strings: strand
// complement and input validation. Sequences are plain strings over the
// alphabet {A, C, G, T}; callers are expected to validate before handing
// sequences to the scanner.

import "fmt"

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['C'] = 'G'
	complement['G'] = 'C'
}

// ReverseComplement returns the reverse complement of s. Bytes outside the
// ACGT alphabet are passed through unchanged; Validate is the place to
// reject them.
func ReverseComplement(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := complement[s[n-1-i]]
		if c == 0 {
			c = s[n-1-i]
		}
		out[i] = c
	}
	return string(out)
}

// Validate reports the first byte of s outside the ACGT alphabet as an
// error. An empty sequence is valid and simply yields no ORFs downstream.
func Validate(s string) error {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return fmt.Errorf("invalid nucleotide %q at position %d", s[i], i+1)
		}
	}
	return nil
}
