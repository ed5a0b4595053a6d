package codon

// Package codon holds the standard genetic code and translates nucleotide
// windows into one-letter amino-acid sequences.

// Stop is the marker appended when a window ends in a stop codon.
const Stop = '*'

// Unknown is the placeholder emitted for any triplet not in the table.
const Unknown = 'X'

// table maps each of the 64 standard triplets to its one-letter amino-acid
// code. TAA, TAG and TGA map to the stop marker.
var table = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": Stop, "TAG": Stop,
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": Stop, "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// AminoAcid returns the one-letter code for a single triplet, or Unknown if
// the triplet is not in the standard table.
func AminoAcid(triplet string) byte {
	if aa, ok := table[triplet]; ok {
		return aa
	}
	return Unknown
}

// Translate converts a nucleotide window into its amino-acid sequence,
// reading consecutive triplets from the start of the window. A trailing
// stop codon translates to the stop marker; a trailing partial triplet is
// ignored.
func Translate(window string) string {
	out := make([]byte, 0, len(window)/3)
	for i := 0; i+3 <= len(window); i += 3 {
		out = append(out, AminoAcid(window[i:i+3]))
	}
	return string(out)
}

// IsStop reports whether the triplet is one of TAA, TAG or TGA.
func IsStop(triplet string) bool {
	return table[triplet] == Stop
}

// IsStart reports whether the triplet is the start codon ATG.
func IsStart(triplet string) bool {
	return triplet == "ATG"
}
