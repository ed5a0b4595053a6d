package codon

import (
	"strings"
	"testing"
)

func TestAminoAcidKnown(t *testing.T) {
	cases := map[string]byte{
		"ATG": 'M',
		"TGG": 'W',
		"TAA": '*',
		"TAG": '*',
		"TGA": '*',
		"GGG": 'G',
	}
	for triplet, want := range cases {
		if got := AminoAcid(triplet); got != want {
			t.Fatalf("AminoAcid(%s) = %c, want %c", triplet, got, want)
		}
	}
}

func TestAminoAcidUnknown(t *testing.T) {
	for _, triplet := range []string{"NNN", "AT", "", "ATN", "atg"} {
		if got := AminoAcid(triplet); got != Unknown {
			t.Fatalf("AminoAcid(%q) = %c, want %c", triplet, got, Unknown)
		}
	}
}

func TestTranslate(t *testing.T) {
	if got := Translate("ATGGAAGTGTAA"); got != "MEV*" {
		t.Fatalf("Translate = %q, want MEV*", got)
	}
	// trailing partial triplet is ignored
	if got := Translate("ATGGA"); got != "M" {
		t.Fatalf("Translate with partial tail = %q, want M", got)
	}
	if got := Translate(""); got != "" {
		t.Fatalf("Translate empty = %q, want empty", got)
	}
}

func TestTableCoversAllTriplets(t *testing.T) {
	bases := "TCAG"
	for _, a := range bases {
		for _, b := range bases {
			for _, c := range bases {
				triplet := string(a) + string(b) + string(c)
				aa := AminoAcid(triplet)
				if aa == Unknown {
					t.Fatalf("triplet %s missing from table", triplet)
				}
				if !strings.ContainsRune("ACDEFGHIKLMNPQRSTVWY*", rune(aa)) {
					t.Fatalf("triplet %s maps to unexpected symbol %c", triplet, aa)
				}
			}
		}
	}
}

func TestStartStopPredicates(t *testing.T) {
	if !IsStart("ATG") || IsStart("GTG") {
		t.Fatal("IsStart misclassifies")
	}
	for _, s := range []string{"TAA", "TAG", "TGA"} {
		if !IsStop(s) {
			t.Fatalf("IsStop(%s) = false", s)
		}
	}
	if IsStop("TGG") || IsStop("ATG") {
		t.Fatal("IsStop misclassifies")
	}
}
