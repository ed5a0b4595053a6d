package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	InputFasta string `json:"input_fasta"`
	Sequence   string `json:"sequence"`
	OutputJSON string `json:"output_json"`
	// MinOrfLen is the minimum ORF length in nucleotides. Candidate lengths
	// are always multiples of 3, so a value like 31 filters the same as 33.
	MinOrfLen          int    `json:"min_orf_len"`
	LogFile            string `json:"log_file"`
	LogLevel           string `json:"log_level"`
	GenbankAccession   string `json:"genbank_accession"`
	GenbankApiKey      string `json:"genbank_api_key"`
	GenbankCachePath   string `json:"genbank_cache_path"`
	GenbankCacheTTLSec int64  `json:"genbank_cache_ttl_seconds"`
}

// DefaultMinOrfLen is the reporting threshold used when neither config nor
// flags provide one (10 codons).
const DefaultMinOrfLen = 30

// LoadConfig loads a JSON config from the given path. If path is empty, looks for ./config.json.
// A missing file is not fatal: defaults are returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		return &Config{MinOrfLen: DefaultMinOrfLen}, nil
	}
	defer f.Close()
	c := Config{MinOrfLen: DefaultMinOrfLen}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
