package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"orfscan/internal/config"
	"orfscan/internal/fasta"
	"orfscan/internal/genbank"
	"orfscan/internal/orf"
	"orfscan/internal/report"
	"orfscan/internal/seq"

	"github.com/charmbracelet/log"
)

// version is the program version. It can be overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// timestampWriter prefixes each flushed line with an RFC3339 timestamp.
type timestampWriter struct {
	w   io.Writer
	buf bytes.Buffer
	mu  sync.Mutex
}

// Write buffers bytes until a newline is found; for each full line, write a
// timestamped line to the underlying writer. Partial lines are kept in the
// buffer.
func (t *timestampWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, _ := t.buf.Write(p)
	total := n
	for {
		line, err := t.buf.ReadString('\n')
		if err != nil {
			break
		}
		ts := time.Now().Format(time.RFC3339)
		if _, err := t.w.Write([]byte(ts + " " + line)); err != nil {
			return total, err
		}
	}
	return total, nil
}

// terminalWriter wraps an io.Writer and exposes an Fd method so libraries
// that inspect the file descriptor (for TTY detection) can work with
// wrapped writers.
type terminalWriter struct {
	w  io.Writer
	fd uintptr
}

func (tw *terminalWriter) Write(p []byte) (int, error) { return tw.w.Write(p) }

// Fd exposes the underlying file descriptor (e.g., os.Stderr.Fd()).
func (tw *terminalWriter) Fd() uintptr { return tw.fd }

func main() {
	// CLI flags
	inputFlag := flag.String("in", "", "input FASTA file path")
	seqFlag := flag.String("seq", "", "literal nucleotide sequence (takes precedence over -in)")
	outputFlag := flag.String("out", "", "output JSON file path (optional)")
	configFlag := flag.String("config", "", "path to config.json (optional)")
	minLenFlag := flag.Int("min-len", 0, "minimum ORF length in nucleotides (0 = use config/default)")
	accessionFlag := flag.String("accession", "", "GenBank accession to cross-check ORF translations against")
	dryRun := flag.Bool("dry-run", false, "perform a dry run without writing outputs or calling external services")
	verbose := flag.Bool("verbose", false, "enable verbose (debug) logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("orfscan", version)
		return
	}

	// load config (optional file)
	cfg, err := config.LoadConfig(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(1)
	}

	// merge CLI flags into config (flags override config when provided)
	if *inputFlag != "" {
		cfg.InputFasta = *inputFlag
	}
	if *seqFlag != "" {
		cfg.Sequence = *seqFlag
	}
	if *outputFlag != "" {
		cfg.OutputJSON = *outputFlag
	}
	if *minLenFlag > 0 {
		cfg.MinOrfLen = *minLenFlag
	}
	if *accessionFlag != "" {
		cfg.GenbankAccession = *accessionFlag
	}

	// configure logger output
	var loggerOut io.Writer = os.Stderr
	var logFileHandle *os.File
	if cfg.LogFile != "" {
		if f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			// write to both stderr and file so running interactively still shows logs
			loggerOut = io.MultiWriter(os.Stderr, f)
			logFileHandle = f
			defer func() { _ = logFileHandle.Close() }()
		}
	}
	// If stderr is a terminal-like device, force colors for libraries that honor FORCE_COLOR.
	if fi, err := os.Stderr.Stat(); err == nil {
		if fi.Mode()&os.ModeCharDevice != 0 {
			_ = os.Setenv("FORCE_COLOR", "1")
		}
	}
	// create logger backed by the timestamping writer and expose Fd so charm.log can detect TTY
	tw := &timestampWriter{w: loggerOut}
	termW := &terminalWriter{w: tw, fd: os.Stderr.Fd()}
	logger := log.New(termW)

	// apply log level from flags/config (flags override config)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			logger.SetLevel(log.DebugLevel)
		case "info", "":
			logger.SetLevel(log.InfoLevel)
		case "warn", "warning":
			logger.SetLevel(log.WarnLevel)
		case "error":
			logger.SetLevel(log.ErrorLevel)
		default:
			logger.SetLevel(log.InfoLevel)
			logger.Warn("unknown log_level in config.json, defaulting to info", "provided", cfg.LogLevel)
		}
	}

	logger.Debug("loaded config", "input_fasta", cfg.InputFasta, "output_json", cfg.OutputJSON, "min_orf_len", cfg.MinOrfLen, "log_file", cfg.LogFile, "log_level", cfg.LogLevel)
	if cfg.LogFile != "" && logFileHandle == nil {
		logger.Warn("log_file specified but could not be opened; logging to stderr only", "path", cfg.LogFile)
	}
	logger.Info("starting orfscan", "input_fasta", cfg.InputFasta, "output_json", cfg.OutputJSON, "min_orf_len", cfg.MinOrfLen)

	// apply genbank config
	if cfg.GenbankCachePath != "" {
		if absPath, aerr := filepath.Abs(cfg.GenbankCachePath); aerr == nil {
			genbank.SetCacheFilePath(absPath)
			logger.Info("genbank cache path set from config (absolute)", "path", absPath)
		} else {
			genbank.SetCacheFilePath(cfg.GenbankCachePath)
			logger.Info("genbank cache path set from config", "path", cfg.GenbankCachePath)
		}
		defer genbank.FlushCache()
	}
	if cfg.GenbankApiKey != "" {
		// set the API key directly from config.json (config-only mode)
		os.Setenv("NCBI_API_KEY", cfg.GenbankApiKey)
		logger.Info("ncbi api key set from config.json (value not logged)")
	}
	if cfg.GenbankCacheTTLSec > 0 {
		genbank.SetCacheTTLSeconds(cfg.GenbankCacheTTLSec)
	}

	// resolve the sequence to scan: literal flag/config wins, then FASTA file
	name := "seq0"
	sequence := strings.ToUpper(strings.TrimSpace(cfg.Sequence))
	if sequence == "" {
		if cfg.InputFasta == "" {
			logger.Fatal("no input: provide -seq or -in (or set them in config.json)")
		}
		data, err := os.ReadFile(cfg.InputFasta)
		if err != nil {
			logger.Fatal("failed to read input fasta", "path", cfg.InputFasta, "err", err)
		}
		records := fasta.Parse(bytes.NewReader(data))
		logger.Info("parsed fasta", "path", cfg.InputFasta, "records", len(records))
		if len(records) == 0 {
			logger.Fatal("no FASTA records found", "path", cfg.InputFasta)
		}
		if len(records) > 1 {
			logger.Warn("multiple FASTA records found; scanning the first only", "records", len(records))
		}
		name = records[0].Header
		sequence = records[0].Sequence
	}

	if err := seq.Validate(sequence); err != nil {
		logger.Fatal("invalid input sequence", "err", err)
	}

	start := time.Now()
	res := orf.Find(sequence, cfg.MinOrfLen)
	logger.Info("scan complete", "sequence_len", len(sequence), "min_orf_len", cfg.MinOrfLen, "orfs", res.Total(), "duration_ms", time.Since(start).Milliseconds())

	if err := report.Write(os.Stdout, name, res); err != nil {
		logger.Fatal("failed to write report", "err", err)
	}

	if cfg.OutputJSON != "" {
		if *dryRun {
			logger.Info("dry-run: would write output JSON", "path", cfg.OutputJSON, "orfs", res.Total())
		} else {
			f, err := os.Create(cfg.OutputJSON)
			if err != nil {
				logger.Error("failed to create output JSON", "path", cfg.OutputJSON, "err", err)
			} else {
				if err := report.WriteJSON(f, res); err != nil {
					logger.Error("failed to write output JSON", "path", cfg.OutputJSON, "err", err)
				} else {
					logger.Info("wrote output JSON", "path", cfg.OutputJSON, "orfs", res.Total())
				}
				_ = f.Close()
			}
		}
	}

	// optional cross-check of the scan against the annotated CDS translation
	if cfg.GenbankAccession != "" {
		if *dryRun {
			logger.Info("dry-run: skipping genbank cross-check", "accession", cfg.GenbankAccession)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		translation, err := genbank.FetchTranslation(ctx, cfg.GenbankAccession)
		if err != nil {
			logger.Error("genbank fetch failed", "accession", cfg.GenbankAccession, "err", err)
			return
		}
		if translation == "" {
			logger.Warn("no CDS translation annotated for accession", "accession", cfg.GenbankAccession)
			return
		}
		if rec, ok := genbank.MatchRecord(translation, res); ok {
			logger.Info("reference translation matches a reported ORF", "accession", cfg.GenbankAccession, "strand", rec.Strand, "frame", rec.Frame, "start_pos", rec.StartPos, "stop_pos", rec.StopPos)
		} else {
			logger.Warn("reference translation matches no reported ORF", "accession", cfg.GenbankAccession, "reference_aa", len(translation))
		}
	}
}
