package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"orfscan/internal/orf"
	"orfscan/internal/psipred"

	"github.com/google/uuid"
)

// OrfView is one ORF as rendered by the web UI. ID is "start_stop" and is
// unique within a scan: two ORFs of one strand cannot share both endpoints,
// and mirrored spans on opposite strands cannot both survive scanning.
type OrfView struct {
	ID          string     `json:"id"`
	Strand      orf.Strand `json:"strand"`
	Frame       int        `json:"frame"`
	StartPos    int        `json:"start_pos"`
	StopPos     int        `json:"stop_pos"`
	Protein     string     `json:"protein"`
	Nucleotides string     `json:"nucleotides"`
	LengthNT    int        `json:"length_nt"`
	LengthAA    int        `json:"length_aa"`
	PsipredUUID string     `json:"psipred_uuid,omitempty"`
}

// OrfsPage is used to render the base page and to carry query state
type OrfsPage struct {
	Orfs  []OrfView
	Query string
	Sort  string
}

var templates *template.Template

func loadTemplates(dir string) error {
	t := template.New("")
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".html") {
			if _, err := t.ParseFiles(path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	templates = t
	return nil
}

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		duration := time.Since(start)
		logger.Printf("%s - %s %s %d %dB %s %q",
			r.RemoteAddr, r.Method, r.URL.RequestURI(), srw.status, srw.written, duration, r.UserAgent())
	})
}

// orfID is the stable identifier used in URLs for one ORF.
func orfID(r orf.Record) string {
	return fmt.Sprintf("%d_%d", r.StartPos, r.StopPos)
}

// readDatabase reads the scan output JSON at path and decorates it for the UI
func readDatabase(path string) ([]OrfView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []orf.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	jobs, _ := loadJobs(jobsPath)
	byOrf := make(map[string]string, len(jobs))
	for _, j := range jobs {
		byOrf[j.OrfID] = j.RemoteUUID
	}
	views := make([]OrfView, 0, len(records))
	for _, r := range records {
		id := orfID(r)
		views = append(views, OrfView{
			ID:          id,
			Strand:      r.Strand,
			Frame:       r.Frame,
			StartPos:    r.StartPos,
			StopPos:     r.StopPos,
			Protein:     r.Protein,
			Nucleotides: r.Nucleotides,
			LengthNT:    len(r.Nucleotides),
			LengthAA:    len(strings.TrimSuffix(r.Protein, "*")),
			PsipredUUID: byOrf[id],
		})
	}
	return views, nil
}

func findOrf(views []OrfView, id string) *OrfView {
	for i := range views {
		if views[i].ID == id {
			return &views[i]
		}
	}
	return nil
}

func indexHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orfs, err := readDatabase(dbPath)
		if err != nil {
			log.Printf("warning: failed to read database for index: %v", err)
			orfs = []OrfView{}
		}
		page := OrfsPage{Orfs: orfs, Query: r.URL.Query().Get("q"), Sort: r.URL.Query().Get("sort")}
		if err := templates.ExecuteTemplate(w, "base.html", page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func orfsHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orfs, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		q := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("q")))
		sortMode := r.URL.Query().Get("sort")

		// filter on protein or coordinates
		filtered := make([]OrfView, 0, len(orfs))
		for _, v := range orfs {
			if q == "" || strings.Contains(v.Protein, q) || strings.Contains(v.ID, q) {
				filtered = append(filtered, v)
			}
		}

		switch sortMode {
		case "length":
			sort.Slice(filtered, func(i, j int) bool { return filtered[i].LengthNT > filtered[j].LengthNT })
		case "frame":
			sort.Slice(filtered, func(i, j int) bool {
				if filtered[i].Strand != filtered[j].Strand {
					return filtered[i].Strand > filtered[j].Strand
				}
				return filtered[i].Frame < filtered[j].Frame
			})
		default:
			// scan order
		}

		// render fragment (send only the slice)
		if err := templates.ExecuteTemplate(w, "orfs.html", filtered); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func orfHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 3 || parts[2] == "" {
			http.Error(w, "missing orf id", http.StatusBadRequest)
			return
		}
		orfs, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		found := findOrf(orfs, parts[2])
		if found == nil {
			http.Error(w, "orf not found", http.StatusNotFound)
			return
		}
		// HX fragment requests get only the detail pane
		if r.Header.Get("HX-Request") == "true" || r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
			if err := templates.ExecuteTemplate(w, "detail.html", found); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		if err := templates.ExecuteTemplate(w, "orf_page.html", found); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// psipredSubmitHandler submits the ORF's protein to the PSIPRED API and
// records the returned UUID in the jobs store.
func psipredSubmitHandler(dbPath, psipredBase, psipredEmail string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if psipredBase == "" || psipredEmail == "" {
			http.Error(w, "PSIPRED not configured on this server", http.StatusBadRequest)
			return
		}
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 4 || parts[3] == "" {
			http.Error(w, "missing orf id", http.StatusBadRequest)
			return
		}
		id := parts[3]
		orfs, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		found := findOrf(orfs, id)
		if found == nil {
			http.Error(w, "orf not found", http.StatusNotFound)
			return
		}
		remoteUUID, err := psipred.SubmitProtein(r.Context(), psipredBase, "orf_"+id, psipredEmail, found.Protein)
		if err != nil {
			http.Error(w, fmt.Sprintf("psipred submit failed: %v", err), http.StatusInternalServerError)
			return
		}
		jobs, _ := loadJobs(jobsPath)
		now := time.Now().UTC()
		jobs = append(jobs, PsipredJob{
			ID:         uuid.NewString(),
			OrfID:      id,
			RemoteUUID: remoteUUID,
			State:      "queued",
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err := saveJobs(jobsPath, jobs); err != nil {
			log.Printf("warning: failed to save jobs: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"uuid": remoteUUID})
	}
}

// psipredStatusHandler proxies a status check to PSIPRED for a given UUID
func psipredStatusHandler(psipredBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 4 || parts[3] == "" {
			http.Error(w, "missing uuid", http.StatusBadRequest)
			return
		}
		if psipredBase == "" {
			http.Error(w, "PSIPRED base not configured on this server", http.StatusBadRequest)
			return
		}
		reqURL := strings.TrimRight(psipredBase, "/") + "/submission/" + parts[3]
		cli := &http.Client{Timeout: 30 * time.Second}
		resp, err := cli.Get(reqURL)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to contact psipred: %v", err), http.StatusInternalServerError)
			return
		}
		defer resp.Body.Close()
		w.Header().Set("Content-Type", resp.Header.Get("Content-Type"))
		w.WriteHeader(resp.StatusCode)
		_, _ = io.Copy(w, resp.Body)
	}
}

// psipredJobsHandler shows a simple table of submitted prediction jobs
func psipredJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := loadJobs(jobsPath)
		if err != nil {
			http.Error(w, "failed to read jobs store", http.StatusInternalServerError)
			return
		}
		if err := templates.ExecuteTemplate(w, "psipred_jobs.html", jobs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// apiOrfHandler returns JSON for a single ORF
func apiOrfHandler(dbPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) < 4 || parts[3] == "" {
			http.Error(w, "missing orf id", http.StatusBadRequest)
			return
		}
		orfs, err := readDatabase(dbPath)
		if err != nil {
			http.Error(w, "failed to read database", http.StatusInternalServerError)
			return
		}
		if found := findOrf(orfs, parts[3]); found != nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_ = json.NewEncoder(w).Encode(found)
			return
		}
		http.Error(w, "orf not found", http.StatusNotFound)
	}
}

// apiJobsHandler returns the JSON list of submitted prediction jobs
func apiJobsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := loadJobs(jobsPath)
		if err != nil {
			http.Error(w, "failed to read jobs store", http.StatusInternalServerError)
			return
		}
		if jobs == nil {
			jobs = []PsipredJob{}
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(jobs)
	}
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP address to serve on")
	dbPath := flag.String("db", "orfs.json", "path to the scan output JSON")
	templatesDir := flag.String("templates", "web/templates", "directory of HTML templates")
	jobsStoreFlag := flag.String("jobs-store", "json", "jobs store backend: json or sqlite")
	jobsPathFlag := flag.String("jobs", "jobs.json", "path to the jobs store (json file or sqlite db)")
	psipredBase := flag.String("psipred-base", "https://bioinf.cs.ucl.ac.uk/psipred/api", "PSIPRED API base URL")
	psipredEmail := flag.String("psipred-email", "", "email for PSIPRED submissions (optional for UI)")
	logFile := flag.String("log", "", "path to write access logs (optional). If empty, logs go to stdout only")
	flag.Parse()

	if err := loadTemplates(*templatesDir); err != nil {
		log.Fatalf("failed to load templates: %v", err)
	}
	if err := initJobsStore(*jobsStoreFlag, *jobsPathFlag); err != nil {
		log.Fatalf("failed to init jobs store: %v", err)
	}

	mux := http.NewServeMux()
	staticFS := http.FileServer(http.Dir("web/static"))
	mux.Handle("/static/", http.StripPrefix("/static/", staticFS))
	mux.HandleFunc("/", indexHandler(*dbPath))
	mux.HandleFunc("/orfs", orfsHandler(*dbPath))
	mux.HandleFunc("/orf/", orfHandler(*dbPath))
	mux.HandleFunc("/psipred/submit/", psipredSubmitHandler(*dbPath, *psipredBase, *psipredEmail))
	mux.HandleFunc("/psipred/status/", psipredStatusHandler(*psipredBase))
	mux.HandleFunc("/psipred-jobs", psipredJobsHandler())
	// API endpoints for SPA-like interactions
	mux.HandleFunc("/api/orf/", apiOrfHandler(*dbPath))
	mux.HandleFunc("/api/psipred/jobs", apiJobsHandler())

	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "orfscan: ", log.LstdFlags)

	handler := loggingMiddleware(logger, mux)

	srv := &http.Server{Addr: *addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	fmt.Printf("serving ORF browser at http://%s/ (db=%s)\n", *addr, *dbPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
