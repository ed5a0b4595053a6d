package genbank

// Package genbank fetches the annotated CDS translation of a nucleotide
// accession from NCBI efetch. The scanner's output can be cross-checked
// against this reference protein, which is how the worked example in the
// README was validated. Responses are cached in a JSON file with a TTL so
// repeated scans of the same accession stay offline.

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"orfscan/internal/orf"
)

// httpClient performs requests; tests may replace it with a mock transport.
var httpClient = &http.Client{Timeout: 20 * time.Second}

type cachedEntry struct {
	Translation string `json:"translation"`
	RetrievedAt int64  `json:"retrieved_at"`
}

var (
	cacheMu       sync.RWMutex
	cache         map[string]cachedEntry
	cacheLoaded   bool
	cacheFilePath string
	cacheTTLSecs  int64
)

// SetCacheFilePath overrides the on-disk cache location.
func SetCacheFilePath(p string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cacheFilePath = p
	cacheLoaded = false
}

// SetCacheTTLSeconds overrides the cache entry lifetime. Zero or negative
// restores the default (7 days).
func SetCacheTTLSeconds(s int64) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cacheTTLSecs = s
}

func cacheTTL() int64 {
	if cacheTTLSecs > 0 {
		return cacheTTLSecs
	}
	return int64(7 * 24 * 3600)
}

func defaultCachePath() string {
	if cacheFilePath != "" {
		return cacheFilePath
	}
	if dir, err := os.UserCacheDir(); err == nil {
		p := filepath.Join(dir, "orfscan")
		_ = os.MkdirAll(p, 0o755)
		return filepath.Join(p, "genbank_cache.json")
	}
	return filepath.Join(os.TempDir(), "orfscan_genbank_cache.json")
}

func loadCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cacheLoaded {
		return
	}
	path := defaultCachePath()
	cache = make(map[string]cachedEntry)
	data, err := os.ReadFile(path)
	if err != nil {
		cacheLoaded = true
		return
	}
	_ = json.Unmarshal(data, &cache)
	cacheLoaded = true
}

func saveCache() {
	cacheMu.RLock()
	defer cacheMu.RUnlock()
	path := defaultCachePath()
	b, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(path, b, 0o644)
}

func getCached(acc string) (string, bool) {
	loadCache()
	cacheMu.RLock()
	defer cacheMu.RUnlock()
	e, ok := cache[acc]
	if !ok {
		return "", false
	}
	if ttl := cacheTTL(); ttl > 0 && time.Now().Unix()-e.RetrievedAt > ttl {
		return "", false
	}
	return e.Translation, true
}

func setCached(acc, tr string) {
	if acc == "" || tr == "" {
		return
	}
	loadCache()
	cacheMu.Lock()
	cache[acc] = cachedEntry{Translation: tr, RetrievedAt: time.Now().Unix()}
	cacheMu.Unlock()
	saveCache()
}

// FetchTranslation fetches the GenBank record (XML) for the given
// nucleotide accession and extracts the first CDS translation found.
// Returns empty string if the record carries none.
func FetchTranslation(ctx context.Context, accession string) (string, error) {
	if accession == "" {
		return "", nil
	}
	if v, ok := getCached(accession); ok {
		return v, nil
	}

	base := "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi?db=nuccore&id=%s&rettype=gb&retmode=xml"
	if apiKey := os.Getenv("NCBI_API_KEY"); apiKey != "" {
		base += "&api_key=" + apiKey
	}
	url := fmt.Sprintf(base, accession)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("User-Agent", "orfscan/1.0 (https://example)")
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			translation, retry, err := handleResponse(resp, attempt)
			if err == nil && !retry {
				setCached(accession, translation)
				return translation, nil
			}
			if !retry {
				return "", err
			}
			lastErr = err
			continue
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt*300) * time.Millisecond):
		}
	}
	if lastErr != nil {
		return "", lastErr
	}
	return "", nil
}

// handleResponse extracts the translation from a 200 body, or signals a
// retry (with backoff already served) on 429.
func handleResponse(resp *http.Response, attempt int) (string, bool, error) {
	defer resp.Body.Close()
	if resp.StatusCode == 200 {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", false, err
		}
		return extractTranslation(string(data)), false, nil
	}
	if resp.StatusCode == 429 {
		wait := time.Duration(attempt*500) * time.Millisecond
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if secs, err := strconv.Atoi(ra); err == nil {
				wait = time.Duration(secs) * time.Second
			}
		}
		time.Sleep(wait)
		return "", true, fmt.Errorf("ncbi efetch returned 429")
	}
	body, _ := io.ReadAll(resp.Body)
	return "", false, fmt.Errorf("ncbi efetch returned status %d: %s", resp.StatusCode, string(body))
}

// extractTranslation pulls the first translation qualifier value out of a
// GenBank XML payload. XML-aware naive extraction: look for the qualifier
// name, then the next GBQualifier_value element.
func extractTranslation(text string) string {
	needle := "<GBQualifier_name>translation</GBQualifier_name>"
	i := strings.Index(text, needle)
	if i == -1 {
		return ""
	}
	valOpen := "<GBQualifier_value>"
	valIdx := strings.Index(text[i:], valOpen)
	if valIdx == -1 {
		return ""
	}
	start := i + valIdx + len(valOpen)
	end := strings.Index(text[start:], "</GBQualifier_value>")
	if end == -1 {
		return ""
	}
	translation := text[start : start+end]
	translation = strings.ReplaceAll(translation, "\n", "")
	translation = strings.ReplaceAll(translation, " ", "")
	return translation
}

// MatchRecord returns the first reported ORF whose protein equals the
// reference translation, ignoring the trailing stop marker. GenBank
// translations never include one, so it is stripped before comparison.
func MatchRecord(translation string, res orf.Result) (orf.Record, bool) {
	if translation == "" {
		return orf.Record{}, false
	}
	for _, r := range res.Flatten() {
		if strings.TrimSuffix(r.Protein, "*") == translation {
			return r, true
		}
	}
	return orf.Record{}, false
}

// FlushCache persists the in-memory cache. Call before exit when the cache
// path was overridden.
func FlushCache() { saveCache() }
