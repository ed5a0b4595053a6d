package psipred

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// SubmitResponse mirrors the minimal expected JSON response from PSIPRED submit
type SubmitResponse struct {
	UUID    string `json:"UUID"`
	State   string `json:"state"`
	Message string `json:"message"`
}

// SubmitProtein submits an ORF's amino-acid sequence to the PSIPRED API for
// secondary-structure prediction and returns the job UUID on success. A
// trailing stop marker is stripped; PSIPRED rejects it. baseURL should be
// like https://bioinf.cs.ucl.ac.uk/psipred/api
func SubmitProtein(ctx context.Context, baseURL, name, email, protein string) (string, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
	}
	protein = strings.TrimSuffix(protein, "*")
	if protein == "" {
		return "", fmt.Errorf("empty protein sequence")
	}
	fasta := fmt.Sprintf(">%s\n%s\n", name, protein)

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("job", "psipred")
	_ = mw.WriteField("submission_name", name)
	_ = mw.WriteField("email", email)
	fw, err := mw.CreateFormFile("input_data", "input.fasta")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write([]byte(fasta)); err != nil {
		return "", err
	}
	_ = mw.Close()

	submitURL := strings.TrimRight(baseURL, "/") + "/submission.json"
	req, err := http.NewRequestWithContext(ctx, "POST", submitURL, buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("psipred submit failed: %s: %s", resp.Status, string(body))
	}

	var out SubmitResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse psipred response: %v (body: %s)", err, string(body))
	}
	if out.UUID == "" {
		return "", fmt.Errorf("psipred submission rejected: %s", out.Message)
	}
	return out.UUID, nil
}
