package service

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"

	"guildku_backend/internals/configs"
)

// WorkflowClient mengirim screenshot ke workflow OCR eksternal.
// URL & API key dari argumen menang atas default env (WORKFLOW_URL / WORKFLOW_API_KEY).
type WorkflowClient struct {
	URL    string
	APIKey string
	client *http.Client
}

func NewWorkflowClient(url, apiKey string) *WorkflowClient {
	if url == "" {
		url = configs.WorkflowURL
	}
	if apiKey == "" {
		apiKey = configs.WorkflowAPIKey
	}
	return &WorkflowClient{
		URL:    url,
		APIKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit mengunggah satu gambar ke workflow. Gagal kirim = upstream down.
func (w *WorkflowClient) Submit(jobID, sessionID uuid.UUID, filename, mimeType string, data []byte) error {
	if w.URL == "" {
		return fmt.Errorf("workflow URL belum dikonfigurasi")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("job_id", jobID.String()); err != nil {
		return err
	}
	if err := mw.WriteField("session_id", sessionID.String()); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, w.URL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if w.APIKey != "" {
		req.Header.Set("X-API-Key", w.APIKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("gagal menghubungi workflow: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("workflow menolak job (%d): %s", resp.StatusCode, string(raw))
	}
	return nil
}
