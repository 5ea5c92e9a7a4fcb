package mediarelay

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Relay accepts multipart uploads and forwards them to the configured media
// host. It is stateless: no retries, no validation of file type or size, and
// no auth of its own.
type Relay struct {
	uploadURL string
	apiKey    string
	client    *http.Client
	logger    zerolog.Logger
}

// NewRelay creates a new Relay targeting the given upstream upload endpoint.
func NewRelay(uploadURL, apiKey string, logger zerolog.Logger) *Relay {
	return &Relay{
		uploadURL: uploadURL,
		apiKey:    apiKey,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// RegisterRoutes mounts the relay's single route.
func (r *Relay) RegisterRoutes(router *gin.Engine) {
	router.POST("/upload", r.Upload)
}

// Upload handles POST /upload. The response body is the public URL of the
// stored object as a JSON string; any failure produces a 500 with the error
// message.
func (r *Relay) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		r.fail(ctx, fmt.Errorf("reading multipart file: %w", err))
		return
	}
	defer file.Close()

	url, err := r.forward(ctx, file, header.Filename)
	if err != nil {
		r.fail(ctx, err)
		return
	}

	r.logger.Info().Str("filename", header.Filename).Str("url", url).Msg("Upload relayed")
	ctx.JSON(http.StatusOK, url)
}

// forward streams the file to the upstream host under a random object name
// and returns the URL the host assigned.
func (r *Relay) forward(ctx *gin.Context, file io.Reader, filename string) (string, error) {
	objectName := uuid.New().String() + filepath.Ext(filename)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", objectName)
	if err != nil {
		return "", fmt.Errorf("building upload body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copying file contents: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalizing upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx.Request.Context(), http.MethodPost, r.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("building upstream request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	url := strings.TrimSpace(string(respBody))
	// Some hosts return the URL as a quoted JSON string
	url = strings.Trim(url, `"`)
	if url == "" {
		return "", fmt.Errorf("upstream returned an empty URL")
	}

	return url, nil
}

func (r *Relay) fail(ctx *gin.Context, err error) {
	r.logger.Error().Err(err).Msg("Upload failed")
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
