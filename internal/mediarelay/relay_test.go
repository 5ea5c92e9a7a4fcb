package mediarelay

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func newRelayRouter(upstreamURL, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	relay := NewRelay(upstreamURL, apiKey, zerolog.Nop())
	relay.RegisterRoutes(router)
	return router
}

func TestUpload(t *testing.T) {
	t.Run("returns the upstream URL as a JSON string", func(t *testing.T) {
		var gotAuth string
		var gotFilename string
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			gotFilename = header.Filename
			io.WriteString(w, "https://media.example.com/objects/abc123.png")
		}))
		defer upstream.Close()

		router := newRelayRouter(upstream.URL, "secret-key")
		body, contentType := multipartUpload(t, "file", "photo.png", "pngdata")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var url string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &url))
		assert.Equal(t, "https://media.example.com/objects/abc123.png", url)

		assert.Equal(t, "Bearer secret-key", gotAuth)
		// The original filename is replaced with a random object name, but
		// the extension survives
		assert.True(t, strings.HasSuffix(gotFilename, ".png"), "got %q", gotFilename)
		assert.NotEqual(t, "photo.png", gotFilename)
	})

	t.Run("missing file field is a 500 with an error body", func(t *testing.T) {
		router := newRelayRouter("http://localhost:0", "")
		body, contentType := multipartUpload(t, "document", "a.txt", "text")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["error"])
	})

	t.Run("upstream failure is a 500 with an error body", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bucket unavailable", http.StatusServiceUnavailable)
		}))
		defer upstream.Close()

		router := newRelayRouter(upstream.URL, "")
		body, contentType := multipartUpload(t, "file", "clip.mp4", "mp4data")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "bucket unavailable")
	})

	t.Run("quoted upstream response is unwrapped", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode("https://media.example.com/objects/x.jpg")
		}))
		defer upstream.Close()

		router := newRelayRouter(upstream.URL, "")
		body, contentType := multipartUpload(t, "file", "x.jpg", "jpg")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var url string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &url))
		assert.Equal(t, "https://media.example.com/objects/x.jpg", url)
	})
}
