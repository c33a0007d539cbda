package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/askhatb/challenge-on/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUploadRouter(dir string) *mux.Router {
	router := mux.NewRouter()
	protected := router.PathPrefix("/api/uploads").Subrouter()
	protected.Use(middleware.AuthMiddleware(testSecret))
	protected.HandleFunc("", NewUploadHandler(dir).UploadMediaHandler).Methods("POST")
	return router
}

func multipartImage(t *testing.T, fieldName, fileName, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestUploadMediaHandler(t *testing.T) {
	dir := t.TempDir()
	router := newUploadRouter(dir)

	body, contentType := multipartImage(t, "file", "run.png", "image/png", []byte("pngdata"))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, primitive.NewObjectID()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, strings.HasPrefix(resp["url"], "/uploads/"))
	assert.True(t, strings.HasSuffix(resp["url"], ".png"))

	saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(resp["url"], "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "pngdata", string(saved))
}

func TestUploadMediaHandler_RejectsNonImage(t *testing.T) {
	router := newUploadRouter(t.TempDir())

	body, contentType := multipartImage(t, "file", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, primitive.NewObjectID()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMediaHandler_MissingFile(t *testing.T) {
	router := newUploadRouter(t.TempDir())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	require.NoError(t, writer.WriteField("name", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", bearerFor(t, primitive.NewObjectID()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
