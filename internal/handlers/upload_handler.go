package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/pkg/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UploadHandler stores media attached to progress logs and hands back the URL
// clients put in a log's mediaUrl field.
type UploadHandler struct {
	UploadDir string
}

// NewUploadHandler creates a new instance of UploadHandler.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{UploadDir: uploadDir}
}

// UploadMediaHandler accepts a multipart image and saves it to disk.
func (h *UploadHandler) UploadMediaHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		writeError(w, apperr.ErrUnauthenticated)
		return
	}

	// Parse multipart form (max size: 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "File too big or invalid format", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file in request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		http.Error(w, "Only JPEG and PNG images are allowed", http.StatusBadRequest)
		return
	}

	ext := filepath.Ext(header.Filename)
	fileName := uuid.NewString() + ext
	savePath := filepath.Join(h.UploadDir, fileName)

	if err := os.MkdirAll(h.UploadDir, os.ModePerm); err != nil {
		http.Error(w, "Failed to create upload folder", http.StatusInternalServerError)
		return
	}

	out, err := os.Create(savePath)
	if err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()
	if _, err := io.Copy(out, file); err != nil {
		http.Error(w, "Failed to write file", http.StatusInternalServerError)
		return
	}

	fileURL := "/uploads/" + fileName

	logrus.WithFields(logrus.Fields{
		"userID": claims.UserID,
		"file":   fileName,
	}).Info("Media uploaded")

	writeJSON(w, http.StatusCreated, map[string]string{"url": fileURL})
}
