package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"lariskan-server/internal/infra"
	"lariskan-server/internal/middleware"
	"lariskan-server/internal/storage"
)

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

func uploadApp(t *testing.T) *App {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return &App{
		Logger: zerolog.Nop(),
		Config: &infra.Config{StorageBaseURL: "http://localhost:8080/static"},
		Store:  store,
	}
}

func TestUploadImage_StoresFileAndReturnsURL(t *testing.T) {
	app := uploadApp(t)

	body, contentType := multipartImage(t, "image", "produk.jpg", []byte{0xff, 0xd8, 0xff})
	req := httptest.NewRequest("POST", "/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))

	rr := httptest.NewRecorder()
	app.UploadImage(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success  bool   `json:"success"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("success flag not set")
	}
	if !strings.HasPrefix(resp.ImageURL, "http://localhost:8080/static/uploads/user-1/") {
		t.Errorf("image url %q", resp.ImageURL)
	}
	if !strings.HasSuffix(resp.ImageURL, ".jpg") {
		t.Errorf("image url %q should keep the extension", resp.ImageURL)
	}
}

func TestUploadImage_RejectsUnknownExtension(t *testing.T) {
	app := uploadApp(t)

	body, contentType := multipartImage(t, "image", "script.exe", []byte("MZ"))
	req := httptest.NewRequest("POST", "/v1/uploads", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))

	rr := httptest.NewRecorder()
	app.UploadImage(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestUploadImage_MissingFile(t *testing.T) {
	app := uploadApp(t)

	req := httptest.NewRequest("POST", "/v1/uploads", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	req = req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))

	rr := httptest.NewRecorder()
	app.UploadImage(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestUploadImage_RequiresUserContext(t *testing.T) {
	app := uploadApp(t)

	rr := httptest.NewRecorder()
	app.UploadImage(rr, httptest.NewRequest("POST", "/v1/uploads", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rr.Code)
	}
}
