package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"lariskan-server/internal/domain"
	"lariskan-server/internal/infra"
	"lariskan-server/internal/storage"
)

type fakeProducts struct {
	items   []domain.ProductHistory
	item    *domain.ProductHistory
	getErr  error
	listErr error
	delErr  error

	deletedID     string
	deletedUserID string
}

func (f *fakeProducts) CreateWithGenerations(ctx context.Context, p *domain.Product, gens []domain.Generation) (string, error) {
	return "", nil
}

func (f *fakeProducts) GetByID(ctx context.Context, productID, userID string) (*domain.ProductHistory, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.item, nil
}

func (f *fakeProducts) ListByUser(ctx context.Context, userID string) ([]domain.ProductHistory, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeProducts) Delete(ctx context.Context, productID, userID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deletedID = productID
	f.deletedUserID = userID
	return nil
}

func historyApp(products *fakeProducts) *App {
	return &App{
		Logger:   zerolog.Nop(),
		Profiles: &fakeProfiles{profile: &domain.Profile{ID: "owner-uuid", ExternalID: "user-1"}},
		Products: products,
	}
}

func historyRouter(app *App) http.Handler {
	r := chi.NewRouter()
	r.Get("/history", app.ListHistory)
	r.Get("/history/{id}", app.GetHistoryItem)
	r.Delete("/history/{id}", app.DeleteHistoryItem)
	r.Get("/history/{id}/export", app.ExportHistoryItem)
	return r
}

func sampleHistory() domain.ProductHistory {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return domain.ProductHistory{
		Product: domain.Product{
			ID:          "prod-1",
			UserID:      "owner-uuid",
			ImageURL:    "https://cdn.example.com/a.jpg",
			ProductName: "Tas Rotan",
			Category:    domain.CategoryFashion,
			KeyFeatures: "anyaman tangan",
			CreatedAt:   created,
		},
		Generations: []domain.Generation{
			{ID: "g1", ProductID: "prod-1", Platform: domain.PlatformMarketplace, Tone: domain.ToneCasual, ResultText: "teks marketplace", CreatedAt: created},
			{ID: "g2", ProductID: "prod-1", Platform: domain.PlatformInstagram, Tone: domain.ToneCasual, ResultText: "teks instagram", CreatedAt: created},
			{ID: "g3", ProductID: "prod-1", Platform: domain.PlatformWebsite, Tone: domain.ToneCasual, ResultText: "teks website", CreatedAt: created},
		},
	}
}

func TestListHistory(t *testing.T) {
	app := historyApp(&fakeProducts{items: []domain.ProductHistory{sampleHistory()}})

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, authedRequest("GET", "/history", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var payload struct {
		Items []historyItemDTO `json:"items"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(payload.Items))
	}
	item := payload.Items[0]
	if item.ProductName != "Tas Rotan" || len(item.Generations) != 3 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Generations[0].ToneVoice != "casual" {
		t.Errorf("tone %q", item.Generations[0].ToneVoice)
	}
}

func TestGetHistoryItem_NotFound(t *testing.T) {
	app := historyApp(&fakeProducts{getErr: domain.ErrNotFound})

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, authedRequest("GET", "/history/prod-404", ""))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestDeleteHistoryItem_ScopesToOwner(t *testing.T) {
	item := sampleHistory()
	products := &fakeProducts{item: &item}
	app := historyApp(products)

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, authedRequest("DELETE", "/history/prod-1", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if products.deletedID != "prod-1" || products.deletedUserID != "owner-uuid" {
		t.Errorf("delete scoped to (%q, %q)", products.deletedID, products.deletedUserID)
	}
}

func TestDeleteHistoryItem_RemovesStoredImage(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	key, err := store.Write(context.Background(), "uploads/user-1/photo.jpg", []byte("img"))
	if err != nil {
		t.Fatalf("write image: %v", err)
	}

	item := sampleHistory()
	item.Product.ImageURL = "http://localhost:8080/static/" + key
	products := &fakeProducts{item: &item}
	app := historyApp(products)
	app.Store = store
	app.Config = &infra.Config{StorageBaseURL: "http://localhost:8080/static"}

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, authedRequest("DELETE", "/history/prod-1", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if products.deletedID != "prod-1" {
		t.Errorf("deleted product %q", products.deletedID)
	}
	full := filepath.Join(store.BasePath(), "uploads", "user-1", "photo.jpg")
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Errorf("stored image %s still exists after product delete", key)
	}
}

func TestDeleteHistoryItem_LeavesExternalImages(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, err = store.Write(context.Background(), "uploads/user-1/other.jpg", []byte("img"))
	if err != nil {
		t.Fatalf("write image: %v", err)
	}

	item := sampleHistory()
	products := &fakeProducts{item: &item}
	app := historyApp(products)
	app.Store = store
	app.Config = &infra.Config{StorageBaseURL: "http://localhost:8080/static"}

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, authedRequest("DELETE", "/history/prod-1", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	full := filepath.Join(store.BasePath(), "uploads", "user-1", "other.jpg")
	if _, err := os.Stat(full); err != nil {
		t.Errorf("unrelated stored file was removed: %v", err)
	}
}

func TestExportHistoryItem_BuildsZip(t *testing.T) {
	item := sampleHistory()
	app := historyApp(&fakeProducts{item: &item})

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, authedRequest("GET", "/history/prod-1/export", ""))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("content type %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 3 {
		t.Fatalf("expected 3 files, got %d", len(zr.File))
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"marketplace.txt", "instagram.txt", "website.txt"} {
		if !names[want] {
			t.Errorf("archive missing %s", want)
		}
	}

	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	content, _ := io.ReadAll(rc)
	if len(content) == 0 {
		t.Error("archive entry is empty")
	}
}

func TestHistory_RequiresUserContext(t *testing.T) {
	app := historyApp(&fakeProducts{})

	rr := httptest.NewRecorder()
	historyRouter(app).ServeHTTP(rr, httptest.NewRequest("GET", "/history", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rr.Code)
	}
}
