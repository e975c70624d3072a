package backendhttp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	return client, srv
}

func TestListDocuments(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/documents" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("botId") != "bot-1" || r.URL.Query().Get("customerId") != "cust-1" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{"id":"d1","title":"Handbook","content_type":"pdf"}]}`))
	}))
	defer srv.Close()

	docs, err := client.ListDocuments(context.Background(), "cust-1", "bot-1")
	if err != nil {
		t.Fatalf("ListDocuments() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "d1" || docs[0].ContentType != domain.ContentTypePDF {
		t.Errorf("docs = %+v", docs)
	}
}

func TestUploadFileMultipart(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/content/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm() error = %v", err)
		}
		if r.FormValue("botId") != "bot-1" {
			t.Errorf("botId = %q", r.FormValue("botId"))
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile() error = %v", err)
		}
		defer file.Close()
		if header.Filename != "handbook.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{"id":"d1","title":"handbook.pdf"}]}`))
	}))
	defer srv.Close()

	sub := domain.NewFileSubmission("cust-1", "bot-1", "handbook.pdf", "application/pdf", []byte("%PDF-1.4"))
	result, err := client.UploadFile(context.Background(), sub)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if len(result.Documents) != 1 || result.Documents[0].ID != "d1" {
		t.Errorf("result = %+v", result)
	}
}

func TestScrapeWebsite(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/content/scrape" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"pagesScraped":7,"title":"Example"}`))
	}))
	defer srv.Close()

	sub := domain.NewWebsiteSubmission("cust-1", "bot-1", "https://example.com", true)
	result, err := client.ScrapeWebsite(context.Background(), sub)
	if err != nil {
		t.Fatalf("ScrapeWebsite() error = %v", err)
	}
	if result.PagesScraped != 7 || result.Title != "Example" {
		t.Errorf("result = %+v", result)
	}
}

func TestBulkCount(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":3}`))
	}))
	defer srv.Close()

	count, err := client.Retrain(context.Background(), "cust-1", "bot-1", []string{"d1", "d2", "d3"})
	if err != nil {
		t.Fatalf("Retrain() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestBackendErrorPayload(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"Unsupported media"}`))
	}))
	defer srv.Close()

	sub := domain.NewTextSubmission("cust-1", "bot-1", "Notes", "content")
	_, err := client.UploadText(context.Background(), sub)

	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want BackendError", err)
	}
	if be.StatusCode != http.StatusUnprocessableEntity || be.Message != "Unsupported media" {
		t.Errorf("backend error = %+v", be)
	}
}

func TestBackendErrorWithoutPayload(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := client.ListDocuments(context.Background(), "cust-1", "bot-1")

	var be *domain.BackendError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want BackendError", err)
	}
	if be.Message != "" {
		t.Errorf("message = %q, want empty", be.Message)
	}
}

func TestTimeoutMapsToErrTimeout(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.ListDocuments(context.Background(), "cust-1", "bot-1")
	if !errors.Is(err, domain.ErrTimeout) {
		t.Errorf("error = %v, want ErrTimeout", err)
	}
}

func TestUnreachableBackend(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})

	_, err := client.ListDocuments(context.Background(), "cust-1", "bot-1")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}
