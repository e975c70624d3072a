package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
)

// MockContentBackend is an in-memory ContentBackend for testing. Error
// fields, when set, are returned instead of performing the operation.
type MockContentBackend struct {
	mu        sync.Mutex
	documents map[string][]*domain.Document // key: botID

	ListErr    error
	UploadErr  error
	TextErr    error
	ScrapeErr  error
	VideoErr   error
	RetrainErr error
	DeleteErr  error

	// ScrapeResult is returned by ScrapeWebsite on success.
	ScrapeResult driven.ScrapeResult

	// Calls records the operations invoked, in order.
	Calls []string
}

// NewMockContentBackend creates a new MockContentBackend
func NewMockContentBackend() *MockContentBackend {
	return &MockContentBackend{
		documents: make(map[string][]*domain.Document),
	}
}

// Seed places documents into a bot's list.
func (m *MockContentBackend) Seed(botID string, docs ...*domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[botID] = append(m.documents[botID], docs...)
}

func (m *MockContentBackend) record(op string) {
	m.Calls = append(m.Calls, op)
}

func (m *MockContentBackend) ListDocuments(ctx context.Context, customerID, botID string) ([]*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("list")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Document, len(m.documents[botID]))
	copy(out, m.documents[botID])
	return out, nil
}

func (m *MockContentBackend) UploadFile(ctx context.Context, sub *domain.UploadSubmission) (*driven.UploadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("upload")
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	doc := m.add(sub.BotID, sub.CustomerID, sub.FileName, domain.ContentTypePDF, "")
	return &driven.UploadResult{Documents: []*domain.Document{doc}}, nil
}

func (m *MockContentBackend) UploadText(ctx context.Context, sub *domain.UploadSubmission) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("text")
	if m.TextErr != nil {
		return nil, m.TextErr
	}
	contentType := domain.ContentTypeText
	if sub.Kind == domain.SubmissionQA {
		contentType = domain.ContentTypeQA
	}
	return m.add(sub.BotID, sub.CustomerID, sub.Title, contentType, ""), nil
}

func (m *MockContentBackend) ScrapeWebsite(ctx context.Context, sub *domain.UploadSubmission) (*driven.ScrapeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("scrape")
	if m.ScrapeErr != nil {
		return nil, m.ScrapeErr
	}
	m.add(sub.BotID, sub.CustomerID, m.ScrapeResult.Title, domain.ContentTypeWebsite, sub.URL)
	result := m.ScrapeResult
	return &result, nil
}

func (m *MockContentBackend) ExtractVideo(ctx context.Context, sub *domain.UploadSubmission) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("youtube")
	if m.VideoErr != nil {
		return nil, m.VideoErr
	}
	return m.add(sub.BotID, sub.CustomerID, "Transcript", domain.ContentTypeYouTube, sub.URL), nil
}

func (m *MockContentBackend) Retrain(ctx context.Context, customerID, botID string, documentIDs []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("retrain")
	if m.RetrainErr != nil {
		return 0, m.RetrainErr
	}
	now := time.Now()
	count := 0
	for _, doc := range m.documents[botID] {
		for _, id := range documentIDs {
			if doc.ID == id {
				doc.LastRetrainedAt = &now
				count++
			}
		}
	}
	return count, nil
}

func (m *MockContentBackend) DeleteBulk(ctx context.Context, customerID, botID string, documentIDs []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("delete")
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	remove := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		remove[id] = true
	}
	var kept []*domain.Document
	count := 0
	for _, doc := range m.documents[botID] {
		if remove[doc.ID] {
			count++
			continue
		}
		kept = append(kept, doc)
	}
	m.documents[botID] = kept
	return count, nil
}

func (m *MockContentBackend) add(botID, customerID, title, contentType, sourceURL string) *domain.Document {
	doc := &domain.Document{
		ID:          domain.GenerateID(),
		BotID:       botID,
		CustomerID:  customerID,
		Title:       title,
		ContentType: contentType,
		SourceURL:   sourceURL,
		CreatedAt:   time.Now(),
	}
	m.documents[botID] = append(m.documents[botID], doc)
	return doc
}
