package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven/mocks"
)

func seedBot(backend *mocks.MockContentBackend) {
	backend.Seed("bot-1",
		&domain.Document{ID: "d1", BotID: "bot-1", ContentType: domain.ContentTypeWebsite, SourceURL: "https://example.com"},
		&domain.Document{ID: "d2", BotID: "bot-1", ContentType: domain.ContentTypeYouTube, SourceURL: "https://youtube.com/watch?v=abc"},
		&domain.Document{ID: "d3", BotID: "bot-1", ContentType: domain.ContentTypePDF},
		&domain.Document{ID: "d4", BotID: "bot-1", ContentType: domain.ContentTypeText},
	)
}

func TestProcessRetrainTask(t *testing.T) {
	backend := mocks.NewMockContentBackend()
	queue := mocks.NewMockTaskQueue()
	seedBot(backend)

	w := New(Config{TaskQueue: queue, Backend: backend})
	task := domain.NewRetrainBotTask("cust-1", "bot-1")
	queue.Enqueue(context.Background(), task)

	got, _ := queue.DequeueWithTimeout(context.Background(), 1)
	w.processTask(context.Background(), got, w.logger)

	if len(queue.Acked) != 1 || queue.Acked[0] != task.ID {
		t.Errorf("acked = %v, want [%s]", queue.Acked, task.ID)
	}
	if len(queue.Nacked) != 0 {
		t.Errorf("nacked = %v, want none", queue.Nacked)
	}

	// Only the url-backed documents were retrained
	docs, _ := backend.ListDocuments(context.Background(), "cust-1", "bot-1")
	for _, doc := range docs {
		retrained := doc.LastRetrainedAt != nil
		if doc.URLBacked() && !retrained {
			t.Errorf("document %s not retrained", doc.ID)
		}
		if !doc.URLBacked() && retrained {
			t.Errorf("document %s retrained, want skipped", doc.ID)
		}
	}
}

func TestProcessRetrainTaskNoURLBackedDocs(t *testing.T) {
	backend := mocks.NewMockContentBackend()
	queue := mocks.NewMockTaskQueue()
	backend.Seed("bot-1", &domain.Document{ID: "d1", BotID: "bot-1", ContentType: domain.ContentTypePDF})

	w := New(Config{TaskQueue: queue, Backend: backend})
	task := domain.NewRetrainBotTask("cust-1", "bot-1")
	queue.Enqueue(context.Background(), task)

	got, _ := queue.DequeueWithTimeout(context.Background(), 1)
	w.processTask(context.Background(), got, w.logger)

	// Nothing to retrain is still success
	if len(queue.Acked) != 1 {
		t.Errorf("acked = %v, want the task", queue.Acked)
	}
	if calls := backend.Calls; len(calls) != 1 || calls[0] != "list" {
		t.Errorf("calls = %v, want [list]", calls)
	}
}

func TestProcessRetrainTaskBackendFailure(t *testing.T) {
	backend := mocks.NewMockContentBackend()
	queue := mocks.NewMockTaskQueue()
	seedBot(backend)
	backend.RetrainErr = errors.New("backend unavailable")

	w := New(Config{TaskQueue: queue, Backend: backend})
	task := domain.NewRetrainBotTask("cust-1", "bot-1")
	queue.Enqueue(context.Background(), task)

	got, _ := queue.DequeueWithTimeout(context.Background(), 1)
	w.processTask(context.Background(), got, w.logger)

	if len(queue.Nacked) != 1 || queue.Nacked[0] != task.ID {
		t.Errorf("nacked = %v, want [%s]", queue.Nacked, task.ID)
	}
	if len(queue.Acked) != 0 {
		t.Errorf("acked = %v, want none", queue.Acked)
	}
}

func TestProcessUnknownTaskType(t *testing.T) {
	backend := mocks.NewMockContentBackend()
	queue := mocks.NewMockTaskQueue()

	w := New(Config{TaskQueue: queue, Backend: backend})
	task := domain.NewRetrainBotTask("cust-1", "bot-1")
	task.Type = "mystery"
	queue.Enqueue(context.Background(), task)

	got, _ := queue.DequeueWithTimeout(context.Background(), 1)
	w.processTask(context.Background(), got, w.logger)

	if len(queue.Nacked) != 1 {
		t.Errorf("nacked = %v, want the task", queue.Nacked)
	}
}
