package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestFileSubmission_Validate_SizeLimit(t *testing.T) {
	sub := NewFileSubmission("cust-1", "bot-1", "notes.pdf", "application/pdf", nil)
	sub.FileSize = MaxFileSize + 1

	err := sub.Validate()
	if err == nil {
		t.Fatal("expected oversized file to be rejected")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(verr.Reason, "20 MB") {
		t.Errorf("expected size message, got %q", verr.Reason)
	}

	// Size wins regardless of an accepted type
	sub.MediaType = "application/pdf"
	if sub.Validate() == nil {
		t.Error("expected oversized file to be rejected regardless of type")
	}
}

func TestFileSubmission_Validate_TypeAndExtension(t *testing.T) {
	tests := []struct {
		name      string
		fileName  string
		mediaType string
		wantOK    bool
	}{
		{"accepted media type", "report.bin", "application/pdf", true},
		{"accepted docx media type", "report", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", true},
		{"extension fallback pdf", "report.PDF", "application/octet-stream", true},
		{"extension fallback doc", "old.doc", "", true},
		{"extension fallback docx", "new.docx", "", true},
		{"extension fallback txt", "notes.txt", "", true},
		{"extension fallback csv", "data.Csv", "", true},
		{"rejected image", "photo.png", "image/png", false},
		{"rejected no extension", "payload", "application/octet-stream", false},
		{"rejected zip", "archive.zip", "application/zip", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := NewFileSubmission("cust-1", "bot-1", tt.fileName, tt.mediaType, []byte("content"))
			err := sub.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestTextSubmission_Validate_EmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t  \n"} {
		sub := NewTextSubmission("cust-1", "bot-1", "Title", content)
		if sub.Validate() == nil {
			t.Errorf("expected rejection for content %q", content)
		}
	}

	sub := NewTextSubmission("cust-1", "bot-1", "Title", "real content")
	if err := sub.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTextSubmission_DefaultTitle(t *testing.T) {
	sub := NewTextSubmission("cust-1", "bot-1", "", "content")
	if sub.Title != DefaultTextTitle {
		t.Errorf("expected default title %q, got %q", DefaultTextTitle, sub.Title)
	}

	sub = NewTextSubmission("cust-1", "bot-1", "FAQ", "content")
	if sub.Title != "FAQ" {
		t.Errorf("expected explicit title to be kept, got %q", sub.Title)
	}
}

func TestWebsiteSubmission_Validate(t *testing.T) {
	sub := NewWebsiteSubmission("cust-1", "bot-1", "  ", false)
	if sub.Validate() == nil {
		t.Error("expected rejection for blank URL")
	}

	// No URL-syntax validation client-side; malformed URLs go to the backend
	sub = NewWebsiteSubmission("cust-1", "bot-1", "not a url", true)
	if err := sub.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVideoSubmission_Validate(t *testing.T) {
	sub := NewVideoSubmission("cust-1", "bot-1", "")
	if sub.Validate() == nil {
		t.Error("expected rejection for blank URL")
	}

	sub = NewVideoSubmission("cust-1", "bot-1", "https://www.youtube.com/watch?v=abc")
	if err := sub.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestQASubmission_Synthesis(t *testing.T) {
	sub := NewQASubmission("cust-1", "bot-1", "Hours?", "9-5")

	if sub.Content != "Q: Hours?\n\nA: 9-5" {
		t.Errorf("unexpected synthesized content: %q", sub.Content)
	}
	if sub.Title != "Q&A: Hours?" {
		t.Errorf("unexpected synthesized title: %q", sub.Title)
	}
}

func TestQASubmission_TitleTruncation(t *testing.T) {
	question := strings.Repeat("a", 60)
	sub := NewQASubmission("cust-1", "bot-1", question, "answer")

	want := "Q&A: " + strings.Repeat("a", 50) + "..."
	if sub.Title != want {
		t.Errorf("expected truncated title %q, got %q", want, sub.Title)
	}

	// Exactly at the limit: no suffix
	question = strings.Repeat("b", 50)
	sub = NewQASubmission("cust-1", "bot-1", question, "answer")
	if strings.HasSuffix(sub.Title, "...") {
		t.Errorf("did not expect truncation suffix for 50-char question: %q", sub.Title)
	}
}

func TestQASubmission_Validate(t *testing.T) {
	if NewQASubmission("c", "b", " ", "answer").Validate() == nil {
		t.Error("expected rejection for blank question")
	}
	if NewQASubmission("c", "b", "question", "\t").Validate() == nil {
		t.Error("expected rejection for blank answer")
	}
	if err := NewQASubmission("c", "b", "q", "a").Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
