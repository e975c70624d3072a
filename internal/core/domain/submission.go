package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// SubmissionKind identifies the variant of an upload submission
type SubmissionKind string

const (
	SubmissionFile    SubmissionKind = "file"
	SubmissionText    SubmissionKind = "text"
	SubmissionWebsite SubmissionKind = "website"
	SubmissionVideo   SubmissionKind = "youtube"
	SubmissionQA      SubmissionKind = "qa"
)

// MaxFileSize is the upload size limit for file submissions.
const MaxFileSize = 20 << 20 // 20 MiB

// DefaultTextTitle is used when a text submission has no title.
const DefaultTextTitle = "Untitled Document"

// qaTitleLimit caps the question length used in a synthesized Q&A title.
const qaTitleLimit = 50

// allowedMediaTypes are the declared media types accepted for file uploads.
var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword": true,
	"text/plain":         true,
	"text/csv":           true,
}

// allowedExtensions is the fallback for missing or incorrect media-type metadata.
var allowedExtensions = regexp.MustCompile(`(?i)\.(pdf|docx?|txt|csv)$`)

// UploadSubmission is a transient content submission. It is created on
// operator action, validated, dispatched once, and discarded after the
// terminal success or failure notification. It is never retried automatically.
type UploadSubmission struct {
	Kind       SubmissionKind
	CustomerID string
	BotID      string

	// File variant
	FileName  string
	FileSize  int64
	MediaType string
	File      []byte

	// Text and Q&A variants
	Title   string
	Content string

	// Q&A variant inputs (Title and Content hold the synthesized form)
	Question string
	Answer   string

	// Website and video variants
	URL      string
	FullSite bool
}

// NewFileSubmission creates a file upload submission.
func NewFileSubmission(customerID, botID, fileName, mediaType string, content []byte) *UploadSubmission {
	return &UploadSubmission{
		Kind:       SubmissionFile,
		CustomerID: customerID,
		BotID:      botID,
		FileName:   fileName,
		FileSize:   int64(len(content)),
		MediaType:  mediaType,
		File:       content,
	}
}

// NewTextSubmission creates a pasted-text submission. An empty title
// defaults to "Untitled Document".
func NewTextSubmission(customerID, botID, title, content string) *UploadSubmission {
	if title == "" {
		title = DefaultTextTitle
	}
	return &UploadSubmission{
		Kind:       SubmissionText,
		CustomerID: customerID,
		BotID:      botID,
		Title:      title,
		Content:    content,
	}
}

// NewWebsiteSubmission creates a website scrape submission.
func NewWebsiteSubmission(customerID, botID, url string, fullSite bool) *UploadSubmission {
	return &UploadSubmission{
		Kind:       SubmissionWebsite,
		CustomerID: customerID,
		BotID:      botID,
		URL:        url,
		FullSite:   fullSite,
	}
}

// NewVideoSubmission creates a video transcript submission.
func NewVideoSubmission(customerID, botID, url string) *UploadSubmission {
	return &UploadSubmission{
		Kind:       SubmissionVideo,
		CustomerID: customerID,
		BotID:      botID,
		URL:        url,
	}
}

// NewQASubmission creates a Q&A submission. The content is synthesized as
// "Q: <question>\n\nA: <answer>" and the title as "Q&A: <question>" with the
// question truncated to 50 characters plus "...".
func NewQASubmission(customerID, botID, question, answer string) *UploadSubmission {
	return &UploadSubmission{
		Kind:       SubmissionQA,
		CustomerID: customerID,
		BotID:      botID,
		Question:   question,
		Answer:     answer,
		Title:      "Q&A: " + truncate(question, qaTitleLimit),
		Content:    fmt.Sprintf("Q: %s\n\nA: %s", question, answer),
	}
}

// Validate applies the pre-dispatch rules for this submission variant.
// It performs no I/O; a nil return means the submission may be dispatched.
func (s *UploadSubmission) Validate() error {
	switch s.Kind {
	case SubmissionFile:
		if s.FileSize > MaxFileSize {
			return NewValidationError("File too large. Maximum size is 20 MB.")
		}
		if !allowedMediaTypes[s.MediaType] && !allowedExtensions.MatchString(s.FileName) {
			return NewValidationError("Unsupported file type. Use PDF, Word, TXT, or CSV.")
		}
	case SubmissionText:
		if strings.TrimSpace(s.Content) == "" {
			return NewValidationError("Please enter some content")
		}
	case SubmissionWebsite:
		if strings.TrimSpace(s.URL) == "" {
			return NewValidationError("Please enter a URL")
		}
	case SubmissionVideo:
		if strings.TrimSpace(s.URL) == "" {
			return NewValidationError("Please enter a YouTube URL")
		}
	case SubmissionQA:
		if strings.TrimSpace(s.Question) == "" || strings.TrimSpace(s.Answer) == "" {
			return NewValidationError("Please provide both a question and an answer")
		}
	default:
		return NewValidationError(fmt.Sprintf("unknown submission kind: %s", s.Kind))
	}
	return nil
}

// truncate shortens s to limit runes, appending "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
