package domain

import "time"

// Document represents one unit of ingested training content for a bot
type Document struct {
	ID              string     `json:"id"`
	BotID           string     `json:"bot_id"`
	CustomerID      string     `json:"customer_id"`
	Title           string     `json:"title"`
	ContentType     string     `json:"content_type"`
	SourceURL       string     `json:"source_url,omitempty"` // only for website/video documents
	CharCount       *int       `json:"char_count,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	LastRetrainedAt *time.Time `json:"last_retrained_at,omitempty"`
}

// Known content types. The set is closed on the backend side; the core only
// maps them to display labels and degrades gracefully for anything else.
const (
	ContentTypePDF     = "pdf"
	ContentTypeWord    = "word"
	ContentTypeDocx    = "docx"
	ContentTypeText    = "text"
	ContentTypeCSV     = "csv"
	ContentTypeWebsite = "website"
	ContentTypeYouTube = "youtube"
	ContentTypeQA      = "qa"
)

var contentTypeLabels = map[string]string{
	ContentTypePDF:     "PDF",
	ContentTypeWord:    "Word",
	ContentTypeDocx:    "Word",
	ContentTypeText:    "Text",
	ContentTypeCSV:     "CSV",
	ContentTypeWebsite: "Website",
	ContentTypeYouTube: "YouTube",
	ContentTypeQA:      "Q&A",
}

// ContentTypeLabel returns the display label for a content type.
// Unknown values fall back to the raw value, or "Unknown" when empty.
func ContentTypeLabel(contentType string) string {
	if label, ok := contentTypeLabels[contentType]; ok {
		return label
	}
	if contentType == "" {
		return "Unknown"
	}
	return contentType
}

// URLBacked reports whether the document was derived from a URL and is
// therefore eligible for scheduled re-ingestion.
func (d *Document) URLBacked() bool {
	return d.SourceURL != "" &&
		(d.ContentType == ContentTypeWebsite || d.ContentType == ContentTypeYouTube)
}
