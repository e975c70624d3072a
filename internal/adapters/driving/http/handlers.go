package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// maxUploadBody bounds multipart request bodies: the file limit plus
// headroom for form fields.
const maxUploadBody = domain.MaxFileSize + 1<<20

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Document registry endpoints

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	botID := r.URL.Query().Get("botId")
	if botID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	docs, err := s.workspaceService.Load(r.Context(), auth.CustomerID, botID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if docs == nil {
		docs = []*domain.Document{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": docs})
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	botID := r.URL.Query().Get("botId")
	if botID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	writeJSON(w, http.StatusOK, s.workspaceService.Selection(auth.CustomerID, botID))
}

type selectionRequest struct {
	BotID      string `json:"botId"`
	DocumentID string `json:"documentId"`
}

func (s *Server) handleToggleSelection(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BotID == "" || req.DocumentID == "" {
		writeError(w, http.StatusBadRequest, "botId and documentId are required")
		return
	}

	if err := s.workspaceService.ToggleSelect(auth.CustomerID, req.BotID, req.DocumentID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.workspaceService.Selection(auth.CustomerID, req.BotID))
}

func (s *Server) handleSelectAll(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BotID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	s.workspaceService.SelectAll(auth.CustomerID, req.BotID)
	writeJSON(w, http.StatusOK, s.workspaceService.Selection(auth.CustomerID, req.BotID))
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BotID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	s.workspaceService.ClearSelection(auth.CustomerID, req.BotID)
	writeJSON(w, http.StatusOK, s.workspaceService.Selection(auth.CustomerID, req.BotID))
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	documentID := r.PathValue("id")
	botID := r.URL.Query().Get("botId")
	if botID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	count, err := s.bulkService.Apply(r.Context(), auth.CustomerID, botID, driving.BulkDelete, []string{documentID})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if count == 0 {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Content submission endpoints

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	if !s.sameTenant(w, auth, r.FormValue("customerId")) {
		return
	}
	botID := r.FormValue("botId")
	if botID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	mediaType := header.Header.Get("Content-Type")
	sub := domain.NewFileSubmission(auth.CustomerID, botID, header.Filename, mediaType, content)
	s.submit(w, r, sub)
}

type textRequest struct {
	CustomerID string `json:"customerId"`
	BotID      string `json:"botId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

func (s *Server) handleUploadText(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sameTenant(w, auth, req.CustomerID) {
		return
	}

	sub := domain.NewTextSubmission(auth.CustomerID, req.BotID, req.Title, req.Content)
	s.submit(w, r, sub)
}

type scrapeRequest struct {
	CustomerID string `json:"customerId"`
	BotID      string `json:"botId"`
	URL        string `json:"url"`
	FullSite   bool   `json:"fullSite"`
}

func (s *Server) handleScrapeWebsite(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sameTenant(w, auth, req.CustomerID) {
		return
	}

	sub := domain.NewWebsiteSubmission(auth.CustomerID, req.BotID, req.URL, req.FullSite)
	s.submit(w, r, sub)
}

func (s *Server) handleExtractVideo(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sameTenant(w, auth, req.CustomerID) {
		return
	}

	sub := domain.NewVideoSubmission(auth.CustomerID, req.BotID, req.URL)
	s.submit(w, r, sub)
}

type qaRequest struct {
	CustomerID string `json:"customerId"`
	BotID      string `json:"botId"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

func (s *Server) handleUploadQA(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sameTenant(w, auth, req.CustomerID) {
		return
	}

	sub := domain.NewQASubmission(auth.CustomerID, req.BotID, req.Question, req.Answer)
	s.submit(w, r, sub)
}

// submit runs a submission through the ingestion service and writes the
// terminal outcome.
func (s *Server) submit(w http.ResponseWriter, r *http.Request, sub *domain.UploadSubmission) {
	if sub.BotID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	outcome, err := s.ingestionService.Submit(r.Context(), sub)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

// Bulk operation endpoints

type bulkRequest struct {
	CustomerID  string   `json:"customerId"`
	BotID       string   `json:"botId"`
	DocumentIDs []string `json:"documentIds"`
}

func (s *Server) handleRetrain(w http.ResponseWriter, r *http.Request) {
	s.handleBulk(w, r, driving.BulkRetrain)
}

func (s *Server) handleDeleteBulk(w http.ResponseWriter, r *http.Request) {
	s.handleBulk(w, r, driving.BulkDelete)
}

func (s *Server) handleBulk(w http.ResponseWriter, r *http.Request, op driving.BulkOperation) {
	auth := GetAuthContext(r.Context())

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sameTenant(w, auth, req.CustomerID) {
		return
	}
	if req.BotID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	count, err := s.bulkService.Apply(r.Context(), auth.CustomerID, req.BotID, op, req.DocumentIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Retrain schedule endpoints

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	botID := r.PathValue("botId")

	schedule, err := s.scheduleService.Get(r.Context(), auth.CustomerID, botID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if schedule.CustomerID != auth.CustomerID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

type scheduleRequest struct {
	CustomerID string `json:"customerId"`
	BotID      string `json:"botId"`
	Frequency  string `json:"frequency"`
	Time       string `json:"time"`
}

func (s *Server) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !s.sameTenant(w, auth, req.CustomerID) {
		return
	}
	if req.BotID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	schedule, err := s.scheduleService.Save(r.Context(), auth.CustomerID, req.BotID,
		domain.Frequency(req.Frequency), req.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, schedule)
}

// Notification endpoint

func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	auth := GetAuthContext(r.Context())
	botID := r.URL.Query().Get("botId")
	if botID == "" {
		writeError(w, http.StatusBadRequest, "botId is required")
		return
	}

	notification := s.notificationService.Active(auth.CustomerID, botID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"notification": notification})
}

// Helper functions

// sameTenant rejects requests whose body names another tenant. An empty
// customerId falls back to the token's.
func (s *Server) sameTenant(w http.ResponseWriter, auth *domain.AuthContext, customerID string) bool {
	if customerID != "" && customerID != auth.CustomerID {
		writeError(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Reason)
		return
	}

	var berr *domain.BackendError
	if errors.As(err, &berr) {
		writeError(w, http.StatusBadGateway, berr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrUploadInFlight), errors.Is(err, domain.ErrBulkInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		writeError(w, http.StatusGatewayTimeout, "backend timed out")
	case errors.Is(err, domain.ErrBackendUnavailable):
		writeError(w, http.StatusBadGateway, "backend unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
