package lookapp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrPergite/lookapp-sub001/shoppinglist"
	"github.com/MrPergite/lookapp-sub001/wardrobe"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ChatHTTPRequest is the HTTP request body for chat.
type ChatHTTPRequest struct {
	SessionID       string `json:"sessionId,omitempty"`
	Message         string `json:"message,omitempty"`
	Image           string `json:"image,omitempty"`
	UsedItems       *bool  `json:"usedItems,omitempty"`
	Personalization *bool  `json:"personalization,omitempty"`
}

// ChatHTTPResponse is the HTTP response body for chat and load-more.
type ChatHTTPResponse struct {
	SessionID string            `json:"sessionId"`
	Group     ConversationGroup `json:"group"`
	State     State             `json:"state"`
}

// LoadMoreHTTPRequest is the HTTP request body for revealing more products.
type LoadMoreHTTPRequest struct {
	SessionID string `json:"sessionId"`
	GroupID   string `json:"groupId"`
}

// SaveItemHTTPRequest is the HTTP request body for saving a product.
type SaveItemHTTPRequest struct {
	Product Product `json:"product"`
}

// AddGarmentHTTPRequest is the HTTP request body for adding a garment.
type AddGarmentHTTPRequest struct {
	Category        string `json:"category"`
	Brand           string `json:"brand"`
	Name            string `json:"name"`
	Image           string `json:"image"`
	SourceProductID string `json:"sourceProductId,omitempty"`
}

// ErrorResponse is the HTTP error response body.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// newHTTPRouter creates the chi router with all middleware and routes.
func newHTTPRouter(sdk *SDK) *chi.Mux {
	cfg := sdk.config
	r := chi.NewRouter()

	// Middleware stack
	r.Use(requestIDMiddleware)
	r.Use(recoveryMiddleware(sdk.logger))
	r.Use(loggingMiddleware(sdk.logger))
	r.Use(chimiddleware.RealIP)
	r.Use(timeoutMiddleware(cfg.RequestTimeout))
	r.Use(bodySizeLimitMiddleware(cfg.MaxRequestBodySize))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	h := &httpHandlers{sdk: sdk}

	// Routes
	r.Get("/health", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", h.handleChat)
		r.Post("/chat/more", h.handleLoadMore)
		r.Get("/chat/{sessionID}", h.handleGetSession)
		r.Delete("/chat/{sessionID}", h.handleDeleteSession)

		r.Get("/shopping-list", h.handleListSaved)
		r.Post("/shopping-list", h.handleSaveItem)
		r.Delete("/shopping-list/{productID}", h.handleRemoveSaved)

		r.Get("/wardrobe", h.handleListGarments)
		r.Post("/wardrobe", h.handleAddGarment)
		r.Delete("/wardrobe/{garmentID}", h.handleRemoveGarment)

		r.Post("/tryon", h.handleTryOnSubmit)
		r.Get("/tryon/{jobID}", h.handleTryOnResult)
	})

	return r
}

type httpHandlers struct {
	sdk *SDK
}

func (h *httpHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *httpHandlers) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", ErrCodeValidation)
		return
	}

	if req.Message == "" && req.Image == "" {
		respondError(w, http.StatusBadRequest, "Message or image is required", ErrCodeValidation)
		return
	}
	if len(req.Message) > h.sdk.config.MaxMessageLength {
		respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Message exceeds maximum length of %d characters", h.sdk.config.MaxMessageLength),
			ErrCodeValidation)
		return
	}

	session := h.sdk.Session(req.SessionID)
	applyToggles(session, req)

	result, err := h.sdk.Chat(r.Context(), session.ID, SearchQuery{
		Text:  req.Message,
		Image: req.Image,
	})
	if err != nil && !errors.Is(err, ErrGatewayRefusal) {
		h.sdk.logger.Error("chat request failed", "error", err)
		h.respondSDKError(w, err)
		return
	}

	// A gateway refusal is a normal conversational outcome; the group
	// carries the declining AI message and the surfaced error.
	respondJSON(w, http.StatusOK, ChatHTTPResponse{
		SessionID: result.SessionID,
		Group:     result.Group,
		State:     result.State,
	})
}

// applyToggles reconciles the request's preference flags against the
// session's current state before the search runs.
func applyToggles(session *Session, req ChatHTTPRequest) {
	state := session.Store.State()
	if req.UsedItems != nil && *req.UsedItems != state.UsedItems {
		session.Store.Dispatch(ToggleUsedItems{})
	}
	if req.Personalization != nil && *req.Personalization != state.Personalization {
		session.Store.Dispatch(TogglePersonalization{})
	}
}

func (h *httpHandlers) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	var req LoadMoreHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", ErrCodeValidation)
		return
	}
	if req.SessionID == "" || req.GroupID == "" {
		respondError(w, http.StatusBadRequest, "sessionId and groupId are required", ErrCodeValidation)
		return
	}

	result, err := h.sdk.LoadMore(req.SessionID, req.GroupID)
	if err != nil {
		h.respondSDKError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ChatHTTPResponse{
		SessionID: result.SessionID,
		Group:     result.Group,
		State:     result.State,
	})
}

func (h *httpHandlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	state, err := h.sdk.SessionState(sessionID)
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, state)
}

func (h *httpHandlers) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.sdk.ResetSession(sessionID); err != nil {
		h.respondSDKError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *httpHandlers) handleListSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	items, err := h.sdk.ShoppingList().List(r.Context(), userID)
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	if items == nil {
		items = []shoppinglist.Item{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *httpHandlers) handleSaveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req SaveItemHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", ErrCodeValidation)
		return
	}
	if req.Product.ID == "" {
		respondError(w, http.StatusBadRequest, "product.id is required", ErrCodeValidation)
		return
	}

	item := shoppinglist.Item{
		UserID:      userID,
		ProductID:   req.Product.ID,
		Brand:       req.Product.Brand,
		Name:        req.Product.Name,
		Price:       req.Product.Price,
		Image:       req.Product.Image,
		URL:         req.Product.URL,
		ProductInfo: req.Product.ProductInfo,
		SavedAt:     time.Now(),
	}
	if err := h.sdk.ShoppingList().Save(r.Context(), item); err != nil {
		h.respondSDKError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *httpHandlers) handleRemoveSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productID")

	err := h.sdk.ShoppingList().Remove(r.Context(), userID, productID)
	if errors.Is(err, shoppinglist.ErrItemNotFound) {
		respondError(w, http.StatusNotFound, "Item not found", ErrCodeNotFound)
		return
	}
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *httpHandlers) handleListGarments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	garments, err := h.sdk.Wardrobe().List(r.Context(), userID, wardrobe.Filter{
		Category: r.URL.Query().Get("category"),
	})
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	if garments == nil {
		garments = []wardrobe.Garment{}
	}
	respondJSON(w, http.StatusOK, garments)
}

func (h *httpHandlers) handleAddGarment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddGarmentHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", ErrCodeValidation)
		return
	}
	if req.Image == "" {
		respondError(w, http.StatusBadRequest, "image is required", ErrCodeValidation)
		return
	}

	garment := wardrobe.Garment{
		ID:              NewProductID(),
		UserID:          userID,
		Category:        req.Category,
		Brand:           req.Brand,
		Name:            req.Name,
		Image:           req.Image,
		SourceProductID: req.SourceProductID,
		AddedAt:         time.Now(),
	}
	if err := h.sdk.Wardrobe().Add(r.Context(), garment); err != nil {
		h.respondSDKError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, garment)
}

func (h *httpHandlers) handleRemoveGarment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	garmentID := chi.URLParam(r, "garmentID")

	err := h.sdk.Wardrobe().Remove(r.Context(), userID, garmentID)
	if errors.Is(err, wardrobe.ErrGarmentNotFound) {
		respondError(w, http.StatusNotFound, "Garment not found", ErrCodeNotFound)
		return
	}
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *httpHandlers) handleTryOnSubmit(w http.ResponseWriter, r *http.Request) {
	if h.sdk.TryOn() == nil {
		respondError(w, http.StatusNotFound, "Try-on is not configured", ErrCodeNotFound)
		return
	}

	var req TryOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", ErrCodeValidation)
		return
	}

	job, err := h.sdk.TryOn().Submit(r.Context(), req)
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, job)
}

func (h *httpHandlers) handleTryOnResult(w http.ResponseWriter, r *http.Request) {
	if h.sdk.TryOn() == nil {
		respondError(w, http.StatusNotFound, "Try-on is not configured", ErrCodeNotFound)
		return
	}

	job, err := h.sdk.TryOn().Result(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		h.respondSDKError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, job)
}

// requireUserID pulls the caller identity from the X-User-ID header,
// replying 401 when it is missing.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "X-User-ID header is required", ErrCodeAuth)
		return "", false
	}
	return userID, true
}

// respondSDKError maps a coded error onto an HTTP status.
func (h *httpHandlers) respondSDKError(w http.ResponseWriter, err error) {
	var sdkErr *Error
	if !errors.As(err, &sdkErr) {
		respondError(w, http.StatusInternalServerError, "An internal error occurred", ErrCodeInternal)
		return
	}

	status := http.StatusInternalServerError
	switch sdkErr.Code {
	case ErrCodeValidation:
		status = http.StatusBadRequest
	case ErrCodeNotFound:
		status = http.StatusNotFound
	case ErrCodeAuth:
		status = http.StatusUnauthorized
	case ErrCodeGateway:
		status = http.StatusBadGateway
	case ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	respondJSON(w, status, ErrorResponse{
		Error:   sdkErr.Message,
		Code:    sdkErr.Code,
		Details: sdkErr.Details,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}
