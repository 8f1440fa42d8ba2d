package http

import (
	"encoding/json"
	"errors"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	"github.com/kahvecikaan/salona-bot/internal/service"
	"net/http"
)

type ChatHandler struct {
	chatService     service.ChatService
	catalogLocation string
	logger          hclog.Logger
}

func NewChatHandler(cs service.ChatService, catalogLocation string, log hclog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService:     cs,
		catalogLocation: catalogLocation,
		logger:          log,
	}
}

// Health handles GET /health
//
// swagger:route GET /health health health
//
// Reports that the server is up. It never touches the catalog.
//
// Responses:
//
//	200: healthResponse
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// SampleProducts handles GET /products_test
//
// swagger:route GET /products_test products sampleProducts
//
// Returns a few catalog rows as [name, price] pairs.
//
// Responses:
//
//	200: sampleResponse
//	500: errorResponse
//	503: errorResponse
func (h *ChatHandler) SampleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.chatService.SampleProducts(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Database not found at: " + h.catalogLocation})
			return
		}

		h.logger.Error("Error getting product sample", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	if products == nil {
		products = []*domain.ProductSummary{}
	}
	writeJSON(w, http.StatusOK, SampleResponse{SampleProducts: products})
}

// SimulateDM handles POST /simulate_dm
//
// swagger:route POST /simulate_dm messages simulateDM
//
// Answers a direct message using the product catalog and the language model.
//
// Responses:
//
//	200: replyResponse
//	400: errorResponse
//	422: validationErrorResponse
//	500: internalErrorResponse
func (h *ChatHandler) SimulateDM(w http.ResponseWriter, r *http.Request) {
	// Retrieve the validated message from the context
	message, ok := r.Context().Value(ContextKeyMessage).(*domain.DirectMessage)
	if !ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid message data"})
		return
	}

	reply, err := h.chatService.Reply(r.Context(), message)
	if err != nil {
		h.logger.Error("Error replying to message", "message_id", message.MessageID, "error", err)
		writeJSON(w, http.StatusInternalServerError, InternalErrorResponse{Detail: err.Error()})
		return
	}

	h.logger.Info("Replied to message", "sender_id", message.SenderID, "message_id", message.MessageID, "outcome", reply.Outcome)
	writeJSON(w, http.StatusOK, reply)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
