package http

import (
	_ "embed"
	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/salona-bot/internal/domain"
	websocketTransport "github.com/kahvecikaan/salona-bot/internal/transport/websocket"
	"net/http"
)

//go:embed swagger.yaml
var swaggerSpec []byte

func NewRouter(
	ch *ChatHandler,
	validator *domain.Validation,
	logger hclog.Logger,
	wsh *websocketTransport.Handler,
	corsConfig *CORSConfig,
) *mux.Router {
	router := mux.NewRouter()

	mw := NewMiddleware(logger, validator, corsConfig)

	// Apply global middleware
	router.Use(mw.RecoveryMiddleware)
	router.Use(mw.LoggingMiddleware)
	router.Use(mw.CORSMiddleware)
	router.Use(mw.ContentTypeMiddleware)

	router.HandleFunc("/health", ch.Health).Methods("GET")
	router.HandleFunc("/products_test", ch.SampleProducts).Methods("GET")
	if wsh != nil {
		router.HandleFunc("/ws", wsh.HandleWebSocket).Methods("GET")
	}

	// Routes requiring validation middleware (for request body validation)
	postRouter := router.Methods("POST").Subrouter()
	postRouter.HandleFunc("/simulate_dm", ch.SimulateDM)
	postRouter.Use(mw.ValidationMiddleware)

	// Preflight requests are answered by the CORS middleware once a route matches
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Documentation is gzipped for clients that accept it
	router.Handle("/swagger.yaml", handlers.CompressHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(swaggerSpec)
	}))).Methods("GET")

	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml", Title: "Salona DM Bot API"}
	router.Handle("/docs", handlers.CompressHandler(middleware.Redoc(swaggerOpts, nil))).Methods("GET")

	return router
}
