package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cinepix/internal/cache"
	"cinepix/internal/config"
	"cinepix/internal/external"
	"cinepix/internal/handlers"
	"cinepix/internal/messaging"
	"cinepix/internal/middleware"
	"cinepix/internal/service"
)

// Server wires the purchase session service behind its HTTP surface
type Server struct {
	router   *gin.Engine
	config   *config.Config
	store    *cache.RedisStore
	nats     *messaging.NATSClient
	services *service.Services
}

// NewServer builds the full object graph: persistence sink, event
// publisher, external clients, the ticket service, and the router.
func NewServer(cfg *config.Config) *Server {
	gin.SetMode(cfg.GinMode)

	store, err := cache.NewRedisStore(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}

	pixClient := external.NewPixClient(cfg.Payment)
	ticketingClient := external.NewTicketingClient(cfg.Ticketing)

	services := service.NewServices(pixClient, ticketingClient, store, natsClient)

	// Restore the durable projection before taking traffic
	if err := services.Tickets.Rehydrate(context.Background()); err != nil {
		log.Printf("Failed to rehydrate purchase state: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	server := &Server{
		router:   router,
		config:   cfg,
		store:    store,
		nats:     natsClient,
		services: services,
	}

	server.setupRoutes()

	return server
}

// setupRoutes registers all API routes
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	{
		api.GET("/state", h.GetState)

		selection := api.Group("/selection")
		{
			selection.POST("", h.SaveSelection)
			selection.PATCH("/reset", h.ResetSelection)
		}

		api.POST("/purchase/confirm", h.ConfirmPurchase)

		payments := api.Group("/payments")
		{
			payments.POST("/pix", h.RequestPixPayment)
			payments.GET("/pix/status", h.CheckPixPaymentStatus)
		}

		api.POST("/tickets", h.PostNewTicket)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cinepix-api",
		"version": "1.0.0",
	})
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter exposes the router for testing
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup closes external connections
func (s *Server) Cleanup() error {
	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			log.Printf("Error closing NATS connection: %v", err)
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
			return err
		}
	}

	return nil
}
