package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
	"github.com/open-ecommerce/helptext-sub000/pkg/middleware"
)

// maxWebhookBody bounds inbound payloads; SMS webhooks are tiny.
const maxWebhookBody = 64 * 1024

// MessageRouter defines the interface that the HTTP layer needs to route
// inbound messages.
type MessageRouter interface {
	Route(event *models.InboundEvent) (*models.RouteResult, error)
}

type Router struct {
	engine           *gin.Engine
	service          MessageRouter
	inboundAccountID string
}

// NewRouter wires the HTTP surface: the transport webhook, the internal
// compose endpoint and health. inboundAccountID is the transport account id
// expected on webhook payloads; empty disables the check.
func NewRouter(service MessageRouter, inboundAccountID string) *Router {
	if service == nil {
		panic("message router cannot be nil")
	}

	r := &Router{
		engine:           gin.New(),
		service:          service,
		inboundAccountID: inboundAccountID,
	}

	r.engine.Use(gin.Recovery())
	r.engine.Use(middleware.RequestIDMiddleware())
	r.engine.Use(middleware.SecurityHeadersMiddleware())
	r.engine.Use(middleware.RequestSizeLimitMiddleware(maxWebhookBody))
	r.engine.Use(middleware.AuditLogMiddleware())

	r.engine.GET("/health", r.handleHealth)
	r.engine.NoRoute(r.handleNotFound)

	r.engine.POST("/webhook/sms", r.handleWebhook)
	r.engine.POST("/api/messages", r.handleCompose)

	for _, method := range []string{
		http.MethodGet, http.MethodPut, http.MethodDelete,
		http.MethodPatch, http.MethodHead, http.MethodOptions,
	} {
		r.engine.Handle(method, "/webhook/sms", r.handleMethodNotAllowed)
		r.engine.Handle(method, "/api/messages", r.handleMethodNotAllowed)
	}

	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func (r *Router) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (r *Router) handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

func (r *Router) handleMethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
}

// handleWebhook accepts the carrier's form-encoded inbound payload and
// normalizes it into an InboundEvent.
func (r *Router) handleWebhook(c *gin.Context) {
	accountID := c.PostForm("AccountSid")
	if r.inboundAccountID != "" && accountID != r.inboundAccountID {
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown transport account"})
		return
	}

	body := c.PostForm("Body")
	if strings.TrimSpace(body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message body is required"})
		return
	}

	event := &models.InboundEvent{
		PhoneNumber:       c.PostForm("From"),
		Body:              body,
		ProviderMessageID: c.PostForm("MessageSid"),
	}

	result, err := r.service.Route(event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to route message"})
		return
	}

	c.JSON(http.StatusOK, result)
}

type composeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Body        string `json:"body"`
	CaseID      int64  `json:"caseId"`
}

// handleCompose accepts internally generated messages (UI "send as helper",
// test sends). A synthetic phone is generated downstream when none is given.
func (r *Router) handleCompose(c *gin.Context) {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "unsupported media type"})
		return
	}

	var req composeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message body is required"})
		return
	}

	event := &models.InboundEvent{
		PhoneNumber:       req.PhoneNumber,
		Body:              req.Body,
		ProviderMessageID: uuid.New().String(),
		CaseID:            req.CaseID,
	}

	result, err := r.service.Route(event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to route message"})
		return
	}

	c.JSON(http.StatusOK, result)
}
