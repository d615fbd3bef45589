// SPDX-License-Identifier: Apache-2.0

// Package httpapi serves the recognition engine over HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext"
	"github.com/invoicewiz/invoice-template-mcp/internal/ocrtext/decoders"
	"github.com/invoicewiz/invoice-template-mcp/internal/recognition"
)

// Handler holds the dependencies of the HTTP routes.
type Handler struct {
	engine   *recognition.Engine
	pipeline *ocrtext.Pipeline
	logger   *slog.Logger
}

// NewRouter builds a gin engine with every route registered.
func NewRouter(engine *recognition.Engine, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{engine: engine, pipeline: decoders.DefaultPipeline(), logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests)
	r.POST("/recognize", h.recognize)
	r.POST("/categorize", h.categorize)
	r.GET("/templates", h.listTemplates)
	r.GET("/templates/:id", h.getTemplate)
	r.PUT("/templates/:id", h.putTemplate)
	r.DELETE("/templates/:id", h.deleteTemplate)
	return r
}

func (h *Handler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.logger.Debug("http request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}

type recognizeRequest struct {
	OCRText    string  `json:"ocr_text"`
	Format     string  `json:"format"`
	VendorName *string `json:"vendor_name"`
}

type recognizeResponse struct {
	Matched  bool                       `json:"matched"`
	Match    *recognition.TemplateMatch `json:"match,omitempty"`
	Category string                     `json:"category"`
}

func (h *Handler) recognize(c *gin.Context) {
	var req recognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.pipeline.Text(c.Request.Context(), ocrtext.Source{
		Content: []byte(req.OCRText),
		Format:  req.Format,
		ID:      "request",
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inv := invoiceFor(req.VendorName)
	match, ok := h.engine.Recognize(text, inv)
	c.JSON(http.StatusOK, recognizeResponse{
		Matched:  ok,
		Match:    match,
		Category: h.engine.Categorize(match, inv),
	})
}

type categorizeRequest struct {
	TemplateID string  `json:"template_id"`
	VendorName *string `json:"vendor_name"`
}

func (h *Handler) categorize(c *gin.Context) {
	var req categorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var match *recognition.TemplateMatch
	if req.TemplateID != "" {
		match = &recognition.TemplateMatch{TemplateID: req.TemplateID}
	}
	c.JSON(http.StatusOK, gin.H{"category": h.engine.Categorize(match, invoiceFor(req.VendorName))})
}

func (h *Handler) listTemplates(c *gin.Context) {
	if category, ok := c.GetQuery("category"); ok {
		c.JSON(http.StatusOK, h.engine.TemplatesByCategory(category))
		return
	}
	c.JSON(http.StatusOK, h.engine.Templates())
}

func (h *Handler) getTemplate(c *gin.Context) {
	t, ok := h.engine.Template(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found", "code": recognition.CodeTemplateNotFound})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) putTemplate(c *gin.Context) {
	var t recognition.Template
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.ID == "" {
		t.ID = c.Param("id")
	}
	if t.ID != c.Param("id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template id does not match path"})
		return
	}

	replaced, err := h.engine.PutTemplate(t)
	if err != nil {
		status := http.StatusInternalServerError
		if recognition.IsInvalidTemplate(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": recognition.CodeOf(err)})
		return
	}

	status := http.StatusCreated
	if replaced {
		status = http.StatusOK
	}
	c.JSON(status, t)
}

func (h *Handler) deleteTemplate(c *gin.Context) {
	if !h.engine.RemoveTemplate(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found", "code": recognition.CodeTemplateNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

func invoiceFor(vendorName *string) *recognition.Invoice {
	if vendorName == nil {
		return nil
	}
	return &recognition.Invoice{VendorName: vendorName}
}
