// Package journal renders journal entries. Entry text is markdown; the
// render endpoints turn it into HTML with goldmark so clients without a
// markdown engine can display entries.
package journal

import (
	"bytes"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wellspring-app/core/internal/models"
	"github.com/wellspring-app/core/internal/modules/snapshot"
	"github.com/wellspring-app/core/internal/pkg/response"
	"github.com/wellspring-app/core/internal/store"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Handler handles journal read and render endpoints.
type Handler struct{ store *store.Store }

func NewHandler(st *store.Store) *Handler { return &Handler{store: st} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/journal", authMW)

	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.GET("/render/:id", h.render)
	g.POST("/preview", h.preview)
}

func (h *Handler) entries(c *gin.Context) ([]models.JournalEntry, bool) {
	items, err := store.List[models.JournalEntry](c.Request.Context(), h.store, snapshot.SectionJournalEntries)
	if err != nil {
		response.InternalError(c, err)
		return nil, false
	}
	return items, true
}

// GET /journal
func (h *Handler) list(c *gin.Context) {
	items, ok := h.entries(c)
	if !ok {
		return
	}
	response.OK(c, items)
}

func findEntry(items []models.JournalEntry, id string) *models.JournalEntry {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}

// GET /journal/:id
func (h *Handler) get(c *gin.Context) {
	items, ok := h.entries(c)
	if !ok {
		return
	}
	entry := findEntry(items, c.Param("id"))
	if entry == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, entry)
}

// GET /journal/render/:id
func (h *Handler) render(c *gin.Context) {
	items, ok := h.entries(c)
	if !ok {
		return
	}
	entry := findEntry(items, c.Param("id"))
	if entry == nil {
		response.NotFound(c)
		return
	}
	rendered, err := renderMarkdown(entry.Text)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{
		"id":    entry.ID,
		"title": entry.Title,
		"html":  rendered,
	})
}

// POST /journal/preview — render arbitrary markdown for the editor.
func (h *Handler) preview(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rendered, err := renderMarkdown(body.Text)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"html": rendered})
}

func renderMarkdown(text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
