// Package collections exposes the raw section payloads over HTTP. Clients
// read and replace a whole collection at a time; the payload travels in the
// same encoding the backup documents use.
package collections

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wellspring-app/core/internal/modules/snapshot"
	"github.com/wellspring-app/core/internal/pkg/response"
	"github.com/wellspring-app/core/internal/store"
)

// Handler handles collection read/replace endpoints.
type Handler struct{ store *store.Store }

func NewHandler(st *store.Store) *Handler { return &Handler{store: st} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/collections", authMW)

	g.GET("", h.listKeys)
	g.GET("/:key", h.get)
	g.PUT("/:key", h.put)
	g.DELETE("/:key", h.clear)
}

type keyItem struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
}

func kindName(kind snapshot.PayloadKind) string {
	switch kind {
	case snapshot.KindObject:
		return "object"
	case snapshot.KindScalarInt:
		return "int"
	case snapshot.KindScalarString:
		return "string"
	default:
		return "list"
	}
}

// GET /collections
func (h *Handler) listKeys(c *gin.Context) {
	items := make([]keyItem, 0, len(snapshot.Sections))
	for i := range snapshot.Sections {
		s := &snapshot.Sections[i]
		items = append(items, keyItem{Key: string(s.Key), Kind: kindName(s.Kind)})
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// sectionParam resolves :key against the registry. Installation-specific
// keys exist in the store but are not reachable over this surface.
func (h *Handler) sectionParam(c *gin.Context) (*snapshot.Section, bool) {
	key := snapshot.SectionKey(c.Param("key"))
	section, ok := snapshot.SectionByKey(key)
	if !ok {
		response.NotFound(c)
		return nil, false
	}
	return section, true
}

// GET /collections/:key
func (h *Handler) get(c *gin.Context) {
	section, ok := h.sectionParam(c)
	if !ok {
		return
	}
	raw, err := h.store.Load(c.Request.Context(), section.Key)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if raw == nil {
		response.OK(c, gin.H{"key": string(section.Key), "value": nil})
		return
	}
	response.OK(c, gin.H{"key": string(section.Key), "value": *raw})
}

// PUT /collections/:key — replace the whole collection. The body is the
// payload verbatim; it must decode as the section's record type.
func (h *Handler) put(c *gin.Context) {
	section, ok := h.sectionParam(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if !validPayload(section, body) {
		response.BadRequest(c, "payload does not match the collection's record shape")
		return
	}
	payload := string(body)
	if err := h.store.Save(c.Request.Context(), section.Key, &payload); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// DELETE /collections/:key — reset the collection to "no data".
func (h *Handler) clear(c *gin.Context) {
	section, ok := h.sectionParam(c)
	if !ok {
		return
	}
	if err := h.store.Save(c.Request.Context(), section.Key, nil); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func validPayload(section *snapshot.Section, body []byte) bool {
	switch section.Kind {
	case snapshot.KindScalarInt:
		var n int
		return json.Unmarshal(body, &n) == nil
	case snapshot.KindScalarString:
		return len(body) > 0
	default:
		_, err := section.DecodePayload(body)
		return err == nil
	}
}
