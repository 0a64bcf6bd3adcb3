// Package backup exposes the snapshot subsystem over HTTP: creating and
// downloading backup artifacts, restoring from an uploaded or stored
// artifact, and shipping artifacts off-site.
package backup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wellspring-app/core/internal/config"
	"github.com/wellspring-app/core/internal/modules/snapshot"
	"github.com/wellspring-app/core/internal/pkg/response"
	"go.uber.org/zap"
)

const defaultS3PathTemplate = "backups/{Y}/{m}/{filename}"

// Handler handles backup/restore endpoints.
type Handler struct {
	exporter *snapshot.Exporter
	importer *snapshot.Importer
	cfg      *config.AppConfig
	logger   *zap.Logger
}

func NewHandler(exporter *snapshot.Exporter, importer *snapshot.Importer, cfg *config.AppConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{exporter: exporter, importer: importer, cfg: cfg, logger: logger.Named("Backup")}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/backups", authMW)

	g.GET("", h.list)
	g.GET("/new", h.createAndDownload)
	g.GET("/:filename", h.download)
	g.POST("", h.uploadAndRestore)
	g.POST("/rollback", h.uploadAndRestore)
	g.POST("/upload-to-s3", h.uploadToS3)
	g.PATCH("/rollback/:filename", h.rollback)
	g.PATCH("/:filename", h.rollback)
	g.DELETE("", h.delete)
	g.DELETE("/:filename", h.deleteOne)
}

func (h *Handler) backupDir() string {
	if h.cfg != nil && h.cfg.Backup.Dir != "" {
		return h.cfg.Backup.Dir
	}
	return "./backups"
}

type backupItem struct {
	Filename string `json:"filename"`
	Size     string `json:"size"`
}

// GET /backups
func (h *Handler) list(c *gin.Context) {
	items := listBackups(h.backupDir())
	c.JSON(http.StatusOK, gin.H{"data": items})
}

func listBackups(dir string) []backupItem {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return []backupItem{}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []backupItem{}
	}
	var items []backupItem
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		items = append(items, backupItem{
			Filename: e.Name(),
			Size:     formatSize(info.Size()),
		})
	}
	if items == nil {
		items = []backupItem{}
	}
	return items
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// GET /backups/new
func (h *Handler) createAndDownload(c *gin.Context) {
	artifact, err := h.CreateLocalArtifact(c.Request.Context(), time.Now())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	c.Data(http.StatusOK, "application/zip", artifact.Data)
}

// GET /backups/:filename
func (h *Handler) download(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	if !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	path := filepath.Join(h.backupDir(), filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}

// POST /backups and POST /backups/rollback
func (h *Handler) uploadAndRestore(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	h.restore(c, data)
}

// PATCH /backups/rollback/:filename
func (h *Handler) rollback(c *gin.Context) {
	filename := filepath.Base(c.Param("filename"))
	path := filepath.Join(h.backupDir(), filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	h.restore(c, data)
}

// restore runs the import pipeline and maps the outcome onto the HTTP
// envelope. A completely failed restore is a 400: either the upload was not a
// valid backup or its schema is incompatible, both are client-side facts.
func (h *Handler) restore(c *gin.Context, data []byte) {
	outcome := h.importer.RestoreFromBytes(c.Request.Context(), data)
	if !outcome.OverallSuccess {
		response.BadRequest(c, outcome.Message)
		return
	}
	response.OK(c, outcome)
}

// DELETE /backups
func (h *Handler) delete(c *gin.Context) {
	files := strings.TrimSpace(c.Query("files"))

	var body struct {
		Files string `json:"files"`
	}
	if files == "" {
		_ = c.ShouldBindJSON(&body)
		files = strings.TrimSpace(body.Files)
	}
	if files == "" {
		response.BadRequest(c, "missing files")
		return
	}

	for _, name := range strings.Split(files, ",") {
		name = strings.TrimSpace(filepath.Base(name))
		if name == "" || !strings.HasSuffix(name, ".zip") {
			continue
		}
		os.Remove(filepath.Join(h.backupDir(), name))
	}
	response.NoContent(c)
}

// DELETE /backups/:filename
func (h *Handler) deleteOne(c *gin.Context) {
	filename := strings.TrimSpace(filepath.Base(c.Param("filename")))
	if filename == "" || !strings.HasSuffix(filename, ".zip") {
		response.BadRequest(c, "invalid filename")
		return
	}
	_ = os.Remove(filepath.Join(h.backupDir(), filename))
	response.NoContent(c)
}

// Artifact is one backup file written to the local backup directory.
type Artifact struct {
	Filename string
	Path     string
	Data     []byte
}

// CreateLocalArtifact exports a snapshot, writes it to the backup directory
// and prunes old artifacts past the configured keep count.
func (h *Handler) CreateLocalArtifact(ctx context.Context, now time.Time) (*Artifact, error) {
	data, err := h.exporter.CreateSnapshotDocument(ctx)
	if err != nil {
		return nil, err
	}

	dir := h.backupDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("backup-%s.zip", now.Format("2006-01-02T15-04-05"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	if h.cfg != nil {
		h.PruneArtifacts(h.cfg.Backup.KeepCount)
	}

	return &Artifact{Filename: filename, Path: path, Data: data}, nil
}

// PruneArtifacts removes the oldest artifacts so at most keep remain.
// Filenames embed the creation timestamp, so lexical order is age order.
func (h *Handler) PruneArtifacts(keep int) {
	if keep <= 0 {
		return
	}
	dir := h.backupDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".zip") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) <= keep {
		return
	}
	sort.Strings(names)
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			h.logger.Warn("prune backup artifact failed", zap.String("filename", name), zap.Error(err))
		}
	}
}

// POST /backups/upload-to-s3
func (h *Handler) uploadToS3(c *gin.Context) {
	if h.cfg == nil {
		response.InternalError(c, fmt.Errorf("config is unavailable"))
		return
	}

	uploader, err := newS3Uploader(h.cfg.S3)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now()
	artifact, err := h.CreateLocalArtifact(c.Request.Context(), now)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	key := renderObjectKey(h.cfg.Backup.S3PathTemplate, artifact.Filename, now)
	if err := uploader.Upload(c.Request.Context(), key, artifact.Data, "application/zip"); err != nil {
		response.InternalError(c, err)
		return
	}

	response.NoContent(c)
}

func renderObjectKey(template, filename string, now time.Time) string {
	tpl := strings.TrimSpace(template)
	if tpl == "" {
		tpl = defaultS3PathTemplate
	}

	replacer := strings.NewReplacer(
		"{Y}", now.Format("2006"),
		"{m}", now.Format("01"),
		"{d}", now.Format("02"),
		"{H}", now.Format("15"),
		"{M}", now.Format("04"),
		"{s}", now.Format("05"),
		"{filename}", filename,
	)

	key := replacer.Replace(tpl)
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimSpace(strings.TrimPrefix(key, "/"))
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	if key == "" {
		return filename
	}
	return key
}
