package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/api/middleware"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/compiler"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/logger"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/script"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type CompileHandler struct {
	svc *services.CompileService
}

func NewCompileHandler(svc *services.CompileService) *CompileHandler {
	return &CompileHandler{svc: svc}
}

// ScriptRequest carries a score script instead of a score document
type ScriptRequest struct {
	Script       string  `json:"script" yaml:"script" binding:"required"`
	Tempo        float64 `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Key          string  `json:"key,omitempty" yaml:"key,omitempty"`
	StartSection string  `json:"startSection,omitempty" yaml:"startSection,omitempty"`
	EndSection   string  `json:"endSection,omitempty" yaml:"endSection,omitempty"`
	Seed         *int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems"`
}

// Compile handles POST /api/v1/compile
func (h *CompileHandler) Compile(c *gin.Context) {
	var req models.CompileRequest
	if !bind(c, &req) {
		return
	}
	h.compile(c, req)
}

// CompileScript handles POST /api/v1/script/compile
func (h *CompileHandler) CompileScript(c *gin.Context) {
	var req ScriptRequest
	if !bind(c, &req) {
		return
	}

	s, err := script.Parse(c.Request.Context(), req.Script)
	if err != nil {
		log.Printf("❌ Script parse failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "script"})
		return
	}
	h.compile(c, models.CompileRequest{
		Score:        s,
		Tempo:        req.Tempo,
		Key:          req.Key,
		StartSection: req.StartSection,
		EndSection:   req.EndSection,
		Seed:         req.Seed,
	})
}

func (h *CompileHandler) compile(c *gin.Context, req models.CompileRequest) {
	userID, _ := middleware.GetUserIDFromGateway(c)
	caller := services.Caller{RequestID: c.GetString("request_id"), UserID: userID}

	out, err := h.svc.Compile(c.Request.Context(), req.Score, services.OptionsFrom(req), caller)
	if err != nil {
		respondError(c, err)
		return
	}
	if out.Cached {
		c.Header(cacheHeader, cacheHit)
	} else {
		c.Header(cacheHeader, cacheMiss)
	}
	c.JSON(http.StatusOK, out)
}

// Validate handles POST /api/v1/validate. Problems are a 200 response,
// only an unreadable body fails the request.
func (h *CompileHandler) Validate(c *gin.Context) {
	var s models.Score
	if !bind(c, &s) {
		return
	}
	problems := compiler.Validate(s)
	if problems == nil {
		problems = []string{}
	}
	c.JSON(http.StatusOK, ValidateResponse{Valid: len(problems) == 0, Problems: problems})
}

// Analyze handles POST /api/v1/analyze
func (h *CompileHandler) Analyze(c *gin.Context) {
	var s models.Score
	if !bind(c, &s) {
		return
	}
	summary, err := compiler.Analyze(s)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// History handles GET /api/v1/compilations
func (h *CompileHandler) History(c *gin.Context) {
	if !h.svc.HistoryEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Compile history is not configured"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	limit = min(limit, maxHistoryPageSize)
	userID, _ := middleware.GetUserIDFromGateway(c)

	records, err := h.svc.History(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"compilations": records, "count": len(records)})
}

// Compilation handles GET /api/v1/compilations/:hash
func (h *CompileHandler) Compilation(c *gin.Context) {
	if !h.svc.HistoryEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Compile history is not configured"})
		return
	}
	rec, err := h.svc.Lookup(c.Param("hash"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No compilation with this hash"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// InvalidateCache handles DELETE /api/v1/compilations/:hash/cache
func (h *CompileHandler) InvalidateCache(c *gin.Context) {
	if !h.svc.CacheEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Compile cache is not configured"})
		return
	}
	removed, err := h.svc.Invalidate(c.Request.Context(), c.Param("hash"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hash": c.Param("hash"), "removed": removed})
}

// bind decodes a JSON or YAML body depending on Content-Type. YAML goes
// through yaml.v3 so ordered track lists keep their custom decoding.
func bind(c *gin.Context, out any) bool {
	var err error
	if strings.Contains(c.ContentType(), "yaml") {
		err = bindYAML(c, out)
	} else {
		err = c.ShouldBindJSON(out)
	}
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large", "max_bytes": tooLarge.Limit})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}

func bindYAML(c *gin.Context, out any) error {
	data, err := c.GetRawData()
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(out)
}

// respondError maps compiler error kinds onto HTTP statuses
func respondError(c *gin.Context, err error) {
	kind := diag.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case diag.EmptyInput:
		status = http.StatusBadRequest
	case diag.MalformedNotation, diag.OutOfRange, diag.UnknownTheoryName,
		diag.MissingReference, diag.CyclicTransform:
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	} else {
		fields := logger.WithContext(c)
		fields["kind"] = string(kind)
		logger.Warn("Compile rejected", fields)
	}

	body := gin.H{"error": err.Error(), "request_id": c.GetString("request_id")}
	if kind != "" {
		body["kind"] = kind
	}
	c.JSON(status, body)
}
