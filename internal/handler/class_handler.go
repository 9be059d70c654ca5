package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/export"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/response"
	"github.com/worldsacross/tutor-viewer/internal/service"
)

// ClassHandler serves the class (booking) views.
type ClassHandler struct {
	classService *service.ClassService
	log          zerolog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService, log zerolog.Logger) *ClassHandler {
	return &ClassHandler{
		classService: classService,
		log:          log.With().Str("component", "class_handler").Logger(),
	}
}

// ListClasses godoc
// GET /api/v1/classes?search=&page=
// Stats always cover the whole collection, not the filtered view.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	stale, ok := visit(c, h.classService, h.log)
	if !ok {
		return
	}
	respondPage(c, h.classService.Header(), "classes", h.classService.Query(q), stale, gin.H{
		"stats": h.classService.Stats(),
	})
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	if _, ok := visit(c, h.classService, h.log); !ok {
		return
	}
	class, found := h.classService.Get(model.ID(c.Param("id")))
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// ExportClasses godoc
// GET /api/v1/classes/export
func (h *ClassHandler) ExportClasses(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	if _, ok := visit(c, h.classService, h.log); !ok {
		return
	}
	respondWorkbook(c, h.log, "clases.xlsx", export.ClassSheet(h.classService.Matching(q)))
}
