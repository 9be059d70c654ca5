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

// TutorHandler serves the tutor views.
type TutorHandler struct {
	tutorService *service.TutorService
	log          zerolog.Logger
}

// NewTutorHandler creates a new TutorHandler.
func NewTutorHandler(tutorService *service.TutorService, log zerolog.Logger) *TutorHandler {
	return &TutorHandler{
		tutorService: tutorService,
		log:          log.With().Str("component", "tutor_handler").Logger(),
	}
}

// ListTutors godoc
// GET /api/v1/tutors?search=&page=&specialty=&nationality=
func (h *TutorHandler) ListTutors(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	stale, ok := visit(c, h.tutorService, h.log)
	if !ok {
		return
	}

	page := h.tutorService.Query(q)
	respondPage(c, h.tutorService.Header(), "tutors", page, stale, gin.H{
		"specialties": h.tutorService.Specialties(),
	})
}

// ListSpecialties godoc
// GET /api/v1/tutors/specialties
func (h *TutorHandler) ListSpecialties(c *gin.Context) {
	if _, ok := visit(c, h.tutorService, h.log); !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"specialties": h.tutorService.Specialties()})
}

// GetTutor godoc
// GET /api/v1/tutors/:id
func (h *TutorHandler) GetTutor(c *gin.Context) {
	if _, ok := visit(c, h.tutorService, h.log); !ok {
		return
	}
	tutor, found := h.tutorService.Get(model.ID(c.Param("id")))
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tutor": tutor})
}

// ExportTutors godoc
// GET /api/v1/tutors/export
// Every page of the filtered view as XLSX.
func (h *TutorHandler) ExportTutors(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	if _, ok := visit(c, h.tutorService, h.log); !ok {
		return
	}
	respondWorkbook(c, h.log, "tutores.xlsx", export.TutorSheet(h.tutorService.Matching(q)))
}
