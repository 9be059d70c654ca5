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

// StudentHandler serves the student views.
type StudentHandler struct {
	studentService *service.StudentService
	log            zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService *service.StudentService, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		log:            log.With().Str("component", "student_handler").Logger(),
	}
}

// ListStudents godoc
// GET /api/v1/students?search=&page=
func (h *StudentHandler) ListStudents(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	stale, ok := visit(c, h.studentService, h.log)
	if !ok {
		return
	}
	respondPage(c, h.studentService.Header(), "students", h.studentService.Query(q), stale, nil)
}

// GetStudent godoc
// GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	if _, ok := visit(c, h.studentService, h.log); !ok {
		return
	}
	student, found := h.studentService.Get(model.ID(c.Param("id")))
	if !found {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"student": student})
}

// ExportStudents godoc
// GET /api/v1/students/export
func (h *StudentHandler) ExportStudents(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	if _, ok := visit(c, h.studentService, h.log); !ok {
		return
	}
	respondWorkbook(c, h.log, "estudiantes.xlsx", export.StudentSheet(h.studentService.Matching(q)))
}
