package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/listing"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/present"
)

// StudentSource fetches the student list.
type StudentSource interface {
	GetUsers(ctx context.Context) ([]model.Student, error)
}

// StudentService is the student list view-controller.
type StudentService struct {
	*directory[model.Student, model.StudentView]
	format *present.Formatter
}

// NewStudentService creates a new StudentService.
func NewStudentService(source StudentSource, format *present.Formatter, pageSize int, log zerolog.Logger) *StudentService {
	s := &StudentService{format: format}
	s.directory = &directory[model.Student, model.StudentView]{
		fetch:    source.GetUsers,
		decorate: decorateStudent,
		view:     s.toView,
		idOf:     func(st model.Student) model.ID { return st.ID },
		header: model.PageHeader{
			Title:    "Estudiantes",
			Subtitle: "Listado de estudiantes inscritos",
		},
		log:  log.With().Str("component", "student_service").Logger(),
		now:  time.Now,
		list: listing.New(pageSize, matchStudent),
	}
	return s
}

func decorateStudent(st model.Student) model.Student {
	st.Avatar = present.Avatar(st.ID)
	st.AccentColor = present.AccentColor(st.ID)
	return st
}

func matchStudent(st model.Student, term string) bool {
	return listing.ContainsFold(st.FirstName, term) ||
		listing.ContainsFold(st.LastName, term) ||
		listing.ContainsFold(st.Address, term)
}

func (s *StudentService) toView(st model.Student, now time.Time) model.StudentView {
	return model.StudentView{
		Student:          st,
		Age:              s.format.Age(st.DateOfBirth, now),
		DateOfBirthLabel: s.format.Date(st.DateOfBirth),
	}
}

// Query answers one request without touching the viewer state.
func (s *StudentService) Query(q model.ListQuery) listing.PageResult[model.StudentView] {
	return s.mapPage(s.query(q.Search, nil, q.Page).Page())
}

// Matching returns every student of q's filtered view, across all pages.
func (s *StudentService) Matching(q model.ListQuery) []model.StudentView {
	return s.mapItems(s.query(q.Search, nil, 0).Filtered())
}
