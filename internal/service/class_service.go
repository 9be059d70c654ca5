package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/listing"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/present"
)

// ClassSource fetches the booking list.
type ClassSource interface {
	GetBookings(ctx context.Context) ([]model.Class, error)
}

// ClassService is the class (booking) list view-controller.
type ClassService struct {
	*directory[model.Class, model.ClassView]
	format *present.Formatter
}

// NewClassService creates a new ClassService.
func NewClassService(source ClassSource, format *present.Formatter, pageSize int, log zerolog.Logger) *ClassService {
	s := &ClassService{format: format}
	s.directory = &directory[model.Class, model.ClassView]{
		fetch: source.GetBookings,
		view:  s.toView,
		idOf:  func(c model.Class) model.ID { return c.ID },
		header: model.PageHeader{
			Title:    "Clases",
			Subtitle: "Clases programadas entre tutores y estudiantes",
		},
		log:  log.With().Str("component", "class_service").Logger(),
		now:  time.Now,
		list: listing.New(pageSize, matchClass),
	}
	return s
}

// matchClass searches the names of both participants.
func matchClass(c model.Class, term string) bool {
	return listing.ContainsFold(c.Tutor.FirstName, term) ||
		listing.ContainsFold(c.Tutor.LastName, term) ||
		listing.ContainsFold(c.Student.FirstName, term) ||
		listing.ContainsFold(c.Student.LastName, term)
}

func (s *ClassService) toView(c model.Class, now time.Time) model.ClassView {
	return model.ClassView{
		Class:          c,
		Status:         present.ClassStatusAt(c, now),
		DateLabel:      s.format.Date(c.Date),
		StartTimeLabel: s.format.Time(c.StartTime),
		EndTimeLabel:   s.format.Time(c.EndTime),
	}
}

// Stats counts the whole snapshot by status, ignoring search and page.
func (s *ClassService) Stats() model.ClassStats {
	return present.ClassStatsAt(s.All(), s.clock())
}

// Query answers one request without touching the viewer state.
func (s *ClassService) Query(q model.ListQuery) listing.PageResult[model.ClassView] {
	return s.mapPage(s.query(q.Search, nil, q.Page).Page())
}

// Matching returns every class of q's filtered view, across all pages.
func (s *ClassService) Matching(q model.ListQuery) []model.ClassView {
	return s.mapItems(s.query(q.Search, nil, 0).Filtered())
}
