package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"golang.org/x/sync/errgroup"
)

// Loader is anything that can refresh its snapshot.
type Loader interface {
	Load(ctx context.Context) error
	Count() int
}

// RefreshResult is the outcome of reloading one collection.
type RefreshResult struct {
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
	Count  int    `json:"count"`
	Error  string `json:"error,omitempty"`
}

// HomeService backs the landing view and the combined refresh.
type HomeService struct {
	tutors   *TutorService
	students *StudentService
	classes  *ClassService
	log      zerolog.Logger
}

// NewHomeService creates a new HomeService.
func NewHomeService(tutors *TutorService, students *StudentService, classes *ClassService, log zerolog.Logger) *HomeService {
	return &HomeService{
		tutors:   tutors,
		students: students,
		classes:  classes,
		log:      log.With().Str("component", "home_service").Logger(),
	}
}

// Header returns the landing title block.
func (s *HomeService) Header() model.PageHeader {
	return model.PageHeader{
		Title:    "Panel de tutorías",
		Subtitle: "Tutores, estudiantes y clases en un solo lugar",
	}
}

// Sections lists the navigation entries of the landing view.
func (s *HomeService) Sections() []model.HomeSection {
	return []model.HomeSection{
		{PageHeader: s.tutors.Header(), Path: "/tutors"},
		{PageHeader: s.students.Header(), Path: "/students"},
		{PageHeader: s.classes.Header(), Path: "/classes"},
	}
}

// RefreshAll reloads the three collections concurrently. A failing load does
// not cancel the others; each keeps its previous snapshot on failure.
func (s *HomeService) RefreshAll(ctx context.Context) []RefreshResult {
	loaders := []struct {
		name string
		l    Loader
	}{
		{"tutors", s.tutors},
		{"students", s.students},
		{"classes", s.classes},
	}

	results := make([]RefreshResult, len(loaders))
	var g errgroup.Group
	for i, ld := range loaders {
		i, ld := i, ld
		g.Go(func() error {
			res := RefreshResult{Name: ld.name, Loaded: true}
			if err := ld.l.Load(ctx); err != nil {
				res.Loaded = false
				res.Error = err.Error()
			}
			res.Count = ld.l.Count()
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info().Interface("results", results).Msg("Refresh finished")
	return results
}
