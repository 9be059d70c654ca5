package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/listing"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/present"
)

// TutorSource fetches the tutor list.
type TutorSource interface {
	GetTutors(ctx context.Context) ([]model.Tutor, error)
}

// TutorFilters is the attribute filter state of the tutor view.
type TutorFilters struct {
	Specialities []string `json:"specialities"`
	Nationality  string   `json:"nationality"`
}

// TutorService is the tutor list view-controller.
type TutorService struct {
	*directory[model.Tutor, model.TutorView]
	format  *present.Formatter
	filters TutorFilters
}

// NewTutorService creates a new TutorService.
func NewTutorService(source TutorSource, format *present.Formatter, pageSize int, log zerolog.Logger) *TutorService {
	s := &TutorService{format: format}
	s.directory = &directory[model.Tutor, model.TutorView]{
		fetch:    source.GetTutors,
		decorate: decorateTutor,
		view:     s.toView,
		idOf:     func(t model.Tutor) model.ID { return t.ID },
		header: model.PageHeader{
			Title:    "Tutores",
			Subtitle: "Consulta el equipo de tutores y sus especialidades",
		},
		log:  log.With().Str("component", "tutor_service").Logger(),
		now:  time.Now,
		list: listing.New(pageSize, matchTutor),
	}
	return s
}

func decorateTutor(t model.Tutor) model.Tutor {
	t.Avatar = present.Avatar(t.ID)
	return t
}

// matchTutor searches the "first last" full name.
func matchTutor(t model.Tutor, term string) bool {
	return listing.ContainsFold(t.FullName(), term)
}

// tutorFilter builds the attribute filter; nil when nothing is selected.
// Speciality is an exact match against any selected value.
func tutorFilter(specialities []string, nationality string) listing.Filter[model.Tutor] {
	specs := slices.DeleteFunc(slices.Clone(specialities), func(s string) bool { return s == "" })
	nationality = strings.TrimSpace(nationality)
	if len(specs) == 0 && nationality == "" {
		return nil
	}
	return func(t model.Tutor) bool {
		if len(specs) > 0 && !slices.Contains(specs, t.Speciality) {
			return false
		}
		if nationality != "" && !strings.EqualFold(t.Nationality, nationality) {
			return false
		}
		return true
	}
}

var tutorStatusItems = []model.StatusItem{
	{Icon: "document-text", Label: "Documentos", Checked: true},
	{Icon: "calendar", Label: "Horario", Checked: true},
	{Icon: "star", Label: "Evaluación", Checked: true},
	{Icon: "shield-checkmark", Label: "Verificado", Checked: true},
}

func (s *TutorService) toView(t model.Tutor, now time.Time) model.TutorView {
	return model.TutorView{
		Tutor:            t,
		Age:              s.format.Age(t.DateOfBirth, now),
		DateOfBirthLabel: s.format.Date(t.DateOfBirth),
		StatusItems:      slices.Clone(tutorStatusItems),
	}
}

// Specialties returns the distinct, sorted specialities of the snapshot.
func (s *TutorService) Specialties() []string {
	all := s.All()
	specs := make([]string, 0, len(all))
	for _, t := range all {
		if t.Speciality != "" {
			specs = append(specs, t.Speciality)
		}
	}
	slices.Sort(specs)
	return slices.Compact(specs)
}

// Filters returns a copy of the selected attribute filters.
func (s *TutorService) Filters() TutorFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TutorFilters{
		Specialities: slices.Clone(s.filters.Specialities),
		Nationality:  s.filters.Nationality,
	}
}

// SelectSpecialty narrows the view to one speciality; "" clears it. The page
// goes back to 1.
func (s *TutorService) SelectSpecialty(speciality string) {
	s.mu.Lock()
	if speciality == "" {
		s.filters.Specialities = nil
	} else {
		s.filters.Specialities = []string{speciality}
	}
	s.mu.Unlock()
	s.ApplyFilters()
}

// ToggleSpeciality adds or removes one speciality from the selection.
func (s *TutorService) ToggleSpeciality(speciality string) {
	s.mu.Lock()
	if i := slices.Index(s.filters.Specialities, speciality); i >= 0 {
		s.filters.Specialities = slices.Delete(s.filters.Specialities, i, i+1)
	} else {
		s.filters.Specialities = append(s.filters.Specialities, speciality)
	}
	s.mu.Unlock()
	s.ApplyFilters()
}

// IsSpecialitySelected reports whether speciality is part of the selection.
func (s *TutorService) IsSpecialitySelected(speciality string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.filters.Specialities, speciality)
}

// SetNationality narrows the view to one nationality (case-insensitive).
func (s *TutorService) SetNationality(nationality string) {
	s.mu.Lock()
	s.filters.Nationality = nationality
	s.mu.Unlock()
	s.ApplyFilters()
}

// ResetFilters clears every attribute filter. The search term is kept.
func (s *TutorService) ResetFilters() {
	s.mu.Lock()
	s.filters = TutorFilters{}
	s.mu.Unlock()
	s.ApplyFilters()
}

// ApplyFilters recomputes the filtered view from the search term and the
// selected filters, and goes back to page 1.
func (s *TutorService) ApplyFilters() {
	f := s.Filters()
	s.setFilter(tutorFilter(f.Specialities, f.Nationality))
}

// Query answers one request without touching the viewer state.
func (s *TutorService) Query(q model.ListQuery) listing.PageResult[model.TutorView] {
	return s.mapPage(s.queryCollection(q).Page())
}

// Matching returns every tutor of q's filtered view, across all pages.
func (s *TutorService) Matching(q model.ListQuery) []model.TutorView {
	return s.mapItems(s.queryCollection(q).Filtered())
}

func (s *TutorService) queryCollection(q model.ListQuery) *listing.Collection[model.Tutor] {
	return s.query(q.Search, tutorFilter(q.Specialties, q.Nationality), q.Page)
}
