package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/worldsacross/tutor-viewer/internal/present"
)

var errNetwork = errors.New("network down")

type fakeSource struct {
	tutors   []model.Tutor
	students []model.Student
	classes  []model.Class
	err      error
}

func (f *fakeSource) GetTutors(context.Context) ([]model.Tutor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Tutor(nil), f.tutors...), nil
}

func (f *fakeSource) GetUsers(context.Context) ([]model.Student, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Student(nil), f.students...), nil
}

func (f *fakeSource) GetBookings(context.Context) ([]model.Class, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Class(nil), f.classes...), nil
}

func formatter() *present.Formatter {
	return present.NewFormatter("es_ES", time.UTC)
}

func makeStudents(n int) []model.Student {
	out := make([]model.Student, n)
	for i := range out {
		out[i] = model.Student{
			ID:          model.ID(fmt.Sprint(i + 1)),
			FirstName:   fmt.Sprintf("Student%02d", i+1),
			LastName:    "García",
			Address:     fmt.Sprintf("Calle %d", i+1),
			DateOfBirth: model.ParseDateTime("2000-06-15"),
		}
	}
	return out
}

func TestStudentLoadDecoratesAndPaginates(t *testing.T) {
	src := &fakeSource{students: makeStudents(25)}
	s := NewStudentService(src, formatter(), 10, zerolog.Nop())
	s.SetClock(func() time.Time { return time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC) })

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Loaded() || s.Count() != 25 {
		t.Fatalf("Loaded=%v Count=%d", s.Loaded(), s.Count())
	}

	s.SetPage(3)
	p := s.Page()
	if p.TotalPages != 3 || len(p.Items) != 5 {
		t.Fatalf("page 3: %d items of %d pages", len(p.Items), p.TotalPages)
	}
	first := p.Items[0]
	if first.Age != 23 {
		t.Errorf("Age = %d, want 23", first.Age)
	}
	if first.Avatar != present.Avatar(first.ID) || first.AccentColor == "" {
		t.Errorf("decoration missing: %+v", first.Student)
	}
	if first.DateOfBirthLabel != "15 de junio de 2000" {
		t.Errorf("DateOfBirthLabel = %q", first.DateOfBirthLabel)
	}
}

func TestStudentSearchFieldsAndReset(t *testing.T) {
	src := &fakeSource{students: makeStudents(25)}
	s := NewStudentService(src, formatter(), 10, zerolog.Nop())
	_ = s.Load(context.Background())

	s.SetPage(2)
	s.SetSearchTerm("CALLE 1")
	if s.Page().Page != 1 {
		t.Error("search did not reset page")
	}
	// Calle 1, Calle 10..19
	if got := len(s.Filtered()); got != 11 {
		t.Errorf("address search: %d matches, want 11", got)
	}

	s.SetSearchTerm("garcía")
	if got := len(s.Filtered()); got != 25 {
		t.Errorf("last name search: %d matches, want 25", got)
	}
}

func TestFailedReloadKeepsState(t *testing.T) {
	src := &fakeSource{students: makeStudents(25)}
	s := NewStudentService(src, formatter(), 10, zerolog.Nop())
	_ = s.Load(context.Background())
	s.SetSearchTerm("student")
	s.SetPage(2)
	before := s.Page()
	loadedAt := s.LoadedAt()

	src.err = errNetwork
	src.students = nil
	if err := s.Load(context.Background()); !errors.Is(err, errNetwork) {
		t.Fatalf("Load err = %v, want errNetwork", err)
	}

	after := s.Page()
	if after.Page != before.Page || after.TotalItems != before.TotalItems || len(after.Items) != len(before.Items) {
		t.Errorf("state changed: before %+v after %+v", before, after)
	}
	if after.Items[0].ID != before.Items[0].ID {
		t.Error("page content changed")
	}
	if !s.LoadedAt().Equal(loadedAt) {
		t.Error("LoadedAt moved on failure")
	}
}

func TestFailedFirstLoadLeavesEmpty(t *testing.T) {
	s := NewClassService(&fakeSource{err: errNetwork}, formatter(), 8, zerolog.Nop())
	if err := s.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Loaded() || s.Count() != 0 || s.Page().TotalPages != 0 {
		t.Error("failed first load should leave an empty, unloaded view")
	}
}

func tutors() []model.Tutor {
	return []model.Tutor{
		{ID: "1", FirstName: "Ana", LastName: "López", Speciality: "Math", Nationality: "ES", DateOfBirth: model.ParseDateTime("1990-01-01")},
		{ID: "2", FirstName: "Ben", LastName: "Stone", Speciality: "English", Nationality: "UK"},
		{ID: "3", FirstName: "Carla", LastName: "Anaya", Speciality: "Math", Nationality: "MX"},
		{ID: "4", FirstName: "Dan", LastName: "Lopez", Speciality: "Physics", Nationality: "ES"},
		{ID: "5", FirstName: "Eva", LastName: "Ruiz", Speciality: ""},
	}
}

func TestTutorFiltersAndSpecialties(t *testing.T) {
	s := NewTutorService(&fakeSource{tutors: tutors()}, formatter(), 10, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := s.Specialties(); fmt.Sprint(got) != "[English Math Physics]" {
		t.Errorf("Specialties = %v", got)
	}

	s.SelectSpecialty("Math")
	if got := len(s.Filtered()); got != 2 {
		t.Errorf("Math: %d tutors, want 2", got)
	}

	s.SetSearchTerm("ana l")
	if got := s.Filtered(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("full-name search within Math = %+v", got)
	}

	s.SetSearchTerm("")
	s.ToggleSpeciality("Physics")
	if !s.IsSpecialitySelected("Physics") || len(s.Filtered()) != 3 {
		t.Errorf("toggle add: %d tutors", len(s.Filtered()))
	}
	s.ToggleSpeciality("Math")
	if s.IsSpecialitySelected("Math") || len(s.Filtered()) != 1 {
		t.Errorf("toggle remove: %d tutors", len(s.Filtered()))
	}

	s.ResetFilters()
	s.SetNationality("es")
	if got := len(s.Filtered()); got != 2 {
		t.Errorf("nationality es: %d tutors, want 2", got)
	}

	s.ResetFilters()
	if got := len(s.Filtered()); got != 5 {
		t.Errorf("after reset: %d tutors, want 5", got)
	}

	v, ok := s.Get("1")
	if !ok || len(v.StatusItems) != 4 || v.Avatar == "" {
		t.Errorf("Get(1) = %+v, %v", v, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestTutorQueryDoesNotTouchViewerState(t *testing.T) {
	s := NewTutorService(&fakeSource{tutors: tutors()}, formatter(), 2, zerolog.Nop())
	_ = s.Load(context.Background())
	s.SetPage(2)

	p := s.Query(model.ListQuery{Specialties: []string{"Math"}, Page: 1})
	if p.TotalItems != 2 || p.TotalPages != 1 {
		t.Errorf("query page = %+v", p)
	}
	if s.Page().Page != 2 || s.Page().TotalItems != 5 {
		t.Error("Query changed viewer state")
	}

	// out of range page is ignored and the answer stays on page 1
	if p := s.Query(model.ListQuery{Page: 99}); p.Page != 1 {
		t.Errorf("page 99 answered page %d", p.Page)
	}
	if got := s.Matching(model.ListQuery{Search: "lopez"}); len(got) != 1 {
		t.Errorf("Matching lopez = %d, want 1 (accent differs for López)", len(got))
	}
}

func TestClassSearchStatusAndStats(t *testing.T) {
	classes := []model.Class{
		{
			ID: "c1", Date: model.ParseDateTime("2024-01-01T00:00:00Z"), EndTime: model.ParseDateTime("2024-01-02T00:00:00Z"),
			Tutor: model.TutorSummary{FirstName: "Ana", LastName: "López"}, Student: model.StudentSummary{FirstName: "Sara", LastName: "Gil"},
		},
		{
			ID: "c2", Date: model.ParseDateTime("2024-02-01T00:00:00Z"), EndTime: model.ParseDateTime("2024-02-01T01:00:00Z"),
			Tutor: model.TutorSummary{FirstName: "Ben", LastName: "Stone"}, Student: model.StudentSummary{FirstName: "Luis", LastName: "Gil"},
		},
	}
	s := NewClassService(&fakeSource{classes: classes}, formatter(), 8, zerolog.Nop())
	s.SetClock(func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) })
	_ = s.Load(context.Background())

	page := s.Query(model.ListQuery{Search: "gil"})
	if page.TotalItems != 2 {
		t.Errorf("student last name search: %d", page.TotalItems)
	}
	page = s.Query(model.ListQuery{Search: "stone"})
	if page.TotalItems != 1 || page.Items[0].Status != model.ClassStatusUpcoming {
		t.Errorf("tutor search = %+v", page.Items)
	}

	v, _ := s.Get("c1")
	if v.Status != model.ClassStatusActive || v.DateLabel != "1 de enero de 2024" {
		t.Errorf("c1 view = %+v", v)
	}

	want := model.ClassStats{Total: 2, Active: 1, Upcoming: 1}
	if got := s.Stats(); got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
}

func TestRefreshAllReportsEachCollection(t *testing.T) {
	good := &fakeSource{tutors: tutors(), students: makeStudents(3)}
	bad := &fakeSource{err: errNetwork}
	ts := NewTutorService(good, formatter(), 10, zerolog.Nop())
	ss := NewStudentService(good, formatter(), 10, zerolog.Nop())
	cs := NewClassService(bad, formatter(), 8, zerolog.Nop())
	home := NewHomeService(ts, ss, cs, zerolog.Nop())

	res := home.RefreshAll(context.Background())
	if len(res) != 3 {
		t.Fatalf("got %d results", len(res))
	}
	if !res[0].Loaded || res[0].Count != 5 || !res[1].Loaded || res[1].Count != 3 {
		t.Errorf("good results = %+v", res[:2])
	}
	if res[2].Loaded || res[2].Error == "" {
		t.Errorf("bad result = %+v", res[2])
	}
	if len(home.Sections()) != 3 || home.Sections()[0].Path != "/tutors" {
		t.Errorf("Sections = %+v", home.Sections())
	}
}

// gatedSource answers the n-th GetTutors call with responses[n] once
// release[n] is closed, announcing each call on entered.
type gatedSource struct {
	calls     atomic.Int32
	entered   chan int
	release   []chan struct{}
	responses [][]model.Tutor
}

func (g *gatedSource) GetTutors(ctx context.Context) ([]model.Tutor, error) {
	n := int(g.calls.Add(1)) - 1
	g.entered <- n
	select {
	case <-g.release[n]:
		return g.responses[n], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestOverlappingLoadsKeepNewestSnapshot(t *testing.T) {
	all := tutors()
	src := &gatedSource{
		entered:   make(chan int, 2),
		release:   []chan struct{}{make(chan struct{}), make(chan struct{})},
		responses: [][]model.Tutor{all[:1], all},
	}
	s := NewTutorService(src, formatter(), 10, zerolog.Nop())
	ctx := context.Background()

	older := make(chan error, 1)
	go func() { older <- s.Load(ctx) }()
	<-src.entered

	newer := make(chan error, 1)
	go func() { newer <- s.Load(ctx) }()
	<-src.entered

	close(src.release[1])
	if err := <-newer; err != nil {
		t.Fatalf("newer load: %v", err)
	}
	close(src.release[0])
	if err := <-older; err != nil {
		t.Fatalf("older load: %v", err)
	}

	if got := s.Count(); got != len(all) {
		t.Errorf("Count = %d, want %d from the newer load", got, len(all))
	}
}

func TestSetClockWhileServing(t *testing.T) {
	s := NewStudentService(&fakeSource{students: makeStudents(5)}, formatter(), 10, zerolog.Nop())
	if err := s.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			at := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
			s.SetClock(func() time.Time { return at })
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.Page()
			_, _ = s.Get("1")
		}
	}()
	wg.Wait()

	if v, _ := s.Get("1"); v.Age != 23 {
		t.Errorf("Age = %d, want 23", v.Age)
	}
}
