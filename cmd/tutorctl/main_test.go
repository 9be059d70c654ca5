package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/worldsacross/tutor-viewer/internal/config"
	"github.com/worldsacross/tutor-viewer/internal/gateway"
	"github.com/xuri/excelize/v2"
)

func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	bodies := map[string]string{
		gateway.PathTutors: `[
			{"id":1,"first_name":"Ana","last_name":"López","email":"ana@example.com","date_of_birth":"1990-03-10","nationality":"Spain","speciality":"Matemáticas"},
			{"id":2,"first_name":"Ben","last_name":"Stone","email":"ben@example.com","date_of_birth":"1985-07-01","nationality":"UK","speciality":"Inglés"}
		]`,
		gateway.PathUsers: `[
			{"id":"s1","first_name":"Sara","last_name":"Gil","date_of_birth":"2005-01-20","address":"Calle Mayor 1"}
		]`,
		gateway.PathBookings: `[
			{"id":1,"tutor_id":1,"student_id":"s1","date":"2020-01-01 10:00:00","start_time":"2020-01-01 10:00:00","end_time":"2020-01-01 11:00:00",
			 "tutor":{"id":1,"first_name":"Ana","last_name":"López"},"student":{"id":"s1","first_name":"Sara","last_name":"Gil"}}
		]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testApp(t *testing.T, width int) (*app, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		Locale:          "es_ES",
		Location:        time.UTC,
		TutorPageSize:   10,
		StudentPageSize: 10,
		ClassPageSize:   8,
	}
	log := zerolog.Nop()
	client := gateway.NewClient(upstream(t).URL, 5*time.Second, log)
	var out bytes.Buffer
	return newApp(client, cfg, log, &out, width), &out
}

func TestRunListCommands(t *testing.T) {
	tests := []struct {
		command string
		opts    options
		want    []string
		absent  []string
	}{
		{command: "tutors", opts: options{page: 1}, want: []string{"Tutores", "Ana López", "Ben Stone", "Página 1 de 1"}},
		{command: "tutors", opts: options{page: 1, specialties: []string{"Inglés"}}, want: []string{"Ben Stone"}, absent: []string{"Ana López"}},
		{command: "tutors", opts: options{page: 1, search: "nadie"}, want: []string{"Sin resultados"}},
		{command: "specialties", want: []string{"Inglés\nMatemáticas\n"}},
		{command: "students", opts: options{page: 1}, want: []string{"Sara Gil", "Calle Mayor 1"}},
		{command: "classes", opts: options{page: 1, all: true}, want: []string{"completed", "Total 1"}, absent: []string{"Página"}},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			a, out := testApp(t, 200)
			if err := a.run(context.Background(), tt.command, nil, tt.opts); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.absent {
				if strings.Contains(out.String(), w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	a, _ := testApp(t, 80)
	if err := a.run(context.Background(), "teachers", nil, options{}); err == nil {
		t.Error("unknown command should fail")
	}
	if err := a.run(context.Background(), "raw", nil, options{}); err == nil {
		t.Error("raw without a path should fail")
	}
	if err := a.run(context.Background(), "raw", []string{"nothing"}, options{}); err == nil {
		t.Error("raw on a missing upstream path should fail")
	}
}

func TestRunRaw(t *testing.T) {
	a, out := testApp(t, 80)
	if err := a.run(context.Background(), "raw", []string{"users"}, options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"first_name": "Sara"`) {
		t.Errorf("raw output:\n%s", out)
	}
}

func TestRunExport(t *testing.T) {
	a, _ := testApp(t, 80)
	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := a.run(context.Background(), "export", nil, options{output: path}); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	f, err := excelize.OpenReader(file)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := strings.Join(f.GetSheetList(), ","); got != "Tutores,Estudiantes,Clases" {
		t.Errorf("sheets = %s", got)
	}
	rows, err := f.GetRows("Tutores")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("tutor rows = %d, want header + 2", len(rows))
	}
}

func TestTableTruncatesLastColumn(t *testing.T) {
	var out bytes.Buffer
	a := &app{out: &out, width: 20}
	a.table([]string{"ID", "NOMBRE"}, [][]string{
		{"1", "Ñandú"},
		{"22", "Una dirección muy larga que no cabe"},
	})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %q", lines)
	}
	for _, l := range lines {
		if n := len([]rune(l)); n > 20 {
			t.Errorf("line %q is %d runes wide", l, n)
		}
	}
	if !strings.HasSuffix(lines[2], "…") {
		t.Errorf("long cell not truncated: %q", lines[2])
	}
	if !strings.Contains(lines[1], "Ñandú") {
		t.Errorf("short cell changed: %q", lines[1])
	}
}

func TestTableEmpty(t *testing.T) {
	var out bytes.Buffer
	a := &app{out: &out, width: 80}
	a.table([]string{"ID"}, nil)
	if out.String() != "Sin resultados\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hola", 10, "hola"},
		{"hola", 4, "hola"},
		{"canción", 5, "canc…"},
		{"año", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
