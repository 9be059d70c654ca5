package export

import (
	"bytes"
	"testing"

	"github.com/worldsacross/tutor-viewer/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	tutors := []model.TutorView{
		{Tutor: model.Tutor{ID: "1", FirstName: "Ana", LastName: "López", Speciality: "Math"}, Age: 34},
	}
	classes := []model.ClassView{
		{
			Class: model.Class{
				ID:      "c1",
				Tutor:   model.TutorSummary{FirstName: "Ana", LastName: "López"},
				Student: model.StudentSummary{FirstName: "Sara", LastName: "Gil"},
			},
			Status: model.ClassStatusUpcoming,
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, TutorSheet(tutors), StudentSheet(nil), ClassSheet(classes)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 3 || got[0] != "Tutores" || got[2] != "Clases" {
		t.Fatalf("sheets = %v", got)
	}

	rows, err := f.GetRows("Tutores")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0][0] != "ID" || rows[1][1] != "Ana" || rows[1][7] != "34" {
		t.Errorf("tutor rows = %v", rows)
	}

	rows, _ = f.GetRows("Estudiantes")
	if len(rows) != 1 {
		t.Errorf("empty student sheet should only have a header, got %v", rows)
	}

	rows, _ = f.GetRows("Clases")
	if len(rows) != 2 || rows[1][2] != "Sara Gil" || rows[1][6] != "upcoming" {
		t.Errorf("class rows = %v", rows)
	}
}

func TestWriteRequiresSheets(t *testing.T) {
	if err := Write(&bytes.Buffer{}); err == nil {
		t.Error("expected an error for an empty workbook")
	}
}
