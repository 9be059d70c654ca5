package export

import (
	"strconv"

	"github.com/worldsacross/tutor-viewer/internal/model"
)

// TutorSheet lays out tutor views.
func TutorSheet(tutors []model.TutorView) Sheet {
	rows := make([][]string, len(tutors))
	for i, t := range tutors {
		rows[i] = []string{
			t.ID.String(), t.FirstName, t.LastName, t.Email, t.Speciality,
			t.Nationality, t.DateOfBirthLabel, strconv.Itoa(t.Age),
		}
	}
	return Sheet{
		Name:   "Tutores",
		Header: []string{"ID", "Nombre", "Apellido", "Email", "Especialidad", "Nacionalidad", "Fecha de nacimiento", "Edad"},
		Rows:   rows,
	}
}

// StudentSheet lays out student views.
func StudentSheet(students []model.StudentView) Sheet {
	rows := make([][]string, len(students))
	for i, s := range students {
		rows[i] = []string{
			s.ID.String(), s.FirstName, s.LastName, s.Address, s.DateOfBirthLabel, strconv.Itoa(s.Age),
		}
	}
	return Sheet{
		Name:   "Estudiantes",
		Header: []string{"ID", "Nombre", "Apellido", "Dirección", "Fecha de nacimiento", "Edad"},
		Rows:   rows,
	}
}

// ClassSheet lays out class views.
func ClassSheet(classes []model.ClassView) Sheet {
	rows := make([][]string, len(classes))
	for i, c := range classes {
		rows[i] = []string{
			c.ID.String(),
			c.Tutor.FirstName + " " + c.Tutor.LastName,
			c.Student.FirstName + " " + c.Student.LastName,
			c.DateLabel, c.StartTimeLabel, c.EndTimeLabel, string(c.Status),
		}
	}
	return Sheet{
		Name:   "Clases",
		Header: []string{"ID", "Tutor", "Estudiante", "Fecha", "Inicio", "Fin", "Estado"},
		Rows:   rows,
	}
}
