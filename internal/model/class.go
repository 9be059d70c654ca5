package model

// ClassStatus is derived from the current time and the booking bounds.
type ClassStatus string

const (
	ClassStatusActive    ClassStatus = "active"
	ClassStatusCompleted ClassStatus = "completed"
	ClassStatusUpcoming  ClassStatus = "upcoming"
)

// TutorSummary is the tutor embedded in a booking.
type TutorSummary struct {
	ID         ID     `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Speciality string `json:"speciality"`
}

// StudentSummary is the student embedded in a booking.
type StudentSummary struct {
	ID          ID       `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DateOfBirth DateTime `json:"date_of_birth"`
}

// Class mirrors one record of GET /booking.
type Class struct {
	ID        ID             `json:"id"`
	TutorID   ID             `json:"tutor_id"`
	StudentID ID             `json:"student_id"`
	Date      DateTime       `json:"date"`
	StartTime DateTime       `json:"start_time"`
	EndTime   DateTime       `json:"end_time"`
	CreatedAt DateTime       `json:"created_at"`
	UpdatedAt DateTime       `json:"updated_at"`
	Tutor     TutorSummary   `json:"tutor"`
	Student   StudentSummary `json:"student"`
}

// ClassView is a Class with its presentation fields.
type ClassView struct {
	Class
	Status         ClassStatus `json:"status"`
	DateLabel      string      `json:"date_label"`
	StartTimeLabel string      `json:"start_time_label"`
	EndTimeLabel   string      `json:"end_time_label"`
}

// ClassStats counts bookings per status over the whole collection. A booking
// whose date is after its end_time can be counted twice; the counts are not
// forced to sum to Total.
type ClassStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}
