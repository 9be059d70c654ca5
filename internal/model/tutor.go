package model

// Tutor mirrors one record of GET /tutors.
type Tutor struct {
	ID          ID       `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Email       string   `json:"email"`
	DateOfBirth DateTime `json:"date_of_birth"`
	Nationality string   `json:"nationality"`
	Speciality  string   `json:"speciality"`
	CreatedAt   DateTime `json:"created_at"`
	UpdatedAt   DateTime `json:"updated_at"`

	// Avatar is assigned client-side and never sent by the API.
	Avatar string `json:"avatar,omitempty"`
}

// FullName returns "first last".
func (t Tutor) FullName() string {
	return t.FirstName + " " + t.LastName
}

// StatusItem is one entry of the tutor onboarding checklist.
type StatusItem struct {
	Icon    string `json:"icon"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// TutorView is a Tutor with its presentation fields.
type TutorView struct {
	Tutor
	Age              int          `json:"age"`
	DateOfBirthLabel string       `json:"date_of_birth_label"`
	StatusItems      []StatusItem `json:"status_items"`
}
