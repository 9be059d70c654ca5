package model

// Student mirrors one record of GET /users.
type Student struct {
	ID          ID       `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DateOfBirth DateTime `json:"date_of_birth"`
	Address     string   `json:"address"`
	CreatedAt   DateTime `json:"created_at"`
	UpdatedAt   DateTime `json:"updated_at"`

	// Client-side decoration.
	Avatar      string `json:"avatar,omitempty"`
	AccentColor string `json:"accent_color,omitempty"`
}

// StudentView is a Student with its presentation fields.
type StudentView struct {
	Student
	Age              int    `json:"age"`
	DateOfBirthLabel string `json:"date_of_birth_label"`
}
