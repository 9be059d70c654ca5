package model

// ListQuery is the query string accepted by every list endpoint. Specialties
// and Nationality only apply to tutors.
type ListQuery struct {
	Search      string   `form:"search" json:"search" binding:"max=100"`
	Page        int      `form:"page" json:"page" binding:"min=0"`
	Specialties []string `form:"specialty" json:"specialty" binding:"max=20,dive,max=100"`
	Nationality string   `form:"nationality" json:"nationality" binding:"max=100"`
}
