package present

import (
	"github.com/cespare/xxhash/v2"
	"github.com/worldsacross/tutor-viewer/internal/model"
)

// DefaultAvatars are the decorative images assigned to tutors and students.
var DefaultAvatars = []string{
	"assets/images/student-1.png",
	"assets/images/student-2.png",
	"assets/images/student-3.png",
	"assets/images/student-4.png",
	"assets/images/student-5.png",
	"assets/images/student-6.png",
}

// AccentColors tint the student cards.
var AccentColors = []string{"#4834d4", "#686de0", "#6c5ce7", "#a55eea"}

// Pick chooses one of choices from a hash of salt and id. The same id always
// gets the same choice, across reloads and processes.
func Pick(salt string, id model.ID, choices []string) string {
	if len(choices) == 0 {
		return ""
	}
	h := xxhash.Sum64String(salt + ":" + string(id))
	return choices[h%uint64(len(choices))]
}

// Avatar returns the decorative avatar for a record id.
func Avatar(id model.ID) string {
	return Pick("avatar", id, DefaultAvatars)
}

// AccentColor returns the card color for a student id.
func AccentColor(id model.ID) string {
	return Pick("accent", id, AccentColors)
}
