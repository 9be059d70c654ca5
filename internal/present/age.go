// Package present derives display-only fields: ages, localized labels,
// booking status and decorative avatars.
package present

import (
	"time"

	"github.com/worldsacross/tutor-viewer/internal/model"
)

// CalculateAge returns whole years between birth and today using calendar
// fields, so the birthday itself has to be reached before the age ticks.
func CalculateAge(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeAt is CalculateAge for an upstream date of birth, evaluated on the
// calendar of loc. Unparseable birth dates give 0.
func AgeAt(birth model.DateTime, now time.Time, loc *time.Location) int {
	if !birth.Valid() {
		return 0
	}
	b := birth.Time
	if !birth.DateOnly {
		b = b.In(loc)
	}
	return CalculateAge(b, now.In(loc))
}
