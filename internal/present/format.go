package present

import (
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es_ES"
	ut "github.com/go-playground/universal-translator"
	"github.com/worldsacross/tutor-viewer/internal/model"
)

// DefaultLocale matches the language of the app's copy.
const DefaultLocale = "es_ES"

var uni = ut.New(es_ES.New(), es_ES.New(), en.New())

// Formatter renders localized date and time labels in a fixed zone.
type Formatter struct {
	trans locales.Translator
	loc   *time.Location
}

// NewFormatter returns a formatter for locale ("es_ES", "en"). Unknown
// locales fall back to es_ES; a nil loc means time.Local.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	trans, found := uni.GetTranslator(locale)
	if !found {
		trans, _ = uni.GetTranslator(DefaultLocale)
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{trans: trans, loc: loc}
}

// Locale reports the locale actually in use.
func (f *Formatter) Locale() string {
	return f.trans.Locale()
}

// Location is the zone labels and ages are computed in.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Date renders a long date, e.g. "15 de junio de 2000". Empty for invalid input.
func (f *Formatter) Date(d model.DateTime) string {
	if !d.Valid() {
		return ""
	}
	return f.trans.FmtDateLong(f.local(d))
}

// Time renders hours and minutes. Empty for invalid input.
func (f *Formatter) Time(d model.DateTime) string {
	if !d.Valid() {
		return ""
	}
	return f.trans.FmtTimeShort(f.local(d))
}

// Age is AgeAt in the formatter's zone.
func (f *Formatter) Age(birth model.DateTime, now time.Time) int {
	return AgeAt(birth, now, f.loc)
}

// date-only values are calendar dates, not instants; shifting them into
// another zone would move them to the previous day west of UTC.
func (f *Formatter) local(d model.DateTime) time.Time {
	if d.DateOnly {
		return d.Time
	}
	return d.Time.In(f.loc)
}
