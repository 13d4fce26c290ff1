// Package i18n supplies the translated texts printed on a log sheet.
//
// Messages are keyed by their English text and looked up through a
// golang.org/x/text catalog. Unsupported languages fall back to English.
//
//	tr := i18n.New("de-AT")
//	labels := tr.Labels()       // Datum, Nr., Übung, ...
//	title := tr.Title()         // Training
package i18n

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/matzehuels/logsheet/pkg/sheet"
)

// Supported lists the languages with a catalog, English first.
var Supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(Supported)

// FooterDateLayout formats the creation date in the footer.
const FooterDateLayout = "02.01.2006"

// Message keys.
const (
	keyDate     = "Date"
	keyNumber   = "Nr."
	keyExercise = "Exercise"
	keyReps     = "Reps"
	keyWeight   = "Weight"
	keyEmpty    = "This is an empty workout, what did you expect on the PDF?"
	keyTitle    = "Workout"
	keySubject  = "Workout for %s"
	keyFooter   = "Created on the %s - %s"
)

var weekdayKeys = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var translations = map[language.Tag]map[string]string{
	language.German: {
		keyDate:     "Datum",
		keyNumber:   "Nr.",
		keyExercise: "Übung",
		keyReps:     "Wdh.",
		keyWeight:   "Gewicht",
		keyEmpty:    "Dies ist ein leeres Training, was hast du im PDF erwartet?",
		keyTitle:    "Training",
		keySubject:  "Training für %s",
		keyFooter:   "Erstellt am %s - %s",
		"Sunday":    "Sonntag",
		"Monday":    "Montag",
		"Tuesday":   "Dienstag",
		"Wednesday": "Mittwoch",
		"Thursday":  "Donnerstag",
		"Friday":    "Freitag",
		"Saturday":  "Samstag",
	},
}

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// Keys and messages are static; SetString only fails on a bad tag.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Translator prints messages in one language.
type Translator struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a translator for the best supported match of lang, which may be
// any BCP 47 tag or an Accept-Language style list ("de-CH, en;q=0.8").
func New(lang string) Translator {
	tags, _, err := language.ParseAcceptLanguage(lang)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.Make(lang)}
	}
	_, idx, _ := matcher.Match(tags...)
	tag := Supported[idx]
	return Translator{tag: tag, p: message.NewPrinter(tag, message.Catalog(cat))}
}

// Tag returns the matched language.
func (t Translator) Tag() language.Tag { return t.tag }

// Labels returns the sheet captions, weekday names and empty message.
func (t Translator) Labels() sheet.Labels {
	l := sheet.Labels{
		Date:     t.p.Sprintf(keyDate),
		Number:   t.p.Sprintf(keyNumber),
		Exercise: t.p.Sprintf(keyExercise),
		Reps:     t.p.Sprintf(keyReps),
		Weight:   t.p.Sprintf(keyWeight),
		Empty:    t.p.Sprintf(keyEmpty),
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		l.Weekdays[d] = t.p.Sprintf(weekdayKeys[d])
	}
	return l
}

// Title is the document title and download file stem.
func (t Translator) Title() string { return t.p.Sprintf(keyTitle) }

// Subject names the user the sheet was made for.
func (t Translator) Subject(username string) string {
	return t.p.Sprintf(keySubject, username)
}

// Footer is the line printed below the table.
func (t Translator) Footer(created time.Time, product string) string {
	return t.p.Sprintf(keyFooter, created.Format(FooterDateLayout), product)
}
