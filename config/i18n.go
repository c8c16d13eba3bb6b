package config

import (
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// Strings holds the localized text printed on the exam sheets. Geometry
// never depends on these: the bubble grid is sized from the maximum
// option count, not from translated labels.
type Strings struct {
	StudentLabel   string
	CourseLabel    string
	SubjectLabel   string
	ProfessorLabel string
	DateBlank      string
	ListNumBlank   string
	ValueLabel     string
	PointsSuffix   string
	GradeLabel     string

	InstructionsTitle string
	InstructionsText  string
	AnswerSheetTitle  string
	AnswerKeyBanner   string

	StudentBlank string
	SectionBlank string
}

var supported = []language.Tag{
	language.English,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var tables = map[language.Tag]Strings{
	language.English: {
		StudentLabel:   "Student",
		CourseLabel:    "Course",
		SubjectLabel:   "Class",
		ProfessorLabel: "Professor",
		DateBlank:      "Date: ________________",
		ListNumBlank:   "#List: ________________",
		ValueLabel:     "Value",
		PointsSuffix:   "pts",
		GradeLabel:     "Grade",

		InstructionsTitle: "INSTRUCTIONS",
		InstructionsText: "Read each question carefully and select the correct answer by " +
			"completely filling in the corresponding circle. Use only pencil No. 2 " +
			"or blue or black pen.",
		AnswerSheetTitle: "ANSWER SHEET",
		AnswerKeyBanner:  "ANSWER KEY - ANSWER SHEET",

		StudentBlank: "Student: _________________________________________________________________",
		SectionBlank: "Course: ___________________",
	},
	language.Spanish: {
		StudentLabel:   "Alumno",
		CourseLabel:    "Curso",
		SubjectLabel:   "Clase",
		ProfessorLabel: "Profesor",
		DateBlank:      "Fecha: ________________",
		ListNumBlank:   "#Lista: ________________",
		ValueLabel:     "Valor",
		PointsSuffix:   "pts",
		GradeLabel:     "Calificación",

		InstructionsTitle: "INSTRUCCIONES",
		InstructionsText: "Lea cuidadosamente cada pregunta y seleccione la respuesta correcta " +
			"rellenando completamente el círculo correspondiente. Use únicamente " +
			"lápiz No. 2 o bolígrafo azul o negro.",
		AnswerSheetTitle: "HOJA DE RESPUESTAS",
		AnswerKeyBanner:  "PAUTA - HOJA DE RESPUESTAS",

		StudentBlank: "Alumno: _________________________________________________________________",
		SectionBlank: "Curso: ___________________",
	},
}

// StringsFor returns the string table for the closest supported locale.
func StringsFor(tag language.Tag) Strings {
	_, index, _ := matcher.Match(tag)
	return tables[supported[index]]
}

// ParseLocale parses a BCP 47 locale string ("en", "es-HN", ...).
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", s, err)
	}
	return tag, nil
}

// The process-wide default locale. Generation reads it when a Config
// carries no explicit locale; generation itself never mutates it.
var (
	defaultMu     sync.RWMutex
	defaultLocale = language.English
)

// SetDefaultLocale sets the process-wide default locale.
func SetDefaultLocale(tag language.Tag) {
	defaultMu.Lock()
	defaultLocale = tag
	defaultMu.Unlock()
}

// DefaultLocale returns the process-wide default locale.
func DefaultLocale() language.Tag {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLocale
}

// LabelWithColon formats a field label ("Student:").
func LabelWithColon(label string) string {
	return label + ":"
}

// PointsText formats the exam value line ("Value: 100 pts").
func (s Strings) PointsText(points int) string {
	return fmt.Sprintf("%s: %d %s", s.ValueLabel, points, s.PointsSuffix)
}

// Instructions formats the full instructions line.
func (s Strings) Instructions() string {
	return fmt.Sprintf("%s: %s", s.InstructionsTitle, s.InstructionsText)
}
