// Package config holds exam generation configuration: institution
// metadata, the answer-key password, branding assets, and locale.
package config

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/jaguilar992/exam-generator/types"
)

// DefaultTotalPoints is used when a configuration does not set a point
// total.
const DefaultTotalPoints = 100

// Config is a frozen, validated exam configuration. Build one through
// the Builder (or Load); generation consumes it read-only and never
// mutates it.
type Config struct {
	// Required.
	Institution string
	Course      string
	Subject     string
	Professor   string
	Password    string
	LogoPath    string

	// Optional.
	Student     string
	Section     string
	ExamPeriod  string
	TotalPoints int
	Year        int
	Locale      language.Tag
}

// Validate checks the frozen configuration. Errors name the offending
// field so callers can correct and resubmit.
func (c Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"institution", c.Institution},
		{"course", c.Course},
		{"subject", c.Subject},
		{"professor", c.Professor},
		{"password", c.Password},
		{"logo", c.LogoPath},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return types.NewErrorf(types.ErrCodeConfiguration,
				"required field %q is missing", field.name).
				WithContext("field", field.name)
		}
	}

	if _, err := os.Stat(c.LogoPath); err != nil {
		return types.WrapErrorf(types.ErrCodeConfiguration, err,
			"logo file does not exist: %s", c.LogoPath).
			WithContext("field", "logo")
	}
	if c.TotalPoints <= 0 {
		return types.NewErrorf(types.ErrCodeConfiguration,
			"total_points must be positive, got %d", c.TotalPoints).
			WithContext("field", "total_points")
	}
	if c.Year < 1900 || c.Year > 2100 {
		return types.NewErrorf(types.ErrCodeConfiguration,
			"year must be between 1900 and 2100, got %d", c.Year).
			WithContext("field", "year")
	}
	return nil
}

// Strings resolves the string table for this configuration's locale,
// falling back to the process default when no locale is set.
func (c Config) Strings() Strings {
	tag := c.Locale
	if tag == language.Und || tag == (language.Tag{}) {
		tag = DefaultLocale()
	}
	return StringsFor(tag)
}

// Builder accumulates configuration fields before validation. Setters
// never fail; all required-field checks run once, at Build.
type Builder struct {
	cfg Config
}

// NewBuilder creates an empty configuration builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Institution sets the institution name (required).
func (b *Builder) Institution(name string) *Builder {
	b.cfg.Institution = strings.TrimSpace(name)
	return b
}

// Course sets the course name (required).
func (b *Builder) Course(name string) *Builder {
	b.cfg.Course = strings.TrimSpace(name)
	return b
}

// Subject sets the class/subject name (required).
func (b *Builder) Subject(name string) *Builder {
	b.cfg.Subject = strings.TrimSpace(name)
	return b
}

// Professor sets the professor name (required).
func (b *Builder) Professor(name string) *Builder {
	b.cfg.Professor = strings.TrimSpace(name)
	return b
}

// Password sets the answer-key password (required).
func (b *Builder) Password(password string) *Builder {
	b.cfg.Password = strings.TrimSpace(password)
	return b
}

// Logo sets the institution logo path (required).
func (b *Builder) Logo(path string) *Builder {
	b.cfg.LogoPath = strings.TrimSpace(path)
	return b
}

// Student sets the student name (optional; blank line when unset).
func (b *Builder) Student(name string) *Builder {
	b.cfg.Student = strings.TrimSpace(name)
	return b
}

// Section sets the course section (optional; blank line when unset).
func (b *Builder) Section(section string) *Builder {
	b.cfg.Section = strings.TrimSpace(section)
	return b
}

// ExamPeriod sets the exam period label (optional).
func (b *Builder) ExamPeriod(period string) *Builder {
	b.cfg.ExamPeriod = strings.TrimSpace(period)
	return b
}

// TotalPoints sets the exam point total (optional, default 100).
func (b *Builder) TotalPoints(points int) *Builder {
	b.cfg.TotalPoints = points
	return b
}

// Year sets the exam year (optional, default current year).
func (b *Builder) Year(year int) *Builder {
	b.cfg.Year = year
	return b
}

// Locale sets the sheet language (optional, default process locale).
func (b *Builder) Locale(tag language.Tag) *Builder {
	b.cfg.Locale = tag
	return b
}

// Build applies defaults, validates, and returns the frozen Config.
func (b *Builder) Build() (Config, error) {
	cfg := b.cfg
	if cfg.TotalPoints == 0 {
		cfg.TotalPoints = DefaultTotalPoints
	}
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
