package config

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jaguilar992/exam-generator/types"
)

// fileSchema is the YAML shape of an exam configuration file.
type fileSchema struct {
	Institution string `yaml:"institution"`
	Course      string `yaml:"course"`
	Subject     string `yaml:"subject"`
	Professor   string `yaml:"professor"`
	Password    string `yaml:"password"`
	Logo        string `yaml:"logo"`

	Student     string `yaml:"student"`
	Section     string `yaml:"section"`
	ExamPeriod  string `yaml:"exam_period"`
	TotalPoints int    `yaml:"total_points"`
	Year        int    `yaml:"year"`
	Locale      string `yaml:"locale"`
}

// Load reads, parses, and validates a YAML configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, types.WrapErrorf(types.ErrCodeConfiguration, err,
			"cannot read config file %s", path)
	}
	return ParseYAML(data)
}

// ParseYAML parses and validates YAML configuration content. Unknown
// fields and trailing documents are rejected.
func ParseYAML(data []byte) (Config, error) {
	var schema fileSchema
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&schema); err != nil {
		return Config{}, types.WrapError(types.ErrCodeConfiguration,
			"cannot parse config", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return Config{}, types.NewError(types.ErrCodeConfiguration,
			"config must contain a single YAML document")
	}

	b := NewBuilder().
		Institution(schema.Institution).
		Course(schema.Course).
		Subject(schema.Subject).
		Professor(schema.Professor).
		Password(schema.Password).
		Logo(schema.Logo).
		Student(schema.Student).
		Section(schema.Section).
		ExamPeriod(schema.ExamPeriod)
	if schema.TotalPoints != 0 {
		b.TotalPoints(schema.TotalPoints)
	}
	if schema.Year != 0 {
		b.Year(schema.Year)
	}
	if schema.Locale != "" {
		tag, err := ParseLocale(schema.Locale)
		if err != nil {
			return Config{}, types.WrapError(types.ErrCodeConfiguration,
				"invalid locale in config", err).WithContext("field", "locale")
		}
		b.Locale(tag)
	}
	return b.Build()
}
