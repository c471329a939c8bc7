package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
)

const (
	VariantAssigned  = "assigned"
	VariantPredicted = "predicted"
	VariantExplained = "explained"
)

const defaultTitle = "Clasificación Jurídica de Proyectos FONDECYT"

const defaultDescription = "Explora los proyectos clasificados por **materia legal**. " +
	"Puedes filtrar y leer el texto completo sin perder el contexto."

var presets = map[string]domain.Schema{
	VariantAssigned: {
		Variant:        VariantAssigned,
		SourceFile:     "classified_proyectos_500w_explained.csv",
		Title:          defaultTitle,
		Description:    defaultDescription,
		FilenameColumn: "filename",
		SubjectColumn:  "assigned_subject",
		TextColumn:     "relevant_text_segment",
	},
	VariantPredicted: {
		Variant:        VariantPredicted,
		SourceFile:     "classified_proyectos_predicted.csv",
		Title:          defaultTitle,
		Description:    defaultDescription,
		FilenameColumn: "filename",
		SubjectColumn:  "predicted_subject",
		TextColumn:     "relevant_text_segment",
	},
	VariantExplained: {
		Variant:           VariantExplained,
		SourceFile:        "classified_proyectos_scored.csv",
		Title:             defaultTitle,
		Description:       defaultDescription + " Cada proyecto incluye su nivel de confianza y la explicación de la clasificación.",
		FilenameColumn:    "filename",
		SubjectColumn:     "predicted_subject",
		TextColumn:        "relevant_text_segment",
		ConfidenceColumn:  "confidence_pct",
		TopScoreColumn:    "top_score",
		SecondScoreColumn: "second_score",
		KeywordsColumn:    "matched_keywords_summary",
		ExplanationColumn: "explanation",
	},
}

// schemaFile is the YAML layout of SCHEMA_PATH. Unset keys inherit from the
// preset named by Variant.
type schemaFile struct {
	Variant     string `yaml:"variant"`
	SourceFile  string `yaml:"source_file"`
	Delimiter   string `yaml:"delimiter"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Columns     struct {
		Filename    string `yaml:"filename"`
		Subject     string `yaml:"subject"`
		Text        string `yaml:"text"`
		Confidence  string `yaml:"confidence"`
		TopScore    string `yaml:"top_score"`
		SecondScore string `yaml:"second_score"`
		Keywords    string `yaml:"keywords"`
		Explanation string `yaml:"explanation"`
	} `yaml:"columns"`
}

func Variants() []string {
	return []string{VariantAssigned, VariantPredicted, VariantExplained}
}

func Preset(variant string) (domain.Schema, error) {
	schema, ok := presets[strings.ToLower(strings.TrimSpace(variant))]
	if !ok {
		return domain.Schema{}, domain.WrapError(domain.ErrInvalidInput, "schema preset",
			fmt.Errorf("unknown variant %q (known: %s)", variant, strings.Join(Variants(), ", ")))
	}
	return schema, nil
}

// ResolveSchema returns the preset for cfg.SchemaVariant, overlaid with
// cfg.SchemaPath when set. cfg.SourceFile overrides the schema source file.
func ResolveSchema(cfg Config) (domain.Schema, error) {
	var (
		schema domain.Schema
		err    error
	)
	if cfg.SchemaPath != "" {
		schema, err = LoadSchemaFile(cfg.SchemaPath, cfg.SchemaVariant)
	} else {
		schema, err = Preset(cfg.SchemaVariant)
	}
	if err != nil {
		return domain.Schema{}, err
	}
	if cfg.SourceFile != "" {
		schema.SourceFile = cfg.SourceFile
	}
	if schema.Delimiter == 0 {
		schema.Delimiter = delimiterForFile(schema.SourceFile)
	}
	if err := schema.Validate(); err != nil {
		return domain.Schema{}, err
	}
	return schema, nil
}

func LoadSchemaFile(path, fallbackVariant string) (domain.Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Schema{}, fmt.Errorf("read schema file: %w", err)
	}
	return ParseSchema(raw, fallbackVariant)
}

func ParseSchema(raw []byte, fallbackVariant string) (domain.Schema, error) {
	var file schemaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Schema{}, domain.WrapError(domain.ErrInvalidInput, "parse schema", err)
	}

	variant := file.Variant
	if variant == "" {
		variant = fallbackVariant
	}
	schema, err := Preset(variant)
	if err != nil {
		return domain.Schema{}, err
	}

	overlay(&schema.SourceFile, file.SourceFile)
	overlay(&schema.Title, file.Title)
	overlay(&schema.Description, file.Description)
	overlay(&schema.FilenameColumn, file.Columns.Filename)
	overlay(&schema.SubjectColumn, file.Columns.Subject)
	overlay(&schema.TextColumn, file.Columns.Text)
	overlay(&schema.ConfidenceColumn, file.Columns.Confidence)
	overlay(&schema.TopScoreColumn, file.Columns.TopScore)
	overlay(&schema.SecondScoreColumn, file.Columns.SecondScore)
	overlay(&schema.KeywordsColumn, file.Columns.Keywords)
	overlay(&schema.ExplanationColumn, file.Columns.Explanation)

	if file.Delimiter != "" {
		delim, err := parseDelimiter(file.Delimiter)
		if err != nil {
			return domain.Schema{}, err
		}
		schema.Delimiter = delim
	}
	return schema, nil
}

func overlay(dst *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*dst = v
	}
}

func parseDelimiter(raw string) (rune, error) {
	switch raw {
	case `\t`, "tab":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(raw)
	if r == utf8.RuneError || size != len(raw) || r == '"' || r == '\r' || r == '\n' {
		return 0, domain.WrapError(domain.ErrInvalidInput, "parse schema", fmt.Errorf("invalid delimiter %q", raw))
	}
	return r, nil
}

func delimiterForFile(name string) rune {
	if strings.EqualFold(filepath.Ext(name), ".tsv") {
		return '\t'
	}
	return ','
}
