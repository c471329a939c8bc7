package domain

import "strings"

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportBaseName is the fixed download name without extension.
const ExportBaseName = "proyectos_filtrados"

func ParseExportFormat(raw string) (ExportFormat, bool) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, true
	case FormatXLSX:
		return FormatXLSX, true
	default:
		return "", false
	}
}

type ExportPayload struct {
	Filename    string
	ContentType string
	Data        []byte
}
