package models

import "time"

type ExportType string

const (
	ExportPersona ExportType = "persona"
	ExportBlog    ExportType = "blog"
)

// GptExportRecord is an append-only audit entry marking that a prompt was
// generated for external use. Records are never updated or deleted.
type GptExportRecord struct {
	ID        string     `json:"id"`
	Type      ExportType `json:"type"`
	DataID    string     `json:"dataId"`
	DataTitle string     `json:"dataTitle"`
	Timestamp time.Time  `json:"timestamp"`
}
