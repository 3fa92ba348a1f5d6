package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type CommentaarType string

const (
	CommentaarIntern      CommentaarType = "intern"
	CommentaarLeverancier CommentaarType = "leverancier"
	CommentaarKwaliteit   CommentaarType = "kwaliteit"
)

type CommentaarStatus string

const (
	CommentaarConcept      CommentaarStatus = "concept"
	CommentaarGepubliceerd CommentaarStatus = "gepubliceerd"
	CommentaarGearchiveerd CommentaarStatus = "gearchiveerd"
)

type ProjectFaseCommentaar struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	FaseID string `gorm:"size:36;not null;index" json:"fase_id"`

	Type   CommentaarType   `gorm:"size:20;not null;index" json:"type"`
	Status CommentaarStatus `gorm:"size:20;not null;default:gepubliceerd" json:"status"`

	Onderwerp *string `gorm:"size:200" json:"onderwerp"`
	Bericht   string  `gorm:"type:text;not null" json:"bericht"`

	AuteurID      string  `gorm:"size:36;not null;index" json:"auteur_id"`
	LeverancierID *string `gorm:"size:36;index" json:"leverancier_id"`

	ParentCommentaarID *string `gorm:"size:36" json:"parent_commentaar_id"`

	GepubliceerdOp *time.Time `json:"gepubliceerd_op"`
	BewerktOp      *time.Time `json:"bewerkt_op"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectFaseCommentaar) TableName() string { return "project_fase_commentaren" }

func (c *ProjectFaseCommentaar) AuditRecordID() string { return c.ID }
func (c *ProjectFaseCommentaar) AuditVersion() int     { return c.VersieNummer }
func (c *ProjectFaseCommentaar) SetAuditVersion(v int) { c.VersieNummer = v }

func (c *ProjectFaseCommentaar) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":                   c.ID,
		"fase_id":              c.FaseID,
		"type":                 string(c.Type),
		"status":               string(c.Status),
		"onderwerp":            historie.NullString(c.Onderwerp),
		"bericht":              c.Bericht,
		"auteur_id":            c.AuteurID,
		"leverancier_id":       historie.NullString(c.LeverancierID),
		"parent_commentaar_id": historie.NullString(c.ParentCommentaarID),
		"gepubliceerd_op":      historie.NullTimestamp(c.GepubliceerdOp),
		"bewerkt_op":           historie.NullTimestamp(c.BewerktOp),
		"versie_nummer":        c.VersieNummer,
		"created_at":           historie.Timestamp(c.CreatedAt),
		"updated_at":           historie.Timestamp(c.UpdatedAt),
	}
}
