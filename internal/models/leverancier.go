package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type LeverancierStatus string

const (
	LeverancierActief      LeverancierStatus = "actief"
	LeverancierInactief    LeverancierStatus = "inactief"
	LeverancierGeblokkeerd LeverancierStatus = "geblokkeerd"
)

type LeverancierType string

const (
	LeverancierOnderhoud   LeverancierType = "onderhoud"
	LeverancierBouw        LeverancierType = "bouw"
	LeverancierInstallatie LeverancierType = "installatie"
	LeverancierSchoonmaak  LeverancierType = "schoonmaak"
	LeverancierBeveiliging LeverancierType = "beveiliging"
	LeverancierAdvies      LeverancierType = "advies"
	LeverancierLevering    LeverancierType = "leverancier"
	LeverancierAnders      LeverancierType = "anders"
)

type Leverancier struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	Naam      string            `gorm:"size:200;not null;index" json:"naam"`
	KvkNummer *string           `gorm:"size:20;uniqueIndex" json:"kvk_nummer"`
	BtwNummer *string           `gorm:"size:20" json:"btw_nummer"`
	Type      LeverancierType   `gorm:"size:30;not null" json:"type"`
	Status    LeverancierStatus `gorm:"size:20;not null;default:actief" json:"status"`

	Contactpersoon *string `gorm:"size:200" json:"contactpersoon"`
	Email          *string `gorm:"size:255;index" json:"email"`
	Telefoon       *string `gorm:"size:30" json:"telefoon"`
	Mobiel         *string `gorm:"size:30" json:"mobiel"`
	Website        *string `gorm:"size:255" json:"website"`

	AdresStraat     *string `gorm:"size:200" json:"adres_straat"`
	AdresHuisnummer *string `gorm:"size:20" json:"adres_huisnummer"`
	AdresPostcode   *string `gorm:"size:10" json:"adres_postcode"`
	AdresPlaats     *string `gorm:"size:100" json:"adres_plaats"`
	AdresLand       *string `gorm:"size:100;default:Nederland" json:"adres_land"`

	Iban     *string `gorm:"size:34" json:"iban"`
	BankNaam *string `gorm:"size:100" json:"bank_naam"`

	Notities *string  `gorm:"type:text" json:"notities"`
	Rating   *float64 `json:"rating"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Leverancier) TableName() string { return "leveranciers" }

func (l *Leverancier) AuditRecordID() string { return l.ID }
func (l *Leverancier) AuditVersion() int     { return l.VersieNummer }
func (l *Leverancier) SetAuditVersion(v int) { l.VersieNummer = v }

func (l *Leverancier) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":               l.ID,
		"naam":             l.Naam,
		"kvk_nummer":       historie.NullString(l.KvkNummer),
		"btw_nummer":       historie.NullString(l.BtwNummer),
		"type":             string(l.Type),
		"status":           string(l.Status),
		"contactpersoon":   historie.NullString(l.Contactpersoon),
		"email":            historie.NullString(l.Email),
		"telefoon":         historie.NullString(l.Telefoon),
		"mobiel":           historie.NullString(l.Mobiel),
		"website":          historie.NullString(l.Website),
		"adres_straat":     historie.NullString(l.AdresStraat),
		"adres_huisnummer": historie.NullString(l.AdresHuisnummer),
		"adres_postcode":   historie.NullString(l.AdresPostcode),
		"adres_plaats":     historie.NullString(l.AdresPlaats),
		"adres_land":       historie.NullString(l.AdresLand),
		"iban":             historie.NullString(l.Iban),
		"bank_naam":        historie.NullString(l.BankNaam),
		"notities":         historie.NullString(l.Notities),
		"rating":           historie.NullFloat(l.Rating),
		"versie_nummer":    l.VersieNummer,
		"created_at":       historie.Timestamp(l.CreatedAt),
		"updated_at":       historie.Timestamp(l.UpdatedAt),
	}
}
