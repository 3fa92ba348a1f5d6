package models

import (
	"time"

	"github.com/maarten-vizzerz/comaker/internal/historie"
)

type ContractStatus string

const (
	ContractConcept        ContractStatus = "concept"
	ContractTerGoedkeuring ContractStatus = "ter_goedkeuring"
	ContractGoedgekeurd    ContractStatus = "goedgekeurd"
	ContractGetekend       ContractStatus = "getekend"
	ContractActief         ContractStatus = "actief"
	ContractVerlopen       ContractStatus = "verlopen"
	ContractBeeindigd      ContractStatus = "beeindigd"
)

type ContractType string

const (
	ContractOnderhoud        ContractType = "onderhoudscontract"
	ContractDienstverlening  ContractType = "dienstverlening"
	ContractLevering         ContractType = "levering"
	ContractAanneming        ContractType = "aanneming"
	ContractRaamovereenkomst ContractType = "raamovereenkomst"
	ContractHuur             ContractType = "huur"
	ContractAnders           ContractType = "anders"
)

type Contract struct {
	ID             string         `gorm:"primaryKey;size:36" json:"id"`
	ContractNummer string         `gorm:"size:50;uniqueIndex;not null" json:"contract_nummer"`
	Naam           string         `gorm:"size:200;not null;index" json:"naam"`
	Beschrijving   *string        `gorm:"type:text" json:"beschrijving"`
	Type           ContractType   `gorm:"size:30;not null" json:"type"`
	Status         ContractStatus `gorm:"size:20;not null;default:concept" json:"status"`

	LeverancierID string `gorm:"size:36;not null;index" json:"leverancier_id"`

	ContractBedrag     float64 `gorm:"type:decimal(12,2);not null" json:"contract_bedrag"`
	GefactureerdBedrag float64 `gorm:"type:decimal(12,2);not null;default:0" json:"gefactureerd_bedrag"`

	StartDatum    *time.Time `json:"start_datum"`
	EindDatum     *time.Time `json:"eind_datum"`
	GetekendDatum *time.Time `json:"getekend_datum"`

	GoedgekeurdDoorID *string    `gorm:"size:36" json:"goedgekeurd_door_id"`
	GoedkeuringsDatum *time.Time `json:"goedkeurings_datum"`
	Opmerkingen       *string    `gorm:"type:text" json:"opmerkingen"`

	ProjectID           *string `gorm:"size:36;index" json:"project_id"`
	VerantwoordelijkeID string  `gorm:"size:36;not null;index" json:"verantwoordelijke_id"`

	VersieNummer int `gorm:"not null;default:1" json:"versie_nummer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contract) TableName() string { return "contracts" }

func (c *Contract) AuditRecordID() string { return c.ID }
func (c *Contract) AuditVersion() int     { return c.VersieNummer }
func (c *Contract) SetAuditVersion(v int) { c.VersieNummer = v }

func (c *Contract) Snapshot() historie.FieldMap {
	return historie.FieldMap{
		"id":                   c.ID,
		"contract_nummer":      c.ContractNummer,
		"naam":                 c.Naam,
		"beschrijving":         historie.NullString(c.Beschrijving),
		"type":                 string(c.Type),
		"status":               string(c.Status),
		"leverancier_id":       c.LeverancierID,
		"contract_bedrag":      c.ContractBedrag,
		"gefactureerd_bedrag":  c.GefactureerdBedrag,
		"start_datum":          historie.NullTimestamp(c.StartDatum),
		"eind_datum":           historie.NullTimestamp(c.EindDatum),
		"getekend_datum":       historie.NullTimestamp(c.GetekendDatum),
		"goedgekeurd_door_id":  historie.NullString(c.GoedgekeurdDoorID),
		"goedkeurings_datum":   historie.NullTimestamp(c.GoedkeuringsDatum),
		"opmerkingen":          historie.NullString(c.Opmerkingen),
		"project_id":           historie.NullString(c.ProjectID),
		"verantwoordelijke_id": c.VerantwoordelijkeID,
		"versie_nummer":        c.VersieNummer,
		"created_at":           historie.Timestamp(c.CreatedAt),
		"updated_at":           historie.Timestamp(c.UpdatedAt),
	}
}
