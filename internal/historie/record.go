package historie

import (
	"time"

	"gorm.io/datatypes"
)

// Actie is the kind of change a historie record describes.
type Actie string

const (
	ActieCreate Actie = "CREATE"
	ActieUpdate Actie = "UPDATE"
	ActieDelete Actie = "DELETE"
)

// ParseActie normalizes a caller-supplied action filter. Unknown values
// return false and are ignored by the query side rather than rejected.
func ParseActie(s string) (Actie, bool) {
	switch Actie(s) {
	case ActieCreate, ActieUpdate, ActieDelete:
		return Actie(s), true
	}
	switch s {
	case "create", "insert", "INSERT":
		return ActieCreate, true
	case "update":
		return ActieUpdate, true
	case "delete":
		return ActieDelete, true
	}
	return "", false
}

// Record is one append-only historie entry: one change to one tracked record
// at one version. Versie nummers per (tabel_naam, record_id) start at 1 and
// form a contiguous sequence; a DELETE entry is always the final version.
type Record struct {
	ID           string `gorm:"primaryKey;size:36"`
	TabelNaam    string `gorm:"size:100;not null;index:idx_historie_record,priority:1" json:"tabel_naam"`
	RecordID     string `gorm:"size:36;not null;index:idx_historie_record,priority:2" json:"record_id"`
	VersieNummer int    `gorm:"not null" json:"versie_nummer"`
	Actie        Actie  `gorm:"size:10;not null" json:"actie"`

	// Full snapshots around the change. DataVoor is null for CREATE,
	// DataNa is null for DELETE. DataDiff is persisted for UPDATE only.
	DataVoor datatypes.JSON `json:"data_voor,omitempty"`
	DataNa   datatypes.JSON `json:"data_na,omitempty"`
	DataDiff datatypes.JSON `json:"data_diff,omitempty"`

	GewijzigdDoorID *string   `gorm:"size:36;index" json:"gewijzigd_door_id"`
	GewijzigdOp     time.Time `gorm:"not null;index" json:"gewijzigd_op"`
	Opmerking       *string   `gorm:"type:text" json:"opmerking"`

	CreatedAt time.Time `json:"created_at"`
}

func (Record) TableName() string { return "historie_records" }
