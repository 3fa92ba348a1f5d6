package historie

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// beforeStateKey carries the captured pre-image between the before and after
// phase of a single statement.
const beforeStateKey = "historie:voor"

// capture is the classification result of the before-commit phase.
type capture struct {
	recordID string
	versie   int
	voor     FieldMap
}

// Tracker is a gorm plugin that intercepts every create, update and delete on
// the tracked tables and appends a historie Record per committed change.
//
// The before-callbacks classify the pending change and capture the prior row
// state; the after-callbacks run behind gorm:commit_or_rollback_transaction,
// so entries are only written once the primary statement actually committed.
// Failures on the audit path are logged and swallowed: the primary mutation
// is never rolled back because its historie entry could not be written.
type Tracker struct {
	reg *Registry
	db  *gorm.DB
}

func NewTracker(reg *Registry) *Tracker {
	return &Tracker{reg: reg}
}

func (t *Tracker) Name() string { return "historie" }

func (t *Tracker) Initialize(db *gorm.DB) error {
	t.db = db

	create := db.Callback().Create()
	if err := create.Before("gorm:create").Register("historie:before_create", t.beforeCreate); err != nil {
		return err
	}
	if err := create.After("gorm:commit_or_rollback_transaction").Register("historie:after_create", t.afterCreate); err != nil {
		return err
	}

	update := db.Callback().Update()
	if err := update.Before("gorm:update").Register("historie:before_update", t.beforeUpdate); err != nil {
		return err
	}
	if err := update.After("gorm:commit_or_rollback_transaction").Register("historie:after_update", t.afterUpdate); err != nil {
		return err
	}

	del := db.Callback().Delete()
	if err := del.Before("gorm:delete").Register("historie:before_delete", t.beforeDelete); err != nil {
		return err
	}
	if err := del.After("gorm:commit_or_rollback_transaction").Register("historie:after_delete", t.afterDelete); err != nil {
		return err
	}
	return nil
}

// enabled checks both disable mechanisms: the per-operation context flag and
// the per-session gorm setting used by seed/bulk paths.
func (t *Tracker) enabled(tx *gorm.DB) bool {
	if tx.Statement == nil {
		return false
	}
	if Skipped(tx.Statement.Context) {
		return false
	}
	if v, ok := tx.Get(SkipSetting); ok {
		if b, ok := v.(bool); ok && b {
			return false
		}
	}
	return true
}

func (t *Tracker) tracked(tx *gorm.DB) bool {
	return t.enabled(tx) && t.reg.Tracked(tx.Statement.Table)
}

// recordID resolves the identity of the mutated row, preferring the explicit
// Auditable contract and falling back to the schema's primary key.
func (t *Tracker) recordID(stmt *gorm.Statement) string {
	if a, ok := stmt.Dest.(Auditable); ok {
		if id := a.AuditRecordID(); id != "" {
			return id
		}
	}
	if a, ok := stmt.Model.(Auditable); ok {
		if id := a.AuditRecordID(); id != "" {
			return id
		}
	}
	if stmt.Schema != nil && stmt.Schema.PrioritizedPrimaryField != nil {
		if v, zero := stmt.Schema.PrioritizedPrimaryField.ValueOf(stmt.Context, stmt.ReflectValue); !zero {
			return fmt.Sprint(v)
		}
	}
	return ""
}

// fresh returns a clean session on the root handle, outside the transaction
// of the statement being intercepted.
func (t *Tracker) fresh() *gorm.DB {
	return t.db.Session(&gorm.Session{NewDB: true})
}

func (t *Tracker) beforeCreate(tx *gorm.DB) {
	if !t.tracked(tx) {
		return
	}
	// A new record always starts its version chain at 1.
	if a, ok := tx.Statement.Dest.(Auditable); ok && a.AuditVersion() == 0 {
		a.SetAuditVersion(1)
	}
}

func (t *Tracker) afterCreate(tx *gorm.DB) {
	if !t.tracked(tx) || tx.Error != nil || tx.RowsAffected == 0 {
		return
	}
	a, ok := tx.Statement.Dest.(Auditable)
	if !ok {
		return
	}
	t.write(tx.Statement, &Record{
		TabelNaam:    tx.Statement.Table,
		RecordID:     a.AuditRecordID(),
		VersieNummer: a.AuditVersion(),
		Actie:        ActieCreate,
		DataNa:       asJSON(a.Snapshot()),
	})
}

func (t *Tracker) beforeUpdate(tx *gorm.DB) {
	if !t.tracked(tx) {
		return
	}
	stmt := tx.Statement
	rid := t.recordID(stmt)
	if rid == "" {
		return
	}

	// Fetch the full prior row state before it is overwritten. One extra
	// primary-key read buys an exact before-image instead of a partial one,
	// keeping data_na of version N equal to data_voor of version N+1.
	voor := t.reg.New(stmt.Table)
	if err := t.fresh().WithContext(stmt.Context).First(voor, "id = ?", rid).Error; err != nil {
		log.Printf("historie: oude staat van %s:%s niet geladen: %v", stmt.Table, rid, err)
		return
	}

	cp := capture{recordID: rid, versie: voor.AuditVersion() + 1, voor: voor.Snapshot()}
	tx.InstanceSet(beforeStateKey, cp)

	// Bump the record's own version counter as part of the same UPDATE.
	stmt.SetColumn("versie_nummer", cp.versie)
}

func (t *Tracker) afterUpdate(tx *gorm.DB) {
	if !t.tracked(tx) || tx.Error != nil || tx.RowsAffected == 0 {
		return
	}
	v, ok := tx.InstanceGet(beforeStateKey)
	if !ok {
		return
	}
	cp, ok := v.(capture)
	if !ok {
		return
	}

	// Re-read the committed row so map-based Updates get a full after-image.
	na := t.reg.New(tx.Statement.Table)
	if err := t.fresh().First(na, "id = ?", cp.recordID).Error; err != nil {
		log.Printf("historie: nieuwe staat van %s:%s niet geladen: %v", tx.Statement.Table, cp.recordID, err)
		return
	}
	naSnap := na.Snapshot()

	t.write(tx.Statement, &Record{
		TabelNaam:    tx.Statement.Table,
		RecordID:     cp.recordID,
		VersieNummer: na.AuditVersion(),
		Actie:        ActieUpdate,
		DataVoor:     asJSON(cp.voor),
		DataNa:       asJSON(naSnap),
		DataDiff:     asJSON(DiffMaps(cp.voor, naSnap)),
	})
}

func (t *Tracker) beforeDelete(tx *gorm.DB) {
	if !t.tracked(tx) {
		return
	}
	stmt := tx.Statement
	rid := t.recordID(stmt)
	if rid == "" {
		return
	}
	voor := t.reg.New(stmt.Table)
	if err := t.fresh().WithContext(stmt.Context).First(voor, "id = ?", rid).Error; err != nil {
		log.Printf("historie: te verwijderen staat van %s:%s niet geladen: %v", stmt.Table, rid, err)
		return
	}
	// A delete closes the version chain at the current version.
	tx.InstanceSet(beforeStateKey, capture{recordID: rid, versie: voor.AuditVersion(), voor: voor.Snapshot()})
}

func (t *Tracker) afterDelete(tx *gorm.DB) {
	if !t.tracked(tx) || tx.Error != nil || tx.RowsAffected == 0 {
		return
	}
	v, ok := tx.InstanceGet(beforeStateKey)
	if !ok {
		return
	}
	cp, ok := v.(capture)
	if !ok {
		return
	}
	t.write(tx.Statement, &Record{
		TabelNaam:    tx.Statement.Table,
		RecordID:     cp.recordID,
		VersieNummer: cp.versie,
		Actie:        ActieDelete,
		DataVoor:     asJSON(cp.voor),
	})
}

// write persists one historie record on its own connection, outside the
// primary transaction. The acting user and opmerking are read from the
// statement's tracking context at this moment. Errors are swallowed.
func (t *Tracker) write(stmt *gorm.Statement, rec *Record) {
	rec.ID = uuid.NewString()
	rec.GewijzigdOp = time.Now().UTC()
	if u := UserFrom(stmt.Context); u != "" {
		rec.GewijzigdDoorID = &u
	}
	if n := NoteFrom(stmt.Context); n != "" {
		rec.Opmerking = &n
	}
	if err := t.fresh().Create(rec).Error; err != nil {
		log.Printf("historie: record voor %s:%s v%d niet weggeschreven: %v",
			rec.TabelNaam, rec.RecordID, rec.VersieNummer, err)
	}
}

func asJSON(v any) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
