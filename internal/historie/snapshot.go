package historie

import (
	"reflect"
	"sort"
	"time"
)

// FieldMap is a flat, JSON-safe snapshot of one entity at one point in time.
// Every persistent field of the entity is present; absent values are explicit
// nils, never omitted, so a diff can tell "cleared" apart from "not tracked".
type FieldMap map[string]any

// Auditable is the contract every tracked entity fulfils. The field set is an
// explicit, compile-time-checked schema per type: Snapshot enumerates every
// persistent column by hand instead of relying on runtime reflection.
type Auditable interface {
	TableName() string
	AuditRecordID() string
	AuditVersion() int
	SetAuditVersion(v int)
	Snapshot() FieldMap
}

// Factory produces a fresh, empty instance of a tracked type. The tracker
// uses it to load before/after row images, the service to restore versions.
type Factory func() Auditable

// Registry holds the closed set of tracked types, keyed by table name.
type Registry struct {
	types map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{types: map[string]Factory{}}
}

// Register adds a tracked type. The table name is taken from the instance
// itself so the registry can never drift from the gorm mapping.
func (r *Registry) Register(f Factory) {
	r.types[f().TableName()] = f
}

// Tracked reports whether mutations on the given table are audited.
func (r *Registry) Tracked(table string) bool {
	_, ok := r.types[table]
	return ok
}

// New returns a fresh instance for the table, or nil when it is not tracked.
func (r *Registry) New(table string) Auditable {
	f, ok := r.types[table]
	if !ok {
		return nil
	}
	return f()
}

// Tables returns the tracked table names, sorted.
func (r *Registry) Tables() []string {
	out := make([]string, 0, len(r.types))
	for t := range r.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Timestamp renders a temporal value in a fixed textual form with explicit
// offset. The zero time renders as nil.
func Timestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

// NullTimestamp renders an optional temporal value.
func NullTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return Timestamp(*t)
}

// NullString renders an optional string as value-or-nil.
func NullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// NullFloat renders an optional float as value-or-nil.
func NullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

// NullInt renders an optional integer as value-or-nil.
func NullInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

// Change is one field-level difference between two versions. Oud carries the
// first version's value, Nieuw the second's; direction is never normalized.
type Change struct {
	Oud   any `json:"oud"`
	Nieuw any `json:"nieuw"`
}

// Diff maps field names to their before/after values.
type Diff map[string]Change

// DiffMaps compares two snapshots over the union of their keys and returns
// every field whose value differs. Swapping the arguments swaps oud/nieuw in
// every entry but yields the same key set.
func DiffMaps(voor, na FieldMap) Diff {
	diff := Diff{}
	keys := map[string]struct{}{}
	for k := range voor {
		keys[k] = struct{}{}
	}
	for k := range na {
		keys[k] = struct{}{}
	}
	for k := range keys {
		oud, nieuw := voor[k], na[k]
		if !reflect.DeepEqual(oud, nieuw) {
			diff[k] = Change{Oud: oud, Nieuw: nieuw}
		}
	}
	return diff
}
