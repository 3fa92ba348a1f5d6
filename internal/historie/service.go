package historie

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested version does not exist. The HTTP
// layer maps it to a 404; it is never raised for "record has no history at
// all", which is a valid empty result.
var ErrNotFound = errors.New("historie: versie niet gevonden")

// Hard caps on read endpoints, regardless of what the caller asks for.
const (
	MaxUserActivity  = 200
	MaxTableActivity = 500
	MaxLookbackHours = 168 // one week
)

// Entry is the read-side view of one historie record without the snapshot
// payloads, which can be large. Gorm types never leak past the service.
type Entry struct {
	ID              string    `json:"id"`
	TabelNaam       string    `json:"tabel_naam"`
	RecordID        string    `json:"record_id"`
	VersieNummer    int       `json:"versie_nummer"`
	Actie           Actie     `json:"actie"`
	GewijzigdDoorID *string   `json:"gewijzigd_door_id"`
	GewijzigdOp     time.Time `json:"gewijzigd_op"`
	Opmerking       *string   `json:"opmerking"`
}

// RecentFilter narrows the recent-changes feed. Unknown actie values are
// ignored rather than rejected.
type RecentFilter struct {
	Hours     int
	TabelNaam string
	Actie     string
}

// Stats is the overview aggregate over the whole historie log.
type Stats struct {
	TotaalWijzigingen int64            `json:"totaal_wijzigingen"`
	PerTabel          map[string]int64 `json:"per_tabel"`
	PerActie          map[string]int64 `json:"per_actie"`
	MeestActief       []UserCount      `json:"meest_actieve_gebruikers"`
	Laatste24Uur      int64            `json:"laatste_24_uur"`
}

type UserCount struct {
	UserID string `json:"user_id"`
	Aantal int64  `json:"aantal"`
}

// TableStats aggregates the historie of a single table.
type TableStats struct {
	TabelNaam         string           `json:"tabel_naam"`
	TotaalWijzigingen int64            `json:"totaal_wijzigingen"`
	PerActie          map[string]int64 `json:"per_actie"`
	GemiddeldVersies  float64          `json:"gemiddeld_versies"`
	MaxVersieNummer   int              `json:"max_versie_nummer"`
}

// Service exposes the read side of the historie log plus version restore.
// All query operations are side-effect-free and fail closed: unknown keys
// yield empty results, never errors.
type Service struct {
	db  *gorm.DB
	reg *Registry
}

func NewService(db *gorm.DB, reg *Registry) *Service {
	return &Service{db: db, reg: reg}
}

// History returns every historie entry for one record, newest first. An
// empty slice is a valid result; record existence is not validated.
func (s *Service) History(ctx context.Context, tabelNaam, recordID string) ([]Entry, error) {
	var recs []Record
	err := s.db.WithContext(ctx).
		Where("tabel_naam = ? AND record_id = ?", tabelNaam, recordID).
		Order("gewijzigd_op DESC").
		Order("versie_nummer DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toEntries(recs), nil
}

// VersionSnapshot returns the post-change field map of one exact version.
// A DELETE entry shares its versie nummer with the state it removed, so rows
// with an after-image are preferred; only when no materialized state exists
// for the version does this report not found.
func (s *Service) VersionSnapshot(ctx context.Context, tabelNaam, recordID string, versie int) (FieldMap, error) {
	var rec Record
	err := s.db.WithContext(ctx).
		Where("tabel_naam = ? AND record_id = ? AND versie_nummer = ?", tabelNaam, recordID, versie).
		Order("data_na IS NULL").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(rec.DataNa) == 0 {
		return nil, ErrNotFound
	}
	var fm FieldMap
	if err := json.Unmarshal(rec.DataNa, &fm); err != nil {
		return nil, err
	}
	return fm, nil
}

// Compare diffs two versions of one record. Oud carries versieA's value and
// nieuw versieB's; callers picking a > b get the "what was undone" view and
// the direction is preserved exactly.
func (s *Service) Compare(ctx context.Context, tabelNaam, recordID string, versieA, versieB int) (Diff, error) {
	voor, err := s.VersionSnapshot(ctx, tabelNaam, recordID, versieA)
	if err != nil {
		return nil, err
	}
	na, err := s.VersionSnapshot(ctx, tabelNaam, recordID, versieB)
	if err != nil {
		return nil, err
	}
	return DiffMaps(voor, na), nil
}

// UserActivity lists a user's recent changes, newest first, capped at
// MaxUserActivity no matter the requested limit.
func (s *Service) UserActivity(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > MaxUserActivity {
		limit = MaxUserActivity
	}
	var recs []Record
	err := s.db.WithContext(ctx).
		Where("gewijzigd_door_id = ?", userID).
		Order("gewijzigd_op DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toEntries(recs), nil
}

// TableActivity lists a table's recent changes, newest first, capped at
// MaxTableActivity.
func (s *Service) TableActivity(ctx context.Context, tabelNaam string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > MaxTableActivity {
		limit = MaxTableActivity
	}
	var recs []Record
	err := s.db.WithContext(ctx).
		Where("tabel_naam = ?", tabelNaam).
		Order("gewijzigd_op DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toEntries(recs), nil
}

// RecentChanges lists everything inside the lookback window, newest first.
// The window is bounded at MaxLookbackHours; filters match exactly and an
// unrecognized actie filter applies no filtering at all.
func (s *Service) RecentChanges(ctx context.Context, f RecentFilter) ([]Entry, error) {
	hours := f.Hours
	if hours <= 0 {
		hours = 24
	}
	if hours > MaxLookbackHours {
		hours = MaxLookbackHours
	}
	cutoff := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	q := s.db.WithContext(ctx).Where("gewijzigd_op >= ?", cutoff)
	if f.TabelNaam != "" {
		q = q.Where("tabel_naam = ?", f.TabelNaam)
	}
	if f.Actie != "" {
		if actie, ok := ParseActie(f.Actie); ok {
			q = q.Where("actie = ?", actie)
		}
	}

	var recs []Record
	if err := q.Order("gewijzigd_op DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	return toEntries(recs), nil
}

// Statistics aggregates the whole log. All counts tolerate an empty log.
func (s *Service) Statistics(ctx context.Context) (*Stats, error) {
	db := s.db.WithContext(ctx)
	st := &Stats{
		PerTabel:    map[string]int64{},
		PerActie:    map[string]int64{},
		MeestActief: []UserCount{},
	}

	if err := db.Model(&Record{}).Count(&st.TotaalWijzigingen).Error; err != nil {
		return nil, err
	}

	type group struct {
		Key   string
		Count int64
	}
	var perTabel []group
	if err := db.Model(&Record{}).
		Select("tabel_naam AS `key`, COUNT(id) AS count").
		Group("tabel_naam").
		Scan(&perTabel).Error; err != nil {
		return nil, err
	}
	for _, g := range perTabel {
		st.PerTabel[g.Key] = g.Count
	}

	var perActie []group
	if err := db.Model(&Record{}).
		Select("actie AS `key`, COUNT(id) AS count").
		Group("actie").
		Scan(&perActie).Error; err != nil {
		return nil, err
	}
	for _, g := range perActie {
		st.PerActie[g.Key] = g.Count
	}

	var users []group
	if err := db.Model(&Record{}).
		Select("gewijzigd_door_id AS `key`, COUNT(id) AS count").
		Where("gewijzigd_door_id IS NOT NULL").
		Group("gewijzigd_door_id").
		Order("count DESC").
		Limit(10).
		Scan(&users).Error; err != nil {
		return nil, err
	}
	for _, g := range users {
		st.MeestActief = append(st.MeestActief, UserCount{UserID: g.Key, Aantal: g.Count})
	}

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	if err := db.Model(&Record{}).
		Where("gewijzigd_op >= ?", cutoff).
		Count(&st.Laatste24Uur).Error; err != nil {
		return nil, err
	}
	return st, nil
}

// TableStatistics aggregates one table's historie. A table without entries
// returns zeroes, not an error.
func (s *Service) TableStatistics(ctx context.Context, tabelNaam string) (*TableStats, error) {
	db := s.db.WithContext(ctx)
	st := &TableStats{TabelNaam: tabelNaam, PerActie: map[string]int64{}}

	base := func() *gorm.DB {
		return db.Model(&Record{}).Where("tabel_naam = ?", tabelNaam)
	}
	if err := base().Count(&st.TotaalWijzigingen).Error; err != nil {
		return nil, err
	}

	type group struct {
		Key   string
		Count int64
	}
	var perActie []group
	if err := base().
		Select("actie AS `key`, COUNT(id) AS count").
		Group("actie").
		Scan(&perActie).Error; err != nil {
		return nil, err
	}
	for _, g := range perActie {
		st.PerActie[g.Key] = g.Count
	}

	var avg sql.NullFloat64
	if err := base().Select("AVG(versie_nummer)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg.Valid {
		st.GemiddeldVersies = math.Round(avg.Float64*100) / 100
	}

	var max sql.NullInt64
	if err := base().Select("MAX(versie_nummer)").Scan(&max).Error; err != nil {
		return nil, err
	}
	if max.Valid {
		st.MaxVersieNummer = int(max.Int64)
	}
	return st, nil
}

// Restore writes a stored version's field values back onto the live record,
// through the tracked mutation path, producing a new version rather than
// rewriting history. Meta columns are never restored.
func (s *Service) Restore(ctx context.Context, tabelNaam, recordID string, versie int) error {
	snap, err := s.VersionSnapshot(ctx, tabelNaam, recordID, versie)
	if err != nil {
		return err
	}
	model := s.reg.New(tabelNaam)
	if model == nil {
		return ErrNotFound
	}

	// Decode the snapshot onto a fresh instance so the tracker can resolve
	// the record identity and prior version through the Auditable contract.
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, model); err != nil {
		return err
	}

	values := map[string]any{}
	for k, v := range snap {
		switch k {
		case "id", "versie_nummer", "created_at", "updated_at":
			continue
		}
		values[k] = v
	}

	res := s.db.WithContext(ctx).
		Model(model).
		Where("id = ?", recordID).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toEntries(recs []Record) []Entry {
	out := make([]Entry, 0, len(recs))
	for _, r := range recs {
		out = append(out, Entry{
			ID:              r.ID,
			TabelNaam:       r.TabelNaam,
			RecordID:        r.RecordID,
			VersieNummer:    r.VersieNummer,
			Actie:           r.Actie,
			GewijzigdDoorID: r.GewijzigdDoorID,
			GewijzigdOp:     r.GewijzigdOp,
			Opmerking:       r.Opmerking,
		})
	}
	return out
}
