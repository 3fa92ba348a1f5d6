package historie_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maarten-vizzerz/comaker/internal/historie"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

// newTestDB opens a private in-memory database with the tracker installed.
// cache=shared keeps the database alive across the pool's connections; the
// random name isolates tests from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Vestiging{},
		&models.Leverancier{},
		&models.Project{},
		&models.Contract{},
		&models.ProjectFase{},
		&models.ProjectFaseDocument{},
		&models.ProjectFaseCommentaar{},
		&historie.Record{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	reg := historie.NewRegistry()
	models.RegisterAuditables(reg)
	if err := gdb.Use(historie.NewTracker(reg)); err != nil {
		t.Fatalf("install tracker: %v", err)
	}
	return gdb
}

func newLeverancier() *models.Leverancier {
	email := "info@jansen.nl"
	return &models.Leverancier{
		ID:     uuid.NewString(),
		Naam:   "Bouwbedrijf Jansen",
		Type:   models.LeverancierBouw,
		Status: models.LeverancierActief,
		Email:  &email,
	}
}

func recordsFor(t *testing.T, gdb *gorm.DB, tabel, id string) []historie.Record {
	t.Helper()
	var recs []historie.Record
	err := gdb.Where("tabel_naam = ? AND record_id = ?", tabel, id).
		Order("versie_nummer ASC").
		Find(&recs).Error
	if err != nil {
		t.Fatalf("load records: %v", err)
	}
	return recs
}

func TestTrackerCreate(t *testing.T) {
	gdb := newTestDB(t)

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if lev.VersieNummer != 1 {
		t.Errorf("VersieNummer = %d, want 1", lev.VersieNummer)
	}

	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Actie != historie.ActieCreate {
		t.Errorf("actie = %s, want CREATE", rec.Actie)
	}
	if rec.VersieNummer != 1 {
		t.Errorf("record versie = %d, want 1", rec.VersieNummer)
	}
	if len(rec.DataVoor) != 0 {
		t.Error("CREATE record has data_voor")
	}
	if len(rec.DataNa) == 0 {
		t.Fatal("CREATE record has no data_na")
	}

	var snap historie.FieldMap
	if err := json.Unmarshal(rec.DataNa, &snap); err != nil {
		t.Fatalf("unmarshal data_na: %v", err)
	}
	if snap["naam"] != "Bouwbedrijf Jansen" {
		t.Errorf("snapshot naam = %v", snap["naam"])
	}
	if snap["email"] != "info@jansen.nl" {
		t.Errorf("snapshot email = %v", snap["email"])
	}
	// Every schema field is present, absent values as explicit nulls.
	if v, ok := snap["kvk_nummer"]; !ok || v != nil {
		t.Errorf("snapshot kvk_nummer = %v (present=%v), want explicit null", v, ok)
	}
}

func TestTrackerUpdateChain(t *testing.T) {
	gdb := newTestDB(t)

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	nieuw := "administratie@jansen.nl"
	lev.Email = &nieuw
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	if lev.VersieNummer != 2 {
		t.Errorf("VersieNummer na update = %d, want 2", lev.VersieNummer)
	}

	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	upd := recs[1]
	if upd.Actie != historie.ActieUpdate || upd.VersieNummer != 2 {
		t.Fatalf("second record = %s v%d, want UPDATE v2", upd.Actie, upd.VersieNummer)
	}
	if len(upd.DataVoor) == 0 || len(upd.DataNa) == 0 || len(upd.DataDiff) == 0 {
		t.Fatal("UPDATE record is missing a payload")
	}

	// data_na of version 1 matches data_voor of version 2.
	var na1, voor2 historie.FieldMap
	if err := json.Unmarshal(recs[0].DataNa, &na1); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(upd.DataVoor, &voor2); err != nil {
		t.Fatal(err)
	}
	for _, veld := range []string{"id", "naam", "email", "status", "type"} {
		if na1[veld] != voor2[veld] {
			t.Errorf("veld %s: data_na v1 = %v, data_voor v2 = %v", veld, na1[veld], voor2[veld])
		}
	}

	var diff map[string]historie.Change
	if err := json.Unmarshal(upd.DataDiff, &diff); err != nil {
		t.Fatal(err)
	}
	c, ok := diff["email"]
	if !ok {
		t.Fatalf("diff mist email: %v", diff)
	}
	if c.Oud != "info@jansen.nl" || c.Nieuw != "administratie@jansen.nl" {
		t.Errorf("email diff = %+v", c)
	}
	if _, ok := diff["naam"]; ok {
		t.Error("unchanged veld naam in diff")
	}
}

func TestTrackerDelete(t *testing.T) {
	gdb := newTestDB(t)

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	tel := "0715551234"
	lev.Telefoon = &tel
	if err := gdb.Save(lev).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := gdb.Delete(lev).Error; err != nil {
		t.Fatalf("delete: %v", err)
	}

	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	del := recs[2]
	if del.Actie != historie.ActieDelete {
		t.Errorf("laatste actie = %s, want DELETE", del.Actie)
	}
	// A delete closes the chain at the version it removed.
	if del.VersieNummer != 2 {
		t.Errorf("DELETE versie = %d, want 2", del.VersieNummer)
	}
	if len(del.DataVoor) == 0 {
		t.Error("DELETE record has no data_voor")
	}
	if len(del.DataNa) != 0 {
		t.Error("DELETE record has data_na")
	}
}

func TestTrackerAttribution(t *testing.T) {
	gdb := newTestDB(t)

	ctx := historie.WithUser(context.Background(), "user-42")
	ctx = historie.WithNote(ctx, "Leverancier aangemaakt via API")

	lev := newLeverancier()
	if err := gdb.WithContext(ctx).Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	rec := recs[0]
	if rec.GewijzigdDoorID == nil || *rec.GewijzigdDoorID != "user-42" {
		t.Errorf("gewijzigd_door_id = %v, want user-42", rec.GewijzigdDoorID)
	}
	if rec.Opmerking == nil || *rec.Opmerking != "Leverancier aangemaakt via API" {
		t.Errorf("opmerking = %v", rec.Opmerking)
	}
}

func TestTrackerAnonymousMutation(t *testing.T) {
	gdb := newTestDB(t)

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].GewijzigdDoorID != nil {
		t.Errorf("gewijzigd_door_id = %v, want nil zonder ingelogde gebruiker", recs[0].GewijzigdDoorID)
	}
}

func TestTrackerSkipContext(t *testing.T) {
	gdb := newTestDB(t)

	ctx := historie.Skip(context.Background())
	lev := newLeverancier()
	if err := gdb.WithContext(ctx).Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	naam := "Bouwbedrijf Jansen B.V."
	lev.Naam = naam
	if err := gdb.WithContext(ctx).Save(lev).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	if recs := recordsFor(t, gdb, "leveranciers", lev.ID); len(recs) != 0 {
		t.Errorf("got %d records with tracking skipped, want 0", len(recs))
	}
	// Version bump is part of tracking: skipped mutations leave it alone.
	var terug models.Leverancier
	if err := gdb.First(&terug, "id = ?", lev.ID).Error; err != nil {
		t.Fatal(err)
	}
	if terug.VersieNummer != 1 {
		t.Errorf("VersieNummer = %d, want unchanged 1", terug.VersieNummer)
	}
}

func TestTrackerSkipSession(t *testing.T) {
	gdb := newTestDB(t)

	stil := gdb.Set(historie.SkipSetting, true).Session(&gorm.Session{})
	lev := newLeverancier()
	if err := stil.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if recs := recordsFor(t, gdb, "leveranciers", lev.ID); len(recs) != 0 {
		t.Errorf("got %d records in skip session, want 0", len(recs))
	}

	// The root handle still tracks.
	ander := newLeverancier()
	ander.KvkNummer = nil
	if err := gdb.Create(ander).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if recs := recordsFor(t, gdb, "leveranciers", ander.ID); len(recs) != 1 {
		t.Errorf("root handle wrote %d records, want 1", len(recs))
	}
}

func TestTrackerVersionChainMultipleUpdates(t *testing.T) {
	gdb := newTestDB(t)

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	for i, stad := range []string{"Leiden", "Delft", "Amsterdam"} {
		plaats := stad
		lev.AdresPlaats = &plaats
		if err := gdb.Save(lev).Error; err != nil {
			t.Fatalf("update %d: %v", i+1, err)
		}
	}

	if lev.VersieNummer != 4 {
		t.Errorf("VersieNummer = %d, want 4", lev.VersieNummer)
	}
	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 4 {
		t.Fatalf("got %d records, want 4", len(recs))
	}
	for i, rec := range recs {
		if rec.VersieNummer != i+1 {
			t.Errorf("record %d heeft versie %d, want %d", i, rec.VersieNummer, i+1)
		}
	}
}

func TestTrackerAuditStoreFailureDoesNotBlockPrimary(t *testing.T) {
	gdb := newTestDB(t)

	if err := gdb.Migrator().DropTable(&historie.Record{}); err != nil {
		t.Fatalf("drop historie_records: %v", err)
	}

	// The tracker logs the failed audit write and lets the mutation through.
	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create with broken audit store: %v", err)
	}
	if lev.VersieNummer != 1 {
		t.Errorf("VersieNummer = %d, want 1", lev.VersieNummer)
	}

	var terug models.Leverancier
	if err := gdb.First(&terug, "id = ?", lev.ID).Error; err != nil {
		t.Fatalf("primary row not persisted: %v", err)
	}

	if err := gdb.AutoMigrate(&historie.Record{}); err != nil {
		t.Fatalf("restore historie_records: %v", err)
	}
	if recs := recordsFor(t, gdb, "leveranciers", lev.ID); len(recs) != 0 {
		t.Errorf("got %d records after failed audit write, want 0", len(recs))
	}
}

func TestTrackerPrimaryFailureWritesNothing(t *testing.T) {
	gdb := newTestDB(t)

	lev := newLeverancier()
	if err := gdb.Create(lev).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	dubbel := newLeverancier()
	dubbel.ID = lev.ID
	if err := gdb.Create(dubbel).Error; err == nil {
		t.Fatal("duplicate primary key accepted")
	}

	// The failed mutation leaves the chain untouched.
	recs := recordsFor(t, gdb, "leveranciers", lev.ID)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want only the original CREATE", len(recs))
	}
	if recs[0].Actie != historie.ActieCreate || recs[0].VersieNummer != 1 {
		t.Errorf("record = %s v%d, want CREATE v1", recs[0].Actie, recs[0].VersieNummer)
	}
}

func TestTrackerSeparateRecordsSeparateChains(t *testing.T) {
	gdb := newTestDB(t)

	a, b := newLeverancier(), newLeverancier()
	b.Naam = "Installatiebedrijf De Vries"
	b.Email = nil
	for _, lev := range []*models.Leverancier{a, b} {
		if err := gdb.Create(lev).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	web := "https://jansen.nl"
	a.Website = &web
	if err := gdb.Save(a).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	if recs := recordsFor(t, gdb, "leveranciers", a.ID); len(recs) != 2 {
		t.Errorf("chain a has %d records, want 2", len(recs))
	}
	if recs := recordsFor(t, gdb, "leveranciers", b.ID); len(recs) != 1 {
		t.Errorf("chain b has %d records, want 1", len(recs))
	}
}
