package historie

import "context"

// Context keys are unexported types so no other package can collide with
// or overwrite the tracking metadata.
type userKey struct{}
type noteKey struct{}
type skipKey struct{}

// SkipSetting is the gorm session setting that disables tracking for every
// statement issued through that session. Scoped to the session, never global,
// so a bulk load in one session cannot silently disable auditing elsewhere.
const SkipSetting = "historie:skip"

// WithUser attaches the acting user to the context. Every historie record
// written while this context is active gets gewijzigd_door_id set to id.
func WithUser(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// WithNote attaches a free-text annotation (opmerking) to the context.
func WithNote(ctx context.Context, note string) context.Context {
	return context.WithValue(ctx, noteKey{}, note)
}

// Skip marks the context so the tracker bypasses capture for all statements
// carrying it. Used for seeding and other bulk operations.
func Skip(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipKey{}, true)
}

// UserFrom returns the acting user id, or "" when none is set.
func UserFrom(ctx context.Context) string {
	if v, ok := ctx.Value(userKey{}).(string); ok {
		return v
	}
	return ""
}

// NoteFrom returns the annotation, or "" when none is set.
func NoteFrom(ctx context.Context) string {
	if v, ok := ctx.Value(noteKey{}).(string); ok {
		return v
	}
	return ""
}

// Skipped reports whether tracking is disabled on this context.
func Skipped(ctx context.Context) bool {
	v, ok := ctx.Value(skipKey{}).(bool)
	return ok && v
}
