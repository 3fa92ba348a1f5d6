package historie

import (
	"context"
	"testing"
)

func TestTrackingContext(t *testing.T) {
	t.Parallel()

	base := context.Background()

	if got := UserFrom(base); got != "" {
		t.Errorf("UserFrom(empty) = %q, want empty", got)
	}
	if got := NoteFrom(base); got != "" {
		t.Errorf("NoteFrom(empty) = %q, want empty", got)
	}
	if Skipped(base) {
		t.Error("Skipped(empty) = true, want false")
	}

	ctx := WithUser(base, "user-1")
	ctx = WithNote(ctx, "import klantenlijst")

	if got := UserFrom(ctx); got != "user-1" {
		t.Errorf("UserFrom = %q, want user-1", got)
	}
	if got := NoteFrom(ctx); got != "import klantenlijst" {
		t.Errorf("NoteFrom = %q, want import klantenlijst", got)
	}
	if Skipped(ctx) {
		t.Error("Skipped = true without Skip")
	}

	skipped := Skip(ctx)
	if !Skipped(skipped) {
		t.Error("Skipped(Skip(ctx)) = false")
	}
	// The parent context stays untouched.
	if Skipped(ctx) {
		t.Error("Skip leaked into parent context")
	}
}

func TestWithUserOverwrite(t *testing.T) {
	t.Parallel()

	ctx := WithUser(context.Background(), "eerste")
	ctx = WithUser(ctx, "tweede")
	if got := UserFrom(ctx); got != "tweede" {
		t.Errorf("UserFrom = %q, want tweede", got)
	}
}
