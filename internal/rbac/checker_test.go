package rbac

import (
	"testing"

	"github.com/maarten-vizzerz/comaker/internal/models"
)

func TestCanWrite(t *testing.T) {
	tests := []struct {
		role models.UserRole
		want bool
	}{
		{models.RoleBeheerder, true},
		{models.RoleProjectleider, true},
		{models.RoleControleur, true},
		{models.RoleAdministratief, true},
		{models.RoleLeverancier, false},
		{models.RoleReadOnly, false},
		{models.UserRole("onbekend"), false},
	}
	for _, tt := range tests {
		if got := CanWrite(tt.role); got != tt.want {
			t.Errorf("CanWrite(%s) = %v, want %v", tt.role, got, tt.want)
		}
	}
}
