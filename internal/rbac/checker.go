package rbac

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maarten-vizzerz/comaker/internal/auth"
	"github.com/maarten-vizzerz/comaker/internal/models"
)

// Require gates a route to the given roles. Authorization is a role enum on
// the user, not a permission table.
func Require(roles ...models.UserRole) gin.HandlerFunc {
	allowed := map[models.UserRole]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		cl := auth.ClaimsFrom(c)
		if cl == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		if _, ok := allowed[cl.Role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "onvoldoende rechten"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanWrite reports whether a role may mutate domain records at all.
func CanWrite(role models.UserRole) bool {
	switch role {
	case models.RoleBeheerder, models.RoleProjectleider, models.RoleControleur, models.RoleAdministratief:
		return true
	}
	return false
}
