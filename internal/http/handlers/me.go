package handlers

import (
	"net/http"

	"donorpath/internal/domain"
	"donorpath/internal/middleware"
)

// MeRoles returns the acting user's cached roles and permissions.
func (a *App) MeRoles(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user")
		return
	}
	snapshot, err := a.RBAC.Lookup(r.Context(), userID)
	if err != nil {
		a.storeError(w, err)
		return
	}
	roles := make([]map[string]string, 0, len(snapshot.Roles))
	for _, role := range snapshot.Roles {
		roles = append(roles, map[string]string{
			"id":          role.ID,
			"name":        role.Name,
			"description": role.Description,
		})
	}
	permissions := make([]map[string]string, 0, len(snapshot.Permissions))
	for _, perm := range snapshot.Permissions {
		permissions = append(permissions, map[string]string{
			"id":          perm.ID,
			"name":        perm.Name,
			"description": perm.Description,
		})
	}
	a.json(w, http.StatusOK, map[string]any{
		"roles":       roles,
		"permissions": permissions,
		"is_admin":    snapshot.HasRole(domain.AdminRoleName),
	})
}
