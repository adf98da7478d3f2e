package repo

import (
	"context"

	"donorpath/internal/domain"
	"donorpath/internal/infra"
	"donorpath/internal/sqlinline"
)

// RBACRepositoryPG fetches a user's roles and permissions through the
// role/permission join tables in one query.
type RBACRepositoryPG struct {
	db infra.SQLExecutor
}

func NewRBACRepository(db infra.SQLExecutor) *RBACRepositoryPG {
	return &RBACRepositoryPG{db: db}
}

func (r *RBACRepositoryPG) RolesAndPermissions(ctx context.Context, userID string) ([]domain.Role, []domain.Permission, error) {
	rows, err := r.db.Query(ctx, sqlinline.QSelectUserRolesPermissions, userID)
	if err != nil {
		return nil, nil, classify("fetch roles", err)
	}
	defer rows.Close()

	roleSeen := map[string]struct{}{}
	permSeen := map[string]struct{}{}
	var roles []domain.Role
	var permissions []domain.Permission
	for rows.Next() {
		var role domain.Role
		var perm domain.Permission
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &perm.ID, &perm.Name, &perm.Description); err != nil {
			return nil, nil, classify("scan role", err)
		}
		if _, ok := roleSeen[role.ID]; !ok {
			roleSeen[role.ID] = struct{}{}
			roles = append(roles, role)
		}
		if _, ok := permSeen[perm.ID]; !ok {
			permSeen[perm.ID] = struct{}{}
			permissions = append(permissions, perm)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, classify("fetch roles", err)
	}
	return roles, permissions, nil
}

var _ domain.RBACRepository = (*RBACRepositoryPG)(nil)
