// File: internal/service/policy.go
package service

import (
	"errors"

	"safe-radius/internal/model"
)

// Operation names an action subject to the role-gated access policy.
type Operation string

const (
	OpSubmitPOI      Operation = "submit_poi"
	OpViewOwnPOIs    Operation = "view_own_pois"
	OpSearchPOIs     Operation = "search_pois"
	OpViewAllPOIs    Operation = "view_all_pois"
	OpDeletePOI      Operation = "delete_poi"
	OpListUsers      Operation = "list_users"
	OpChangeUserRole Operation = "change_user_role"
	OpViewStats      Operation = "view_stats"
)

// policyTable maps each operation to the roles allowed to perform it. Anything
// absent from the table is denied.
var policyTable = map[Operation]map[model.Role]bool{
	OpSubmitPOI:      {model.RoleOwner: true, model.RoleAdmin: true},
	OpViewOwnPOIs:    {model.RoleOwner: true, model.RoleAdmin: true},
	OpSearchPOIs:     {model.RoleUser: true, model.RoleOwner: true, model.RoleAdmin: true},
	OpViewAllPOIs:    {model.RoleAdmin: true},
	OpDeletePOI:      {model.RoleAdmin: true},
	OpListUsers:      {model.RoleAdmin: true},
	OpChangeUserRole: {model.RoleAdmin: true},
	OpViewStats:      {model.RoleAdmin: true},
}

// IsAllowed reports whether the role may perform the operation.
func IsAllowed(role model.Role, op Operation) bool {
	return policyTable[op][role]
}

// ErrSelfDemotion rejects an admin lowering their own role.
var ErrSelfDemotion = errors.New("admins cannot change their own role to a lower one")

// ValidateRoleChange applies the self-protection rule on top of the policy
// table: the table says whether the actor may change roles at all, this guard
// says an admin may never demote their own account.
func ValidateRoleChange(actorID, targetID int, newRole model.Role) error {
	if actorID == targetID && newRole != model.RoleAdmin {
		return ErrSelfDemotion
	}
	return nil
}
