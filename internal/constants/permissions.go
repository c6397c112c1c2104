package constants

const (
	ActionCreate         = "create"
	ActionRead           = "read"
	ActionUpdate         = "update"
	ActionDelete         = "delete"
	ActionManageTeam     = "manage_team"
	ActionManageSettings = "manage_settings"
)

// RolePermissions maps each role to the actions it may perform.
// Kept as a flat data table: unknown role or action denies.
var RolePermissions = map[string][]string{
	RoleOwner:     {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManageTeam, ActionManageSettings},
	RoleManager:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManageTeam},
	RoleAttendant: {ActionCreate, ActionRead, ActionUpdate},
	RoleViewer:    {ActionRead},
}

// HasPermission returns true if role may perform action. Deny by default.
func HasPermission(role, action string) bool {
	actions, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
