package constants

const (
	RoleOwner     = "owner"
	RoleManager   = "manager"
	RoleAttendant = "attendant"
	RoleViewer    = "viewer"
)

// ValidRoles is the set of allowed membership roles.
var ValidRoles = []string{RoleOwner, RoleManager, RoleAttendant, RoleViewer}

// InvitableRoles are the roles that can be granted via invite. Owner is
// only assigned at tenant creation, never by invitation.
var InvitableRoles = []string{RoleManager, RoleAttendant, RoleViewer}

// IsValidRole returns true if role is one of the allowed membership roles.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsInvitableRole returns true if role can be granted through an invite.
func IsInvitableRole(role string) bool {
	for _, r := range InvitableRoles {
		if r == role {
			return true
		}
	}
	return false
}
