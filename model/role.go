package model

import (
	"fmt"
	"strings"
)

// Role governs visibility and permitted mutations.
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleTeamLead    Role = "Team Lead"
	RoleCoordinator Role = "Coordinator"
	RoleEmployee    Role = "Employee"
)

// ParseRole normalizes the casing/spacing variants that exist in stored data
// ("Team Lead", "team lead", "teamlead") to the canonical constants.
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(s)
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	key = strings.ReplaceAll(key, "_", "")

	switch key {
	case "admin":
		return RoleAdmin, nil
	case "teamlead":
		return RoleTeamLead, nil
	case "coordinator":
		return RoleCoordinator, nil
	case "employee":
		return RoleEmployee, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Normalize returns the canonical form of a role, falling back to Employee
// for values that cannot be parsed.
func (r Role) Normalize() Role {
	role, err := ParseRole(string(r))
	if err != nil {
		return RoleEmployee
	}
	return role
}

func (r Role) Is(other Role) bool {
	return r.Normalize() == other.Normalize()
}

// In reports whether the role is a member of the allow-list.
func (r Role) In(roles ...Role) bool {
	canonical := r.Normalize()
	for _, role := range roles {
		if canonical == role.Normalize() {
			return true
		}
	}
	return false
}
