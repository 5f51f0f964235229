package usecase

import (
	"main/model"

	"go.mongodb.org/mongo-driver/bson"
)

// The scope functions narrow a base query to the documents a role is allowed
// to see. They are pure: anything that needs a database lookup (like resolving
// a team lead's members) is done by the caller and passed in. Scoping happens
// before pagination and counting, so page totals reflect the visible set.

func cloneFilter(base bson.M) bson.M {
	filter := bson.M{}
	for k, v := range base {
		filter[k] = v
	}
	return filter
}

// ProjectScope: Employees see projects they are a member of, Team Leads see
// projects they created, Admins and Coordinators see everything.
func ProjectScope(role model.Role, userID string, base bson.M) bson.M {
	filter := cloneFilter(base)
	switch role.Normalize() {
	case model.RoleEmployee:
		filter["team_members"] = userID
	case model.RoleTeamLead:
		filter["created_by"] = userID
	}
	return filter
}

// WorklogScope: Employees see their own logs, Team Leads see the logs of
// their direct reports (teamMemberIDs, resolved by the caller), Admins and
// Coordinators see everything.
func WorklogScope(role model.Role, userID string, teamMemberIDs []string, base bson.M) bson.M {
	filter := cloneFilter(base)
	switch role.Normalize() {
	case model.RoleEmployee:
		filter["user_id"] = userID
	case model.RoleTeamLead:
		if teamMemberIDs == nil {
			teamMemberIDs = []string{}
		}
		filter["user_id"] = bson.M{"$in": teamMemberIDs}
	}
	return filter
}

// TaskScope: Employees see only tasks assigned to them. All other roles see
// every task.
func TaskScope(role model.Role, userID string, base bson.M) bson.M {
	filter := cloneFilter(base)
	if role.Normalize() == model.RoleEmployee {
		filter["assigned_to"] = userID
	}
	return filter
}
