package policy

import "github.com/upb/notice-board/models"

// Decide evaluates req against the notice board rules.
func Decide(req Request) Decision {
	role := req.Actor.Role
	if !role.IsValid() {
		return deny("unknown role")
	}

	switch req.Action {
	case ActionCreateUser:
		if role == models.RoleAdmin {
			return allow("admin")
		}
		return deny("only admins can create users")

	case ActionListNotices:
		return allow("authenticated")

	case ActionCreateNotice:
		if role == models.RoleAdmin || role == models.RoleTeacher {
			return allow(string(role))
		}
		return deny("only teachers and admins can create notices")

	case ActionDeleteNotice:
		// admin wins over ownership
		if role == models.RoleAdmin {
			return allow("admin")
		}
		if req.ResourceOwnerID == req.Actor.ID {
			return allow("author")
		}
		return deny("not the notice author")
	}

	return deny("unknown action")
}
