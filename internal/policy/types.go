package policy

import (
	"github.com/google/uuid"
	"github.com/upb/notice-board/models"
)

// Action names an operation subject to authorization.
type Action string

const (
	ActionCreateUser   Action = "create_user"
	ActionListNotices  Action = "list_notices"
	ActionCreateNotice Action = "create_notice"
	ActionDeleteNotice Action = "delete_notice"
)

// Request contains the context needed for a decision.
// ResourceOwnerID is only consulted for actions on an existing resource.
type Request struct {
	Actor           models.Actor
	Action          Action
	ResourceOwnerID uuid.UUID
}

// Decision represents the result of policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow(reason string) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
