// models/errors.go - Registry error taxonomy
package models

import "errors"

var (
	// ErrValidation signals malformed or missing input fields.
	ErrValidation = errors.New("validation failed")
	// ErrTeamNotFound signals a missing or inactive team.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamFull signals a join attempt on a team at capacity.
	ErrTeamFull = errors.New("team is full")
	// ErrAlreadyMember signals a join attempt by an existing member.
	ErrAlreadyMember = errors.New("already a member of this team")
	// ErrInvalidInviteCode signals an invite code matching no team.
	ErrInvalidInviteCode = errors.New("invalid invite code")
	// ErrNotMember signals an operation on a user who is not on the team.
	ErrNotMember = errors.New("not a member of this team")
	// ErrNotLeader signals a leader-only operation by a regular member.
	ErrNotLeader = errors.New("only the team leader can do this")
	// ErrLeaderCannotLeave signals a leave attempt by the team leader.
	ErrLeaderCannotLeave = errors.New("team leader must transfer leadership before leaving")
	// ErrRequestNotFound signals a missing join request.
	ErrRequestNotFound = errors.New("join request not found")
	// ErrRequestResolved signals accept/reject on an already resolved request.
	ErrRequestResolved = errors.New("join request already resolved")
	// ErrDuplicateRequest signals a second outstanding request for the same team.
	ErrDuplicateRequest = errors.New("join request already pending")
	// ErrHackathonNotFound signals a missing hackathon.
	ErrHackathonNotFound = errors.New("hackathon not found")
	// ErrAlreadyRegistered signals a second registration for the same hackathon.
	ErrAlreadyRegistered = errors.New("already registered for this hackathon")
	// ErrIdeaNotFound signals a missing project idea.
	ErrIdeaNotFound = errors.New("project idea not found")
	// ErrRegistryUnavailable signals a transient storage failure; callers may retry.
	ErrRegistryUnavailable = errors.New("registry unavailable")
)
