// Package policy holds the authorization rules for project operations.
// Each rule is a pure function of the actor and the resource state, so the
// matrix can be tested without persistence.
package policy

import (
	projectentity "teamflow_backend/internal/feature/project/domain/entity"
	userentity "teamflow_backend/internal/feature/user/domain/entity"
	"teamflow_backend/internal/shared/apperr"
)

var (
	// ErrNotProjectMember is returned when a COORDENADOR acts on a project they do not belong to.
	ErrNotProjectMember = apperr.New(apperr.ErrForbidden, "coordenador is not a member of this project")

	// ErrCannotRemoveDiretor is returned when a COORDENADOR tries to remove a DIRETOR.
	ErrCannotRemoveDiretor = apperr.New(apperr.ErrForbidden, "coordenador cannot remove director from projects")

	// ErrRoleNotAllowed is returned for roles that may not manage projects at all.
	ErrRoleNotAllowed = apperr.New(apperr.ErrForbidden, "role may not manage projects")

	// ErrNotOwnProjects is returned when a user lists somebody else's projects.
	ErrNotOwnProjects = apperr.New(apperr.ErrForbidden, "users may only list their own projects")
)

// Actor is the authenticated caller.
type Actor struct {
	ID   string
	Role userentity.Role
}

// CanUpdate decides whether actor may mutate project.
// DIRETOR always may; COORDENADOR only as a current member.
func CanUpdate(actor Actor, project *projectentity.Project) error {
	switch actor.Role {
	case userentity.RoleDiretor:
		return nil
	case userentity.RoleCoordenador:
		if !project.HasMember(actor.ID) {
			return ErrNotProjectMember
		}
		return nil
	default:
		return ErrRoleNotAllowed
	}
}

// CanRemoveMember decides whether actor may remove target from project.
// A COORDENADOR must be a member and may never remove a DIRETOR.
func CanRemoveMember(actor Actor, project *projectentity.Project, target *userentity.User) error {
	switch actor.Role {
	case userentity.RoleDiretor:
		return nil
	case userentity.RoleCoordenador:
		if target.IsDiretor() {
			return ErrCannotRemoveDiretor
		}
		if !project.HasMember(actor.ID) {
			return ErrNotProjectMember
		}
		return nil
	default:
		return ErrRoleNotAllowed
	}
}

// CanReplaceMembers decides whether actor may set the member set of project to memberIDs.
// Every current member left out counts as a removal and is checked like CanRemoveMember.
func CanReplaceMembers(actor Actor, project *projectentity.Project, memberIDs []string) error {
	keep := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		keep[id] = struct{}{}
	}
	for i := range project.Members {
		target := &project.Members[i]
		if _, ok := keep[target.ID]; ok {
			continue
		}
		if err := CanRemoveMember(actor, project, target); err != nil {
			return err
		}
	}
	return nil
}

// CanListProjectsOf decides whether actor may list the projects of userID.
func CanListProjectsOf(actor Actor, userID string) error {
	if actor.ID != userID {
		return ErrNotOwnProjects
	}
	return nil
}
