package opportunities

import (
	"errors"
	"fmt"
)

// MaxActiveProposals is the per-(project, professional) cap on non-withdrawn
// proposals.
const MaxActiveProposals = 2

// The error messages below are part of the client-facing contract; clients
// branch on the error kind, but the strings themselves are stable too.
var (
	ErrOnlyProfessionals = errors.New("only professionals may view opportunities")

	ErrProjectNotFound  = errors.New("project not found")
	ErrProposalNotFound = errors.New("proposal not found")

	ErrNotProjectOwner = errors.New("you do not own this project")

	ErrProjectClosed    = errors.New("this project is no longer accepting proposals")
	ErrAcceptNotPending = errors.New("can only accept pending proposals")
	ErrRejectNotPending = errors.New("can only reject pending proposals")

	ErrProposalLimit = fmt.Errorf("you already have %d active proposals for this project", MaxActiveProposals)
)

// IsNotFound reports whether err is one of this package's not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProjectNotFound) || errors.Is(err, ErrProposalNotFound)
}

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrOnlyProfessionals) || errors.Is(err, ErrNotProjectOwner)
}

// IsConflict reports whether err is a domain-state conflict: the entities
// exist but the requested transition is illegal right now.
func IsConflict(err error) bool {
	return errors.Is(err, ErrProjectClosed) ||
		errors.Is(err, ErrAcceptNotPending) ||
		errors.Is(err, ErrRejectNotPending) ||
		errors.Is(err, ErrProposalLimit)
}
