package entity

import "errors"

var (
	// ErrNoPersonKind indicates a registry declared without a person kind.
	ErrNoPersonKind = errors.New("entity: registry must declare a person kind")
	// ErrMultiplePersonKinds indicates more than one kind marked as person.
	ErrMultiplePersonKinds = errors.New("entity: registry must declare only one person kind")
	// ErrDuplicateKindName indicates two kinds sharing a plural or singular name.
	ErrDuplicateKindName = errors.New("entity: duplicate kind name")
	// ErrNoRoles indicates a group kind declared without roles.
	ErrNoRoles = errors.New("entity: group kind must declare at least one role")
)
