package domain

// ActorRole is the role claim carried by the authenticated identity.
type ActorRole string

const (
	ActorAdmin    ActorRole = "admin"
	ActorProvider ActorRole = "provider"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role ActorRole
}

// IsAdmin reports whether the actor holds the administrative role.
func (a Actor) IsAdmin() bool {
	return a.Role == ActorAdmin
}
