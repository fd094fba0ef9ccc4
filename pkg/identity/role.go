package identity

//go:generate go run github.com/dmarkham/enumer -type Role -trimprefix Role -transform lower -json -output role.gen.go

// Role is the closed set of caller roles.
type Role int

const (
	RoleUser Role = iota
	RoleEntrepreneur
	RoleAdmin
)

// Elevated reports whether the role may mutate records it does not own.
func (r Role) Elevated() bool {
	return r == RoleAdmin
}

// Registerable reports whether the role may be requested at self-registration.
// Admins are only created through the CLI.
func (r Role) Registerable() bool {
	return r == RoleUser || r == RoleEntrepreneur
}
