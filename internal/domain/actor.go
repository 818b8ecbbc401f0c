package domain

// Role enumerates the actor ladder. Ordering matters: user < processor <
// manager < admin.
type Role string

const (
	RoleUser      Role = "user"
	RoleProcessor Role = "processor"
	RoleManager   Role = "manager"
	RoleAdmin     Role = "admin"
)

var roleRank = map[Role]int{
	RoleUser:      0,
	RoleProcessor: 1,
	RoleManager:   2,
	RoleAdmin:     3,
}

// AtLeast reports whether the role ranks at or above other. Unknown roles
// rank below user.
func (r Role) AtLeast(other Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	return rank >= roleRank[other]
}

// Valid reports whether the role is one of the known four.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Actor is the authenticated caller as supplied by the identity provider.
type Actor struct {
	Name       string
	Role       Role
	Department string
}

// IsDispatchCenter reports whether the actor belongs to the dispatch center.
func (a Actor) IsDispatchCenter() bool {
	return a.Department == DispatchCenter
}

// User is a directory entry backing login and processor lookups.
type User struct {
	ID           int64
	Username     string
	RealName     string
	PasswordHash string
	Role         Role
	Department   string
	Active       bool
}

// Actor projects the directory entry into the workflow actor shape.
func (u *User) Actor() Actor {
	return Actor{Name: u.RealName, Role: u.Role, Department: u.Department}
}
