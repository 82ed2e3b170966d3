package user

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// User is the request-scoped identity snapshot carried through context.
// The persisted model lives in core/datamodel/user.
type User struct {
	ID         int64
	Email      string
	Name       string
	Role       string
	EmployeeID string
	Department string
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}
