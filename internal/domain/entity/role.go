// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a user holds in the platform.
// It is fixed at registration and drives every authorization decision.
type Role string

const (
	// RoleResearcher indicates a security researcher who enrolls in programs and submits reports.
	RoleResearcher Role = "Researcher"
	// RoleCompany indicates a company account that runs programs and triages reports.
	RoleCompany Role = "Company"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "Admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleResearcher, RoleCompany, RoleAdmin:
		return true
	default:
		return false
	}
}
