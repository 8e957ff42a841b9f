package models

import "fmt"

// Role identifies which counter a logged-in user operates.
type Role string

const (
	RoleReception Role = "reception"
	RoleDoctor    Role = "doctor"
	RolePharmacy  Role = "pharmacy"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleReception, RoleDoctor, RolePharmacy:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
