package models

import "github.com/uptrace/bun"

// Role types stored in role.role_type.
const (
	RoleWrestler = "wrestler"
	RoleCoach    = "coach"
)

// Role is a person's capacity, wrestler or coach.
type Role struct {
	bun.BaseModel `bun:"table:role,alias:r"`

	RoleID   string `bun:"role_id,pk" json:"roleID"`
	PersonID string `bun:"person_id,notnull" json:"personID"`
	RoleType string `bun:"role_type,notnull" json:"roleType"`
}
