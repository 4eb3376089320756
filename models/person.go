package models

import "github.com/uptrace/bun"

// Person is the identity behind one or more roles.
type Person struct {
	bun.BaseModel `bun:"table:person,alias:per"`

	PersonID      string  `bun:"person_id,pk" json:"personID"`
	FirstName     string  `bun:"first_name,notnull" json:"firstName"`
	LastName      string  `bun:"last_name,notnull" json:"lastName"`
	SearchName    *string `bun:"search_name" json:"searchName,omitempty"`
	DateOfBirth   *string `bun:"date_of_birth" json:"dateOfBirth,omitempty"`
	CityOfOrigin  *string `bun:"city_of_origin" json:"cityOfOrigin,omitempty"`
	StateOfOrigin *string `bun:"state_of_origin" json:"stateOfOrigin,omitempty"`
}

// FullName joins first and last name.
func (p Person) FullName() string {
	return JoinName(p.FirstName, p.LastName)
}
