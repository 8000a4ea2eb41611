package models

// Employee is a person transactions can be attributed to. Transactions keep
// a plain employee_id column without a constraint, so removing a person
// leaves their transactions pointing at an id that no longer resolves.
type Employee struct {
	Base
	UserID string `gorm:"type:varchar(36);not null;index" json:"userId"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name   string `gorm:"not null" json:"name"`
}
