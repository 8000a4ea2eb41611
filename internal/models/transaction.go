package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	Base
	UserID      string          `gorm:"type:varchar(36);not null;index:idx_transaction_owner_date" json:"userId"`
	User        *User           `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Name        string          `gorm:"not null" json:"name"`
	Kind        Kind            `gorm:"column:type;type:varchar(16);not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        Date            `gorm:"not null;index:idx_transaction_owner_date" json:"date"`
	Description *string         `json:"description"`
	CategoryID  *string         `gorm:"type:varchar(36);index" json:"categoryId"`
	Category    *Category       `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	EmployeeID  *string         `gorm:"type:varchar(36);index" json:"employeeId"`
	IsRecurring bool            `gorm:"not null;default:false" json:"isRecurring"`
}

// MarshalJSON embeds a {id, name, color} snapshot of the linked category.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	var ref *CategoryRef
	if t.Category != nil {
		ref = &CategoryRef{ID: t.Category.ID, Name: t.Category.Name, Color: t.Category.Color}
	}
	return json.Marshal(struct {
		plain
		Category *CategoryRef `json:"category"`
	}{plain(t), ref})
}
