package models

const (
	DefaultCategoryIcon  = "circle"
	DefaultCategoryColor = "#6366f1"
)

type Category struct {
	Base
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_category_owner_name" json:"userId"`
	User   *User  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Kind   Kind   `gorm:"column:type;type:varchar(16);not null;uniqueIndex:idx_category_owner_name" json:"type"`
	Name   string `gorm:"not null;uniqueIndex:idx_category_owner_name" json:"name"`
	Icon   string `gorm:"not null" json:"icon"`
	Color  string `gorm:"not null" json:"color"`
}

// CategoryRef is the slice of a category embedded in transaction responses.
type CategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
