package models

// Product represents an item in the product service's store. UserID is a
// soft reference to the owning user: no foreign key constraint is declared,
// and a product may point at a user the user service no longer knows.
type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"size:200;not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Description *string `json:"description" gorm:"size:500"`
	UserID      *int64  `json:"user_id" gorm:"column:user_id;index"`
}

// TableName returns the database table name for the Product model.
func (Product) TableName() string {
	return "products"
}
