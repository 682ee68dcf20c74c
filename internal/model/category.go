package model

// swagger:model Category
type Category struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Slug        string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string {
	return "categories"
}
