package models

// ProductCategory 為商品與標籤的多對多關聯，僅由兩個外鍵組成
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey" json:"productId"`
	CategoryID uint `gorm:"primaryKey" json:"categoryId"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
