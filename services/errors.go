package services

import "errors"

var (
	ErrProductNotFound  = errors.New("Product not found")
	ErrCategoryNotFound = errors.New("Category not found")
)

// ValidationError 表示輸入資料未通過檢查，Message為回傳給呼叫端的訊息
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
