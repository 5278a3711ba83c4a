package models

// Category — категория товаров, имя уникально.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product — товар в том виде, в каком он хранится в таблице products.
type Product struct {
	ID         int64
	Name       string
	CategoryID int64
	Price      float64
	Stock      int
}

// ProductView — товар с подставленным именем категории для выдачи клиентам.
type ProductView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// ProductInput — данные создания и обновления товара.
//
// При обновлении пустая Category означает «оставить текущую категорию».
type ProductInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Category string  `json:"category" validate:"max=255"`
	Price    float64 `json:"price" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0,lte=2147483647"`
}

// CategoryRename содержит данные переименования категории.
type CategoryRename struct {
	OldName string `json:"old_name" validate:"required,max=255"`
	NewName string `json:"new_name" validate:"required,max=255"`
}

// CategoryInput содержит данные создания и удаления категории.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}
