package models

import "time"

// OrderStatus — состояние заказа. Допустим единственный переход Pending -> Accepted.
type OrderStatus string

const (
	// OrderStatusPending: заказ создан и ждёт подтверждения администратора.
	OrderStatusPending OrderStatus = "Pending"
	// OrderStatusAccepted: заказ подтверждён, остаток товара списан.
	OrderStatusAccepted OrderStatus = "Accepted"
)

// Order описывает заказ на один товар.
type Order struct {
	ID         int64
	ProductID  int64
	Quantity   int
	Status     OrderStatus
	CreatedAt  time.Time
	AcceptedAt *time.Time
}

// OrderView — заказ с именем товара для списка заказов.
type OrderView struct {
	ID          int64       `json:"id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	Status      OrderStatus `json:"status"`
}

// PlaceOrderInput содержит данные оформления заказа.
type PlaceOrderInput struct {
	ProductName string `json:"product_name" validate:"required,max=255"`
	Quantity    int    `json:"quantity" validate:"gt=0,lte=2147483647"`
}

// AcceptedOrder описывает результат подтверждения заказа.
type AcceptedOrder struct {
	OrderID        int64
	ProductID      int64
	Quantity       int
	RemainingStock int
}
