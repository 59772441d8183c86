package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Payment неизменяемая запись о принятом платеже по счету.
// Платежи образуют аудиторский след и никогда не изменяются и не удаляются.
type Payment struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	BillID        string        `bson:"bill_id" json:"bill_id"`               // ID счета
	Amount        float64       `bson:"amount" json:"amount"`                 // Сумма платежа (>0)
	CashierID     string        `bson:"cashier_id" json:"cashier_id"`         // ID кассира
	ReceiptNumber string        `bson:"receipt_number" json:"receipt_number"` // Номер квитанции
	PaidAt        time.Time     `bson:"paid_at" json:"paid_at"`               // Момент приёма платежа
}

// DummyPayment используется для приёма данных из JSON-запроса на создание платежа.
type DummyPayment struct {
	BillID    string  `json:"bill_id" validate:"required"`   // ID счета
	Amount    float64 `json:"amount" validate:"required,gt=0"` // Сумма платежа (>0)
	CashierID string  `json:"cashier_id" validate:"required"` // ID кассира
}
