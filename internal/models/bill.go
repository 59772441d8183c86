package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Статусы оплаты счета.
const (
	BillStatusUnpaid  = "unpaid"
	BillStatusPartial = "partial"
	BillStatusPaid    = "paid"
)

// BillLine одна строка начисления в счете, происходящая из одного зачисления.
// Строки не редактируются и не удаляются после добавления.
type BillLine struct {
	SubjectID   string  `bson:"subject_id" json:"subject_id"`   // ID предмета
	Description string  `bson:"description" json:"description"` // Описание начисления
	Amount      float64 `bson:"amount" json:"amount"`           // Сумма начисления
}

// Bill единственный счет студента за семестр: пара (student_id, semester)
// является естественным ключом. Поля Total и Status производные:
// Total всегда равен сумме строк, Status выводится из соотношения Paid и Total.
type Bill struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID string        `bson:"student_id" json:"student_id"` // ID студента
	Semester  string        `bson:"semester" json:"semester"`     // Семестр
	Lines     []BillLine    `bson:"lines" json:"lines"`           // Строки начислений (только добавление)
	Total     float64       `bson:"total" json:"total"`           // Сумма всех строк
	Paid      float64       `bson:"paid" json:"paid"`             // Сумма принятых платежей (не убывает)
	Status    string        `bson:"status" json:"status"`         // unpaid, partial или paid
	UpdatedAt time.Time     `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}
