package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Subject представляет предмет учебного каталога.
// Стоимость предмета для счета равна units * fee_per_unit.
type Subject struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Code       string        `bson:"code" json:"code"`                 // Код предмета, например CS101
	Title      string        `bson:"title" json:"title"`               // Название предмета
	Units      float64       `bson:"units" json:"units"`               // Количество юнитов
	FeePerUnit float64       `bson:"fee_per_unit" json:"fee_per_unit"` // Стоимость одного юнита
	FacultyID  string        `bson:"faculty_id,omitempty" json:"faculty_id,omitempty"` // ID преподавателя (опционально)
}

// Fee возвращает стоимость предмета для строки счета.
func (s *Subject) Fee() float64 {
	return s.Units * s.FeePerUnit
}

// DummySubject используется для приёма данных из JSON-запроса на создание предмета.
type DummySubject struct {
	Code       string  `json:"code" validate:"required"`         // Код предмета
	Title      string  `json:"title" validate:"required"`        // Название
	Units      float64 `json:"units" validate:"gte=0"`           // Юниты (>=0)
	FeePerUnit float64 `json:"fee_per_unit" validate:"gte=0"`    // Стоимость юнита (>=0)
	FacultyID  string  `json:"faculty_id,omitempty" validate:"omitempty"` // ID преподавателя
}
