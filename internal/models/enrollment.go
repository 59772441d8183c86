package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Статусы зачисления.
const (
	EnrollmentStatusEnrolled  = "enrolled"
	EnrollmentStatusDropped   = "dropped"
	EnrollmentStatusCompleted = "completed"
)

// Enrollment представляет зачисление студента на предмет в семестр.
// Для тройки (student_id, subject_id, semester) допускается не более одной записи.
type Enrollment struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID string        `bson:"student_id" json:"student_id"` // ID студента
	SubjectID string        `bson:"subject_id" json:"subject_id"` // ID предмета
	Semester  string        `bson:"semester" json:"semester"`     // Семестр, например 2025-1
	Status    string        `bson:"status" json:"status"`         // enrolled, dropped или completed
}

// DummyEnrollment используется для приёма данных из JSON-запроса на зачисление.
// Пустой статус по умолчанию трактуется как enrolled.
type DummyEnrollment struct {
	StudentID string `json:"student_id" validate:"required"` // ID студента
	SubjectID string `json:"subject_id" validate:"required"` // ID предмета
	Semester  string `json:"semester" validate:"required"`   // Семестр
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=enrolled dropped completed"` // Статус
}
