package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Статусы посещаемости.
const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
)

// AttendanceRecord отметка одного студента в рамках занятия.
type AttendanceRecord struct {
	StudentID string `bson:"student_id" json:"student_id"` // ID студента
	Status    string `bson:"status" json:"status"`         // present, absent или late
}

// Attendance представляет журнал посещаемости одного занятия по предмету.
type Attendance struct {
	ID          bson.ObjectID      `bson:"_id,omitempty" json:"id"`
	SubjectID   string             `bson:"subject_id" json:"subject_id"`     // ID предмета
	FacultyID   string             `bson:"faculty_id" json:"faculty_id"`     // ID преподавателя
	SessionDate time.Time          `bson:"session_date" json:"session_date"` // Дата занятия
	Records     []AttendanceRecord `bson:"records" json:"records"`           // Отметки студентов
}

// DummyAttendanceRecord отметка студента в JSON-запросе.
// Пустой статус по умолчанию трактуется как present.
type DummyAttendanceRecord struct {
	StudentID string `json:"student_id" validate:"required"` // ID студента
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=present absent late"` // Статус
}

// DummyAttendance используется для приёма данных из JSON-запроса на создание
// журнала посещаемости. Дата приходит строкой, чтобы её можно было
// валидировать и парсить вручную.
type DummyAttendance struct {
	SubjectID   string                  `json:"subject_id" validate:"required"`              // ID предмета
	FacultyID   string                  `json:"faculty_id" validate:"required"`              // ID преподавателя
	SessionDate string                  `json:"session_date" validate:"required,datetime=2006-01-02"` // Дата в формате 2006-01-02
	Records     []DummyAttendanceRecord `json:"records" validate:"required,dive"`            // Отметки студентов
}
