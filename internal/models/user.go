// Package models содержит доменные структуры системы учёта зачислений:
// пользователей, предметы, зачисления, посещаемость, счета и платежи.
// Здесь же определены вспомогательные Dummy-типы для приёма данных
// из JSON-запросов до их валидации и преобразования в доменные структуры.
package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Роли пользователей системы.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleCashier = "cashier"
)

// User представляет зарегистрированного пользователя системы.
// Пароль хранится как есть и никогда не сериализуется в JSON-ответ.
type User struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string        `bson:"name" json:"name"`             // Полное имя
	Email    string        `bson:"email" json:"email"`           // Электронная почта (уникальная)
	Role     string        `bson:"role" json:"role"`             // Роль: admin, student, faculty или cashier
	Password string        `bson:"password" json:"-"`            // Учетные данные, сравниваются как есть
	IsActive bool          `bson:"is_active" json:"is_active"`   // Активен ли пользователь
}

// DummyUser используется для приёма данных из JSON-запроса на создание пользователя.
type DummyUser struct {
	Name     string `json:"name" validate:"required"`                                    // Полное имя
	Email    string `json:"email" validate:"required,email"`                             // Электронная почта
	Role     string `json:"role" validate:"required,oneof=admin student faculty cashier"` // Роль
	Password string `json:"password" validate:"required,min=6"`                          // Пароль (минимум 6 символов)
}
