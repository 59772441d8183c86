// Package storage определяет контракт хранилища записей: имена коллекций,
// фильтр равенства по полям и операции над записями произвольной коллекции.
// Контракт реализуют mongodb (боевое хранилище) и memory (для тестов).
package storage

import (
	"context"
	"errors"
)

// Collection имя коллекции записей.
type Collection string

// Коллекции системы.
const (
	CollectionUser       Collection = "user"
	CollectionSubject    Collection = "subject"
	CollectionEnrollment Collection = "enrollment"
	CollectionAttendance Collection = "attendance"
	CollectionBill       Collection = "bill"
	CollectionPayment    Collection = "payment"
)

// Filter фильтр равенства: имя поля -> ожидаемое значение.
type Filter map[string]any

// Ошибки хранилища и доменные ошибки уникальности.
var (
	// ErrNotFound запись по идентификатору или фильтру отсутствует.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID идентификатор имеет некорректный формат.
	ErrInvalidID = errors.New("invalid record id")
	// ErrEmailTaken пользователь с таким email уже существует.
	ErrEmailTaken = errors.New("email already in use")
	// ErrDuplicateEnrollment зачисление для тройки (студент, предмет, семестр) уже существует.
	ErrDuplicateEnrollment = errors.New("enrollment already exists")
	// ErrBillNotFound счет по указанному идентификатору отсутствует.
	ErrBillNotFound = errors.New("bill not found")
	// ErrInvalidCredentials неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store операции над записями одной коллекции. Обновления атомарны
// в пределах одной записи; межзаписных гарантий контракт не дает.
type Store interface {
	// Create сохраняет новую запись и возвращает её идентификатор.
	Create(ctx context.Context, col Collection, record any) (string, error)
	// FindOne декодирует в out первую запись, подходящую под фильтр.
	// Возвращает ErrNotFound, если совпадений нет.
	FindOne(ctx context.Context, col Collection, filter Filter, out any) error
	// FindMany декодирует в out все записи, подходящие под фильтр.
	// Порядок записей определяется хранилищем.
	FindMany(ctx context.Context, col Collection, filter Filter, out any) error
	// UpdateSet заменяет значения перечисленных полей записи.
	UpdateSet(ctx context.Context, col Collection, id string, fields map[string]any) error
	// UpdatePush добавляет значение в конец поля-списка записи.
	UpdatePush(ctx context.Context, col Collection, id string, field string, value any) error
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}
