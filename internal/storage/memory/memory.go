// Package memory реализует контракт storage.Store в памяти процесса.
// Используется в тестах вместо MongoDB; уникальные ограничения
// повторяют индексы боевого хранилища.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// compile-time interface check
var _ storage.Store = (*Storage)(nil)

// Storage хранилище записей в памяти. Записи хранятся как bson-документы,
// чтобы кодирование полей совпадало с MongoDB.
type Storage struct {
	mu          sync.RWMutex
	collections map[storage.Collection]map[string]bson.M
	order       map[storage.Collection][]string
}

// New создает пустое хранилище.
func New() *Storage {
	return &Storage{
		collections: make(map[storage.Collection]map[string]bson.M),
		order:       make(map[storage.Collection][]string),
	}
}

// Create сохраняет новую запись и возвращает её идентификатор в hex-формате.
func (s *Storage) Create(_ context.Context, col storage.Collection, record any) (string, error) {
	const op = "storage.memory.Create"

	doc, err := toDoc(record)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(col, doc); err != nil {
		return "", err
	}

	oid := bson.NewObjectID()
	doc["_id"] = oid

	if s.collections[col] == nil {
		s.collections[col] = make(map[string]bson.M)
	}
	s.collections[col][oid.Hex()] = doc
	s.order[col] = append(s.order[col], oid.Hex())
	return oid.Hex(), nil
}

// FindOne декодирует в out первую запись, подходящую под фильтр.
func (s *Storage) FindOne(_ context.Context, col storage.Collection, filter storage.Filter, out any) error {
	if err := validateFilter(filter); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order[col] {
		doc := s.collections[col][id]
		ok, err := matches(doc, filter)
		if err != nil {
			return err
		}
		if ok {
			return decodeDoc(doc, out)
		}
	}
	return storage.ErrNotFound
}

// FindMany декодирует в out все записи, подходящие под фильтр,
// в порядке их создания.
func (s *Storage) FindMany(_ context.Context, col storage.Collection, filter storage.Filter, out any) error {
	const op = "storage.memory.FindMany"

	if err := validateFilter(filter); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	outv := reflect.ValueOf(out)
	if outv.Kind() != reflect.Ptr || outv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("%s: out must be a pointer to a slice", op)
	}
	slice := reflect.MakeSlice(outv.Elem().Type(), 0, 0)

	for _, id := range s.order[col] {
		doc := s.collections[col][id]
		ok, err := matches(doc, filter)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		elem := reflect.New(outv.Elem().Type().Elem())
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	outv.Elem().Set(slice)
	return nil
}

// UpdateSet заменяет значения перечисленных полей одной записи.
func (s *Storage) UpdateSet(_ context.Context, col storage.Collection, id string, fields map[string]any) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return storage.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[col][id]
	if !ok {
		return storage.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

// UpdatePush добавляет значение в конец поля-списка одной записи.
func (s *Storage) UpdatePush(_ context.Context, col storage.Collection, id string, field string, value any) error {
	const op = "storage.memory.UpdatePush"

	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return storage.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[col][id]
	if !ok {
		return storage.ErrNotFound
	}

	switch list := doc[field].(type) {
	case nil:
		doc[field] = bson.A{value}
	case bson.A:
		doc[field] = append(list, value)
	default:
		return fmt.Errorf("%s: field %s is not a list", op, field)
	}
	return nil
}

// Ping хранилище в памяти всегда доступно.
func (s *Storage) Ping(_ context.Context) error {
	return nil
}

// checkUnique повторяет уникальные индексы mongodb-хранилища.
func (s *Storage) checkUnique(col storage.Collection, doc bson.M) error {
	switch col {
	case storage.CollectionUser:
		for _, id := range s.order[col] {
			if s.collections[col][id]["email"] == doc["email"] {
				return storage.ErrEmailTaken
			}
		}
	case storage.CollectionEnrollment:
		for _, id := range s.order[col] {
			existing := s.collections[col][id]
			if existing["student_id"] == doc["student_id"] &&
				existing["subject_id"] == doc["subject_id"] &&
				existing["semester"] == doc["semester"] {
				return storage.ErrDuplicateEnrollment
			}
		}
	}
	return nil
}

// toDoc кодирует запись в bson-документ, чтобы имена и типы полей
// совпадали с тем, что записала бы MongoDB.
func toDoc(record any) (bson.M, error) {
	raw, err := bson.Marshal(record)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDoc(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// validateFilter повторяет разбор "_id" mongodb-хранилища: некорректный
// hex отклоняется до обращения к данным.
func validateFilter(filter storage.Filter) error {
	v, ok := filter["_id"]
	if !ok {
		return nil
	}
	hex, ok := v.(string)
	if !ok {
		return storage.ErrInvalidID
	}
	if _, err := bson.ObjectIDFromHex(hex); err != nil {
		return storage.ErrInvalidID
	}
	return nil
}

// matches проверяет документ на соответствие фильтру равенства.
// Поле "_id" сравнивается как ObjectID, разобранный из hex-строки.
func matches(doc bson.M, filter storage.Filter) (bool, error) {
	for k, v := range filter {
		if k == "_id" {
			oid, _ := bson.ObjectIDFromHex(v.(string))
			if doc["_id"] != oid {
				return false, nil
			}
			continue
		}
		if !reflect.DeepEqual(doc[k], v) {
			return false, nil
		}
	}
	return true, nil
}
