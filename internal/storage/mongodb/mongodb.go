// Package mongodb реализует контракт storage.Store поверх MongoDB.
// Мутация "set" отображается в $set, "append" — в $push; обе атомарны
// в пределах одного документа.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// compile-time interface check
var _ storage.Store = (*Storage)(nil)

// Storage хранилище записей поверх MongoDB.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
}

// New подключается к MongoDB и проверяет соединение.
func New(ctx context.Context, uri, database string, timeout time.Duration) (*Storage, error) {
	const op = "storage.mongodb.New"

	opts := options.Client().ApplyURI(uri)
	if timeout > 0 {
		opts = opts.SetTimeout(timeout)
	}
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes создает уникальные индексы: email пользователя,
// тройка зачисления и естественный ключ счета (student_id, semester).
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	const op = "storage.mongodb.EnsureIndexes"

	indexes := map[storage.Collection][]mongo.IndexModel{
		storage.CollectionUser: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		storage.CollectionEnrollment: {
			{
				Keys: bson.D{
					{Key: "student_id", Value: 1},
					{Key: "subject_id", Value: 1},
					{Key: "semester", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
		storage.CollectionBill: {
			{
				Keys: bson.D{
					{Key: "student_id", Value: 1},
					{Key: "semester", Value: 1},
				},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for col, models := range indexes {
		if _, err := s.db.Collection(string(col)).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s: %s: %w", op, col, err)
		}
	}
	return nil
}

// Create сохраняет новую запись и возвращает её идентификатор в hex-формате.
// Нарушение уникального индекса отображается в доменную ошибку коллекции.
func (s *Storage) Create(ctx context.Context, col storage.Collection, record any) (string, error) {
	const op = "storage.mongodb.Create"

	res, err := s.db.Collection(string(col)).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			switch col {
			case storage.CollectionUser:
				return "", storage.ErrEmailTaken
			case storage.CollectionEnrollment:
				return "", storage.ErrDuplicateEnrollment
			}
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindOne декодирует в out первую запись, подходящую под фильтр.
func (s *Storage) FindOne(ctx context.Context, col storage.Collection, filter storage.Filter, out any) error {
	const op = "storage.mongodb.FindOne"

	f, err := toBSON(filter)
	if err != nil {
		return err
	}
	err = s.db.Collection(string(col)).FindOne(ctx, f).Decode(out)
	if err == mongo.ErrNoDocuments {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindMany декодирует в out все записи, подходящие под фильтр.
func (s *Storage) FindMany(ctx context.Context, col storage.Collection, filter storage.Filter, out any) error {
	const op = "storage.mongodb.FindMany"

	f, err := toBSON(filter)
	if err != nil {
		return err
	}
	cursor, err := s.db.Collection(string(col)).Find(ctx, f)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateSet заменяет значения перечисленных полей одной записи.
func (s *Storage) UpdateSet(ctx context.Context, col storage.Collection, id string, fields map[string]any) error {
	const op = "storage.mongodb.UpdateSet"

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrInvalidID
	}
	res, err := s.db.Collection(string(col)).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M(fields)},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// UpdatePush добавляет значение в конец поля-списка одной записи.
func (s *Storage) UpdatePush(ctx context.Context, col storage.Collection, id string, field string, value any) error {
	const op = "storage.mongodb.UpdatePush"

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return storage.ErrInvalidID
	}
	res, err := s.db.Collection(string(col)).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{field: value}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Ping проверяет доступность хранилища.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close закрывает соединение с MongoDB.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// toBSON преобразует фильтр контракта в bson.M. Значение поля "_id"
// дополнительно парсится из hex-формата.
func toBSON(filter storage.Filter) (bson.M, error) {
	f := bson.M{}
	for k, v := range filter {
		if k == "_id" {
			hex, ok := v.(string)
			if !ok {
				return nil, storage.ErrInvalidID
			}
			oid, err := bson.ObjectIDFromHex(hex)
			if err != nil {
				return nil, storage.ErrInvalidID
			}
			f[k] = oid
			continue
		}
		f[k] = v
	}
	return f, nil
}
