// Package billing содержит бизнес-логику сверки счетов: начисление платы
// за обучение при зачислении и пересчет оплаты при приёме платежа.
//
// Счет — единица согласованности: после каждой успешной сверки его total
// равен сумме строк, а status выводится из соотношения paid и total.
// Все мутации одного счета сериализуются внутри процесса через мьютекс
// по ключу (student_id, semester).
package billing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/enrollment-system/internal/lib/sl"
	"github.com/magabrotheeeer/enrollment-system/internal/models"
	"github.com/magabrotheeeer/enrollment-system/internal/storage"
)

// tuitionDescription описание строки начисления за предмет.
const tuitionDescription = "Tuition for subject"

// SubjectProvider возвращает предмет по идентификатору для расчета платы.
type SubjectProvider interface {
	Get(ctx context.Context, id string) (*models.Subject, error)
}

// Publisher публикует события биллинга для внешних потребителей.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// EnrollmentCreatedEvent событие успешного зачисления с начисленной платой.
type EnrollmentCreatedEvent struct {
	EnrollmentID string  `json:"enrollment_id"`
	StudentID    string  `json:"student_id"`
	SubjectID    string  `json:"subject_id"`
	Semester     string  `json:"semester"`
	Amount       float64 `json:"amount"`
}

// PaymentRecordedEvent событие принятого платежа по счету.
type PaymentRecordedEvent struct {
	PaymentID string  `json:"payment_id"`
	BillID    string  `json:"bill_id"`
	Amount    float64 `json:"amount"`
	Paid      float64 `json:"paid"`
	Status    string  `json:"status"`
}

// Service реализует сверку счетов и чтение зачислений и счетов.
type Service struct {
	store     storage.Store
	subjects  SubjectProvider
	publisher Publisher // nil, если публикация событий отключена
	log       *slog.Logger

	mu        sync.Mutex
	billLocks map[string]*sync.Mutex
}

// New создает новый Service.
func New(store storage.Store, subjects SubjectProvider, publisher Publisher, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		subjects:  subjects,
		publisher: publisher,
		log:       log,
		billLocks: make(map[string]*sync.Mutex),
	}
}

// CreateEnrollment создает зачисление и начисляет плату за предмет в счет
// студента за семестр. Возвращает ID созданного зачисления.
//
// Плата рассчитывается как units * fee_per_unit предмета; если предмет
// не удалось разрешить, плата считается нулевой — проблема с данными
// биллинга никогда не блокирует зачисление. Запись о зачислении не
// откатывается, если последующее обновление счета не удалось.
func (s *Service) CreateEnrollment(ctx context.Context, req models.DummyEnrollment) (string, error) {
	const op = "services.billing.CreateEnrollment"

	var existing models.Enrollment
	err := s.store.FindOne(ctx, storage.CollectionEnrollment, storage.Filter{
		"student_id": req.StudentID,
		"subject_id": req.SubjectID,
		"semester":   req.Semester,
	}, &existing)
	if err == nil {
		return "", storage.ErrDuplicateEnrollment
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	status := req.Status
	if status == "" {
		status = models.EnrollmentStatusEnrolled
	}
	enrollmentID, err := s.store.Create(ctx, storage.CollectionEnrollment, models.Enrollment{
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Semester:  req.Semester,
		Status:    status,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new enrollment", slog.String("id", enrollmentID))

	fee := s.subjectFee(ctx, req.SubjectID)

	unlock := s.lockBill(req.StudentID, req.Semester)
	defer unlock()

	billID, err := s.findOrCreateBill(ctx, req.StudentID, req.Semester)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	line := models.BillLine{
		SubjectID:   req.SubjectID,
		Description: tuitionDescription,
		Amount:      fee,
	}
	if err := s.store.UpdatePush(ctx, storage.CollectionBill, billID, "lines", line); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	// Перечитываем счет, чтобы сумма считалась по реально сохраненным строкам.
	var bill models.Bill
	if err := s.store.FindOne(ctx, storage.CollectionBill, storage.Filter{"_id": billID}, &bill); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	total := 0.0
	for _, l := range bill.Lines {
		total += l.Amount
	}
	status = statusFor(bill.Paid, total)

	err = s.store.UpdateSet(ctx, storage.CollectionBill, billID, map[string]any{
		"total":      total,
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("reconciled bill after enrollment",
		slog.String("bill_id", billID),
		slog.Float64("total", total),
		slog.String("status", status))

	s.publish("enrollment.created", EnrollmentCreatedEvent{
		EnrollmentID: enrollmentID,
		StudentID:    req.StudentID,
		SubjectID:    req.SubjectID,
		Semester:     req.Semester,
		Amount:       fee,
	})

	return enrollmentID, nil
}

// RecordPayment сохраняет платеж и пересчитывает paid и status счета.
// Возвращает ID созданного платежа.
//
// Запись о платеже не откатывается, если последующее обновление счета
// не удалось: аудиторский след важнее производных полей.
func (s *Service) RecordPayment(ctx context.Context, req models.DummyPayment) (string, error) {
	const op = "services.billing.RecordPayment"

	var bill models.Bill
	err := s.store.FindOne(ctx, storage.CollectionBill, storage.Filter{"_id": req.BillID}, &bill)
	if errors.Is(err, storage.ErrNotFound) {
		return "", storage.ErrBillNotFound
	}
	if errors.Is(err, storage.ErrInvalidID) {
		return "", storage.ErrInvalidID
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	paymentID, err := s.store.Create(ctx, storage.CollectionPayment, models.Payment{
		BillID:        req.BillID,
		Amount:        req.Amount,
		CashierID:     req.CashierID,
		ReceiptNumber: uuid.NewString(),
		PaidAt:        time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new payment", slog.String("id", paymentID))

	unlock := s.lockBill(bill.StudentID, bill.Semester)
	defer unlock()

	// Перечитываем счет под блокировкой: total мог измениться
	// параллельным зачислением после первого чтения.
	if err := s.store.FindOne(ctx, storage.CollectionBill, storage.Filter{"_id": req.BillID}, &bill); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	newPaid := bill.Paid + req.Amount
	status := statusFor(newPaid, bill.Total)

	err = s.store.UpdateSet(ctx, storage.CollectionBill, req.BillID, map[string]any{
		"paid":       newPaid,
		"status":     status,
		"updated_at": time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("reconciled bill after payment",
		slog.String("bill_id", req.BillID),
		slog.Float64("paid", newPaid),
		slog.String("status", status))

	s.publish("payment.recorded", PaymentRecordedEvent{
		PaymentID: paymentID,
		BillID:    req.BillID,
		Amount:    req.Amount,
		Paid:      newPaid,
		Status:    status,
	})

	return paymentID, nil
}

// ListEnrollments возвращает зачисления по необязательным фильтрам.
func (s *Service) ListEnrollments(ctx context.Context, studentID, subjectID, semester string) ([]models.Enrollment, error) {
	filter := storage.Filter{}
	if studentID != "" {
		filter["student_id"] = studentID
	}
	if subjectID != "" {
		filter["subject_id"] = subjectID
	}
	if semester != "" {
		filter["semester"] = semester
	}

	var result []models.Enrollment
	if err := s.store.FindMany(ctx, storage.CollectionEnrollment, filter, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListBills возвращает счета по необязательным фильтрам.
func (s *Service) ListBills(ctx context.Context, studentID, status string) ([]models.Bill, error) {
	filter := storage.Filter{}
	if studentID != "" {
		filter["student_id"] = studentID
	}
	if status != "" {
		filter["status"] = status
	}

	var result []models.Bill
	if err := s.store.FindMany(ctx, storage.CollectionBill, filter, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// subjectFee возвращает плату за предмет. Любая ошибка разрешения предмета
// трактуется как нулевая плата: зачисление важнее корректности начисления.
func (s *Service) subjectFee(ctx context.Context, subjectID string) float64 {
	subject, err := s.subjects.Get(ctx, subjectID)
	if err != nil {
		s.log.Warn("failed to resolve subject for fee, using zero",
			slog.String("subject_id", subjectID), sl.Err(err))
		return 0
	}
	return subject.Fee()
}

// findOrCreateBill возвращает ID счета студента за семестр,
// создавая пустой счет при первом обращении.
func (s *Service) findOrCreateBill(ctx context.Context, studentID, semester string) (string, error) {
	var bill models.Bill
	err := s.store.FindOne(ctx, storage.CollectionBill, storage.Filter{
		"student_id": studentID,
		"semester":   semester,
	}, &bill)
	if err == nil {
		return bill.ID.Hex(), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", err
	}

	return s.store.Create(ctx, storage.CollectionBill, models.Bill{
		StudentID: studentID,
		Semester:  semester,
		Lines:     []models.BillLine{},
		Total:     0,
		Paid:      0,
		Status:    models.BillStatusUnpaid,
	})
}

// lockBill сериализует мутации одного счета по ключу (student_id, semester).
func (s *Service) lockBill(studentID, semester string) func() {
	key := studentID + "|" + semester

	s.mu.Lock()
	lock, ok := s.billLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.billLocks[key] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// publish отправляет событие биллинга; ошибка публикации не влияет
// на результат операции.
func (s *Service) publish(routingKey string, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish billing event",
			slog.String("routing_key", routingKey), sl.Err(err))
	}
}

// statusFor выводит статус счета из соотношения оплаченного и начисленного.
// Счет с total == 0 и paid == 0 остается unpaid: вырожденный случай 0 >= 0
// не считается полной оплатой.
func statusFor(paid, total float64) string {
	switch {
	case paid >= total && total > 0:
		return models.BillStatusPaid
	case paid > 0:
		return models.BillStatusPartial
	default:
		return models.BillStatusUnpaid
	}
}
