package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"course-service/internal/domain"
	"course-service/internal/infrastructure"
)

// NATS subjects announcing payment lifecycle events.
const (
	SubjectPaymentCreated   = "payment.created"
	SubjectPaymentConfirmed = "payment.confirmed"
	SubjectPaymentCanceled  = "payment.canceled"
)

// PaymentUsecase drives a payment through waiting → confirmed|canceled.
type PaymentUsecase struct {
	payments      PaymentStore
	courses       CourseStore
	users         UserStore
	notifications NotificationStore
	slips         SlipUploader
	events        EventPublisher
	mailer        ReceiptMailer
}

func NewPaymentUsecase(
	payments PaymentStore,
	courses CourseStore,
	users UserStore,
	notifications NotificationStore,
	slips SlipUploader,
	events EventPublisher,
	mailer ReceiptMailer,
) *PaymentUsecase {
	return &PaymentUsecase{
		payments:      payments,
		courses:       courses,
		users:         users,
		notifications: notifications,
		slips:         slips,
		events:        events,
		mailer:        mailer,
	}
}

// CreatePayment validates the request, stores the slip image out-of-band
// and creates the payment in the waiting state. At most one waiting
// payment may exist per (user, course) pair.
func (uc *PaymentUsecase) CreatePayment(ctx context.Context, userID, courseID, slipPayload, last4Digits string) (*domain.Payment, error) {
	contentType, slipData, err := domain.DecodeSlipImage(slipPayload)
	if err != nil {
		return nil, domain.ErrInvalidSlipImage
	}
	if !domain.ValidLast4Digits(last4Digits) {
		return nil, domain.ErrInvalidLast4
	}

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	courseOID, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}

	course, err := uc.courses.FindPublished(ctx, courseOID)
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if course == nil {
		return nil, domain.ErrCourseNotFound
	}
	if !course.IsPaid {
		return nil, domain.ErrCourseFree
	}

	user, err := uc.users.FindByID(ctx, userOID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Owns(courseOID) {
		return nil, domain.ErrAlreadyOwned
	}

	pending, err := uc.payments.FindWaiting(ctx, userOID, courseOID)
	if err != nil {
		return nil, fmt.Errorf("find waiting payment: %w", err)
	}
	if pending != nil {
		return nil, domain.ErrPaymentPending
	}

	slip, err := uc.slips.Upload(ctx, contentType, slipData)
	if err != nil {
		return nil, fmt.Errorf("upload slip: %w", err)
	}

	payment := &domain.Payment{
		CreatedBy:   userOID,
		CourseID:    courseOID,
		SlipImage:   slip,
		Last4Digits: last4Digits,
		Status:      domain.PaymentWaiting,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.payments.Insert(ctx, payment); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	infrastructure.PaymentsCreated.Inc()

	// The course is on its way to being bought; the want-to-buy signal
	// is stale now. Failure here must not undo the created payment.
	if err := uc.users.PullWishlist(ctx, userOID, courseOID); err != nil {
		log.Printf("payment %s: wishlist cleanup failed: %v", payment.ID.Hex(), err)
	}

	uc.announce(SubjectPaymentCreated, payment)
	return payment, nil
}

// Transition confirms or cancels a waiting payment and records exactly
// one notification for its owner. The status flip is a single
// conditional update, so concurrent transitions cannot both succeed.
func (uc *PaymentUsecase) Transition(ctx context.Context, paymentID string, action domain.PaymentAction) (*domain.Notification, error) {
	id, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, domain.ErrPaymentNotFound
	}

	target := domain.PaymentConfirmed
	notificationType := domain.NotificationConfirmation
	subject := SubjectPaymentConfirmed
	if action == domain.ActionCancel {
		target = domain.PaymentCanceled
		notificationType = domain.NotificationCancellation
		subject = SubjectPaymentCanceled
	}

	payment, err := uc.payments.TransitionStatus(ctx, id, domain.PaymentWaiting, target)
	if err != nil {
		return nil, fmt.Errorf("transition payment: %w", err)
	}
	if payment == nil {
		return nil, uc.classifyTransitionMiss(ctx, id)
	}

	if action == domain.ActionConfirm {
		if err := uc.enroll(ctx, payment); err != nil {
			return nil, err
		}
		infrastructure.PaymentsConfirmed.Inc()
	} else {
		infrastructure.PaymentsCanceled.Inc()
	}

	notification := &domain.Notification{
		Type:      notificationType,
		PaymentID: payment.ID,
		CourseID:  payment.CourseID,
		ToUser:    payment.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.notifications.Insert(ctx, notification); err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	if action == domain.ActionConfirm {
		uc.sendReceipt(ctx, payment)
	}
	uc.announce(subject, payment)
	return notification, nil
}

// classifyTransitionMiss explains a failed conditional update: the
// payment is either gone or already terminal.
func (uc *PaymentUsecase) classifyTransitionMiss(ctx context.Context, id primitive.ObjectID) error {
	payment, err := uc.payments.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find payment: %w", err)
	}
	if payment == nil {
		return domain.ErrPaymentNotFound
	}
	if payment.Status == domain.PaymentCanceled {
		return domain.ErrAlreadyCanceled
	}
	return domain.ErrAlreadyConfirmed
}

func (uc *PaymentUsecase) enroll(ctx context.Context, payment *domain.Payment) error {
	if err := uc.users.AddPurchasedCourse(ctx, payment.CreatedBy, payment.CourseID); err != nil {
		return fmt.Errorf("add purchased course: %w", err)
	}
	if err := uc.courses.AddStudent(ctx, payment.CourseID, payment.CreatedBy); err != nil {
		return fmt.Errorf("add student: %w", err)
	}
	return nil
}

func (uc *PaymentUsecase) sendReceipt(ctx context.Context, payment *domain.Payment) {
	if uc.mailer == nil {
		return
	}
	user, err := uc.users.FindByID(ctx, payment.CreatedBy)
	if err != nil || user == nil || user.Email == "" {
		return
	}
	courseName := ""
	if course, err := uc.courses.FindPublished(ctx, payment.CourseID); err == nil && course != nil {
		courseName = course.Name
	}
	if err := uc.mailer.SendPaymentConfirmed(ctx, user.Email, courseName); err != nil {
		log.Printf("payment %s: receipt email failed: %v", payment.ID.Hex(), err)
	}
}

func (uc *PaymentUsecase) announce(subject string, payment *domain.Payment) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(subject, payment); err != nil {
		log.Printf("payment %s: publish %s failed: %v", payment.ID.Hex(), subject, err)
	}
}
