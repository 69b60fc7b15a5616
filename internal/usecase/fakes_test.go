package usecase

import (
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"course-service/internal/domain"
)

// In-memory fakes standing in for the Redis, Mongo, S3, NATS and
// websocket collaborators. The shared ones take their own locks so the
// race tests exercise real interleavings.

type fakeTokens struct {
	subjects map[string]string // token -> userID
}

func (f *fakeTokens) Verify(token string) (string, error) {
	if id, ok := f.subjects[token]; ok {
		return id, nil
	}
	return "", domain.ErrUnauthorized
}

type fakeSessions struct {
	mu      sync.Mutex
	trusted map[string]bool
	fail    bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{trusted: make(map[string]bool)}
}

func (f *fakeSessions) IsTrusted(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false, errors.New("redis down")
	}
	return f.trusted[userID], nil
}

func (f *fakeSessions) Trust(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("redis down")
	}
	f.trusted[userID] = true
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.trusted, userID)
	return nil
}

type fakePresence struct {
	mu      sync.Mutex
	entries map[string][]string
}

func newFakePresence() *fakePresence {
	return &fakePresence{entries: make(map[string][]string)}
}

func (f *fakePresence) Register(_ context.Context, userID, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, changed := domain.AppendHandle(f.entries[userID], handle)
	if changed {
		f.entries[userID] = next
	}
	return nil
}

func (f *fakePresence) Unregister(_ context.Context, userID, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, changed := domain.RemoveHandle(f.entries[userID], handle)
	if !changed {
		return nil
	}
	if len(next) == 0 {
		delete(f.entries, userID)
		return nil
	}
	f.entries[userID] = next
	return nil
}

func (f *fakePresence) Lookup(_ context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.entries[userID]...), nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) IsVerified(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	return ok && u.IsVerified, nil
}

func (f *fakeUsers) PullWishlist(_ context.Context, userID, courseID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.Wishlist, _ = removeID(u.Wishlist, courseID)
	return nil
}

func (f *fakeUsers) AddPurchasedCourse(_ context.Context, userID, courseID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil
	}
	u.PurchasedCourses = addIDOnce(u.PurchasedCourses, courseID)
	return nil
}

func (f *fakeUsers) IncrementUnread(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.UnreadCount++
	}
	return nil
}

func (f *fakeUsers) ResetUnread(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.UnreadCount = 0
	}
	return nil
}

type fakeCourses struct {
	mu      sync.Mutex
	courses map[primitive.ObjectID]*domain.Course
}

func newFakeCourses(courses ...*domain.Course) *fakeCourses {
	f := &fakeCourses{courses: make(map[primitive.ObjectID]*domain.Course)}
	for _, c := range courses {
		f.courses[c.ID] = c
	}
	return f
}

func (f *fakeCourses) FindPublished(_ context.Context, id primitive.ObjectID) (*domain.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.courses[id]
	if !ok || !c.IsPublished {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCourses) AddStudent(_ context.Context, courseID, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.courses[courseID]; ok {
		c.Students = addIDOnce(c.Students, userID)
	}
	return nil
}

type fakePayments struct {
	mu       sync.Mutex
	payments map[primitive.ObjectID]*domain.Payment
}

func newFakePayments(payments ...*domain.Payment) *fakePayments {
	f := &fakePayments{payments: make(map[primitive.ObjectID]*domain.Payment)}
	for _, p := range payments {
		f.payments[p.ID] = p
	}
	return f
}

func (f *fakePayments) Insert(_ context.Context, payment *domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.ID = primitive.NewObjectID()
	copied := *payment
	f.payments[payment.ID] = &copied
	return nil
}

func (f *fakePayments) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakePayments) FindWaiting(_ context.Context, userID, courseID primitive.ObjectID) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.CreatedBy == userID && p.CourseID == courseID && p.Status == domain.PaymentWaiting {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

// TransitionStatus mirrors the conditional mongo update: the compare
// and the swap happen under one lock.
func (f *fakePayments) TransitionStatus(_ context.Context, id primitive.ObjectID, from, to domain.PaymentStatus) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[id]
	if !ok || p.Status != from {
		return nil, nil
	}
	p.Status = to
	copied := *p
	return &copied, nil
}

type fakeNotifications struct {
	mu       sync.Mutex
	inserted []domain.Notification
}

func (f *fakeNotifications) Insert(_ context.Context, notification *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, *notification)
	return nil
}

func (f *fakeNotifications) ListForUser(_ context.Context, userID primitive.ObjectID) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Notification
	for i := len(f.inserted) - 1; i >= 0; i-- {
		if f.inserted[i].ToUser == userID {
			out = append(out, f.inserted[i])
		}
	}
	return out, nil
}

func (f *fakeNotifications) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

type fakeSlips struct {
	uploads int
}

func (f *fakeSlips) Upload(_ context.Context, contentType string, data []byte) (domain.SlipImage, error) {
	f.uploads++
	return domain.SlipImage{Key: "slip-key", URL: "http://blobs.local/slip-key"}, nil
}

type emittedEvent struct {
	handle  string
	event   string
	payload interface{}
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []emittedEvent
	broken map[string]bool // handles whose delivery fails
}

func (f *fakeEmitter) Emit(handle, event string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken[handle] {
		return errors.New("connection gone")
	}
	f.events = append(f.events, emittedEvent{handle: handle, event: event, payload: payload})
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (f *fakePublisher) Publish(subject string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) SendPaymentConfirmed(_ context.Context, recipientEmail, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, recipientEmail)
	return nil
}

func addIDOnce(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) ([]primitive.ObjectID, bool) {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
