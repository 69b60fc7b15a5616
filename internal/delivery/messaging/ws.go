package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"course-service/internal/domain"
	"course-service/internal/infrastructure"
	"course-service/internal/usecase"
)

// Inbound and outbound event names.
const (
	eventJoin           = "join"
	eventCreatePayment  = "createPayment"
	eventConfirmPayment = "confirmPayment"
	eventCancelPayment  = "cancelPayment"

	eventJoined         = "onJoined"
	eventNewPayment     = "onNewPayment"
	eventPaymentCreated = "onPaymentCreated"
	eventPaymentActions = "onPaymentActions"
	eventError          = "onError"
)

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type createPaymentData struct {
	CourseID    string `json:"courseID"`
	SlipImage   string `json:"slipImage"`
	Last4Digits string `json:"last4Digits"`
}

type paymentActionData struct {
	PaymentID string `json:"paymentID"`
}

// client is one live duplex connection. Its handle is the opaque
// identifier other components route events by.
type client struct {
	handle string
	token  string
	userID string // set once join authenticates; empty until then
	conn   *websocket.Conn
	mu     sync.Mutex // serializes writes; the dispatcher and the event loop both emit
}

func (c *client) write(event string, payload interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(outEnvelope{Event: event, Data: payload})
}

// Gateway accepts websocket connections, authenticates inbound events
// against the bearer token of the upgrade request and dispatches them
// to the payment workflow.
type Gateway struct {
	auth     *usecase.AuthUsecase
	payments *usecase.PaymentUsecase
	presence usecase.PresenceStore
	notifier *usecase.Notifier

	upgrader *websocket.Upgrader
	mu       sync.RWMutex
	clients  map[string]*client
}

func NewGateway(auth *usecase.AuthUsecase, payments *usecase.PaymentUsecase, presence usecase.PresenceStore) *Gateway {
	return &Gateway{
		auth:     auth,
		payments: payments,
		presence: presence,
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for now
			},
		},
		clients: make(map[string]*client),
	}
}

// SetNotifier wires in the dispatcher. It emits through this gateway,
// so it is attached after construction.
func (g *Gateway) SetNotifier(notifier *usecase.Notifier) {
	g.notifier = notifier
}

// ServeHTTP upgrades the request and starts the connection's event loop.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	c := &client{
		handle: uuid.NewString(),
		token:  r.Header.Get("Authorization"),
		conn:   conn,
	}

	g.mu.Lock()
	g.clients[c.handle] = c
	g.mu.Unlock()
	infrastructure.ConnectionsOnline.Inc()

	go g.readLoop(c)
}

// Emit pushes one event to one live handle.
func (g *Gateway) Emit(handle, event string, payload interface{}) error {
	g.mu.RLock()
	c, ok := g.clients[handle]
	g.mu.RUnlock()
	if !ok {
		return errors.New("ws: unknown handle " + handle)
	}
	return c.write(event, payload)
}

// readLoop processes one connection's events in arrival order, so a
// single connection's operations never reorder.
func (g *Gateway) readLoop(c *client) {
	defer g.closeConnection(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("ws: read error on %s: %v", c.handle, err)
			}
			return
		}

		var msg envelope
		if err := json.Unmarshal(data, &msg); err != nil {
			g.sendError(c, errors.New("malformed event"))
			continue
		}

		// No caller timeout on purpose: the store clients own their
		// own deadlines, and a connection close cancels nothing that
		// is already in flight.
		ctx := context.Background()

		switch msg.Event {
		case eventJoin:
			g.handleJoin(ctx, c)
		case eventCreatePayment:
			g.handleCreatePayment(ctx, c, msg.Data)
		case eventConfirmPayment:
			g.handlePaymentAction(ctx, c, msg.Data, domain.ActionConfirm)
		case eventCancelPayment:
			g.handlePaymentAction(ctx, c, msg.Data, domain.ActionCancel)
		default:
			g.sendError(c, errors.New("unknown event"))
		}
	}
}

func (g *Gateway) handleJoin(ctx context.Context, c *client) {
	userID, err := g.auth.VerifyUser(ctx, c.token)
	if err != nil {
		g.sendError(c, err)
		return
	}
	if err := g.presence.Register(ctx, userID, c.handle); err != nil {
		g.sendError(c, err)
		return
	}
	c.userID = userID
	log.Printf("ws: %s joined as %s", c.handle, userID)

	if err := c.write(eventJoined, map[string]bool{"joined": true}); err != nil {
		log.Printf("ws: emit %s to %s failed: %v", eventJoined, c.handle, err)
	}
}

func (g *Gateway) handleCreatePayment(ctx context.Context, c *client, data json.RawMessage) {
	userID, err := g.auth.VerifyUser(ctx, c.token)
	if err != nil {
		g.sendError(c, err)
		return
	}

	var in createPaymentData
	if err := json.Unmarshal(data, &in); err != nil {
		g.sendError(c, err)
		return
	}

	payment, err := g.payments.CreatePayment(ctx, userID, in.CourseID, in.SlipImage, in.Last4Digits)
	if err != nil {
		g.sendError(c, err)
		return
	}

	// Tell the operator about the new payment on every live handle.
	// Best-effort: an offline operator just reviews the queue later.
	g.emitToUser(ctx, g.auth.OperatorID(), eventNewPayment, payment)

	if err := c.write(eventPaymentCreated, map[string]bool{"ok": true}); err != nil {
		log.Printf("ws: emit %s to %s failed: %v", eventPaymentCreated, c.handle, err)
	}
}

func (g *Gateway) handlePaymentAction(ctx context.Context, c *client, data json.RawMessage, action domain.PaymentAction) {
	if _, err := g.auth.VerifyOperator(ctx, c.token); err != nil {
		g.sendError(c, err)
		return
	}

	var in paymentActionData
	if err := json.Unmarshal(data, &in); err != nil {
		g.sendError(c, err)
		return
	}

	notification, err := g.payments.Transition(ctx, in.PaymentID, action)
	if err != nil {
		g.sendError(c, err)
		return
	}

	if err := g.notifier.Deliver(ctx, notification); err != nil {
		g.sendError(c, err)
		return
	}

	status := domain.PaymentConfirmed
	if action == domain.ActionCancel {
		status = domain.PaymentCanceled
	}
	if err := c.write(eventPaymentActions, map[string]interface{}{"type": status, "ok": true}); err != nil {
		log.Printf("ws: emit %s to %s failed: %v", eventPaymentActions, c.handle, err)
	}
}

// emitToUser sends an event to every live handle of a user,
// best-effort per handle.
func (g *Gateway) emitToUser(ctx context.Context, userID, event string, payload interface{}) {
	if userID == "" {
		return
	}
	handles, err := g.presence.Lookup(ctx, userID)
	if err != nil {
		log.Printf("ws: presence lookup for %s failed: %v", userID, err)
		return
	}
	for _, handle := range handles {
		if err := g.Emit(handle, event, payload); err != nil {
			log.Printf("ws: emit %s to %s failed: %v", event, handle, err)
		}
	}
}

func (g *Gateway) sendError(c *client, err error) {
	msg := domain.ClientMessage(err)
	if msg == "something went wrong" {
		log.Printf("ws: %s: %v", c.handle, err)
	}
	if werr := c.write(eventError, map[string]string{"message": msg}); werr != nil {
		log.Printf("ws: emit %s to %s failed: %v", eventError, c.handle, werr)
	}
}

// closeConnection tears the connection down. Presence cleanup is
// best-effort: there is no client left to tell about a failure, so it
// is logged and swallowed.
func (g *Gateway) closeConnection(c *client) {
	g.mu.Lock()
	delete(g.clients, c.handle)
	g.mu.Unlock()
	infrastructure.ConnectionsOnline.Dec()
	c.conn.Close()

	if c.userID == "" {
		return
	}
	if err := g.presence.Unregister(context.Background(), c.userID, c.handle); err != nil {
		log.Printf("ws: unregister %s/%s failed: %v", c.userID, c.handle, err)
	}
}

// Close shuts every open connection, for server shutdown.
func (g *Gateway) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range g.clients {
		c.conn.Close()
	}
}
