// Package assistant wires the webhook transport and the kitchen API around
// the dialogue engine.
package assistant

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"time"

	"brew-assistant/internal/common/config"
	"brew-assistant/internal/common/db"
	"brew-assistant/internal/common/httpx"
	"brew-assistant/internal/common/logger"
	"brew-assistant/internal/common/mq"
	"brew-assistant/internal/dialogue"
	"brew-assistant/internal/ledger"
	"brew-assistant/internal/menu"
	"brew-assistant/internal/session"
	"brew-assistant/internal/ticket"
)

// Run assembles the assistant service and serves until ctx is canceled.
func Run(ctx context.Context, cfg config.App) error {
	lg := logger.New("assistant")

	var orders ledger.Ledger = ledger.NewMemory()
	if cfg.DatabaseConfigured() {
		conn, err := db.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()
		pg := ledger.NewPostgres(conn)
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		orders = pg
		lg.Info("ledger_backend", map[string]any{"backend": "postgres", "host": cfg.Database.Host})
	} else {
		lg.Info("ledger_backend", map[string]any{"backend": "memory"})
	}

	var tickets dialogue.TicketPublisher = ticket.Nop{}
	if cfg.RabbitConfigured() {
		client, err := mq.Dial(cfg.Rabbit)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.DeclareAll(); err != nil {
			return err
		}
		tickets = ticket.NewAMQPPublisher(client)
		lg.Info("ticket_publishing_enabled", map[string]any{"host": cfg.Rabbit.Host})
	}

	store := session.NewMemoryStore(time.Duration(cfg.Sessions.TTLHours) * time.Hour)
	go sweepSessions(ctx, store, lg)

	engine := dialogue.New(menu.Default(), orders, tickets, lg)
	h := &handler{store: store, engine: engine, orders: orders, lg: lg}

	srv := httpx.New(":"+strconv.Itoa(cfg.HTTP.Port), h.routes())
	lg.Info("listening", map[string]any{"port": cfg.HTTP.Port})
	return srv.Run(ctx)
}

func sweepSessions(ctx context.Context, store *session.MemoryStore, lg *logger.Logger) {
	t := time.NewTicker(15 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := store.Sweep(); n > 0 {
				lg.Debug("sessions_evicted", map[string]any{"count": n, "live": store.Len()})
			}
		}
	}
}

type handler struct {
	store  session.Store
	engine *dialogue.Engine
	orders ledger.Ledger
	lg     *logger.Logger
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /webhook", h.Webhook)
	mux.HandleFunc("GET /kitchen/orders", h.ListOrders)
	mux.HandleFunc("POST /kitchen/orders/{order_number}/complete", h.CompleteOrder)
	return mux
}

// twiml is the reply envelope the messaging provider expects.
type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// Webhook handles one inbound message: Twilio-style form fields `From`
// (sender identity) and `Body` (message text).
func (h *handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_form", "could not parse form body")
		return
	}
	sender := r.PostFormValue("From")
	body := r.PostFormValue("Body")

	var reply string
	err := h.store.Do(sender, func(s *session.Session) error {
		reply = h.engine.Handle(r.Context(), s, body)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNoSender) {
			writeProblem(w, http.StatusBadRequest, "no_sender", "From is required")
			return
		}
		h.lg.Error("webhook_failed", err, map[string]any{"sender": sender})
		writeProblem(w, http.StatusInternalServerError, "internal", "could not handle message")
		return
	}

	out, err := xml.Marshal(twiml{Message: reply})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "internal", "could not encode reply")
		return
	}
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (h *handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "ledger_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *handler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("order_number")
	err := h.orders.MarkCompleted(r.Context(), number)
	if errors.Is(err, ledger.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "not_found", "no pending order with that number")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "ledger_error", err.Error())
		return
	}
	h.lg.Info("order_completed", map[string]any{"order_number": number})
	writeJSON(w, http.StatusOK, map[string]any{"order_number": number, "status": ledger.StatusCompleted})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeProblem emits a simplified RFC7807 problem document.
func writeProblem(w http.ResponseWriter, code int, typ, detail string) {
	writeJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}
