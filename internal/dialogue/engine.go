// Package dialogue is the conversation engine: it consumes one inbound
// message plus the sender's session and produces the reply, mutating the
// session along the way.
package dialogue

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"brew-assistant/internal/common/logger"
	"brew-assistant/internal/ledger"
	"brew-assistant/internal/menu"
	"brew-assistant/internal/resolve"
	"brew-assistant/internal/session"
)

var (
	// ErrEmptyMessage marks an inbound message with no text.
	ErrEmptyMessage = errors.New("empty message")
	// ErrTornSession marks a state/pending mismatch found on entry.
	ErrTornSession = errors.New("session state and pending selection disagree")
)

// TicketPublisher delivers a committed order to the kitchen.
type TicketPublisher interface {
	Publish(ctx context.Context, o ledger.Order) error
}

type Engine struct {
	catalog  *menu.Catalog
	resolver *resolve.Resolver
	orders   ledger.Ledger
	tickets  TicketPublisher
	lg       *logger.Logger
}

func New(catalog *menu.Catalog, orders ledger.Ledger, tickets TicketPublisher, lg *logger.Logger) *Engine {
	return &Engine{
		catalog:  catalog,
		resolver: resolve.New(catalog),
		orders:   orders,
		tickets:  tickets,
		lg:       lg,
	}
}

// Handle interprets one inbound message. It never fails outward: every
// unmatched or broken condition degrades to a recoverable reply, so the
// assistant always answers. The caller must hold the session's lock.
func (e *Engine) Handle(ctx context.Context, s *session.Session, text string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if s.Torn() {
		// A milk sub-dialogue with an empty queue (or queued items outside
		// one) cannot be interpreted; repair and start over from Browsing.
		e.lg.Warn("session_repaired", ErrTornSession, map[string]any{
			"sender": s.SenderID, "state": string(s.State),
		})
		s.Pending = nil
		if s.State != session.StateAwaitingTable {
			s.State = session.StateBrowsing
		}
		return replyFallback()
	}

	if trimmed == "" {
		e.lg.Warn("empty_message", ErrEmptyMessage, map[string]any{"sender": s.SenderID, "state": string(s.State)})
		if s.State == session.StateAwaitingTable {
			return replyWelcomeAskTable()
		}
		return replyFallback()
	}

	switch s.State {
	case session.StateAwaitingTable:
		return e.handleTableCapture(s, trimmed, lower)
	case session.StateAwaitingMilkChoice:
		return e.handleMilkChoice(s, lower)
	case session.StateAwaitingCheckoutName:
		return e.handleCheckoutName(ctx, s, trimmed)
	default:
		return e.handleBrowsing(ctx, s, trimmed, lower)
	}
}

// handleTableCapture runs until a table number is known. Any first message
// that is not a greeting becomes the table number verbatim; there is
// deliberately no validation of it.
func (e *Engine) handleTableCapture(s *session.Session, trimmed, lower string) string {
	if isGreeting(lower) {
		return replyWelcomeAskTable()
	}
	table := strings.TrimSpace(strings.Replace(lower, "table", "", 1))
	s.TableNumber = table
	s.State = session.StateBrowsing
	e.lg.Debug("table_captured", map[string]any{"sender": s.SenderID, "table": table})
	return replyTableSet(table)
}

// handleMilkChoice turns the message into a milk note for the next queued
// coffee. "dairy" anywhere means the standard milk, no note.
func (e *Engine) handleMilkChoice(s *session.Session, lower string) string {
	notes := ""
	if !strings.Contains(lower, "dairy") {
		notes = "with " + lower
	}

	item := s.Pending[0]
	s.Pending = s.Pending[1:]
	line := e.addLine(s, item, notes)

	if len(s.Pending) > 0 {
		return replyAddedToCart(line, s.TableNumber) + "\n\n" + replyAskMilk(s.Pending[0])
	}
	s.State = session.StateBrowsing
	return replyAddedToCart(line, s.TableNumber) + replyWantMore()
}

// handleCheckoutName commits the cart under the given name. The cart is
// preserved on a ledger failure so the customer can retry.
func (e *Engine) handleCheckoutName(ctx context.Context, s *session.Session, name string) string {
	o, err := ledger.Commit(ctx, e.orders, s, name)
	if err != nil {
		s.Pending = nil
		s.State = session.StateBrowsing
		e.lg.Error("order_commit_failed", err, map[string]any{"sender": s.SenderID, "table": s.TableNumber})
		return replyCommitFailed()
	}

	if err := e.tickets.Publish(ctx, o); err != nil {
		// Best effort: the kitchen API still sees the order in the ledger.
		e.lg.Warn("ticket_publish_failed", err, map[string]any{"order_number": o.Number})
	}

	s.CustomerName = name
	s.Cart = nil
	s.Pending = nil
	s.State = session.StateBrowsing
	e.lg.Info("order_committed", map[string]any{
		"order_number": o.Number, "table": o.Table, "items": len(o.Items), "total": o.Total.String(),
	})
	return replyOrderConfirmation(o)
}

// handleBrowsing evaluates the resting-state rules in their fixed priority
// order; the first that applies interprets the message.
func (e *Engine) handleBrowsing(ctx context.Context, s *session.Session, trimmed, lower string) string {
	if strings.Contains(lower, "menu") {
		return e.catalog.RenderFull()
	}
	if matches := e.resolver.Resolve(trimmed); len(matches) > 0 {
		return e.handleMatches(s, matches)
	}

	switch {
	case (strings.Contains(lower, "cart") || strings.Contains(lower, "my order")) &&
		!strings.Contains(lower, "clear") && !strings.Contains(lower, "empty"):
		return replyCart(s)

	case strings.Contains(lower, "checkout") || strings.Contains(lower, "place order"):
		if len(s.Cart) == 0 {
			return replyCheckoutEmptyCart()
		}
		s.State = session.StateAwaitingCheckoutName
		return replyAskCheckoutName()

	case strings.Contains(lower, "clear cart") || strings.Contains(lower, "empty cart"):
		s.Cart = nil
		return replyCartCleared()

	case lower == "coffee" || lower == "drinks":
		return e.catalog.RenderCoffee()

	case strings.Contains(lower, "hours") || strings.Contains(lower, "open") ||
		strings.Contains(lower, "location") || strings.Contains(lower, "address") ||
		strings.Contains(lower, "where"):
		return replyHoursAndLocation()

	case isGreeting(lower):
		return replyGreeting()

	default:
		return replyFallback()
	}
}

// handleMatches applies resolver output to the cart. Food lines are added
// immediately; coffee items are queued and asked about one at a time.
func (e *Engine) handleMatches(s *session.Session, matches []menu.Item) string {
	if len(matches) == 1 {
		item := matches[0]
		if item.Category == menu.CategoryCoffee {
			s.Pending = []menu.Item{item}
			s.State = session.StateAwaitingMilkChoice
			return replyAskMilk(item)
		}
		line := e.addLine(s, item, "")
		return replyAddedToCart(line, s.TableNumber)
	}

	var coffees []menu.Item
	for _, item := range matches {
		if item.Category == menu.CategoryCoffee {
			coffees = append(coffees, item)
			continue
		}
		e.addLine(s, item, "")
	}
	if len(coffees) > 0 {
		s.Pending = coffees
		s.State = session.StateAwaitingMilkChoice
	}
	return replyMultiMatched(s, matches, coffees)
}

func (e *Engine) addLine(s *session.Session, item menu.Item, notes string) session.CartLine {
	line := session.CartLine{
		ID:        uuid.NewString(),
		ItemName:  item.Name,
		UnitPrice: item.Price,
		Notes:     notes,
		Category:  item.Category,
	}
	s.Cart = append(s.Cart, line)
	return line
}

func isGreeting(lower string) bool {
	return strings.Contains(lower, "hi") || strings.Contains(lower, "hello") ||
		strings.Contains(lower, "hey") || lower == "help"
}
