package dialogue

import (
	"fmt"
	"strings"

	"brew-assistant/internal/ledger"
	"brew-assistant/internal/menu"
	"brew-assistant/internal/session"
)

func replyWelcomeAskTable() string {
	return "Hello! Welcome to Brew Coffee Shop!\n\nFirst, what table are you sitting at? (e.g., 'Table 5' or just '5')"
}

func replyTableSet(table string) string {
	return fmt.Sprintf("Perfect! Table %s noted.\n\nI'm here to help you with:\n\nOrder - Start placing your order\nMenu - View our full menu\nCoffee - See coffee & drink options\nCart - Check your current order\nHours - Opening times\nLocation - Find us\n\nWhat would you like to do?", table)
}

func replyAskMilk(item menu.Item) string {
	return fmt.Sprintf("%s - %s\n\nMilk options:\n• Dairy milk (standard)\n• Oat milk\n• Almond milk\n• Soy milk\n\nWhat milk would you like?\n(Or just say 'dairy' for regular milk)", item.Name, item.Price)
}

func replyAddedToCart(line session.CartLine, table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Added to cart!\n\n%s - %s\nTable: %s\n", line.ItemName, line.UnitPrice, table)
	if line.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", line.Notes)
	}
	b.WriteString("Type 'cart' to see your full order or continue adding items!")
	return b.String()
}

func replyWantMore() string {
	return "\n\nGreat choice!\n\nWant to add more?\n• Type an item name to add it\n• Type 'menu' to see all options\n• Type 'cart' to see your order\n• Type 'checkout' when ready to order!\n\nWhat else can I get you?"
}

func replyMultiMatched(s *session.Session, matches []menu.Item, queued []menu.Item) string {
	var b strings.Builder
	b.WriteString("Got it! Here's what I matched:\n\n")
	for i, item := range matches {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.Name, item.Price)
	}
	runningTotal := s.CartTotal()
	for _, item := range s.Pending {
		runningTotal += item.Price
	}
	fmt.Fprintf(&b, "\nRunning total: %s\n\n", runningTotal)
	if len(queued) > 0 {
		b.WriteString(replyAskMilk(queued[0]))
	} else {
		b.WriteString("Type 'cart' to see your full order or continue adding items!")
	}
	return b.String()
}

func replyCart(s *session.Session) string {
	if len(s.Cart) == 0 {
		return "Your cart is empty\n\nType 'menu' to see what's available or type an item name to add it!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "YOUR ORDER - Table %s\n\n", s.TableNumber)
	for i, line := range s.Cart {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, line.ItemName, line.UnitPrice)
		if line.Notes != "" {
			fmt.Fprintf(&b, "   %s\n", line.Notes)
		}
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\nReady?\n• Type 'checkout' to place your order\n• Type 'clear cart' to start over\n• Continue adding items by typing their names", s.CartTotal())
	return b.String()
}

func replyAskCheckoutName() string {
	return "READY TO ORDER!\n\nI just need a name for your order so our team knows who it's for.\n\nWhat name should we use?\n(e.g., 'Sarah', 'John', etc.)"
}

func replyCheckoutEmptyCart() string {
	return "Your cart is empty!\n\nType 'menu' to see what's available or type an item name to add something first!"
}

func replyOrderConfirmation(o ledger.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ORDER PLACED SUCCESSFULLY!\n\nOrder #%s\nTable: %s\nName: %s\n\nYOUR ORDER:\n", o.Number, o.Table, o.CustomerName)
	for i, item := range o.Items {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, item.Name, item.Price)
		if item.Notes != "" {
			fmt.Fprintf(&b, "   %s\n", item.Notes)
		}
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\nORDER SENT TO KITCHEN!\nYour order is being prepared\nReady in: 10-15 minutes\nWe'll bring it to Table %s\nPay when we deliver your order\n\nThank you for choosing Brew Coffee Shop!", o.Total, o.Table)
	return b.String()
}

func replyCommitFailed() string {
	return "Sorry, something went wrong placing your order. Your cart is safe - type 'checkout' to try again."
}

func replyCartCleared() string {
	return "Cart cleared!\n\nReady to start fresh? Type 'menu' to see what's available!"
}

func replyHoursAndLocation() string {
	return "BREW COFFEE SHOP\n\n12 Brock Street\nLancaster, LA1\n\nOPENING HOURS:\n• Monday-Friday: 8:30am - 4:00pm\n• Saturday: 9:00am - 4:00pm\n• Sunday: 10:00am - 4:00pm\n\nFood served: 9:00am - 3:00pm daily\n\n5 minutes walk from Lancaster Castle!"
}

func replyGreeting() string {
	return "Hello! Great to see you!\n\nWhat can I help you with?\n\nOrder - Place a food/drink order\nMenu - View our full menu\nCoffee - See coffee options\nCart - Check your current order\nHours - Opening times\nLocation - Find us\n\nJust tell me what you need!"
}

func replyFallback() string {
	return "I'd love to help!\n\nTry:\n'menu' - See our full menu\n'coffee' - Coffee options\n'cart' - Your current order\n'hours' - Opening times\n'location' - Find us\n\nOr just type an item name like 'latte' or 'breakfast sandwich' to add it to your cart!"
}
