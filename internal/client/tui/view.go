package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DRSN-tech/go-storefront/internal/domain"
)

func (m Model) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenRegister:
		return m.viewRegister()
	default:
		return m.viewCatalog()
	}
}

func (m Model) viewHeader() string {
	left := headerStyle.Render("Storefront")

	var right string
	if m.session.Authenticated {
		right = headerUserStyle.Render(fmt.Sprintf("%s · balance %s · ctrl+o logout",
			m.session.Username, formatMoney(m.session.Balance)))
	} else {
		right = headerUserStyle.Render("guest · ctrl+l login · ctrl+r register")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, left, right)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}

	switch m.statusKind {
	case statusWarning:
		return warningStyle.Render(m.status)
	case statusError:
		return errorStyle.Render(m.status)
	default:
		return mutedStyle.Render(m.status)
	}
}

func (m Model) viewCatalog() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	products := m.viewProductList()
	cart := m.viewCartSidebar()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, products, "  ", cart))

	if status := m.viewStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	b.WriteString(helpStyle.Render("\ntab focus · ↑/↓ move · enter add to cart · +/- quantity · ctrl+c quit"))

	return b.String()
}

func (m Model) viewProductList() string {
	products := m.visibleProducts()

	if !m.catalog.Loaded() && !m.searchActive {
		return mutedStyle.Render("Loading catalog...")
	}
	if len(products) == 0 {
		return mutedStyle.Render("No products found")
	}

	// Высота терминала ограничивает список; выбранный товар всегда виден
	maxRows := m.height - 12
	if maxRows < 3 {
		maxRows = 3
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	cards := make([]string, 0, maxRows)
	for i := start; i < len(products) && i < start+maxRows; i++ {
		cards = append(cards, m.viewProductCard(products[i], i == m.cursor && m.focus == focusProducts))
	}

	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) viewProductCard(p domain.Product, selected bool) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}

	body := fmt.Sprintf("%s\n%s\n%s  %s",
		p.Name,
		mutedStyle.Render(p.Category),
		formatMoney(p.Cost),
		renderStars(p.Rating),
	)

	return style.Render(body)
}

func (m Model) viewCartSidebar() string {
	var b strings.Builder
	b.WriteString(cartTitleStyle.Render("Cart"))
	b.WriteString("\n")

	if !m.session.Authenticated {
		b.WriteString(mutedStyle.Render("Login to view your cart"))
		return b.String()
	}

	items := m.cartItems()
	if len(items) == 0 {
		b.WriteString(mutedStyle.Render("Cart is empty. Add more items to checkout."))
		return b.String()
	}

	var total int64
	for i, item := range items {
		marker := "  "
		if i == m.cartCursor && m.focus == focusCart {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s ×%d  %s\n",
			marker, item.Product.Name, item.Quantity, formatMoney(item.Product.Cost*int64(item.Quantity))))
		total += item.Product.Cost * int64(item.Quantity)
	}

	b.WriteString("\n")
	b.WriteString(cartTotalStyle.Render("Total: " + formatMoney(total)))

	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(cartTitleStyle.Render("Login"))
	b.WriteString("\n\n")
	b.WriteString(m.login.username.View())
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n")

	if m.login.busy {
		b.WriteString(mutedStyle.Render("\nLogging in..."))
	}
	if status := m.viewStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	b.WriteString(helpStyle.Render("\nenter submit · tab next field · esc back"))

	return b.String()
}

func (m Model) viewRegister() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(cartTitleStyle.Render("Register"))
	b.WriteString("\n\n")
	b.WriteString(m.register.username.View())
	b.WriteString("\n")
	b.WriteString(m.register.password.View())
	b.WriteString("\n")
	b.WriteString(m.register.confirm.View())
	b.WriteString("\n")

	if m.register.busy {
		b.WriteString(mutedStyle.Render("\nRegistering..."))
	}
	if status := m.viewStatus(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	b.WriteString(helpStyle.Render("\nenter submit · tab next field · esc back"))

	return b.String()
}

// formatMoney печатает копейки как рубли с двумя знаками.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s₽%d.%02d", sign, cents/100, cents%100)
}

func renderStars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
