package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"pos-kiosk-demo/internal/kiosk"
)

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return "Starting kiosk..."
	}

	body := ScreenStyle.Render(m.screenView())
	if m.state.PanelOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.panelView())
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Kiosk · %s", m.props.Screen)))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.error != "" {
		b.WriteString(ErrorStyle.Render(m.error))
		b.WriteString("\n")
	} else if m.info != "" {
		b.WriteString(SuccessStyle.Render(m.info))
		b.WriteString("\n")
	}
	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) screenView() string {
	p := m.props
	switch p.Screen {
	case kiosk.ScreenScreensaver:
		return AttractStyle.Render("Tap to start your order")
	case kiosk.ScreenFollow:
		return AttractStyle.Render("Follow us for rewards and specials")
	case kiosk.ScreenHome:
		return m.homeView()
	case kiosk.ScreenCart:
		return m.cartView()
	case kiosk.ScreenPayment:
		return lines(
			LabelStyle.Render("Amount due"),
			AmountStyle.Render("$"+p.BaseAmount),
			"",
			"Tap, insert or swipe your card.",
		)
	case kiosk.ScreenAuth:
		return lines(
			LabelStyle.Render("Authorizing"),
			AmountStyle.Render("$"+p.BaseAmount),
			"",
			"Please wait...",
		)
	case kiosk.ScreenTipping:
		return m.tippingView()
	case kiosk.ScreenCustomTip:
		return lines(
			LabelStyle.Render("Enter a tip amount"),
			InputStyle.Render("$"+m.tipInput+"_"),
			"",
			LabelStyle.Render("Order $"+p.BaseAmount),
		)
	case kiosk.ScreenReward:
		return m.rewardView()
	case kiosk.ScreenCashback:
		return lines(
			LabelStyle.Render("Cashback"),
			"Order  "+AmountStyle.Render("$"+p.BaseAmount),
			"Tip    "+AmountStyle.Render("$"+p.TipAmount),
			"Total  "+AmountStyle.Render("$"+p.Total),
		)
	case kiosk.ScreenCashout:
		ready := "Waiting for the app..."
		if p.AppReady {
			ready = "App connected. Finish on your phone."
		}
		return lines(
			LabelStyle.Render("Continue on your phone"),
			AmountStyle.Render("$"+p.Total),
			"",
			ready,
		)
	case kiosk.ScreenEnd:
		return m.endView()
	}
	return string(p.Screen)
}

func (m Model) homeView() string {
	s := lines(
		AmountStyle.Render("Welcome!"),
		"",
		"Press enter to start an order.",
	)
	if n := m.props.ItemCount; n > 0 {
		s += "\n" + LabelStyle.Render(fmt.Sprintf("%d item(s) waiting in your cart", n))
	}
	return s
}

func (m Model) cartView() string {
	p := m.props
	rows := []string{LabelStyle.Render("Your order"), ""}
	for _, it := range p.Items {
		rows = append(rows, ItemStyle.Render(fmt.Sprintf("%2d × %-20s $%6.2f", it.Quantity, it.Name, it.Price*float64(it.Quantity))))
	}
	rows = append(rows,
		"",
		fmt.Sprintf("Subtotal  $%s", p.Subtotal),
		fmt.Sprintf("Tax       $%s", p.Tax),
		"Total     "+AmountStyle.Render("$"+p.Total),
	)
	return lines(rows...)
}

func (m Model) tippingView() string {
	p := m.props
	opts := make([]string, 0, len(p.TipOptions))
	for i, o := range p.TipOptions {
		opts = append(opts, OptionStyle.Render(fmt.Sprintf("%d) %d%% $%s", i+1, o.Percent, o.Amount)))
	}
	return lines(
		LabelStyle.Render("Add a tip?"),
		"",
		strings.Join(opts, " "),
		"",
		"n) no tip   t) custom",
		LabelStyle.Render("Order $"+p.BaseAmount),
	)
}

func (m Model) rewardView() string {
	p := m.props
	rows := []string{
		LabelStyle.Render("Scan to collect rewards"),
		"Total  " + AmountStyle.Render("$"+p.Total),
		"",
	}
	if p.QRVisible {
		rows = append(rows, QRStyle.Render(p.HandoffURL))
	} else {
		rows = append(rows, LabelStyle.Render("(QR hidden)"))
	}
	if p.Scanned {
		rows = append(rows, SuccessStyle.Render("Scanned"))
	}
	return lines(rows...)
}

func (m Model) endView() string {
	p := m.props
	rows := []string{
		AmountStyle.Render("Thank you!"),
		"",
	}
	if p.BaseAmount != "" {
		rows = append(rows, "Order  $"+p.BaseAmount)
	}
	if p.TipAmount != "" {
		rows = append(rows, "Tip    $"+p.TipAmount)
	}
	if p.Total != "" {
		rows = append(rows, "Total  "+AmountStyle.Render("$"+p.Total))
	}
	if p.Paused {
		rows = append(rows, "", LabelStyle.Render("paused"))
	}
	return lines(rows...)
}

func (m Model) panelView() string {
	rows := []string{LabelStyle.Render("Screens")}
	for i, s := range kiosk.AllScreens {
		row := "  " + string(s)
		if i == m.panelCursor {
			row = SelectedRowStyle.Render("> " + string(s))
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		"",
		LabelStyle.Render("Session"),
		m.state.SessionID,
		fmt.Sprintf("scanned=%t ready=%t done=%t", m.state.Scanned, m.state.AppReady, m.state.HandoffComplete),
	)
	return PanelStyle.Render(lines(rows...))
}

func (m Model) footerView() string {
	var bindings []key.Binding
	if m.state.PanelOpen {
		pk := m.panelKeys
		bindings = []key.Binding{pk.Up, pk.Down, pk.Jump, pk.SimulateScan, pk.AppReady, pk.HandoffComplete, pk.Close}
	} else {
		k := m.keys
		bindings = []key.Binding{k.Next, k.Back}
		switch m.props.Screen {
		case kiosk.ScreenCart:
			bindings = append(bindings, k.Add, k.Remove, k.More, k.Less)
		case kiosk.ScreenTipping:
			bindings = append(bindings, k.Tip1, k.NoTip, k.CustomTip)
		case kiosk.ScreenReward:
			bindings = append(bindings, k.ToggleQR)
		case kiosk.ScreenCashout:
			bindings = []key.Binding{k.Complete}
		case kiosk.ScreenEnd:
			bindings = append(bindings, k.Pause)
		}
		bindings = append(bindings, k.Reset, k.Panel, k.Quit)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, HelpKeyStyle.Render(h.Key)+" "+HelpDescStyle.Render(h.Desc))
	}
	return FooterStyle.Render(strings.Join(parts, "  "))
}

func lines(rows ...string) string {
	return strings.Join(rows, "\n")
}
