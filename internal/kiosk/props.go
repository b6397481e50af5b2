package kiosk

import (
	"pos-kiosk-demo/internal/handoff"
	"pos-kiosk-demo/internal/parse"
)

// cashbackTipFallback is shown on Cashback when no tip was chosen.
const cashbackTipFallback = "0.00"

// TipOption is one preset tip button.
type TipOption struct {
	Percent int
	Amount  string
	Select  Event
}

// Props is what the mounted screen gets to render. Event fields are what
// the screen's controls dispatch; nil means the control does nothing.
type Props struct {
	Screen Screen

	Next     Event
	Back     Event
	Complete Event

	Items     []CartItem
	ItemCount int
	Subtotal  string
	Tax       string
	Total     string

	BaseAmount string
	TipAmount  string
	TipOptions []TipOption
	NoTip      Event
	CustomTip  Event

	SessionID  string
	HandoffURL string
	QRVisible  bool
	Scanned    bool
	AppReady   bool

	Paused      bool
	AutoAdvance bool
}

// PropsFor maps a state to the props of its current screen.
func (m *Machine) PropsFor(s State) Props {
	p := Props{
		Screen: s.Screen,
		Next:   Advance{},
		Paused: s.Paused,
	}

	switch s.Screen {
	case ScreenScreensaver, ScreenFollow:

	case ScreenHome:
		p.ItemCount = ItemCount(s.Cart)

	case ScreenCart:
		subtotal := Subtotal(s.Cart)
		p.Items = s.Cart
		p.ItemCount = ItemCount(s.Cart)
		p.Subtotal = subtotal
		p.Tax = parse.ApplyRate(subtotal, m.TaxRate)
		p.Total = parse.WithRate(subtotal, m.TaxRate)
		p.Next = Advance{Amount: subtotal}
		p.Back = Back{}

	case ScreenPayment:
		p.BaseAmount = s.BaseAmount
		p.Total = s.BaseAmount
		p.Next = Advance{Amount: s.BaseAmount}
		p.Back = Back{}

	case ScreenAuth:
		p.BaseAmount = s.BaseAmount
		p.AutoAdvance = true
		p.Back = Back{}

	case ScreenTipping:
		p.BaseAmount = s.BaseAmount
		p.TipOptions = m.tipOptions(s.BaseAmount)
		p.NoTip = GoTo{Screen: ScreenReward}
		p.CustomTip = GoTo{Screen: ScreenCustomTip}
		p.Back = Back{}

	case ScreenCustomTip:
		p.BaseAmount = s.BaseAmount
		p.TipAmount = s.TipAmount
		p.Back = GoTo{Screen: ScreenTipping}

	case ScreenReward:
		p.Total = s.Total()
		p.SessionID = s.SessionID
		p.HandoffURL = handoff.ScanURL(m.PublicBaseURL, s.SessionID)
		p.QRVisible = s.QRVisible
		p.Scanned = s.Scanned
		p.Back = Back{}

	case ScreenCashback:
		p.BaseAmount = s.BaseAmount
		p.TipAmount = s.TipAmount
		if p.TipAmount == "" {
			p.TipAmount = cashbackTipFallback
		}
		p.Total = s.Total()

	case ScreenCashout:
		p.Next = nil
		p.Complete = Advance{}
		p.Total = s.Total()
		p.SessionID = s.SessionID
		p.AppReady = s.AppReady

	case ScreenEnd:
		p.Next = Reset{}
		p.BaseAmount = s.BaseAmount
		p.TipAmount = s.TipAmount
		p.Total = s.Total()

	default:
		// Unknown screens only get Next.
	}
	return p
}

func (m *Machine) tipOptions(base string) []TipOption {
	opts := make([]TipOption, 0, len(m.TipPercents))
	for _, pct := range m.TipPercents {
		amount := parse.ApplyRate(base, float64(pct)/100)
		opts = append(opts, TipOption{
			Percent: pct,
			Amount:  amount,
			Select:  Advance{Amount: amount},
		})
	}
	return opts
}
