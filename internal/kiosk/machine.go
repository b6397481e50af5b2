package kiosk

import (
	"slices"

	"pos-kiosk-demo/config"
	"pos-kiosk-demo/internal/parse"
)

// State is everything the kiosk shows. BaseAmount and TipAmount are
// two-decimal strings, empty when unset.
type State struct {
	Screen     Screen
	Cart       []CartItem
	NextItemID int
	BaseAmount string
	TipAmount  string
	SessionID  string

	PanelOpen bool
	Paused    bool
	QRVisible bool

	Scanned         bool
	AppReady        bool
	HandoffComplete bool
}

// NewState returns the state a freshly started kiosk is in.
func NewState(sessionID string) State {
	return State{
		Screen:     ScreenHome,
		NextItemID: 1,
		SessionID:  sessionID,
		QRVisible:  true,
	}
}

// Total is BaseAmount plus TipAmount, or "" when neither is set.
func (s State) Total() string {
	total, _ := parse.ComputeTotal(s.BaseAmount, s.TipAmount)
	return total
}

type amountSlot int

const (
	noSlot amountSlot = iota
	baseSlot
	tipSlot
)

// advanceRule describes what Advance does on one screen. A zero target means
// the next screen in ScreenOrder.
type advanceRule struct {
	slot   amountSlot
	target Screen
}

var advanceRules = map[Screen]advanceRule{
	ScreenScreensaver: {target: ScreenHome},
	ScreenFollow:      {target: ScreenHome},
	ScreenCart:        {slot: baseSlot},
	ScreenPayment:     {slot: baseSlot},
	ScreenTipping:     {slot: tipSlot},
	ScreenCustomTip:   {slot: tipSlot, target: ScreenEnd},
	ScreenCashout:     {target: ScreenEnd},
}

// Machine reduces events into kiosk state.
type Machine struct {
	TaxRate       float64
	TipPercents   []int
	PublicBaseURL string
	Catalog       []CatalogItem

	pick func(n int) int
}

// NewMachine builds a Machine from the kiosk and server settings.
func NewMachine(cfg *config.Config) *Machine {
	return &Machine{
		TaxRate:       cfg.Kiosk.TaxRate,
		TipPercents:   slices.Clone(cfg.Kiosk.TipPercents),
		PublicBaseURL: cfg.Server.PublicBaseURL,
		Catalog:       Catalog,
		pick:          randomPick,
	}
}

// Apply returns the state after ev. s is not modified.
func (m *Machine) Apply(s State, ev Event) State {
	prev := s.Screen
	s.Cart = slices.Clone(s.Cart)

	switch e := ev.(type) {
	case Advance:
		s = m.advance(s, e.Amount)
	case Back:
		s.Screen = Prev(s.Screen)
	case GoTo:
		if e.Screen.Valid() {
			s.Screen = e.Screen
		}
	case Reset:
		s.Screen = ScreenHome
		s.BaseAmount = ""
		s.TipAmount = ""
	case AddItem:
		s = addItem(s, e.Name, e.Price)
	case AddRandomItem:
		s = m.addRandomItem(s)
	case RemoveItem:
		s.Cart = slices.DeleteFunc(s.Cart, func(it CartItem) bool { return it.ID == e.ID })
	case SetQuantity:
		s = setQuantity(s, e.ID, e.Quantity)
	case ClearCart:
		s.Cart = nil
	case TogglePanel:
		s.PanelOpen = !s.PanelOpen
	case TogglePause:
		s.Paused = !s.Paused
	case ToggleQR:
		s.QRVisible = !s.QRVisible
	case Scanned:
		s.Scanned = true
		s.Screen = ScreenCashout
	case AppReady:
		s.AppReady = true
	case HandoffComplete:
		s.HandoffComplete = true
		if s.Screen == ScreenCashout {
			s.Screen = ScreenEnd
		}
	case NewSession:
		if e.ID != "" {
			s.SessionID = e.ID
			s.Scanned = false
			s.AppReady = false
			s.HandoffComplete = false
		}
	case Idle:
		if s.Screen == ScreenEnd && !s.Paused {
			s.Screen = ScreenScreensaver
		}
	case ScreensaverTick:
		switch s.Screen {
		case ScreenScreensaver:
			s.Screen = ScreenFollow
		case ScreenFollow:
			s.Screen = ScreenScreensaver
		}
	}

	return m.settle(s, prev)
}

func (m *Machine) advance(s State, amount string) State {
	rule, ok := advanceRules[s.Screen]
	if !ok {
		s.Screen = Next(s.Screen)
		return s
	}

	if v := parse.NormalizeAmount(amount); v != "" {
		switch rule.slot {
		case baseSlot:
			s.BaseAmount = v
		case tipSlot:
			s.TipAmount = v
		}
	}

	if rule.target != "" {
		s.Screen = rule.target
	} else {
		s.Screen = Next(s.Screen)
	}
	return s
}

// settle restores the invariants that depend on the current screen.
func (m *Machine) settle(s State, prev Screen) State {
	if s.Screen == ScreenCart && len(s.Cart) == 0 {
		s = m.addRandomItem(s)
	}

	switch {
	case s.Screen == ScreenCart:
		s.BaseAmount = Subtotal(s.Cart)
	case s.Screen == ScreenPayment && prev != ScreenPayment:
		s.BaseAmount = parse.WithRate(Subtotal(s.Cart), m.TaxRate)
	}
	return s
}

func (m *Machine) addRandomItem(s State) State {
	catalog := m.Catalog
	if len(catalog) == 0 {
		catalog = Catalog
	}
	pick := m.pick
	if pick == nil {
		pick = randomPick
	}
	item := catalog[pick(len(catalog))]
	return addItem(s, item.Name, item.Price)
}

func addItem(s State, name string, price float64) State {
	if s.NextItemID < 1 {
		s.NextItemID = 1
	}
	s.Cart = append(s.Cart, CartItem{ID: s.NextItemID, Name: name, Price: price, Quantity: 1})
	s.NextItemID++
	return s
}

func setQuantity(s State, id, quantity int) State {
	if quantity < 1 {
		s.Cart = slices.DeleteFunc(s.Cart, func(it CartItem) bool { return it.ID == id })
		return s
	}
	for i := range s.Cart {
		if s.Cart[i].ID == id {
			s.Cart[i].Quantity = quantity
		}
	}
	return s
}
