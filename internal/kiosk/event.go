package kiosk

// Event is a request to change the kiosk state. Every source (keys, timers,
// the status poller) produces Events and they are reduced one at a time.
type Event interface {
	event()
}

// Advance moves forward. Amount, when set, is recorded on the screens that collect one.
type Advance struct{ Amount string }

// Back moves to the previous screen in ScreenOrder.
type Back struct{}

// GoTo jumps straight to Screen.
type GoTo struct{ Screen Screen }

// Reset returns to Home and clears both amounts.
type Reset struct{}

// AddItem puts one unit of a new line in the cart.
type AddItem struct {
	Name  string
	Price float64
}

// AddRandomItem adds a catalog item picked at random.
type AddRandomItem struct{}

// RemoveItem drops the line with ID.
type RemoveItem struct{ ID int }

// SetQuantity changes a line's quantity. Below one removes the line.
type SetQuantity struct {
	ID       int
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

type TogglePanel struct{}

type TogglePause struct{}

type ToggleQR struct{}

// Scanned reports that the phone opened the handoff link.
type Scanned struct{}

// AppReady reports that the phone app picked up the session.
type AppReady struct{}

// HandoffComplete reports that the phone finished the handoff.
type HandoffComplete struct{}

// NewSession switches to a fresh handoff session and forgets the old one's progress.
type NewSession struct{ ID string }

// Idle fires after the kiosk has been left alone.
type Idle struct{}

// ScreensaverTick flips between the two attract screens.
type ScreensaverTick struct{}

func (Advance) event()         {}
func (Back) event()            {}
func (GoTo) event()            {}
func (Reset) event()           {}
func (AddItem) event()         {}
func (AddRandomItem) event()   {}
func (RemoveItem) event()      {}
func (SetQuantity) event()     {}
func (ClearCart) event()       {}
func (TogglePanel) event()     {}
func (TogglePause) event()     {}
func (ToggleQR) event()        {}
func (Scanned) event()         {}
func (AppReady) event()        {}
func (HandoffComplete) event() {}
func (NewSession) event()      {}
func (Idle) event()            {}
func (ScreensaverTick) event() {}
