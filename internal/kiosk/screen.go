// Package kiosk owns the checkout flow: which screen is showing, the cart,
// the amounts and the handoff session the phone rendezvous on.
package kiosk

// Screen identifies one top-level view of the kiosk.
type Screen string

const (
	ScreenScreensaver Screen = "Screensaver"
	ScreenFollow      Screen = "Follow"
	ScreenHome        Screen = "Home"
	ScreenCart        Screen = "Cart"
	ScreenPayment     Screen = "Payment"
	ScreenAuth        Screen = "Auth"
	ScreenTipping     Screen = "Tipping"
	ScreenCustomTip   Screen = "CustomTip"
	ScreenReward      Screen = "Reward"
	ScreenCashback    Screen = "Cashback"
	ScreenCashout     Screen = "Cashout"
	ScreenEnd         Screen = "End"
)

// AllScreens lists every screen, in the order the dev panel shows them.
var AllScreens = []Screen{
	ScreenScreensaver,
	ScreenFollow,
	ScreenHome,
	ScreenCart,
	ScreenPayment,
	ScreenAuth,
	ScreenTipping,
	ScreenCustomTip,
	ScreenReward,
	ScreenCashback,
	ScreenCashout,
	ScreenEnd,
}

// ScreenOrder drives the generic forward and back controls.
var ScreenOrder = []Screen{
	ScreenHome,
	ScreenCart,
	ScreenPayment,
	ScreenAuth,
	ScreenTipping,
	ScreenReward,
	ScreenCashback,
	ScreenEnd,
}

// Valid reports whether s is a known screen.
func (s Screen) Valid() bool {
	for _, known := range AllScreens {
		if s == known {
			return true
		}
	}
	return false
}

func orderIndex(s Screen) int {
	for i, o := range ScreenOrder {
		if o == s {
			return i
		}
	}
	return -1
}

// Next returns the screen after s in ScreenOrder. The last screen, and any
// screen outside the order, maps to itself.
func Next(s Screen) Screen {
	i := orderIndex(s)
	if i < 0 || i == len(ScreenOrder)-1 {
		return s
	}
	return ScreenOrder[i+1]
}

// Prev returns the screen before s in ScreenOrder. The first screen, and any
// screen outside the order, maps to itself.
func Prev(s Screen) Screen {
	i := orderIndex(s)
	if i <= 0 {
		return s
	}
	return ScreenOrder[i-1]
}
