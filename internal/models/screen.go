package models

// Screen enumerates the app surfaces. Exactly one screen is active at a time,
// owned by the workflow service.
type Screen string

const (
	ScreenDashboard  Screen = "dashboard"
	ScreenReview     Screen = "review"
	ScreenHistory    Screen = "history"
	ScreenSettings   Screen = "settings"
	ScreenOnboarding Screen = "onboarding"
)

func (s Screen) Valid() bool {
	switch s {
	case ScreenDashboard, ScreenReview, ScreenHistory, ScreenSettings, ScreenOnboarding:
		return true
	}
	return false
}
