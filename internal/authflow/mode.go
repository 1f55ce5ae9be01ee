package authflow

// Mode is the screen mode of the auth page.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

// ParseMode reads the ?mode= value; anything but "signup" is sign-in.
func ParseMode(s string) Mode {
	if s == "signup" {
		return ModeSignUp
	}
	return ModeSignIn
}

func (m Mode) String() string {
	if m == ModeSignUp {
		return "signup"
	}
	return "signin"
}

// Toggle switches between sign-in and sign-up.
func (m Mode) Toggle() Mode {
	if m == ModeSignUp {
		return ModeSignIn
	}
	return ModeSignUp
}

// AllowsReset reports whether the password reset request is offered.
func (m Mode) AllowsReset() bool { return m == ModeSignIn }
