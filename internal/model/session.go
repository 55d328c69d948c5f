package model

import "time"

// OnboardingStep enumerates the stages of the registration conversation.
type OnboardingStep string

const (
	// StepStart is the initial state before any prompt was sent.
	StepStart OnboardingStep = "start"
	// StepAwaitingName means the next inbound message is the user's name.
	StepAwaitingName OnboardingStep = "awaiting_name"
	// StepAwaitingEmail means the next inbound message is the user's email.
	StepAwaitingEmail OnboardingStep = "awaiting_email"
	// StepComplete means registration finished; the session is discarded.
	StepComplete OnboardingStep = "complete"
)

// OnboardingSession holds in-flight registration progress for one phone
// number. Sessions live only in memory; an engine restart loses them.
type OnboardingSession struct {
	UpdatedAt time.Time
	Phone     string
	Step      OnboardingStep
	Name      string
	Email     string
}
