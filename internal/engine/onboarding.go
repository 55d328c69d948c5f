package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/investbot-app/investbot/internal/common"
	"github.com/investbot-app/investbot/internal/model"
)

// onboardingTriggers are the keywords that open a registration session
// for an unknown sender. Matching is case-insensitive substring.
var onboardingTriggers = []string{"cadastr", "registr", "começar", "oi", "olá"}

func matchesOnboardingTrigger(text string) bool {
	lowered := strings.ToLower(text)
	for _, trigger := range onboardingTriggers {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// advanceOnboarding drives the registration state machine one step and
// returns the prompt for the user's next input.
func (e *Engine) advanceOnboarding(ctx context.Context, sess *model.OnboardingSession, text string) string {
	switch sess.Step {
	case model.StepStart:
		sess.Step = model.StepAwaitingName
		e.sessions.Put(sess)
		return replyWelcome

	case model.StepAwaitingName:
		sess.Name = text
		sess.Step = model.StepAwaitingEmail
		e.sessions.Put(sess)
		return fmt.Sprintf("📧 Perfeito, %s!\n\nAgora me informe seu *e-mail*:", text)

	case model.StepAwaitingEmail:
		if !emailPattern.MatchString(text) {
			return "❌ E-mail inválido. Por favor, digite um e-mail válido:"
		}

		callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
		defer cancel()

		user := &model.User{
			ID:       uuid.NewString(),
			Phone:    sess.Phone,
			Name:     sess.Name,
			Email:    text,
			IsActive: true,
		}
		if _, err := e.store.CreateUser(callCtx, user); err != nil {
			common.LogError(err, "User creation failed", common.Fields{"phone": sess.Phone})
			return replyApology
		}

		e.sessions.Delete(sess.Phone)
		return replyRegistrationComplete

	default:
		// Corrupted session: discard it and restart the flow.
		e.sessions.Delete(sess.Phone)
		return "Vamos recomeçar o cadastro. Digite *\"Quero me cadastrar\"*"
	}
}
