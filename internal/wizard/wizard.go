// Package wizard models the four-step reservation flow as an explicit
// finite-state machine. Navigation is strictly linear: forward only when
// the current step's required fields are filled, backward unconditionally,
// no skipping. Going back from the first step leaves the flow entirely.
package wizard

import (
	"errors"

	models "github.com/albarakah/voyages/internal"
)

type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepTravelOptions
	StepSummary
	StepPayment
	StepSubmitting
	StepComplete
)

var (
	ErrStepInvalid = errors.New("current step has missing or invalid fields")
	ErrNoForward   = errors.New("no forward transition from current step")
	ErrNotPayment  = errors.New("can only submit from the payment step")
)

// Form accumulates the wizard input across all four steps.
type Form struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Address         string
	PassportNumber  string
	TravelInsurance bool
	MealPreference  models.MealPreference
	SpecialRequests string
	CardNumber      string
	CardExpiry      string
	CardCvc         string
	CardName        string
}

// forward is the transition table for the linear happy path.
var forward = map[Step]Step{
	StepPersonalInfo:  StepTravelOptions,
	StepTravelOptions: StepSummary,
	StepSummary:       StepPayment,
}

// valid holds the per-step gate predicates.
var valid = map[Step]func(Form) bool{
	StepPersonalInfo: func(f Form) bool {
		return f.FirstName != "" && f.LastName != "" && f.Email != "" &&
			f.Phone != "" && f.Address != "" && f.PassportNumber != ""
	},
	StepTravelOptions: func(f Form) bool {
		return f.MealPreference != ""
	},
	StepSummary: func(Form) bool { return true },
	StepPayment: func(f Form) bool {
		return isDigits(f.CardNumber) && len(f.CardNumber) == 16 &&
			f.CardExpiry != "" &&
			isDigits(f.CardCvc) && len(f.CardCvc) == 3 &&
			f.CardName != ""
	},
}

type Wizard struct {
	step Step
	Form Form
}

// New starts a wizard at the personal-information step with the default
// meal preference preselected.
func New() *Wizard {
	return &Wizard{
		step: StepPersonalInfo,
		Form: Form{MealPreference: models.MealHalal},
	}
}

func (w *Wizard) Step() Step {
	return w.step
}

// CanAdvance reports whether the current step's gate predicate passes.
func (w *Wizard) CanAdvance() bool {
	p, ok := valid[w.step]
	return ok && p(w.Form)
}

// Next moves to the following step if the current one is valid.
func (w *Wizard) Next() error {
	next, ok := forward[w.step]
	if !ok {
		return ErrNoForward
	}
	if !w.CanAdvance() {
		return ErrStepInvalid
	}
	w.step = next
	return nil
}

// Back moves to the previous step. From the first step it returns true:
// the flow is abandoned and control goes back to the catalog. Once
// submission has started there is no way back.
func (w *Wizard) Back() (exited bool) {
	switch w.step {
	case StepPersonalInfo:
		return true
	case StepTravelOptions, StepSummary, StepPayment:
		w.step--
	}
	return false
}

// Submit enters the submitting state; only reachable from a valid
// payment step.
func (w *Wizard) Submit() error {
	if w.step != StepPayment {
		return ErrNotPayment
	}
	if !w.CanAdvance() {
		return ErrStepInvalid
	}
	w.step = StepSubmitting
	return nil
}

// Complete marks the wizard done once the booking orchestration resolved.
func (w *Wizard) Complete() {
	if w.step == StepSubmitting {
		w.step = StepComplete
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
