package domain

type CheckoutStep string

const (
	StepContact  CheckoutStep = "contact"
	StepDelivery CheckoutStep = "delivery"
	StepPayment  CheckoutStep = "payment"
	StepSuccess  CheckoutStep = "success"
)

func (s CheckoutStep) IsTerminal() bool {
	return s == StepSuccess
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	return string(s)
}

// CheckoutEvent drives the wizard between steps.
type CheckoutEvent string

const (
	EventNext CheckoutEvent = "next"
	EventBack CheckoutEvent = "back"
)

var checkoutTransitions = map[CheckoutStep]map[CheckoutEvent]CheckoutStep{
	StepContact: {
		EventNext: StepDelivery,
	},
	StepDelivery: {
		EventNext: StepPayment,
		EventBack: StepContact,
	},
	StepPayment: {
		EventNext: StepSuccess,
		EventBack: StepDelivery,
	},
}

// NextStep looks up the transition table. ok is false when the event is not
// allowed from the step; nothing leaves StepSuccess.
func NextStep(from CheckoutStep, event CheckoutEvent) (CheckoutStep, bool) {
	to, ok := checkoutTransitions[from][event]
	return to, ok
}

// IsStepCompleted reports whether step lies behind current in the wizard.
func IsStepCompleted(step, current CheckoutStep) bool {
	switch step {
	case StepContact:
		return current != StepContact
	case StepDelivery:
		return current == StepPayment || current == StepSuccess
	case StepPayment:
		return current == StepSuccess
	default:
		return false
	}
}

// CompletedSteps lists the wizard steps already behind current, in order.
// The client renders them as done in the progress indicator.
func CompletedSteps(current CheckoutStep) []CheckoutStep {
	done := []CheckoutStep{}
	for _, step := range []CheckoutStep{StepContact, StepDelivery, StepPayment} {
		if IsStepCompleted(step, current) {
			done = append(done, step)
		}
	}
	return done
}
