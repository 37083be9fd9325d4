// Package session holds the lifecycle of one analysis attempt: the current UI
// state, the dispatcher that moves between states, and the values derived
// from a result for display.
package session

import (
	"fmt"
	"log"

	"github.com/csheth/commentpulse/internal/sentiment"
)

// Kind tags the active member of State.
type Kind int

const (
	KindIdle Kind = iota
	KindLoading
	KindError
	KindResults
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindResults:
		return "results"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is a tagged value. Message is set only for KindError and Result only
// for KindResults; build states with the constructors below.
type State struct {
	Kind    Kind
	Message string
	Result  sentiment.Result
}

func Idle() State {
	return State{Kind: KindIdle}
}

func Loading() State {
	return State{Kind: KindLoading}
}

func Failed(message string) State {
	return State{Kind: KindError, Message: message}
}

func Succeeded(result sentiment.Result) State {
	return State{Kind: KindResults, Result: result}
}

func (s State) String() string {
	switch s.Kind {
	case KindError:
		return fmt.Sprintf("error(%q)", s.Message)
	case KindResults:
		return fmt.Sprintf("results(+%d/-%d)", s.Result.Positive, s.Result.Negative)
	default:
		return s.Kind.String()
	}
}

// Observer is notified after every state assignment.
type Observer interface {
	StateChanged(prev, next State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(prev, next State)

func (f ObserverFunc) StateChanged(prev, next State) {
	f(prev, next)
}

// Controller is the single owner of the current State. It performs no
// transition validation: any state may follow any other.
type Controller struct {
	current       State
	submitEnabled bool
	observers     []Observer
	// Verbose logs every transition.
	Verbose bool
}

// NewController starts in Idle with the submit control enabled.
func NewController(observers ...Observer) *Controller {
	return &Controller{
		current:       Idle(),
		submitEnabled: true,
		observers:     append([]Observer(nil), observers...),
	}
}

// Observe registers o after any existing observers.
func (c *Controller) Observe(o Observer) {
	c.observers = append(c.observers, o)
}

// SetState replaces the current state, flips the submit flag, and then
// notifies observers in registration order.
func (c *Controller) SetState(next State) {
	prev := c.current
	c.current = next
	c.submitEnabled = next.Kind != KindLoading
	if c.Verbose {
		log.Printf("[state] %s -> %s", prev, next)
	}
	for _, o := range c.observers {
		o.StateChanged(prev, next)
	}
}

func (c *Controller) Current() State {
	return c.current
}

// SubmitEnabled is false exactly while a request is in flight.
func (c *Controller) SubmitEnabled() bool {
	return c.submitEnabled
}
