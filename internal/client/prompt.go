package client

import (
	"context"
	"fmt"
	"time"
)

// PromptState identifies a position in the daily prompt workflow.
type PromptState int

const (
	// PromptIdle means no prompt is pending.
	PromptIdle PromptState = iota
	// PromptAsking means the daily question is being presented.
	PromptAsking
	// PromptRecorded means today's workout was confirmed and written to the ledger.
	PromptRecorded
	// PromptSkipped means the user answered no; nothing was written.
	PromptSkipped
)

func (s PromptState) String() string {
	switch s {
	case PromptIdle:
		return "idle"
	case PromptAsking:
		return "asking"
	case PromptRecorded:
		return "recorded"
	case PromptSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// workoutRecorder is the slice of the API client the prompt needs.
type workoutRecorder interface {
	RecordWorkout(ctx context.Context, date time.Time) (WorkoutDay, error)
}

// DailyPrompt drives the did-you-work-out-today workflow as an explicit state
// machine, independent of any presentation layer:
//
//	Idle -> Asking -> {Recorded, Skipped} -> Idle
//
// A "yes" answer writes today's ledger entry and only transitions once the
// server has acknowledged; a failed write leaves the machine in Asking so the
// answer can be retried. A "no" answer never touches the ledger, in
// particular it never deletes an entry recorded earlier the same day.
type DailyPrompt struct {
	recorder workoutRecorder
	now      func() time.Time
	state    PromptState
}

// NewDailyPrompt constructs a prompt in the Idle state.
func NewDailyPrompt(recorder workoutRecorder, now func() time.Time) *DailyPrompt {
	if now == nil {
		now = time.Now
	}
	return &DailyPrompt{recorder: recorder, now: now, state: PromptIdle}
}

// State returns the current workflow state.
func (p *DailyPrompt) State() PromptState {
	return p.state
}

// Begin presents the daily question. Only valid from Idle.
func (p *DailyPrompt) Begin() error {
	if p.state != PromptIdle {
		return fmt.Errorf("cannot begin prompt from state %s", p.state)
	}
	p.state = PromptAsking
	return nil
}

// Answer resolves the pending question. Only valid from Asking. With yes the
// entry for today is recorded before the transition is finalized; recording
// an already-recorded day succeeds without duplicating, so re-answering yes
// is safe.
func (p *DailyPrompt) Answer(ctx context.Context, yes bool) (PromptState, error) {
	if p.state != PromptAsking {
		return p.state, fmt.Errorf("cannot answer prompt from state %s", p.state)
	}

	if !yes {
		p.state = PromptSkipped
		return p.state, nil
	}

	today := p.now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if _, err := p.recorder.RecordWorkout(ctx, today); err != nil {
		// Stay in Asking; the user keeps their context and can retry.
		return p.state, err
	}

	p.state = PromptRecorded
	return p.state, nil
}

// Finish leaves the outcome screen and returns to Idle. Only valid from
// Recorded or Skipped.
func (p *DailyPrompt) Finish() error {
	if p.state != PromptRecorded && p.state != PromptSkipped {
		return fmt.Errorf("cannot finish prompt from state %s", p.state)
	}
	p.state = PromptIdle
	return nil
}
