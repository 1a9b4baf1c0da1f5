package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorderStub struct {
	calls []time.Time
	err   error
}

func (r *recorderStub) RecordWorkout(ctx context.Context, date time.Time) (WorkoutDay, error) {
	r.calls = append(r.calls, date)
	if r.err != nil {
		return WorkoutDay{}, r.err
	}
	return WorkoutDay{ID: "workout-1", Date: date}, nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.March, 10, 18, 45, 0, 0, time.UTC)
}

func TestDailyPromptYes(t *testing.T) {
	recorder := &recorderStub{}
	prompt := NewDailyPrompt(recorder, fixedNow)

	require.Equal(t, PromptIdle, prompt.State())
	require.NoError(t, prompt.Begin())
	require.Equal(t, PromptAsking, prompt.State())

	state, err := prompt.Answer(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, PromptRecorded, state)

	require.Len(t, recorder.calls, 1)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), recorder.calls[0])

	require.NoError(t, prompt.Finish())
	assert.Equal(t, PromptIdle, prompt.State())
}

func TestDailyPromptNo(t *testing.T) {
	recorder := &recorderStub{}
	prompt := NewDailyPrompt(recorder, fixedNow)

	require.NoError(t, prompt.Begin())

	state, err := prompt.Answer(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, PromptSkipped, state)
	assert.Empty(t, recorder.calls, "a no answer must never touch the ledger")

	require.NoError(t, prompt.Finish())
}

func TestDailyPromptRetryAfterFailure(t *testing.T) {
	recorder := &recorderStub{err: errors.New("ledger down")}
	prompt := NewDailyPrompt(recorder, fixedNow)

	require.NoError(t, prompt.Begin())

	state, err := prompt.Answer(context.Background(), true)
	require.Error(t, err)
	assert.Equal(t, PromptAsking, state, "a failed write keeps the question open")

	recorder.err = nil
	state, err = prompt.Answer(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, PromptRecorded, state)
	assert.Len(t, recorder.calls, 2)
}

func TestDailyPromptInvalidTransitions(t *testing.T) {
	prompt := NewDailyPrompt(&recorderStub{}, fixedNow)

	_, err := prompt.Answer(context.Background(), true)
	assert.Error(t, err, "answering before Begin is invalid")

	assert.Error(t, prompt.Finish(), "finishing from Idle is invalid")

	require.NoError(t, prompt.Begin())
	assert.Error(t, prompt.Begin(), "beginning twice is invalid")
}
