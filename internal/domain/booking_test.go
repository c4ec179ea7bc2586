package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, BookingPending.CanTransitionTo(BookingConfirmed))
	assert.True(t, BookingPending.CanTransitionTo(BookingCanceled))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingInProgress))
	assert.True(t, BookingConfirmed.CanTransitionTo(BookingCompleted))
	assert.True(t, BookingInProgress.CanTransitionTo(BookingCompleted))
	assert.True(t, BookingCompleted.CanTransitionTo(BookingRefunded))

	assert.False(t, BookingPending.CanTransitionTo(BookingCompleted))
	assert.False(t, BookingPending.CanTransitionTo(BookingInProgress))
	assert.False(t, BookingCompleted.CanTransitionTo(BookingCanceled))
	assert.False(t, BookingCanceled.CanTransitionTo(BookingConfirmed))
	assert.False(t, BookingRefunded.CanTransitionTo(BookingCompleted))
}

func TestTerminal(t *testing.T) {
	assert.True(t, BookingCanceled.Terminal())
	assert.True(t, BookingRefunded.Terminal())
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingCompleted.Terminal())
}

func TestTransitionSources_FixedOrder(t *testing.T) {
	assert.Equal(t,
		[]BookingStatus{BookingConfirmed, BookingInProgress},
		TransitionSources(BookingCompleted))
	assert.Equal(t,
		[]BookingStatus{BookingPending, BookingConfirmed, BookingInProgress},
		TransitionSources(BookingCanceled))
	assert.Equal(t,
		[]BookingStatus{BookingCompleted},
		TransitionSources(BookingRefunded))
	assert.Empty(t, TransitionSources(BookingPending))
}

func TestStatusValid(t *testing.T) {
	assert.True(t, BookingInProgress.Valid())
	assert.False(t, BookingStatus("archived").Valid())
}

func TestIsParticipant(t *testing.T) {
	b := Booking{StudentID: 1, TutorID: 2}
	assert.True(t, b.IsParticipant(1))
	assert.True(t, b.IsParticipant(2))
	assert.False(t, b.IsParticipant(3))
}
