package parcel_test

import (
	"testing"

	"dropoff/internal/core/domain/model/parcel"
	"dropoff/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePhase(t *testing.T) {
	for _, p := range []parcel.Phase{
		parcel.Ready, parcel.Processing, parcel.Delivered,
		parcel.Failed, parcel.Unreachable, parcel.PickedUp,
	} {
		t.Run(p.String(), func(t *testing.T) {
			got, err := parcel.ParsePhase(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		})
	}

	_, err := parcel.ParsePhase("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = parcel.ParsePhase("Lost")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPhase_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    parcel.Phase
		apply   func(parcel.Phase) (parcel.Phase, error)
		want    parcel.Phase
		allowed bool
	}{
		{"start from ready", parcel.Ready, parcel.Phase.Start, parcel.Processing, true},
		{"restart after failure", parcel.Failed, parcel.Phase.Start, parcel.Processing, true},
		{"restart after unreachable", parcel.Unreachable, parcel.Phase.Start, parcel.Processing, true},
		{"no double start", parcel.Processing, parcel.Phase.Start, parcel.Unknown, false},
		{"no start after delivery", parcel.Delivered, parcel.Phase.Start, parcel.Unknown, false},
		{"deliver", parcel.Processing, parcel.Phase.Deliver, parcel.Delivered, true},
		{"no deliver twice", parcel.Delivered, parcel.Phase.Deliver, parcel.Unknown, false},
		{"fail", parcel.Processing, parcel.Phase.Fail, parcel.Failed, true},
		{"no fail from ready", parcel.Ready, parcel.Phase.Fail, parcel.Unknown, false},
		{"give up", parcel.Processing, parcel.Phase.GiveUp, parcel.Unreachable, true},
		{"abort", parcel.Processing, parcel.Phase.Abort, parcel.Ready, true},
		{"no abort when delivered", parcel.Delivered, parcel.Phase.Abort, parcel.Unknown, false},
		{"pick up delivered", parcel.Delivered, parcel.Phase.PickUp, parcel.PickedUp, true},
		{"pick up after reset", parcel.Ready, parcel.Phase.PickUp, parcel.PickedUp, true},
		{"no pick up in flight", parcel.Processing, parcel.Phase.PickUp, parcel.Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.apply(tt.from)
			if !tt.allowed {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Contains(t, err.Error(), "phase transition is not allowed")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhase_IsTerminal(t *testing.T) {
	assert.False(t, parcel.Ready.IsTerminal())
	assert.False(t, parcel.Processing.IsTerminal())
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.True(t, parcel.Failed.IsTerminal())
	assert.True(t, parcel.Unreachable.IsTerminal())
}
