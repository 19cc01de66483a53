package order_test

import (
	"fmt"
	"testing"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransition_FullTable(t *testing.T) {
	allowed := map[[2]order.Status]bool{
		{order.Pending, order.Confirmed}:   true,
		{order.Pending, order.Cancelled}:   true,
		{order.Confirmed, order.Preparing}: true,
		{order.Confirmed, order.Cancelled}: true,
		{order.Preparing, order.Ready}:     true,
		{order.Preparing, order.Cancelled}: true,
		{order.Ready, order.Shipping}:      true,
		{order.Shipping, order.Delivered}:  true,
	}

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			t.Run(fmt.Sprintf("%s->%s", from, to), func(t *testing.T) {
				err := order.ValidateTransition(from, to)
				if allowed[[2]order.Status{from, to}] {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, "ORDER_011", errs.CodeOf(err))
				assert.Equal(t, errs.KindConflict, errs.KindOf(err))
			})
		}
	}
}

func TestStatus_TerminalStatusesAreFinal(t *testing.T) {
	for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
		assert.True(t, order.IsTerminal(terminal))
		for _, to := range order.AllStatuses() {
			assert.Error(t, order.ValidateTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
	for _, s := range []order.Status{order.Pending, order.Confirmed, order.Preparing, order.Ready, order.Shipping} {
		assert.False(t, order.IsTerminal(s), s.String())
	}
}

func TestStatus_CancelAsymmetry(t *testing.T) {
	tests := []struct {
		status   order.Status
		customer bool
		owner    bool
	}{
		{order.Pending, true, false},
		{order.Confirmed, true, true},
		{order.Preparing, true, true},
		{order.Ready, false, false},
		{order.Shipping, false, false},
		{order.Delivered, false, false},
		{order.Cancelled, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.customer, order.CanCustomerCancel(tt.status))
			assert.Equal(t, tt.owner, order.CanOwnerCancel(tt.status))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range order.AllStatuses() {
		parsed, err := order.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	parsed, err := order.ParseStatus(" shipping ")
	require.NoError(t, err)
	assert.Equal(t, order.Shipping, parsed)

	_, err = order.ParseStatus("LOST")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Validate(t *testing.T) {
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
	assert.Equal(t, "UNKNOWN", order.Status(42).String())
	require.NoError(t, order.Ready.Validate())
}
