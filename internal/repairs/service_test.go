package repairs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCreateRepairOrder(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	ctx := context.Background()

	o, err := svc.Create(ctx, "cust-1", "Titan analog watch", "strap broken")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)

	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Titan analog watch", got.ProductDetails)
}

func TestCreateRepairOrder_Validation(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "", "watch", "broken")
	assert.ErrorIs(t, err, ErrCustomerRequired)

	_, err = svc.Create(ctx, "cust-1", "", "broken")
	assert.ErrorIs(t, err, ErrDetailsRequired)
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	ctx := context.Background()

	o, err := svc.Create(ctx, "cust-1", "watch", "broken")
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, o.ID, StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, updated.Status)

	_, err = svc.UpdateStatus(ctx, o.ID, "returned")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "missing", StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusCounts(t *testing.T) {
	svc := NewService(NewLocalStorage(), zaptest.NewLogger(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, "cust-1", "watch", "broken")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "cust-2", "phone", "screen cracked")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, StatusCompleted)
	require.NoError(t, err)

	counts, err := svc.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[StatusPending])
	assert.Equal(t, 0, counts[StatusInProgress])
	assert.Equal(t, 1, counts[StatusCompleted])
}
