package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonchef/maintenance-api/internal/models"
)

func TestSparePartStockStatus(t *testing.T) {
	svc, ctx := newTestService(t)

	part, err := svc.CreateSparePart(ctx, models.CreateSparePartRequest{
		Name: "Drive belt", InternalReference: "BLT-100",
		StockCurrent: 2, StockMin: 2, StockMax: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StockLow, part.Status)

	part, err = svc.UpdateSparePart(ctx, part.ID, models.CreateSparePartRequest{
		Name: "Drive belt", InternalReference: "BLT-100",
		StockCurrent: 5, StockMin: 2, StockMax: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StockNormal, part.Status)
}

func TestPartRequestResolution(t *testing.T) {
	svc, ctx := newTestService(t)
	admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
	tech := seedUser(t, svc, ctx, "Tech", models.RoleTechnician)

	part, err := svc.CreateSparePart(ctx, models.CreateSparePartRequest{
		Name: "Seal kit", InternalReference: "SK-7",
		StockCurrent: 8, StockMin: 1, StockMax: 20,
	})
	require.NoError(t, err)

	request, err := svc.CreatePartRequest(ctx, tech, models.CreatePartRequestRequest{
		SparePartID: part.ID, Quantity: 3, Reason: "pump rebuild",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, request.Status)
	assert.Equal(t, models.UrgencyMedium, request.Urgency)
	assert.Equal(t, "Seal kit", request.SparePartName)

	t.Run("delivery decrements stock", func(t *testing.T) {
		resolved, err := svc.ResolvePartRequest(ctx, admin, request.ID, models.RequestDelivered)
		require.NoError(t, err)
		assert.Equal(t, models.RequestDelivered, resolved.Status)
		assert.Equal(t, admin.ID, resolved.ResolvedBy)
		assert.NotEmpty(t, resolved.ResolvedAt)

		part, err := svc.GetSparePart(ctx, part.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, part.StockCurrent)
	})

	t.Run("resolving twice conflicts", func(t *testing.T) {
		_, err := svc.ResolvePartRequest(ctx, admin, request.ID, models.RequestApproved)
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown resolution status", func(t *testing.T) {
		_, err := svc.ResolvePartRequest(ctx, admin, request.ID, "misplaced")
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("unknown part", func(t *testing.T) {
		_, err := svc.CreatePartRequest(ctx, tech, models.CreatePartRequestRequest{
			SparePartID: "missing", Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
