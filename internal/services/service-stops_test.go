package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonchef/maintenance-api/internal/models"
)

func TestCreateStop(t *testing.T) {
	t.Run("derives duration", func(t *testing.T) {
		svc, ctx := newTestService(t)
		user := seedUser(t, svc, ctx, "Manager", models.RoleLineManager)
		machine := seedMachine(t, svc, ctx)

		stop, err := svc.CreateStop(ctx, user, models.StopRequest{
			MachineID: machine.ID,
			StopType:  models.StopBreakdown,
			Reason:    "belt snapped",
			StartTime: "2024-04-01T08:00:00Z",
			EndTime:   "2024-04-01T08:45:00Z",
		})
		require.NoError(t, err)
		require.NotNil(t, stop.DurationMinutes)
		assert.Equal(t, 45, *stop.DurationMinutes)
		assert.Equal(t, machine.Name, stop.MachineName)
	})

	t.Run("open stop has no duration", func(t *testing.T) {
		svc, ctx := newTestService(t)
		user := seedUser(t, svc, ctx, "Manager", models.RoleLineManager)
		machine := seedMachine(t, svc, ctx)

		stop, err := svc.CreateStop(ctx, user, models.StopRequest{
			MachineID: machine.ID,
			StopType:  models.StopQuality,
			Reason:    "reject rate spike",
			StartTime: "2024-04-01T08:00:00Z",
		})
		require.NoError(t, err)
		assert.Nil(t, stop.DurationMinutes)
	})

	t.Run("unparsable timestamps are lossy", func(t *testing.T) {
		svc, ctx := newTestService(t)
		user := seedUser(t, svc, ctx, "Manager", models.RoleLineManager)
		machine := seedMachine(t, svc, ctx)

		stop, err := svc.CreateStop(ctx, user, models.StopRequest{
			MachineID: machine.ID,
			StopType:  models.StopOther,
			Reason:    "unknown",
			StartTime: "yesterday",
			EndTime:   "today",
		})
		require.NoError(t, err)
		assert.Nil(t, stop.DurationMinutes)
	})
}

func TestUpdateStopClosesIt(t *testing.T) {
	svc, ctx := newTestService(t)
	user := seedUser(t, svc, ctx, "Manager", models.RoleLineManager)
	machine := seedMachine(t, svc, ctx)

	stop, err := svc.CreateStop(ctx, user, models.StopRequest{
		MachineID: machine.ID,
		StopType:  models.StopMaintenance,
		Reason:    "planned service",
		StartTime: "2024-04-01T10:00:00Z",
	})
	require.NoError(t, err)
	require.Nil(t, stop.DurationMinutes)

	end := "2024-04-01T11:30:00Z"
	updated, err := svc.UpdateStop(ctx, stop.ID, models.StopUpdate{EndTime: &end})
	require.NoError(t, err)
	require.NotNil(t, updated.DurationMinutes)
	assert.Equal(t, 90, *updated.DurationMinutes)
}
