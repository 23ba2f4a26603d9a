package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonchef/maintenance-api/internal/models"
)

func TestDepartmentDeleteGuard(t *testing.T) {
	svc, ctx := newTestService(t)

	dept, err := svc.CreateDepartment(ctx, models.DepartmentRequest{Name: "Mixing"})
	require.NoError(t, err)
	machine, err := svc.CreateMachine(ctx, models.MachineRequest{
		Name: "Mixer", Code: "MX-01", DepartmentID: dept.ID,
	})
	require.NoError(t, err)

	err = svc.DeleteDepartment(ctx, dept.ID)
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.DeleteMachine(ctx, machine.ID))
	require.NoError(t, svc.DeleteDepartment(ctx, dept.ID))

	assert.ErrorIs(t, svc.DeleteDepartment(ctx, dept.ID), ErrNotFound)
}

func TestMachineDeleteGuard(t *testing.T) {
	svc, ctx := newTestService(t)
	admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
	machine := seedMachine(t, svc, ctx)

	_, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
		Title: "Pending repair", Type: models.OrderCorrective, MachineID: machine.ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMachine(ctx, machine.ID), ErrConflict)
}

func TestMachineCreateRequiresDepartment(t *testing.T) {
	svc, ctx := newTestService(t)
	_, err := svc.CreateMachine(ctx, models.MachineRequest{
		Name: "Orphan", Code: "OR-01", DepartmentID: "missing",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserGuards(t *testing.T) {
	svc, ctx := newTestService(t)
	admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
	tech := seedUser(t, svc, ctx, "Tech", models.RoleTechnician)
	machine := seedMachine(t, svc, ctx)

	t.Run("self delete refused", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteUser(ctx, admin, admin.ID), ErrConflict)
	})

	t.Run("open assignments block deletion", func(t *testing.T) {
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Open task", Type: models.OrderCorrective, MachineID: machine.ID,
			AssignedTo: tech.ID,
		})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.DeleteUser(ctx, admin, tech.ID), ErrConflict)

		status := models.StatusCompleted
		_, err = svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{Status: &status})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteUser(ctx, admin, tech.ID))
	})
}

func TestProductionLineLifecycle(t *testing.T) {
	svc, ctx := newTestService(t)
	dept, err := svc.CreateDepartment(ctx, models.DepartmentRequest{Name: "Bakery"})
	require.NoError(t, err)

	line, err := svc.CreateProductionLine(ctx, models.ProductionLineRequest{
		Name: "Line 1", Code: "L1", DepartmentID: dept.ID, TargetStartTime: "06:30",
	})
	require.NoError(t, err)
	assert.Equal(t, models.LineActive, line.Status)
	assert.Equal(t, "Bakery", line.DepartmentName)

	toggled, err := svc.ToggleProductionLineStatus(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LineInactive, toggled.Status)

	user := seedUser(t, svc, ctx, "Manager", models.RoleLineManager)
	_, err = svc.CreateLineStart(ctx, user, models.LineStartRequest{
		LineID: line.ID, Date: "2024-04-02", ActualStartTime: "06:30",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProductionLine(ctx, line.ID), ErrConflict)
}
