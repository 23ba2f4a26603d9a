package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
	"github.com/bonchef/maintenance-api/internal/store"
)

func newTestService(t *testing.T) (*Service, context.Context) {
	t.Helper()
	return New(store.NewMemory()), context.Background()
}

func seedUser(t *testing.T, svc *Service, ctx context.Context, name, role string) models.User {
	t.Helper()
	user := models.User{
		ID:        newID(),
		Email:     strings.ToLower(name) + "@bonchef.example",
		Name:      name,
		Role:      role,
		CreatedAt: nowISO(),
	}
	require.NoError(t, svc.store.Users.Insert(ctx, user))
	return user
}

func seedMachine(t *testing.T, svc *Service, ctx context.Context) models.MachineView {
	t.Helper()
	dept, err := svc.CreateDepartment(ctx, models.DepartmentRequest{Name: "Packaging"})
	require.NoError(t, err)
	machine, err := svc.CreateMachine(ctx, models.MachineRequest{
		Name:         "Flow wrapper",
		Code:         "FW-01",
		DepartmentID: dept.ID,
	})
	require.NoError(t, err)
	return machine
}

func TestCreateWorkOrder(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		tech := seedUser(t, svc, ctx, "Tech", models.RoleTechnician)
		machine := seedMachine(t, svc, ctx)

		created, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title:          "Grease bearings",
			Description:    "Quarterly lubrication",
			Type:           models.OrderPreventive,
			Priority:       models.PriorityHigh,
			MachineID:      machine.ID,
			AssignedTo:     tech.ID,
			ScheduledDate:  "2024-03-01",
			Recurrence:     models.RecurrenceQuarterly,
			EstimatedHours: 1.5,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, created.Status)
		assert.Empty(t, created.ClosedDate)
		assert.Nil(t, created.History)

		fetched, err := svc.GetWorkOrder(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.WorkOrder, fetched.WorkOrder)
		assert.Equal(t, machine.Name, fetched.MachineName)
		assert.Equal(t, "Packaging", fetched.DepartmentName)
		assert.Equal(t, tech.Name, fetched.AssignedToName)
		require.Len(t, fetched.History, 1)
		assert.Equal(t, models.ActionCreated, fetched.History[0].Action)
	})

	t.Run("missing machine writes nothing", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)

		_, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title:     "Ghost order",
			Type:      models.OrderCorrective,
			MachineID: "no-such-machine",
		})
		assert.ErrorIs(t, err, ErrNotFound)

		orders, err := svc.store.WorkOrders.Count(ctx, bson.M{})
		require.NoError(t, err)
		assert.Zero(t, orders)
		history, err := svc.store.WorkOrderHistory.Count(ctx, bson.M{})
		require.NoError(t, err)
		assert.Zero(t, history)
	})

	t.Run("type partitioning", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		machine := seedMachine(t, svc, ctx)

		corrective, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title:               "Replace belt",
			Type:                models.OrderCorrective,
			MachineID:           machine.ID,
			FailureCause:        "wear",
			Recurrence:          models.RecurrenceMonthly,
			TechnicianSignature: "should be dropped",
		})
		require.NoError(t, err)
		assert.Equal(t, "wear", corrective.FailureCause)
		assert.Empty(t, corrective.Recurrence)
		assert.Empty(t, corrective.TechnicianSignature)

		preventive, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title:      "Inspect guards",
			Type:       models.OrderPreventive,
			MachineID:  machine.ID,
			PartNumber: "should be dropped",
			Recurrence: models.RecurrenceWeekly,
		})
		require.NoError(t, err)
		assert.Empty(t, preventive.PartNumber)
		assert.Equal(t, models.RecurrenceWeekly, preventive.Recurrence)
		assert.Equal(t, models.PriorityMedium, preventive.Priority)
	})
}

func TestUpdateWorkOrder(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("closed date follows completed status", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		machine := seedMachine(t, svc, ctx)
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Fix jam", Type: models.OrderCorrective, MachineID: machine.ID,
		})
		require.NoError(t, err)

		updated, err := svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Status: str(models.StatusCompleted),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.NotEmpty(t, updated.ClosedDate)

		reopened, err := svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Status: str(models.StatusInProgress),
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, reopened.Status)
		assert.Empty(t, reopened.ClosedDate)
	})

	t.Run("assigned technician fields are restricted", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		tech := seedUser(t, svc, ctx, "Tech", models.RoleTechnician)
		machine := seedMachine(t, svc, ctx)
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Weekly check", Type: models.OrderPreventive, MachineID: machine.ID,
			AssignedTo: tech.ID, Priority: models.PriorityLow, ScheduledDate: "2024-05-01",
		})
		require.NoError(t, err)

		updated, err := svc.UpdateWorkOrder(ctx, tech, order.ID, models.WorkOrderUpdate{
			Status:        str(models.StatusCompleted),
			Priority:      str(models.PriorityCritical),
			AssignedTo:    str(admin.ID),
			ScheduledDate: str("2030-01-01"),
			Notes:         str("done by hand"),
			Description:   str("adjusted tension"),
		})
		require.NoError(t, err)

		assert.Equal(t, models.StatusPending, updated.Status)
		assert.Equal(t, models.PriorityLow, updated.Priority)
		assert.Equal(t, tech.ID, updated.AssignedTo)
		assert.Equal(t, "2024-05-01", updated.ScheduledDate)
		assert.Empty(t, updated.ClosedDate)
		assert.Equal(t, "done by hand", updated.Notes)
		assert.Equal(t, "adjusted tension", updated.Description)
	})

	t.Run("one history entry per changed field", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		machine := seedMachine(t, svc, ctx)
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Swap filter", Type: models.OrderCorrective, MachineID: machine.ID,
			Priority: models.PriorityMedium,
		})
		require.NoError(t, err)

		updated, err := svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Title:    str("Swap oil filter"),
			Priority: str(models.PriorityHigh),
			Notes:    str(""), // unchanged, no entry
		})
		require.NoError(t, err)

		var changes []models.HistoryEntry
		for _, entry := range updated.History {
			if entry.Action == models.ActionUpdated {
				changes = append(changes, entry)
			}
		}
		require.Len(t, changes, 2)
		byField := map[string]models.HistoryEntry{}
		for _, entry := range changes {
			byField[entry.FieldChanged] = entry
		}
		assert.Equal(t, "Swap filter", byField["title"].OldValue)
		assert.Equal(t, "Swap oil filter", byField["title"].NewValue)
		assert.Equal(t, models.PriorityMedium, byField["priority"].OldValue)
		assert.Equal(t, models.PriorityHigh, byField["priority"].NewValue)
	})

	t.Run("missing order", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		_, err := svc.UpdateWorkOrder(ctx, admin, "nope", models.WorkOrderUpdate{Title: str("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRecurrence(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("monthly completion spawns successor 30 days out", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		tech := seedUser(t, svc, ctx, "Tech", models.RoleTechnician)
		machine := seedMachine(t, svc, ctx)
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Monthly service", Description: "check all", Type: models.OrderPreventive,
			MachineID: machine.ID, AssignedTo: tech.ID,
			ScheduledDate: "2024-01-15", Recurrence: models.RecurrenceMonthly,
			TechnicianSignature: "", EstimatedHours: 2,
		})
		require.NoError(t, err)

		_, err = svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Status:              str(models.StatusCompleted),
			Description:         str("all good"),
			TechnicianSignature: str("T. Ech"),
		})
		require.NoError(t, err)

		orders, err := svc.store.WorkOrders.Find(ctx, bson.M{"id": bson.M{"$ne": order.ID}})
		require.NoError(t, err)
		require.Len(t, orders, 1)

		next := orders[0]
		assert.Equal(t, "Monthly service", next.Title)
		assert.Equal(t, models.OrderPreventive, next.Type)
		assert.True(t, strings.HasPrefix(next.ScheduledDate, "2024-02-14"), next.ScheduledDate)
		assert.Empty(t, next.Description)
		assert.Empty(t, next.TechnicianSignature)
		assert.Equal(t, tech.ID, next.AssignedTo)
		assert.Equal(t, models.RecurrenceMonthly, next.Recurrence)
		assert.Equal(t, models.StatusPending, next.Status)
		assert.InDelta(t, 2, next.EstimatedHours, 0.001)
		require.NotEmpty(t, next.Checklist)
		for _, item := range next.Checklist {
			assert.False(t, item.Checked)
			assert.NotEmpty(t, item.ID)
		}
	})

	t.Run("corrective completion spawns nothing", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		machine := seedMachine(t, svc, ctx)
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Repair", Type: models.OrderCorrective, MachineID: machine.ID,
		})
		require.NoError(t, err)

		_, err = svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Status: str(models.StatusCompleted),
		})
		require.NoError(t, err)

		count, err := svc.store.WorkOrders.Count(ctx, bson.M{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("preventive without recurrence spawns nothing", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		machine := seedMachine(t, svc, ctx)
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "One-off check", Type: models.OrderPreventive, MachineID: machine.ID,
			ScheduledDate: "2024-01-15",
		})
		require.NoError(t, err)

		_, err = svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Status: str(models.StatusCompleted),
		})
		require.NoError(t, err)

		count, err := svc.store.WorkOrders.Count(ctx, bson.M{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("checklist comes from default template", func(t *testing.T) {
		svc, ctx := newTestService(t)
		admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
		machine := seedMachine(t, svc, ctx)

		tpl, err := svc.CreateChecklistTemplate(ctx, models.ChecklistTemplateRequest{
			Name: "Line A template",
			Items: []struct {
				Name       string `json:"name" binding:"required"`
				IsRequired bool   `json:"is_required"`
				Order      int    `json:"order"`
			}{
				{Name: "Lockout applied", IsRequired: true},
				{Name: "Guards refitted", IsRequired: true},
				{Name: "Test run", IsRequired: false},
			},
		})
		require.NoError(t, err)
		_, err = svc.SetDefaultChecklistTemplate(ctx, tpl.ID)
		require.NoError(t, err)

		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: "Daily clean", Type: models.OrderPreventive, MachineID: machine.ID,
			ScheduledDate: "2024-06-01", Recurrence: models.RecurrenceDaily,
		})
		require.NoError(t, err)

		_, err = svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
			Status: str(models.StatusCompleted),
		})
		require.NoError(t, err)

		orders, err := svc.store.WorkOrders.Find(ctx, bson.M{"id": bson.M{"$ne": order.ID}})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Len(t, orders[0].Checklist, 3)
		assert.Equal(t, "Lockout applied", orders[0].Checklist[0].Name)
		assert.True(t, strings.HasPrefix(orders[0].ScheduledDate, "2024-06-02"), orders[0].ScheduledDate)
	})
}

func TestDeleteWorkOrderCascadesHistory(t *testing.T) {
	svc, ctx := newTestService(t)
	admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
	machine := seedMachine(t, svc, ctx)
	order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
		Title: "Short-lived", Type: models.OrderCorrective, MachineID: machine.ID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkOrder(ctx, order.ID))

	history, err := svc.store.WorkOrderHistory.Count(ctx, bson.M{"work_order_id": order.ID})
	require.NoError(t, err)
	assert.Zero(t, history)

	assert.ErrorIs(t, svc.DeleteWorkOrder(ctx, order.ID), ErrNotFound)
}

func TestWorkOrderAttachments(t *testing.T) {
	svc, ctx := newTestService(t)
	admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
	machine := seedMachine(t, svc, ctx)
	order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
		Title: "Documented repair", Type: models.OrderCorrective, MachineID: machine.ID,
	})
	require.NoError(t, err)

	info, err := svc.AddWorkOrderAttachment(ctx, admin, order.ID, models.Attachment{
		Filename: "photo.jpg",
		FileType: "image/jpeg",
		FileSize: 3,
		Data:     "aGV5",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, admin.ID, info.UploadedBy)

	att, err := svc.GetWorkOrderAttachment(ctx, order.ID, info.ID)
	require.NoError(t, err)
	assert.Equal(t, "aGV5", att.Data)

	fetched, err := svc.GetWorkOrder(ctx, order.ID)
	require.NoError(t, err)
	var actions []string
	for _, entry := range fetched.History {
		actions = append(actions, entry.Action)
	}
	assert.Contains(t, actions, models.ActionAttachmentAdded)

	require.NoError(t, svc.RemoveWorkOrderAttachment(ctx, admin, order.ID, info.ID))
	assert.ErrorIs(t, svc.RemoveWorkOrderAttachment(ctx, admin, order.ID, info.ID), ErrNotFound)

	_, err = svc.AddWorkOrderAttachment(ctx, admin, "missing", models.Attachment{Filename: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMyWorkOrders(t *testing.T) {
	str := func(s string) *string { return &s }

	svc, ctx := newTestService(t)
	admin := seedUser(t, svc, ctx, "Admin", models.RoleAdmin)
	tech := seedUser(t, svc, ctx, "Tech", models.RoleTechnician)
	machine := seedMachine(t, svc, ctx)

	for _, tc := range []struct {
		title    string
		typ      string
		complete bool
	}{
		{"P1", models.OrderPreventive, false},
		{"C1", models.OrderCorrective, false},
		{"C2", models.OrderCorrective, true},
	} {
		order, err := svc.CreateWorkOrder(ctx, admin, models.WorkOrderCreateRequest{
			Title: tc.title, Type: tc.typ, MachineID: machine.ID, AssignedTo: tech.ID,
		})
		require.NoError(t, err)
		if tc.complete {
			_, err = svc.UpdateWorkOrder(ctx, admin, order.ID, models.WorkOrderUpdate{
				Status: str(models.StatusCompleted),
			})
			require.NoError(t, err)
		}
	}

	mine, err := svc.MyWorkOrders(ctx, tech)
	require.NoError(t, err)
	assert.Len(t, mine.Preventive, 1)
	assert.Len(t, mine.Corrective, 1)
	assert.Len(t, mine.Completed, 1)
	assert.Equal(t, 3, mine.Summary.Total)
	assert.Equal(t, 2, mine.Summary.Pending)
	assert.Equal(t, 1, mine.Summary.Completed)
}
