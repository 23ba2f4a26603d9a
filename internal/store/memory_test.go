package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bonchef/maintenance-api/internal/models"
)

func seedOrders(t *testing.T, st *Store) {
	t.Helper()
	ctx := context.Background()
	for _, o := range []models.WorkOrder{
		{ID: "a", Title: "A", Status: "pending", Priority: "low", EstimatedHours: 1, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "b", Title: "B", Status: "completed", Priority: "high", EstimatedHours: 2, CreatedAt: "2024-01-02T00:00:00Z", ClosedDate: "2024-01-03T00:00:00Z"},
		{ID: "c", Title: "C", Status: "pending", Priority: "high", EstimatedHours: 3, CreatedAt: "2024-01-03T00:00:00Z"},
	} {
		require.NoError(t, st.WorkOrders.Insert(ctx, o))
	}
}

func TestMemoryFilters(t *testing.T) {
	st := NewMemory()
	seedOrders(t, st)
	ctx := context.Background()

	t.Run("equality", func(t *testing.T) {
		out, err := st.WorkOrders.Find(ctx, bson.M{"status": "pending"})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("ne", func(t *testing.T) {
		out, err := st.WorkOrders.Find(ctx, bson.M{"status": bson.M{"$ne": "completed"}})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("in", func(t *testing.T) {
		out, err := st.WorkOrders.Find(ctx, bson.M{"id": bson.M{"$in": []string{"a", "c"}}})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("range on strings", func(t *testing.T) {
		out, err := st.WorkOrders.Find(ctx, bson.M{"created_at": bson.M{"$gte": "2024-01-02", "$lte": "2024-01-02T23:59:59Z"}})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "b", out[0].ID)
	})

	t.Run("numeric compare crosses types", func(t *testing.T) {
		out, err := st.WorkOrders.Find(ctx, bson.M{"estimated_hours": bson.M{"$gte": 2}})
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})

	t.Run("sort and limit", func(t *testing.T) {
		out, err := st.WorkOrders.Find(ctx, bson.M{}, FindOptions{SortField: "created_at", SortDesc: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "c", out[0].ID)
		assert.Equal(t, "b", out[1].ID)
	})

	t.Run("find one missing", func(t *testing.T) {
		_, err := st.WorkOrders.FindOne(ctx, bson.M{"id": "zzz"})
		assert.ErrorIs(t, err, ErrNoDocument)
	})
}

func TestMemoryMutations(t *testing.T) {
	ctx := context.Background()

	t.Run("set patch", func(t *testing.T) {
		st := NewMemory()
		seedOrders(t, st)
		matched, err := st.WorkOrders.Update(ctx, bson.M{"id": "a"}, bson.M{"$set": bson.M{"status": "in_progress"}})
		require.NoError(t, err)
		assert.EqualValues(t, 1, matched)

		doc, err := st.WorkOrders.FindOne(ctx, bson.M{"id": "a"})
		require.NoError(t, err)
		assert.Equal(t, "in_progress", doc.Status)
	})

	t.Run("inc patch", func(t *testing.T) {
		st := NewMemory()
		require.NoError(t, st.SpareParts.Insert(ctx, models.SparePart{ID: "p", StockCurrent: 10}))
		_, err := st.SpareParts.Update(ctx, bson.M{"id": "p"}, bson.M{"$inc": bson.M{"stock_current": -4}})
		require.NoError(t, err)
		part, err := st.SpareParts.FindOne(ctx, bson.M{"id": "p"})
		require.NoError(t, err)
		assert.Equal(t, 6, part.StockCurrent)
	})

	t.Run("push and pull", func(t *testing.T) {
		st := NewMemory()
		seedOrders(t, st)
		att := models.Attachment{ID: "att1", Filename: "f.txt"}
		matched, err := st.WorkOrders.Push(ctx, bson.M{"id": "a"}, "attachments", att)
		require.NoError(t, err)
		assert.EqualValues(t, 1, matched)

		doc, err := st.WorkOrders.FindOne(ctx, bson.M{"id": "a"})
		require.NoError(t, err)
		require.Len(t, doc.Attachments, 1)
		assert.Equal(t, "f.txt", doc.Attachments[0].Filename)

		modified, err := st.WorkOrders.Pull(ctx, bson.M{"id": "a"}, "attachments", bson.M{"id": "att1"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, modified)

		modified, err = st.WorkOrders.Pull(ctx, bson.M{"id": "a"}, "attachments", bson.M{"id": "att1"})
		require.NoError(t, err)
		assert.Zero(t, modified)
	})

	t.Run("delete many", func(t *testing.T) {
		st := NewMemory()
		seedOrders(t, st)
		deleted, err := st.WorkOrders.Delete(ctx, bson.M{"status": "pending"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, deleted)

		count, err := st.WorkOrders.Count(ctx, bson.M{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
