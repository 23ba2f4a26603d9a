// Copyright 2024 Bonchef Industrial
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/bonchef/maintenance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Mongo wraps a connected client plus the typed collection handles.
type Mongo struct {
	client *mongo.Client
	Store  *Store
}

// NewMongo connects, pings and builds the collection handles. Collection
// names follow the documents, one collection per kind.
func NewMongo(ctx context.Context, uri string, database string) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(connectCtx, nil); err != nil {
		return nil, err
	}

	db := client.Database(database)
	m := &Mongo{
		client: client,
		Store: &Store{
			Users:              &mongoCollection[models.User]{db.Collection("users")},
			Departments:        &mongoCollection[models.Department]{db.Collection("departments")},
			ProductionLines:    &mongoCollection[models.ProductionLine]{db.Collection("production_lines")},
			Machines:           &mongoCollection[models.Machine]{db.Collection("machines")},
			Stops:              &mongoCollection[models.Stop]{db.Collection("stops")},
			LineStarts:         &mongoCollection[models.LineStart]{db.Collection("line_starts")},
			WorkOrders:         &mongoCollection[models.WorkOrder]{db.Collection("work_orders")},
			WorkOrderHistory:   &mongoCollection[models.HistoryEntry]{db.Collection("work_order_history")},
			ChecklistTemplates: &mongoCollection[models.ChecklistTemplate]{db.Collection("checklist_templates")},
			SpareParts:         &mongoCollection[models.SparePart]{db.Collection("spare_parts")},
			SparePartRequests:  &mongoCollection[models.SparePartRequestDoc]{db.Collection("spare_part_requests")},
		},
	}
	zap.S().Infof("Connected to document store %s", database)
	return m, nil
}

// Ping checks connectivity, for the readiness probe.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoCollection[T any] struct {
	coll *mongo.Collection
}

func (c *mongoCollection[T]) Find(ctx context.Context, filter bson.M, opts ...FindOptions) ([]T, error) {
	findOpts := options.Find()
	if len(opts) > 0 {
		o := opts[0]
		if o.SortField != "" {
			order := 1
			if o.SortDesc {
				order = -1
			}
			findOpts.SetSort(bson.D{{Key: o.SortField, Value: order}})
		}
		if o.Limit > 0 {
			findOpts.SetLimit(o.Limit)
		}
	}
	cursor, err := c.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err = cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *mongoCollection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNoDocument
	}
	return doc, err
}

func (c *mongoCollection[T]) Insert(ctx context.Context, doc T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

func (c *mongoCollection[T]) Update(ctx context.Context, filter bson.M, patch bson.M) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, filter, patch)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *mongoCollection[T]) Delete(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *mongoCollection[T]) Push(ctx context.Context, filter bson.M, field string, value any) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *mongoCollection[T]) Pull(ctx context.Context, filter bson.M, field string, match bson.M) (int64, error) {
	res, err := c.coll.UpdateOne(ctx, filter, bson.M{"$pull": bson.M{field: match}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *mongoCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	return c.coll.CountDocuments(ctx, filter)
}
