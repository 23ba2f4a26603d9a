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

	"github.com/bonchef/maintenance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ErrNoDocument is returned by FindOne when nothing matches the filter.
var ErrNoDocument = errors.New("store: no matching document")

// FindOptions control ordering and result size of Find.
type FindOptions struct {
	SortField string
	SortDesc  bool
	Limit     int64
}

// Collection is the per-collection access contract. Filters and patches use
// the bson.M query language; the in-memory implementation understands the
// subset the services use ($eq, $ne, $in, $gte, $lte, $exists; $set, $inc).
type Collection[T any] interface {
	Find(ctx context.Context, filter bson.M, opts ...FindOptions) ([]T, error)
	FindOne(ctx context.Context, filter bson.M) (T, error)
	Insert(ctx context.Context, doc T) error
	Update(ctx context.Context, filter bson.M, patch bson.M) (matched int64, err error)
	Delete(ctx context.Context, filter bson.M) (deleted int64, err error)
	Push(ctx context.Context, filter bson.M, field string, value any) (matched int64, err error)
	Pull(ctx context.Context, filter bson.M, field string, match bson.M) (modified int64, err error)
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// Store bundles one typed collection handle per document kind. It is built
// once at startup and injected into the service layer; nothing in the
// services reaches for a global database handle.
type Store struct {
	Users              Collection[models.User]
	Departments        Collection[models.Department]
	ProductionLines    Collection[models.ProductionLine]
	Machines           Collection[models.Machine]
	Stops              Collection[models.Stop]
	LineStarts         Collection[models.LineStart]
	WorkOrders         Collection[models.WorkOrder]
	WorkOrderHistory   Collection[models.HistoryEntry]
	ChecklistTemplates Collection[models.ChecklistTemplate]
	SpareParts         Collection[models.SparePart]
	SparePartRequests  Collection[models.SparePartRequestDoc]
}
