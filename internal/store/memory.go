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
	"fmt"
	"sort"
	"sync"

	"github.com/bonchef/maintenance-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemory builds a Store backed by in-process maps. It speaks the same
// bson.M filter/patch dialect as the Mongo adapter, restricted to the
// operators the services actually use, so the service layer can be tested
// without a running database.
func NewMemory() *Store {
	return &Store{
		Users:              newMemCollection[models.User](),
		Departments:        newMemCollection[models.Department](),
		ProductionLines:    newMemCollection[models.ProductionLine](),
		Machines:           newMemCollection[models.Machine](),
		Stops:              newMemCollection[models.Stop](),
		LineStarts:         newMemCollection[models.LineStart](),
		WorkOrders:         newMemCollection[models.WorkOrder](),
		WorkOrderHistory:   newMemCollection[models.HistoryEntry](),
		ChecklistTemplates: newMemCollection[models.ChecklistTemplate](),
		SpareParts:         newMemCollection[models.SparePart](),
		SparePartRequests:  newMemCollection[models.SparePartRequestDoc](),
	}
}

type memCollection[T any] struct {
	mu   sync.RWMutex
	docs []bson.M
}

func newMemCollection[T any]() *memCollection[T] {
	return &memCollection[T]{}
}

// roundTrip normalizes any document-shaped value through BSON so that stored
// docs, filters and decoded results all use the same primitive types.
func roundTrip(in any, out any) error {
	raw, err := bson.Marshal(in)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func (c *memCollection[T]) Find(ctx context.Context, filter bson.M, opts ...FindOptions) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	var matched []bson.M
	for _, doc := range c.docs {
		if matches(doc, f) {
			matched = append(matched, doc)
		}
	}

	if len(opts) > 0 && opts[0].SortField != "" {
		field, desc := opts[0].SortField, opts[0].SortDesc
		sort.SliceStable(matched, func(i, j int) bool {
			less := compareValues(matched[i][field], matched[j][field]) < 0
			if desc {
				return !less && compareValues(matched[i][field], matched[j][field]) != 0
			}
			return less
		})
	}
	if len(opts) > 0 && opts[0].Limit > 0 && int64(len(matched)) > opts[0].Limit {
		matched = matched[:opts[0].Limit]
	}

	out := make([]T, 0, len(matched))
	for _, doc := range matched {
		var t T
		if err := roundTrip(doc, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (c *memCollection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var zero T
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return zero, err
	}
	for _, doc := range c.docs {
		if matches(doc, f) {
			var t T
			if err := roundTrip(doc, &t); err != nil {
				return zero, err
			}
			return t, nil
		}
	}
	return zero, ErrNoDocument
}

func (c *memCollection[T]) Insert(ctx context.Context, doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var m bson.M
	if err := roundTrip(doc, &m); err != nil {
		return err
	}
	c.docs = append(c.docs, m)
	return nil
}

func (c *memCollection[T]) Update(ctx context.Context, filter bson.M, patch bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	p, err := normalizeFilter(patch)
	if err != nil {
		return 0, err
	}
	for _, doc := range c.docs {
		if matches(doc, f) {
			applyPatch(doc, p)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memCollection[T]) Delete(ctx context.Context, filter bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	var kept []bson.M
	var deleted int64
	for _, doc := range c.docs {
		if matches(doc, f) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	c.docs = kept
	return deleted, nil
}

func (c *memCollection[T]) Push(ctx context.Context, filter bson.M, field string, value any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	var v bson.M
	if err := roundTrip(value, &v); err != nil {
		return 0, err
	}
	for _, doc := range c.docs {
		if matches(doc, f) {
			arr, _ := doc[field].(primitive.A)
			doc[field] = append(arr, v)
			return 1, nil
		}
	}
	return 0, nil
}

func (c *memCollection[T]) Pull(ctx context.Context, filter bson.M, field string, match bson.M) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	m, err := normalizeFilter(match)
	if err != nil {
		return 0, err
	}
	for _, doc := range c.docs {
		if !matches(doc, f) {
			continue
		}
		arr, _ := doc[field].(primitive.A)
		var kept primitive.A
		removed := false
		for _, el := range arr {
			if sub, ok := el.(bson.M); ok && matches(sub, m) {
				removed = true
				continue
			}
			kept = append(kept, el)
		}
		doc[field] = kept
		if removed {
			return 1, nil
		}
		return 0, nil
	}
	return 0, nil
}

func (c *memCollection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := normalizeFilter(filter)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, doc := range c.docs {
		if matches(doc, f) {
			n++
		}
	}
	return n, nil
}

func normalizeFilter(filter bson.M) (bson.M, error) {
	if len(filter) == 0 {
		return bson.M{}, nil
	}
	var out bson.M
	if err := roundTrip(filter, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// matches evaluates a flat filter document against doc.
func matches(doc bson.M, filter bson.M) bool {
	for field, cond := range filter {
		value, found := doc[field]
		if ops, ok := cond.(bson.M); ok && isOperatorDoc(ops) {
			if !matchOps(value, found, ops) {
				return false
			}
			continue
		}
		if !found || !valuesEqual(value, cond) {
			return false
		}
	}
	return true
}

func isOperatorDoc(m bson.M) bool {
	for k := range m {
		if len(k) > 0 && k[0] == '$' {
			return true
		}
	}
	return false
}

func matchOps(value any, found bool, ops bson.M) bool {
	for op, arg := range ops {
		switch op {
		case "$eq":
			if !found || !valuesEqual(value, arg) {
				return false
			}
		case "$ne":
			if arg == nil {
				// missing counts as null, like the real store
				if !found || value == nil {
					return false
				}
			} else if found && valuesEqual(value, arg) {
				return false
			}
		case "$in":
			list, ok := arg.(primitive.A)
			if !ok || !found {
				return false
			}
			hit := false
			for _, el := range list {
				if valuesEqual(value, el) {
					hit = true
					break
				}
			}
			if !hit {
				return false
			}
		case "$gte":
			if !found || compareValues(value, arg) < 0 {
				return false
			}
		case "$lte":
			if !found || compareValues(value, arg) > 0 {
				return false
			}
		case "$exists":
			want, _ := arg.(bool)
			if found != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func applyPatch(doc bson.M, patch bson.M) {
	if set, ok := patch["$set"].(bson.M); ok {
		for k, v := range set {
			doc[k] = v
		}
	}
	if inc, ok := patch["$inc"].(bson.M); ok {
		for k, v := range inc {
			doc[k] = asFloat(doc[k]) + asFloat(v)
		}
	}
}

func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, oka := numeric(a); oka {
		fb, okb := numeric(b)
		return okb && fa == fb
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func compareValues(a, b any) int {
	if fa, oka := numeric(a); oka {
		if fb, okb := numeric(b); okb {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	sa, sb := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asFloat(v any) float64 {
	f, _ := numeric(v)
	return f
}
