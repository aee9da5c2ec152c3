// internal/app/system/paging/paging.go
//
// Keyset pagination for newest-first lists. Cursors encode the
// created_at sort key (fixed-width UTC so the encoded form is stable)
// plus the document _id as a tiebreak. Clients pass the returned cursor
// back as ?after= to fetch the next page.
package paging

import (
	"net/http"
	"strconv"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultLimit is the page size used when the client sends none.
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request.
	MaxLimit = 50
)

// timeKeyLayout is fixed-width so every timestamp encodes to the same
// shape and parses back without loss at nanosecond precision.
const timeKeyLayout = "2006-01-02T15:04:05.000000000Z"

// TimeKey renders t as a cursor key.
func TimeKey(t time.Time) string {
	return t.UTC().Format(timeKeyLayout)
}

// Keyset describes one page request over (created_at desc, _id desc).
type Keyset struct {
	Limit  int
	cursor *position
}

// position is the decoded location of the last row already seen.
type position struct {
	createdAt time.Time
	id        primitive.ObjectID
}

// FromRequest reads limit and after from the query string. A malformed
// cursor is ignored, which restarts the listing from the newest row.
func FromRequest(r *http.Request) Keyset {
	k := Keyset{Limit: DefaultLimit}
	if s := query.Get(r, "limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			k.Limit = n
		}
	}
	if k.Limit > MaxLimit {
		k.Limit = MaxLimit
	}
	if after := query.Get(r, "after"); after != "" {
		if c, ok := wafflemongo.DecodeCursor(after); ok {
			if t, err := time.Parse(timeKeyLayout, c.CI); err == nil {
				k.cursor = &position{createdAt: t, id: c.ID}
			}
		}
	}
	return k
}

// Window returns the filter clause selecting rows strictly older than
// the cursor, or nil on the first page. timeField names the document's
// timestamp field (usually "created_at").
func (k Keyset) Window(timeField string) bson.M {
	if k.cursor == nil {
		return nil
	}
	return bson.M{"$or": bson.A{
		bson.M{timeField: bson.M{"$lt": k.cursor.createdAt}},
		bson.M{timeField: k.cursor.createdAt, "_id": bson.M{"$lt": k.cursor.id}},
	}}
}

// Apply sets sort and limit on find options. One extra row is fetched
// so TrimPage can detect whether another page exists.
func (k Keyset) Apply(find *options.FindOptions, timeField string) {
	find.SetSort(bson.D{
		{Key: timeField, Value: -1},
		{Key: "_id", Value: -1},
	}).SetLimit(int64(k.Limit + 1))
}

// TrimPage trims the look-ahead row in place and reports whether more
// rows remain beyond this page.
func TrimPage[T any](rows *[]T, k Keyset) bool {
	if len(*rows) > k.Limit {
		*rows = (*rows)[:k.Limit]
		return true
	}
	return false
}

// NextCursor encodes the position of the last row on the page. keyFn
// extracts the row's timestamp, idFn its ObjectID.
func NextCursor[T any](rows []T, keyFn func(T) time.Time, idFn func(T) primitive.ObjectID) string {
	if len(rows) == 0 {
		return ""
	}
	last := rows[len(rows)-1]
	return wafflemongo.EncodeCursor(TimeKey(keyFn(last)), idFn(last))
}
