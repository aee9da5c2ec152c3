package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/namanchauhanrajput/blogify/internal/testutil"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(db, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestListResolvesSenderAndBlog(t *testing.T) {
	h, f := setup(t)
	ctx := context.Background()

	me := f.CreateUser(ctx, "recipient", "me@example.com")
	fan := f.CreateUser(ctx, "fan", "fan@example.com")
	blog := f.CreateBlog(ctx, me.ID, "Popular Post", "tech")

	f.CreateNotification(ctx, me.ID, fan.ID, models.NotificationLike, &blog.ID)

	// Sender deleted since the notification was written.
	ghostID := primitive.NewObjectID()
	f.CreateNotification(ctx, me.ID, ghostID, models.NotificationComment, nil)

	req := testutil.WithIdentity(testutil.NewRequest("GET", "/api/notifications"), me)
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var resp listResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Notifications) != 2 {
		t.Fatalf("got %d notifications", len(resp.Notifications))
	}
	if resp.UnreadCount != 2 {
		t.Errorf("unread_count = %d, want 2", resp.UnreadCount)
	}

	// Newest-first: the ghost entry was inserted last.
	ghost, liked := resp.Notifications[0], resp.Notifications[1]
	if ghost.Sender != nil {
		t.Error("deleted sender should be absent, not fail the request")
	}
	if liked.Sender == nil || liked.Sender.Username != "fan" {
		t.Errorf("sender = %+v", liked.Sender)
	}
	if liked.BlogTitle != "Popular Post" {
		t.Errorf("blog_title = %q", liked.BlogTitle)
	}
}

func TestMarkReadEndpoint(t *testing.T) {
	h, f := setup(t)
	ctx := context.Background()

	me := f.CreateUser(ctx, "recipient", "me@example.com")
	other := f.CreateUser(ctx, "other", "other@example.com")
	n := f.CreateNotification(ctx, me.ID, other.ID, models.NotificationLike, nil)

	// Someone else cannot mark my notification.
	req := testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("PUT", "/"), other),
		"id", n.ID.Hex())
	rec := httptest.NewRecorder()
	h.MarkRead(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign mark-read = %d, want 404", rec.Code)
	}

	req = testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("PUT", "/"), me),
		"id", n.ID.Hex())
	rec = httptest.NewRecorder()
	h.MarkRead(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("mark-read = %d: %s", rec.Code, rec.Body)
	}

	// Idempotent.
	req = testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("PUT", "/"), me),
		"id", n.ID.Hex())
	rec = httptest.NewRecorder()
	h.MarkRead(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("second mark-read = %d, want 200", rec.Code)
	}
}

func TestMarkAllReadEndpoint(t *testing.T) {
	h, f := setup(t)
	ctx := context.Background()

	me := f.CreateUser(ctx, "recipient", "me@example.com")
	other := f.CreateUser(ctx, "other", "other@example.com")
	for i := 0; i < 2; i++ {
		f.CreateNotification(ctx, me.ID, other.ID, models.NotificationLike, nil)
	}

	call := func() (int, int64) {
		req := testutil.WithIdentity(testutil.NewRequest("PUT", "/"), me)
		rec := httptest.NewRecorder()
		h.MarkAllRead(rec, req)
		var resp struct {
			Updated int64 `json:"updated"`
		}
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		return rec.Code, resp.Updated
	}

	if code, updated := call(); code != http.StatusOK || updated != 2 {
		t.Errorf("first read-all = %d/%d, want 200/2", code, updated)
	}
	if code, updated := call(); code != http.StatusOK || updated != 0 {
		t.Errorf("second read-all = %d/%d, want 200/0", code, updated)
	}
}
