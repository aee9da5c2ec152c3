package blogs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/namanchauhanrajput/blogify/internal/app/system/media"
	"github.com/namanchauhanrajput/blogify/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeBlobs records uploads and deletes without touching disk.
type fakeBlobs struct {
	uploads int
	deleted []string
	fail    bool
}

func (f *fakeBlobs) Upload(_ context.Context, r io.Reader, filename, _ string) (media.Asset, error) {
	if f.fail {
		return media.Asset{}, io.ErrUnexpectedEOF
	}
	_, _ = io.Copy(io.Discard, r)
	f.uploads++
	return media.Asset{URL: "/media/fake/" + filename, PublicID: "fake/" + filename}, nil
}

func (f *fakeBlobs) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func setup(t *testing.T) (*Handler, *testutil.Fixtures, *fakeBlobs, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	blobs := &fakeBlobs{}
	return NewHandler(db, blobs, zap.NewNop()), testutil.NewFixtures(t, db), blobs, db
}

func multipartBody(t *testing.T, fields map[string]string, fileField, filename string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte("fake image bytes")); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, w.FormDataContentType()
}

func TestCreateBlog(t *testing.T) {
	h, f, blobs, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")

	body, ctype := multipartBody(t, map[string]string{
		"title":    "My Post",
		"content":  `<p>hello</p><script>bad()</script>`,
		"category": "tech",
	}, "image", "cover.jpg")

	req := httptest.NewRequest("POST", "/api/blog/create", body)
	req.Header.Set("Content-Type", ctype)
	req = testutil.WithIdentity(req, author)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if blobs.uploads != 1 {
		t.Errorf("uploads = %d, want 1", blobs.uploads)
	}

	var resp struct {
		Blog blogView `json:"blog"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(resp.Blog.Content, "<script") {
		t.Error("script survived sanitizing")
	}
	if resp.Blog.ImageURL == "" {
		t.Error("no image URL in response")
	}
}

func TestCreateBlogRequiresImage(t *testing.T) {
	h, f, _, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")

	body, ctype := multipartBody(t, map[string]string{
		"title": "No Image", "content": "<p>x</p>", "category": "tech",
	}, "", "")

	req := httptest.NewRequest("POST", "/api/blog/create", body)
	req.Header.Set("Content-Type", ctype)
	req = testutil.WithIdentity(req, author)
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateBlogUploadFailure(t *testing.T) {
	h, f, blobs, _ := setup(t)
	blobs.fail = true
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")

	body, ctype := multipartBody(t, map[string]string{
		"title": "Doomed", "content": "<p>x</p>", "category": "tech",
	}, "image", "cover.jpg")

	req := httptest.NewRequest("POST", "/api/blog/create", body)
	req.Header.Set("Content-Type", ctype)
	req = testutil.WithIdentity(req, author)
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 on blob-store failure", rec.Code)
	}
}

func TestViewAttachesAuthorAndLikeState(t *testing.T) {
	h, f, _, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")
	reader := f.CreateUser(ctx, "reader", "reader@example.com")
	blog := f.CreateBlog(ctx, author.ID, "viewed", "tech")

	// Reader likes the post first.
	likeReq := testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("POST", "/api/blog/like/"+blog.ID.Hex()), reader),
		"id", blog.ID.Hex())
	h.Like(httptest.NewRecorder(), likeReq)

	req := testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("GET", "/api/blog/"+blog.ID.Hex()), reader),
		"id", blog.ID.Hex())
	rec := httptest.NewRecorder()
	h.View(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var resp viewResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Blog.Author == nil || resp.Blog.Author.Username != "writer" {
		t.Errorf("author = %+v", resp.Blog.Author)
	}
	if resp.Blog.LikesCount != 1 || !resp.Blog.Liked {
		t.Errorf("likes_count=%d liked=%v, want 1/true for the liker",
			resp.Blog.LikesCount, resp.Blog.Liked)
	}

	// Anonymous view: same count, liked is false.
	anon := testutil.WithChiURLParam(testutil.NewRequest("GET", "/"), "id", blog.ID.Hex())
	rec = httptest.NewRecorder()
	h.View(rec, anon)
	var anonResp viewResponse
	if err := json.NewDecoder(rec.Body).Decode(&anonResp); err != nil {
		t.Fatal(err)
	}
	if anonResp.Blog.Liked {
		t.Error("anonymous viewer shown as having liked")
	}
}

func TestLikeToggleAndNotification(t *testing.T) {
	h, f, _, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")
	reader := f.CreateUser(ctx, "reader", "reader@example.com")
	blog := f.CreateBlog(ctx, author.ID, "likeable", "tech")

	req := testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("POST", "/"), reader),
		"id", blog.ID.Hex())
	rec := httptest.NewRecorder()
	h.Like(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp likeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Liked || resp.LikesCount != 1 {
		t.Errorf("first like = %+v", resp)
	}

	// The author has a notification now.
	notifs, err := h.Notifs.ListForUser(ctx, author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notifs) != 1 {
		t.Fatalf("author has %d notifications, want 1", len(notifs))
	}

	// Unlike: count drops, no second notification.
	req = testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("POST", "/"), reader),
		"id", blog.ID.Hex())
	rec = httptest.NewRecorder()
	h.Like(rec, req)
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Liked || resp.LikesCount != 0 {
		t.Errorf("unlike = %+v", resp)
	}
	notifs, _ = h.Notifs.ListForUser(ctx, author.ID)
	if len(notifs) != 1 {
		t.Errorf("unlike added a notification, now %d", len(notifs))
	}
}

func TestSelfLikeDoesNotNotify(t *testing.T) {
	h, f, _, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")
	blog := f.CreateBlog(ctx, author.ID, "own post", "tech")

	req := testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("POST", "/"), author),
		"id", blog.ID.Hex())
	h.Like(httptest.NewRecorder(), req)

	notifs, err := h.Notifs.ListForUser(ctx, author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notifs) != 0 {
		t.Errorf("self-like produced %d notifications", len(notifs))
	}
}

func TestCommentValidationAndNotification(t *testing.T) {
	h, f, _, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")
	reader := f.CreateUser(ctx, "reader", "reader@example.com")
	blog := f.CreateBlog(ctx, author.ID, "discussed", "tech")

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		req = testutil.WithChiURLParam(testutil.WithIdentity(req, reader), "id", blog.ID.Hex())
		rec := httptest.NewRecorder()
		h.Comment(rec, req)
		return rec
	}

	if rec := post(`{"text":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty comment status = %d, want 400", rec.Code)
	}
	if rec := post(`{"text":"<script>x()</script>"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("markup-only comment status = %d, want 400", rec.Code)
	}

	rec := post(`{"text":"great <b>post</b>"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Comment commentView `json:"comment"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(resp.Comment.Text, "<>") {
		t.Errorf("comment kept markup: %q", resp.Comment.Text)
	}
	if resp.Comment.Author == nil || resp.Comment.Author.Username != "reader" {
		t.Errorf("commenter = %+v", resp.Comment.Author)
	}

	notifs, err := h.Notifs.ListForUser(ctx, author.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(notifs) != 1 {
		t.Errorf("author has %d notifications, want 1", len(notifs))
	}
}

func TestDeleteOwnership(t *testing.T) {
	h, f, blobs, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")
	stranger := f.CreateUser(ctx, "stranger", "stranger@example.com")
	admin := f.CreateAdmin(ctx, "mod", "mod@example.com")

	blog := f.CreateBlog(ctx, author.ID, "target", "tech")

	req := testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("DELETE", "/"), stranger),
		"id", blog.ID.Hex())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("stranger delete = %d, want 403", rec.Code)
	}

	req = testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("DELETE", "/"), author),
		"id", blog.ID.Hex())
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete = %d: %s", rec.Code, rec.Body)
	}
	if len(blobs.deleted) != 1 {
		t.Errorf("media deletes = %v, want the post image", blobs.deleted)
	}

	// Admins may delete anyone's post.
	blog2 := f.CreateBlog(ctx, author.ID, "target2", "tech")
	req = testutil.WithChiURLParam(
		testutil.WithIdentity(testutil.NewRequest("DELETE", "/"), admin),
		"id", blog2.ID.Hex())
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin delete = %d, want 200", rec.Code)
	}
}

func TestListHandlerPagination(t *testing.T) {
	h, f, _, _ := setup(t)
	ctx := context.Background()
	author := f.CreateUser(ctx, "writer", "writer@example.com")
	for i := 0; i < 3; i++ {
		f.CreateBlog(ctx, author.ID, "post", "tech")
	}

	req := testutil.NewRequest("GET", "/api/blog?limit=2")
	rec := httptest.NewRecorder()
	h.List(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp listResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Blogs) != 2 || !resp.HasMore || resp.NextCursor == "" {
		t.Fatalf("page 1 = %d rows, has_more=%v", len(resp.Blogs), resp.HasMore)
	}

	req = testutil.NewRequest("GET", "/api/blog?limit=2&after="+resp.NextCursor)
	rec = httptest.NewRecorder()
	h.List(rec, req)
	var page2 listResponse
	if err := json.NewDecoder(rec.Body).Decode(&page2); err != nil {
		t.Fatal(err)
	}
	if len(page2.Blogs) != 1 || page2.HasMore {
		t.Errorf("page 2 = %d rows, has_more=%v", len(page2.Blogs), page2.HasMore)
	}
	if page2.Blogs[0].ID == resp.Blogs[0].ID || page2.Blogs[0].ID == resp.Blogs[1].ID {
		t.Error("page 2 repeated a row from page 1")
	}
}
