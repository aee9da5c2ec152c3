// internal/app/features/users/handler.go
package users

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	userstore "github.com/namanchauhanrajput/blogify/internal/app/store/users"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"github.com/namanchauhanrajput/blogify/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// searchLimit caps how many summaries one search returns.
const searchLimit = 50

// Handler serves the public user directory.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler constructs the users Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Users: userstore.New(db), Log: logger}
}

// Routes returns the subrouter mounted under /api/users.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/search", h.Search)
	return r
}

type searchResponse struct {
	Users []models.UserSummary `json:"users"`
}

// Search handles GET /api/users/search?username=. Queries shorter than
// two runes return an empty list rather than matching everyone.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(query.Get(r, "username"))
	if utf8.RuneCountInString(q) < 2 {
		apierr.JSON(w, http.StatusOK, searchResponse{Users: []models.UserSummary{}})
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	rows, err := h.Users.Search(ctx, q, searchLimit)
	if err != nil {
		apierr.Write(w, h.Log, apierr.Internal("could not search users", err))
		return
	}
	if rows == nil {
		rows = []models.UserSummary{}
	}

	apierr.JSON(w, http.StatusOK, searchResponse{Users: rows})
}
