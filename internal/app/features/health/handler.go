// internal/app/features/health/handler.go
package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/namanchauhanrajput/blogify/internal/app/system/apierr"
	"github.com/namanchauhanrajput/blogify/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler reports process and database liveness.
type Handler struct {
	Client *mongo.Client
	Log    *zap.Logger
}

// NewHandler constructs the health Handler.
func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

// Routes returns the subrouter mounted at /health.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	return r
}

type status struct {
	Status string `json:"status"`
	Mongo  string `json:"mongo"`
}

// Check handles GET /health. The process is "ok" as long as it can
// respond; Mongo reachability is reported separately so load balancers
// can distinguish a degraded instance from a dead one.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithPing(r.Context())
	defer cancel()

	st := status{Status: "ok", Mongo: "ok"}
	code := http.StatusOK
	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Warn("health check: mongo unreachable", zap.Error(err))
		st.Mongo = "unreachable"
		code = http.StatusServiceUnavailable
	}

	apierr.JSON(w, code, st)
}
