package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"satscan/internal/scene"
	"satscan/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Status() types.StatusResponse
	Subscribers() types.SubscribersResponse
	SetInput(x, y float64) error
	ResetInput() error
	Reload() (string, int, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	// @Summary  Scene status
	// @Produce  json
	// @Success  200 {object} types.StatusResponse
	// @Router   /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	// @Summary  Subscriptions per event kind
	// @Produce  json
	// @Success  200 {object} types.SubscribersResponse
	// @Router   /subscribers [get]
	r.Get("/subscribers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Subscribers())
	})

	// @Summary  Set the army movement vector
	// @Accept   json
	// @Produce  json
	// @Param    body body types.InputRequest true "movement"
	// @Success  204
	// @Failure  400 {object} types.ErrorResponse
	// @Failure  503 {object} types.ErrorResponse
	// @Router   /input [post]
	r.Post("/input", func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.InputRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.X < -1 || req.X > 1 || req.Y < -1 || req.Y > 1 {
			writeJSONError(w, http.StatusBadRequest, "input axes must be within [-1,1]")
			return
		}
		if err := svc.SetInput(req.X, req.Y); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// @Summary  Return the army to its spawn point
	// @Success  204
	// @Failure  503 {object} types.ErrorResponse
	// @Router   /input/reset [post]
	r.Post("/input/reset", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ResetInput(); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// @Summary  Reload the current scene (runs the registry purge)
	// @Produce  json
	// @Success  200 {object} types.ReloadResponse
	// @Failure  503 {object} types.ErrorResponse
	// @Router   /scene/reload [post]
	r.Post("/scene/reload", func(w http.ResponseWriter, r *http.Request) {
		name, purged, err := svc.Reload()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.ReloadResponse{Scene: name, Purged: purged})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("no scene"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps scene errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var he HTTPError
	switch {
	case errors.Is(err, scene.ErrNoScene):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &he):
		writeJSONError(w, he.StatusCode(), he.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
