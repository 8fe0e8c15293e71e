package httpapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sdx/internal/manager"
	"sdx/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.Model
	ResolveModel(name string) (string, error)
	Generate(ctx context.Context, req types.GenerationRequest) (manager.Result, error)
	Status() types.StatusResponse
	Ready() (bool, string)
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	r.Get("/v1/models", listModelsHandler(svc))
	r.Post("/v1/images/generations", generateHandler(svc))

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if ok, reason := svc.Ready(); !ok {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(reason))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// listModelsHandler godoc
// @Summary      List models
// @Description  Returns every configured model in OpenAI list format, sorted by name.
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelList
// @Router       /v1/models [get]
func listModelsHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models := svc.ListModels()
		out := types.ModelList{Object: "list", Data: make([]types.ModelObject, 0, len(models))}
		for _, m := range models {
			out.Data = append(out.Data, types.ModelObject{ID: m.Name, Object: "model", OwnedBy: "local"})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// generateHandler godoc
// @Summary      Generate images
// @Description  Runs sd-cli once for the request and returns the images base64-encoded. Requests are serialized.
// @Tags         images
// @Accept       json
// @Produce      json
// @Param        request  body      types.ImageGenerationRequest  true  "Generation request"
// @Success      200      {object}  types.ImageGenerationResponse
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Failure      422      {object}  types.ErrorResponse
// @Failure      500      {object}  types.ErrorResponse
// @Router       /v1/images/generations [post]
func generateHandler(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
			invalidRequest(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var req types.ImageGenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var typeErr *json.UnmarshalTypeError
			var sizeErr *http.MaxBytesError
			switch {
			case errors.As(err, &sizeErr):
				invalidRequest(w, http.StatusRequestEntityTooLarge, "request body too large")
			case errors.As(err, &typeErr):
				invalidRequest(w, http.StatusUnprocessableEntity, "invalid type for field '"+typeErr.Field+"'")
			default:
				invalidRequest(w, http.StatusBadRequest, "invalid JSON body")
			}
			return
		}

		// The model is resolved first: an unknown model is a 404 even when
		// the rest of the body is incomplete.
		model, err := svc.ResolveModel(req.Model)
		if err != nil {
			writeAPIError(w, statusFor(err))
			return
		}
		if msg := validateImageRequest(req); msg != "" {
			invalidRequest(w, http.StatusUnprocessableEntity, msg)
			return
		}

		lvl := requestLogLevel(r)
		log := requestLogger(r, lvl).With().Str("model", model).Logger()
		start := time.Now()
		log.Info().Msg("generation start")

		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, log.WithContext(r.Context()))
		defer cancel()
		res, err := svc.Generate(ctx, toGenerationRequest(model, req))
		if err != nil {
			if ctx.Err() != nil {
				// The client is gone; nothing can be written.
				clientGoneTotal.Inc()
				log.Info().Dur("dur", time.Since(start)).Msg("generation abandoned")
				return
			}
			e := statusFor(err)
			log.Error().Int("status", e.status).Dur("dur", time.Since(start)).Err(err).Msg("generation end")
			writeAPIError(w, e)
			return
		}

		out := types.ImageGenerationResponse{Created: res.Created.Unix(), Data: make([]types.ImageData, 0, len(res.Images))}
		for _, img := range res.Images {
			out.Data = append(out.Data, types.ImageData{B64JSON: base64.StdEncoding.EncodeToString(img)})
		}
		log.Info().Int("status", http.StatusOK).Int("images", len(out.Data)).Dur("dur", time.Since(start)).Msg("generation end")
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
