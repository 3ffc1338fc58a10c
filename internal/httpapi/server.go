package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hamed0406/userprobe/internal/domain"
	"github.com/hamed0406/userprobe/internal/repo"
)

type Server struct {
	Logger   *zap.Logger
	Users    repo.UserStore
	validate *validator.Validate
}

func NewServer(l *zap.Logger, users repo.UserStore) *Server {
	v := validator.New()
	// report json names ("email") rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{Logger: l, Users: users, validate: v}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/users", s.handleListUsers)
	r.Get("/user/{id}", s.handleGetUser)
	r.Post("/user/{id}", s.handlePutUser)

	return r
}

func (s *Server) handlePutUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var rec domain.Record
	err := json.NewDecoder(r.Body).Decode(&rec)
	if errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, generalError(errors.New("request body is empty")))
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, generalError(err))
		return
	}
	if err := s.validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusBadRequest, validationError(verrs))
			return
		}
		writeJSON(w, http.StatusBadRequest, generalError(err))
		return
	}

	u := domain.User{ID: id, Record: rec}
	if err := s.Users.Put(r.Context(), u); err != nil {
		s.Logger.Error("user_put_error", zap.Int64("id", int64(id)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, generalError(errors.New("could not store user")))
		return
	}

	s.Logger.Info("user_upserted",
		zap.Int64("id", int64(id)),
		zap.String("email", rec.Email),
	)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := s.Users.Get(r.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, generalError(errors.New("user not found")))
		return
	}
	if err != nil {
		s.Logger.Error("user_get_error", zap.Int64("id", int64(id)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, generalError(errors.New("could not load user")))
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	us, err := s.Users.List(r.Context())
	if err != nil {
		s.Logger.Error("user_list_error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, generalError(errors.New("list error")))
		return
	}
	writeJSON(w, http.StatusOK, us)
}

// pathID parses {id} and writes a 400 when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (domain.UserID, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		writeJSON(w, http.StatusBadRequest, generalError(errors.New("invalid id: must be a positive integer")))
		return 0, false
	}
	return domain.UserID(n), true
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("http_request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Float64("latency_ms", time.Since(start).Seconds()*1000),
		)
	})
}
