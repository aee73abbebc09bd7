// Package httpapi is the request layer: a chi JSON API over the services,
// with bearer-token identity resolution and typed-error translation.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"linkboard/internal/logging"
	"linkboard/internal/server/models"
	"linkboard/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type userService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*services.AuthPayload, error)
	Get(ctx context.Context, id string) (*models.User, error)
}

type linkService interface {
	Feed(ctx context.Context, q models.FeedQuery) (*models.Feed, error)
	Get(ctx context.Context, id int64) (*models.Link, error)
	Post(ctx context.Context, description, url, userID string) (*models.Link, error)
	Update(ctx context.Context, id int64, description, url models.OptionalString, userID string) (*models.Link, error)
	Delete(ctx context.Context, id int64, userID string) (*models.Link, error)
	Voters(ctx context.Context, linkID int64) ([]*models.User, error)
	OwnedBy(ctx context.Context, userID string) ([]*models.Link, error)
}

type voteService interface {
	Cast(ctx context.Context, linkID int64, userID string) (*models.Vote, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     userService
	links     linkService
	votes     voteService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us userService, ls linkService, vs voteService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		users:     us,
		links:     ls,
		votes:     vs,
		jwtSecret: []byte(secretKey),
	}
}

// Routes assembles the mux. Identity resolution runs for every route; the
// auth requirement itself lives in the services.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.identity)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Get("/feed", s.handleFeed)
	r.Route("/links", func(r chi.Router) {
		r.Post("/", s.handlePostLink)
		r.Get("/{id}", s.handleGetLink)
		r.Patch("/{id}", s.handleUpdateLink)
		r.Delete("/{id}", s.handleDeleteLink)
		r.Post("/{id}/vote", s.handleVote)
	})
	r.Get("/users/{id}", s.handleGetUser)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Routes()}

	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		s.logger.Info(ctx, "starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		s.logger.Info(ctx, "stopping HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
