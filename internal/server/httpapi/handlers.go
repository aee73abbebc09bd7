package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"linkboard/internal/common"
	"linkboard/internal/server/models"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type postLinkRequest struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

type updateLinkRequest struct {
	Description models.OptionalString `json:"description"`
	URL         models.OptionalString `json:"url"`
}

// linkResponse is a link with its relations resolved on demand.
type linkResponse struct {
	models.Link
	Owner  *models.User   `json:"postedBy,omitempty"`
	Voters []*models.User `json:"voters"`
}

type userResponse struct {
	models.User
	Links []*models.Link `json:"links"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		s.writeError(w, r, fmt.Errorf("%w: name, email and password are required", common.ErrInvalidArgument))
		return
	}

	payload, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", payload.User.ID)
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	payload, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// One message for both unknown email and bad password, so the
		// response does not confirm which emails are registered.
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidCredential) {
			s.writeStatus(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	q, err := parseFeedQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	feed, err := s.links.Feed(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, feed)
}

func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	link, err := s.links.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := linkResponse{Link: *link, Voters: []*models.User{}}
	if link.PostedBy != "" {
		owner, err := s.users.Get(r.Context(), link.PostedBy)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			s.writeError(w, r, err)
			return
		}
		resp.Owner = owner
	}

	voters, err := s.links.Voters(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if voters != nil {
		resp.Voters = voters
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePostLink(w http.ResponseWriter, r *http.Request) {
	var req postLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Description == "" || req.URL == "" {
		s.writeError(w, r, fmt.Errorf("%w: description and url are required", common.ErrInvalidArgument))
		return
	}

	userID, _ := UserID(r.Context())
	link, err := s.links.Post(r.Context(), req.Description, req.URL, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, link)
}

func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req updateLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	userID, _ := UserID(r.Context())
	link, err := s.links.Update(r.Context(), id, req.Description, req.URL, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, link)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	userID, _ := UserID(r.Context())
	link, err := s.links.Delete(r.Context(), id, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, link)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	id, err := linkID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	userID, _ := UserID(r.Context())
	vote, err := s.votes.Cast(r.Context(), id, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, vote)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := s.users.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	links, err := s.links.OwnedBy(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if links == nil {
		links = []*models.Link{}
	}

	s.writeJSON(w, http.StatusOK, userResponse{User: *user, Links: links})
}

// --- helpers below ---

func linkID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: link id %q", common.ErrInvalidArgument, raw)
	}
	return id, nil
}

// parseFeedQuery reads filter/skip/take/orderBy from the query string.
// orderBy entries are field:direction pairs applied in the given order,
// e.g. ?orderBy=createdAt:desc&orderBy=url:asc.
func parseFeedQuery(r *http.Request) (models.FeedQuery, error) {
	var q models.FeedQuery
	values := r.URL.Query()

	if values.Has("filter") {
		filter := values.Get("filter")
		q.Filter = &filter
	}

	for _, name := range []string{"skip", "take"} {
		if !values.Has(name) {
			continue
		}
		n, err := strconv.Atoi(values.Get(name))
		if err != nil {
			return q, fmt.Errorf("%w: %s must be an integer", common.ErrInvalidArgument, name)
		}
		if name == "skip" {
			q.Skip = &n
		} else {
			q.Take = &n
		}
	}

	for _, raw := range values["orderBy"] {
		field, direction, ok := strings.Cut(raw, ":")
		if !ok {
			return q, fmt.Errorf("%w: orderBy entry %q, want field:direction", common.ErrInvalidArgument, raw)
		}
		q.OrderBy = append(q.OrderBy, models.LinkOrder{
			Field:     models.OrderField(field),
			Direction: models.SortDirection(direction),
		})
	}

	return q, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidArgument, err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeStatus(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeError translates the service error taxonomy into HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthenticated):
		s.writeStatus(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, common.ErrPermissionDenied):
		s.writeStatus(w, http.StatusForbidden, "permission denied")
	case errors.Is(err, common.ErrNotFound):
		s.writeStatus(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrDuplicateIdentity):
		s.writeStatus(w, http.StatusConflict, "email already taken")
	case errors.Is(err, common.ErrInvalidArgument):
		s.writeStatus(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrStoreUnavailable):
		s.logger.Error(r.Context(), "store unavailable", "error", err.Error())
		s.writeStatus(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		s.logger.Error(r.Context(), "internal error", "error", err.Error())
		s.writeStatus(w, http.StatusInternalServerError, "internal error")
	}
}
