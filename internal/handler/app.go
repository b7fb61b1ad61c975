package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/usersearch/internal/controller"
	"github.com/sakif/usersearch/internal/notify"
)

// AppHandler serves the user-facing search pages as JSON view states.
//
// Every request gets its own controller and notification recorder, so the
// notifications returned belong to that request alone.
type AppHandler struct {
	backend  controller.Backend
	pageSize int
	logger   *slog.Logger
}

// NewAppHandler creates a new AppHandler. pageSize 0 means the controller default.
func NewAppHandler(backend controller.Backend, pageSize int, logger *slog.Logger) *AppHandler {
	return &AppHandler{
		backend:  backend,
		pageSize: pageSize,
		logger:   logger,
	}
}

type searchPage struct {
	*controller.SearchViewState
	Notifications []notify.Notification `json:"notifications"`
}

type userInfoPage struct {
	*controller.UserInfoViewState
	Notifications []notify.Notification `json:"notifications"`
}

func (h *AppHandler) controllerFor(r *http.Request) (*controller.SearchController, *notify.Recorder) {
	rec := &notify.Recorder{}
	logger := h.logger.With(slog.String("requestPath", r.URL.Path))
	var opts []controller.Option
	if h.pageSize > 0 {
		opts = append(opts, controller.WithPageSize(h.pageSize))
	}
	return controller.New(h.backend, rec, logger, opts...), rec
}

// HandleSearch renders one page of results.
//
// HTTP: GET /search?term=octocat&page=1
//
// page defaults to 1 when missing.
func (h *AppHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		// A non-number becomes 0, which RunSearch rejects.
		page, _ = strconv.Atoi(raw)
	}

	c, rec := h.controllerFor(r)
	state, err := c.RunSearch(r.Context(), r.URL.Query().Get("term"), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchPage{SearchViewState: state, Notifications: rec.Notifications()})
}

// HandleNavigate moves to another page of an existing search.
//
// HTTP: GET /navigate?term=octocat&currentPage=3
func (h *AppHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	c, rec := h.controllerFor(r)
	state, err := c.Navigate(r.Context(), q.Get("term"), q.Get("currentPage"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchPage{SearchViewState: state, Notifications: rec.Notifications()})
}

// HandleUserInfo renders one user's details.
//
// HTTP: GET /user-info?userLogin=octocat
func (h *AppHandler) HandleUserInfo(w http.ResponseWriter, r *http.Request) {
	c, rec := h.controllerFor(r)
	state, err := c.UserInfo(r.Context(), r.URL.Query().Get("userLogin"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userInfoPage{UserInfoViewState: state, Notifications: rec.Notifications()})
}
