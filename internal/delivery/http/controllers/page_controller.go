package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Ashwith-Garlapati/dev-event/internal/delivery/http/helpers"
	"github.com/Ashwith-Garlapati/dev-event/internal/domain"
)

type PageController struct {
	Logger  *slog.Logger
	Service domain.PageService
}

func NewPageController(logger *slog.Logger, svc domain.PageService) *PageController {
	return &PageController{
		Logger:  logger,
		Service: svc,
	}
}

// EventPageSuccessResponse is the success response envelope for GET /events/{slug} (200).
type EventPageSuccessResponse struct {
	Data  *domain.EventPage `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventPage godoc
// @Summary Event detail page
// @Description Returns everything the event page shows: the event (cached), up to three similar events and the number of bookings.
// @Tags pages
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventPageSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *PageController) EventPage(w http.ResponseWriter, r *http.Request) {
	page, err := c.Service.EventPage(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to load event page")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}
