package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"geonotes/internal/detail"
	"geonotes/pkg/response"
)

// ScreenReady godoc
// @Summary     Screen ready
// @Description Recomputes the page size from the viewport height and loads the first page.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body screenReadyReq true "Viewport"
// @Success     200 {object} loadResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes/screen-ready [POST]
func (h *handler) ScreenReady(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processScreenReadyReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	res, err := h.agg.ScreenReady(ctx, req.ViewportHeight)
	if err != nil {
		h.l.Errorf(ctx, "note/delivery.ScreenReady: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newLoadResp(res))
}

// Refresh godoc
// @Summary     Pull to refresh
// @Description Replaces the list with the first page using the session page size.
// @Tags        Notes
// @Produce     json
// @Success     200 {object} loadResp
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes/refresh [POST]
func (h *handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	res, err := h.agg.LoadFirstPage(ctx, h.agg.PageSize())
	if err != nil {
		h.l.Errorf(ctx, "note/delivery.Refresh: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newLoadResp(res))
}

// More godoc
// @Summary     Load more
// @Description Appends the next page. Skipped when the end was reached or a fetch is in flight.
// @Tags        Notes
// @Produce     json
// @Success     200 {object} loadResp
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes/more [POST]
func (h *handler) More(c *gin.Context) {
	ctx := c.Request.Context()

	res, err := h.agg.LoadNextPage(ctx, h.agg.PageSize())
	if err != nil {
		h.l.Errorf(ctx, "note/delivery.More: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newLoadResp(res))
}

// List godoc
// @Summary     Current list
// @Description Returns the loaded notes without contacting the store.
// @Tags        Notes
// @Produce     json
// @Success     200 {object} listResp
// @Router      /api/v1/notes [GET]
func (h *handler) List(c *gin.Context) {
	response.OK(c, h.newListResp(h.agg.Snapshot()))
}

// Stream godoc
// @Summary     Stream list snapshots
// @Description Server-sent events carrying every new list snapshot, starting with the current one.
// @Tags        Notes
// @Produce     text/event-stream
// @Success     200 {object} listResp
// @Router      /api/v1/notes/stream [GET]
func (h *handler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	snaps := h.agg.Watch(ctx)

	c.Stream(func(w io.Writer) bool {
		select {
		case s, ok := <-snaps:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", h.newListResp(s))
			return true
		case <-ctx.Done():
			return false
		}
	})
}

// Notifications godoc
// @Summary     Recent notifications
// @Description Returns the success, failure and info messages of the latest flows, oldest first.
// @Tags        Notes
// @Produce     json
// @Success     200 {array} notificationResp
// @Router      /api/v1/notes/notifications [GET]
func (h *handler) Notifications(c *gin.Context) {
	if h.recorder == nil {
		response.OK(c, []notificationResp{})
		return
	}
	response.OK(c, newNotificationsResp(h.recorder.All()))
}

// Save godoc
// @Summary     Save a note
// @Description Validates and persists a new note, then refreshes the list from the first page.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       body body saveReq true "Note"
// @Success     200 {object} saveResp
// @Failure     400 {object} response.Resp "Validation failed"
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes [POST]
func (h *handler) Save(c *gin.Context) {
	ctx := c.Request.Context()

	input, err := h.processSaveReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	out, err := h.uc.Save(ctx, input)
	if err != nil {
		h.l.Warnf(ctx, "note/delivery.Save: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, saveResp{Note: newNoteResp(out.Note)})
}

// Edit godoc
// @Summary     Edit a note
// @Description Changes the title and description of an existing note.
// @Tags        Notes
// @Accept      json
// @Produce     json
// @Param       key  path string  true "Note key"
// @Param       body body editReq true "New text"
// @Success     200 {object} editResp
// @Failure     400 {object} response.Resp "Validation failed"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes/{key} [PUT]
func (h *handler) Edit(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processEditReq(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	out, err := h.uc.Edit(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "note/delivery.Edit: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, editResp{Note: newNoteResp(out.Note), Patched: out.Patched})
}

// CancelEdit godoc
// @Summary     Cancel an edit
// @Description Reports that the user dismissed the edit dialog. The store is not contacted.
// @Tags        Notes
// @Produce     json
// @Param       key path string true "Note key"
// @Success     200 {object} response.Resp
// @Router      /api/v1/notes/{key}/cancel-edit [POST]
func (h *handler) CancelEdit(c *gin.Context) {
	h.uc.CancelEdit(c.Request.Context(), c.Param("key"))
	response.OK(c, nil)
}

// Remove godoc
// @Summary     Delete a note
// @Tags        Notes
// @Produce     json
// @Param       key path string true "Note key"
// @Success     200 {object} response.Resp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes/{key} [DELETE]
func (h *handler) Remove(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.Remove(ctx, c.Param("key")); err != nil {
		h.l.Warnf(ctx, "note/delivery.Remove: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, nil)
}

// Detail godoc
// @Summary     Note detail
// @Description Returns the note with its map marker and tile. A malformed position yields no marker.
// @Tags        Notes
// @Produce     json
// @Param       key path string true "Note key"
// @Success     200 {object} detailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     502 {object} response.Resp "Note store unavailable"
// @Router      /api/v1/notes/{key}/detail [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	n, err := h.uc.Find(ctx, c.Param("key"))
	if err != nil {
		h.l.Warnf(ctx, "note/delivery.Detail: %v", err)
		h.mapError(c, err)
		return
	}

	view := detail.New(h.l, detail.NewTileMap(h.tileURL), nil, h.zoom)
	v := view.Open(ctx, n)
	if err := view.Close(); err != nil {
		h.l.Warnf(ctx, "note/delivery.Detail.Close: %v", err)
	}

	response.OK(c, newDetailResp(v))
}
