package http

import (
	"github.com/gin-gonic/gin"

	"geonotes/internal/note"
)

// processScreenReadyReq binds the viewport height reported by the list screen.
func (h *handler) processScreenReadyReq(c *gin.Context) (screenReadyReq, error) {
	var req screenReadyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, &note.ValidationError{Fields: map[string]string{"viewport_height": "must be a positive number"}}
	}
	return req, nil
}

// processSaveReq binds the capture form and decodes the photo.
func (h *handler) processSaveReq(c *gin.Context) (note.SaveInput, error) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return note.SaveInput{}, err
	}
	if err := req.validate(); err != nil {
		return note.SaveInput{}, err
	}
	return req.toInput()
}

// processEditReq binds the edit body + URI param.
func (h *handler) processEditReq(c *gin.Context) (editReq, error) {
	var req editReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.Key = c.Param("key")
	return req, nil
}
