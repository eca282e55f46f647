package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"geonotes/internal/note"
	"geonotes/internal/note/repository"
	"geonotes/pkg/response"
)

var errBadBody = errors.New("malformed request body")

// gatewayErrs are the store failures surfaced as 502.
var gatewayErrs = []error{
	repository.ErrFailedToFetch,
	repository.ErrFailedToCreate,
	repository.ErrFailedToUpdate,
	repository.ErrFailedToDelete,
	repository.ErrFailedToGet,
	repository.ErrRejected,
	repository.ErrInvalidCursor,
}

// mapError writes the response for a domain or store error.
func (h *handler) mapError(c *gin.Context, err error) {
	var verr *note.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, note.ErrInvalidInput, verr.Fields)
	case errors.Is(err, note.ErrNoteNotFound), errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, note.ErrNoteNotFound)
	case errors.Is(err, note.ErrInvalidPageSize):
		response.Error(c, err, nil)
	case isGatewayError(err):
		response.BadGateway(c, err)
	default:
		response.InternalError(c, err)
	}
}

func isGatewayError(err error) bool {
	for _, target := range gatewayErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// badRequest answers a request whose body or params could not be used.
func (h *handler) badRequest(c *gin.Context, err error) {
	var verr *note.ValidationError
	if errors.As(err, &verr) {
		response.Error(c, note.ErrInvalidInput, verr.Fields)
		return
	}
	response.Error(c, errBadBody, nil)
}
