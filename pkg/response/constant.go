package response

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	ValidationErrorCode     = 1
	NotFoundErrorCode       = 404
	TooManyRequestsCode     = 429
	InternalServerErrorCode = 500
	BadGatewayErrorCode     = 502
)
