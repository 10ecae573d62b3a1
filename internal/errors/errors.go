package errors

import (
	"net/http"
	"regexp"
	"strings"

	"codeberg.org/geniusgpt/server/internal/logger"
	"github.com/gin-gonic/gin"
)

var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for critical errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Domain outcomes (insufficient balance, no result, provider failure) are
//     sentinel errors owned by their packages; handlers map them to codes here
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeUnauthorized          = "unauthorized"
	CodeNotFound              = "not_found"
	CodeValidationError       = "validation_error"
	CodeServerError           = "server_error"
	CodeBadRequest            = "bad_request"
	CodeConflict              = "conflict"
	CodeTooManyRequests       = "too_many_requests"
	CodeInsufficientBalance   = "insufficient_balance"
	CodeNoResult              = "no_result"
	CodeGenerationUnavailable = "generation_unavailable"
	CodeMalformedOutput       = "malformed_generation_output"
	CodeAccountNotFound       = "account_not_found"
	CodeDuplicateDestination  = "duplicate_destination"
)

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:   CodeUnauthorized,
		Message: message,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNotFound,
		Message: message,
	})
}

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	details := ""

	if err != nil {
		details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 409 conflict error
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "resource conflict"
	}

	c.JSON(http.StatusConflict, ErrorResponse{
		Error:   CodeConflict,
		Message: message,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 402 error when the user's token balance is below the operation floor
func InsufficientBalance(c *gin.Context, message string) {
	if message == "" {
		message = "token balance too low"
	}

	c.JSON(http.StatusPaymentRequired, ErrorResponse{
		Error:   CodeInsufficientBalance,
		Message: message,
	})
}

// returns a 404 error when the model explicitly found nothing
func NoResult(c *gin.Context, message string) {
	if message == "" {
		message = "no result found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNoResult,
		Message: message,
	})
}

// returns a 502 error for provider/transport failures
func GenerationUnavailable(c *gin.Context) {
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeGenerationUnavailable,
		Message: "generation service is unavailable",
	})
}

// returns a 502 error when the model response could not be parsed
func MalformedOutput(c *gin.Context) {
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeMalformedOutput,
		Message: "generation produced an unusable response",
	})
}

// returns a 404 error when no ledger account exists for the user
func AccountNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeAccountNotFound,
		Message: "token account not found",
	})
}

// validates a UUID string format
func IsValidUUID(id string) bool {
	if id == "" {
		return false
	}

	return uuidRegex.MatchString(strings.ToLower(id))
}

// validates a UUID parameter from the request path
func ValidatePathUUID(c *gin.Context, paramName string) (string, bool) {
	id := c.Param(paramName)

	if id == "" {
		BadRequest(c, "missing "+paramName, nil)
		return "", false
	}

	if !IsValidUUID(id) {
		NotFound(c, "resource")
		return "", false
	}

	return id, true
}
