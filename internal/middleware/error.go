package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pillpal/backend/internal/service"
)

// ErrorBody is the uniform JSON error shape. Details carries per-field
// validation messages when binding fails.
type ErrorBody struct {
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// ErrorHandler maps errors attached via c.Error to HTTP statuses. Handlers
// never translate service errors themselves; they attach and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := mapError(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[ErrorHandler] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, body)
	}
}

func mapError(err error) (int, ErrorBody) {
	body := ErrorBody{Message: err.Error(), Timestamp: time.Now()}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		body.Message = "Validation failed"
		body.Details = make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			body.Details[jsonFieldName(fe.Field())] = validationMessage(fe)
		}
		return http.StatusBadRequest, body
	}

	var imageErr *service.ImageHostError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, body
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, body
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, body
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, body
	case errors.As(err, &imageErr):
		return http.StatusInternalServerError, body
	default:
		return http.StatusInternalServerError, body
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// jsonFieldName converts a Go struct field name to its snake_case JSON
// key, so validation details line up with the request body fields.
func jsonFieldName(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before a new word, but keep acronyms like ID together.
			if i > 0 && !unicode.IsUpper(runes[i-1]) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// abortWithError attaches err and stops the chain; the ErrorHandler turns
// it into a response on the way out.
func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
