// README: Base handler utilities (JSON helpers, validation error mapping, id parsing).
package handlers

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type errorResponse struct {
	Error string `json:"error"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationResponse struct {
	Errors []fieldError `json:"errors"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under the request's JSON keys.
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// bindJSON decodes the body and writes a 400 on failure. Validation failures
// are itemised per field; anything else is reported as invalid JSON.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		writeJSON(c, http.StatusBadRequest, validationResponse{Errors: out})
		return false
	}
	writeError(c, http.StatusBadRequest, "invalid json")
	return false
}

var fieldMessages = map[string]string{
	"email.email":              "Invalid email",
	"email.required":           "Invalid email",
	"password.min":             "Password must be at least 6 characters",
	"password.max":             "Password must be at most 72 characters",
	"password.required":        "Password is required",
	"first_name.required":      "First name is required",
	"last_name.required":       "Last name is required",
	"currentPassword.required": "Current password is required",
	"newPassword.min":          "New password must be at least 6 characters",
	"newPassword.max":          "New password must be at most 72 characters",
	"newPassword.required":     "New password is required",
	"userId.required":          "userId is required",
	"userId.gt":                "userId must be positive",
	"days.required":            "days is required",
	"days.gt":                  "days must be positive",
	"destination.required_if":  "destination is required when hasDest is true",
	"costRange.max":            "costRange takes at most two values",
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}

// parseID reads a positive integer path or query value.
func parseID(v string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// detached keeps request-scoped values but drops cancellation, so a client
// that hangs up does not abort a store write or a model call halfway.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
