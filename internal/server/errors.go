package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/spacesedan/textanalytics/internal/models"
)

const (
	DetailIncorrectPassword = "Incorrect password"
	DetailInternal          = "Internal Server Error"
	DetailNotFound          = "Not Found"
	DetailMethodNotAllowed  = "Method Not Allowed"
)

var registerJSONNames sync.Once

// useJSONFieldNames makes binding errors report "text" instead of "Text".
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// respondValidation answers 422 with one issue per offending field.
func respondValidation(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, models.ErrorResponse{
		Detail: validationIssues(err),
	})
}

func validationIssues(err error) []models.ValidationIssue {
	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		issues := make([]models.ValidationIssue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issue := models.ValidationIssue{
				Loc:  []string{"body", fe.Field()},
				Msg:  "Field required",
				Type: "missing",
			}
			if fe.Tag() != "required" {
				issue.Msg = "Value failed the " + fe.Tag() + " check"
				issue.Type = "value_error"
			}
			issues = append(issues, issue)
		}
		return issues
	case errors.As(err, &typeErr):
		loc := []string{"body"}
		if typeErr.Field != "" {
			loc = append(loc, strings.Split(typeErr.Field, ".")...)
		}
		return []models.ValidationIssue{{
			Loc:  loc,
			Msg:  "Input should be a valid " + jsonTypeName(typeErr.Type),
			Type: "type_error",
		}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []models.ValidationIssue{{
			Loc:  []string{"body"},
			Msg:  "JSON decode error",
			Type: "json_invalid",
		}}
	case errors.Is(err, io.EOF):
		return []models.ValidationIssue{{
			Loc:  []string{"body"},
			Msg:  "Field required",
			Type: "missing",
		}}
	default:
		return []models.ValidationIssue{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error",
		}}
	}
}

// respondInternal logs err and answers a generic 500. Pipeline errors never
// reach the client.
func respondInternal(c *gin.Context, err error) {
	slog.Error("[Server] Request failed",
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.String("error", err.Error()))

	c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
		Detail: DetailInternal,
	})
}

// jsonTypeName names t the way a JSON client would see it.
func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "value"
	}
}
