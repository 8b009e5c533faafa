package dto

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/quotebot/internal/domain"
)

// RequestError lists the parameters a request got wrong, keyed by their
// query or path name. It unwraps to domain.ErrValidation, so HandleError
// answers 400 with Fields as the envelope's details.
type RequestError struct {
	Fields map[string]string
}

func (e *RequestError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}

	return "invalid request: " + strings.Join(parts, "; ")
}

func (e *RequestError) Unwrap() error { return domain.ErrValidation }

// Field builds a RequestError for one parameter.
func Field(name, message string) *RequestError {
	return &RequestError{Fields: map[string]string{name: message}}
}

var requestValidator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "uri", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}

		return ""
	})

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return domain.IsDateKey(fl.Field().String())
	})
	_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		return domain.IsMonthKey(fl.Field().String())
	})

	return v
})

// Validate checks v's validate tags. Failures come back as a *RequestError.
func Validate(v any) error {
	err := requestValidator().Struct(v)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = fieldMessage(fe)
	}

	return &RequestError{Fields: fields}
}

// BindQuery binds and validates query parameters. A value gin cannot
// convert, such as limit=ten, is reported under "query".
func BindQuery(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return Field("query", "malformed query parameters")
	}

	return Validate(v)
}

// BindURI binds and validates path parameters.
func BindURI(c *gin.Context, v any) error {
	if err := c.ShouldBindUri(v); err != nil {
		return Field("path", "malformed path parameters")
	}

	return Validate(v)
}

var fieldMessages = map[string]string{
	"required":  "this field is required",
	"isodate":   "must be a date in YYYY-MM-DD form",
	"yearmonth": "must be a month in YYYY-MM form",
	"gte":       "must be greater than or equal to {param}",
	"lte":       "must be less than or equal to {param}",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Tag()]; ok {
		return strings.ReplaceAll(msg, "{param}", fe.Param())
	}

	return "failed validation: " + fe.Tag()
}
