package routes

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"ceylon-compass-server/types"
)

var (
	translator ut.Translator
	setupOnce  sync.Once
)

// setupValidation reports binding failures with json field names and English
// messages. It configures gin's shared validator once.
func setupValidation() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)

		locale := en.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(v, translator)
	})
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

// bindJSON decodes the body into dst and converts binding failures into
// validation errors. Missing required inputs become a field list.
func bindJSON(c *gin.Context, dst any) error {
	setupValidation()
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	return bindError(err)
}

func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing, invalid []string
		var first string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, fe.Field())
			if first == "" {
				if translator != nil {
					first = fe.Translate(translator)
				} else {
					first = fe.Error()
				}
			}
		}
		if len(missing) > 0 {
			return types.MissingFields(missing...)
		}
		return &types.AppError{Kind: types.KindValidation, Message: first, Field: invalid[0], Fields: invalid}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return types.Validation("Request body is required")
	case errors.As(err, &syntaxErr):
		return types.Validation("Request body is not valid JSON")
	case errors.As(err, &typeErr):
		return types.FieldError(typeErr.Field, "Invalid value for "+typeErr.Field)
	default:
		return types.Validation("Invalid request data")
	}
}
