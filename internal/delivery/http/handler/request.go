package handler

import (
	"errors"
	"reflect"
	"strings"

	"job-portal/internal/delivery/http/middleware"
	"job-portal/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindBody decodes the request body into dst and runs its validate tags.
// An empty body is accepted when allowEmpty is set.
func bindBody(c fiber.Ctx, dst any, allowEmpty bool) error {
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(dst); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
	} else if !allowEmpty {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]response.FieldError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, response.FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
			}
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, fields, err)
		}
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	return nil
}

func pathUUID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func viewerID(c fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	return id
}
