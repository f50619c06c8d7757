package validator

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("poi_category", func(fl validator.FieldLevel) bool {
		return domain.POICategory(fl.Field().String()).IsValid()
	})
	_ = validate.RegisterValidation("transport_mode", func(fl validator.FieldLevel) bool {
		return domain.TransportMode(fl.Field().String()).IsValid()
	})
}

// Validate - валидация структуры; ошибки полей возвращаются как INVALID_REQUEST с деталями
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.Wrap(errors.ErrInvalidRequest, err)
	}

	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return errors.ErrInvalidRequest.WithDetails(details)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
