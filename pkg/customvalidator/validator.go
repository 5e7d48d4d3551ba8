// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"reflect"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"

	"sport-inventory/pkg/constants"
)

// RegisterCustomValidations "собирает" все наши кастомные правила валидации
// и регистрирует их в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	registerNullTypes(v)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("request_type", isRequestType); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_status", isResolvedStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("equipment_status", isEquipmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("profile_role", isProfileRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("notblank", isNotBlank); err != nil {
		return err
	}

	return nil
}

func isRequestType(fl validator.FieldLevel) bool {
	return constants.RequestType(fl.Field().String()).Valid()
}

// Целевой статус при обработке заявки: только approved или rejected.
func isResolvedStatus(fl validator.FieldLevel) bool {
	return constants.RequestStatus(fl.Field().String()).Resolved()
}

func isEquipmentStatus(fl validator.FieldLevel) bool {
	return constants.EquipmentStatus(fl.Field().String()).Valid()
}

func isProfileRole(fl validator.FieldLevel) bool {
	return constants.Role(fl.Field().String()).Valid()
}

func isNotBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) != ""
	case reflect.Ptr:
		if field.IsNil() {
			return true
		}
		return strings.TrimSpace(field.Elem().String()) != ""
	}
	return true
}

// registerNullTypes учит валидатор "смотреть внутрь" типов null.String, null.Int и т.д.
func registerNullTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.String); ok && val.Valid {
			return val.String
		}
		return nil
	}, null.String{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Int); ok && val.Valid {
			return val.Int
		}
		return nil
	}, null.Int{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Float64); ok && val.Valid {
			return val.Float64
		}
		return nil
	}, null.Float64{})
}
