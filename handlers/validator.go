package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// ใช้ชื่อฟิลด์จาก json tag ใน error map
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// แปลง validator error → field map แบบเดียวกับ validateX() เดิม
func fieldErrors(err error) map[string]string {
	errs := map[string]string{}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "this field is required"
		case "email":
			errs[fe.Field()] = "invalid email address"
		case "gt", "gte", "min":
			errs[fe.Field()] = "value is too small"
		case "lt", "lte", "max":
			errs[fe.Field()] = "value is too large"
		case "oneof":
			errs[fe.Field()] = "unsupported value"
		case "datetime":
			errs[fe.Field()] = "invalid date/time format"
		default:
			errs[fe.Field()] = "invalid value"
		}
	}
	return errs
}
