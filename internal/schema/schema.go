package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"psikotes/internal"
	"psikotes/internal/util"
)

type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type userRecord struct {
	NIK       string `json:"nik" validate:"required,numeric,len=16"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Gender    string `json:"gender" validate:"required,oneof=male female undefined"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Religion  string `json:"religion" validate:"omitempty,oneof=islam christian buddhist hindu confucian other"`
	Education string `json:"education" validate:"omitempty,oneof=sd smp sma d1 d2 d3 s1 s2 s3 other"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func ValidateRecord(user internal.NormalizedUser) []Violation {
	rec := userRecord{
		NIK:       user.NIK,
		Name:      user.Name,
		Email:     user.Email,
		Gender:    string(user.Gender),
		Phone:     user.Phone,
		BirthDate: util.DerefString(user.BirthDate),
	}
	if user.Religion != nil {
		rec.Religion = string(*user.Religion)
	}
	if user.Education != nil {
		rec.Education = string(*user.Education)
	}

	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Path: "", Message: err.Error()}}
	}

	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{Path: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "numeric":
		return "must contain digits only"
	case "len":
		return fmt.Sprintf("must be %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a valid international phone number"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a valid timestamp"
	default:
		return "is invalid"
	}
}
