package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct menjalankan validator.v10 dan mengembalikan map field→pesan
// yang siap dipakai JsonValidationError. Nil berarti lolos.
func ValidateStruct(s any) map[string][]string {
	if err := validate.Struct(s); err != nil {
		out := map[string][]string{}
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				field := strings.ToLower(fe.Field())
				out[field] = append(out[field], fe.Tag())
			}
			return out
		}
		return map[string][]string{"_": {err.Error()}}
	}
	return nil
}
