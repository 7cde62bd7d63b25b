package api

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// msisdnRegexp локальный формат номера: 11 цифр, начинается с 01.
var msisdnRegexp = regexp.MustCompile(`^01\d{9}$`)

func validateMSISDN(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return msisdnRegexp.MatchString(str)
}

func registerValidators() error {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	if err := v.RegisterValidation("msisdn", validateMSISDN); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
