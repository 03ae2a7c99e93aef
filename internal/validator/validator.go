package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
	expiryFormat = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("meal_preference", validateMealPreference)
	v.RegisterValidation("card_number", validateCardNumber)
	v.RegisterValidation("card_cvc", validateCardCvc)
	v.RegisterValidation("card_expiry", validateCardExpiry)

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validateMealPreference(fl validator.FieldLevel) bool {
	supportedMeals := map[string]bool{
		"halal":      true,
		"vegetarian": true,
		"no-pork":    true,
		"special":    true,
	}
	return supportedMeals[fl.Field().String()]
}

func validateCardNumber(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	return len(number) == 16 && digitsOnly.MatchString(number)
}

func validateCardCvc(fl validator.FieldLevel) bool {
	cvc := fl.Field().String()
	return len(cvc) == 3 && digitsOnly.MatchString(cvc)
}

func validateCardExpiry(fl validator.FieldLevel) bool {
	return expiryFormat.MatchString(fl.Field().String())
}
