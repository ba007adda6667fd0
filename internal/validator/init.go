package validator

import (
	"ctchen222/tictactoe-session/internal/bot"
	"ctchen222/tictactoe-session/internal/game"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	must(RegisterDomainValidations(validate))
}

// RegisterDomainValidations adds the game enums as tags, usable as
// `validate:"omitempty,game_mode"` or, on gin's engine, `binding:"difficulty"`.
func RegisterDomainValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("game_mode", func(fl validator.FieldLevel) bool {
		return game.Mode(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return bot.ValidDifficulty(fl.Field().String())
	})
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}
