package controller

import (
	"fmt"

	"ctchen222/tictactoe-session/internal/validator"

	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
)

// RegisterBindings makes the game_mode and difficulty tags available to
// gin's request binding.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return validator.RegisterDomainValidations(v)
}
