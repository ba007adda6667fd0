package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sessionOptions struct {
	Mode       string `validate:"omitempty,game_mode"`
	Difficulty string `validate:"omitempty,difficulty"`
}

func TestDomainValidations(t *testing.T) {
	v := GetValidator()

	assert.NoError(t, v.Struct(sessionOptions{}))
	assert.NoError(t, v.Struct(sessionOptions{Mode: "pvai", Difficulty: "medium"}))
	assert.Error(t, v.Struct(sessionOptions{Mode: "online"}))
	assert.Error(t, v.Struct(sessionOptions{Difficulty: "impossible"}))
}

func TestRegisterDomainValidations(t *testing.T) {
	v := validator.New()
	assert.Panics(t, func() { _ = v.Struct(sessionOptions{Mode: "pvp"}) }, "tags are unknown before registration")

	assert.NoError(t, RegisterDomainValidations(v))
	assert.NoError(t, v.Struct(sessionOptions{Mode: "pvp", Difficulty: "easy"}))
	assert.Error(t, v.Struct(sessionOptions{Mode: "pvp", Difficulty: "nightmare"}))
}
