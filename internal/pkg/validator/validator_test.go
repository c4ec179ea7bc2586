package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age,omitempty" validate:"gte=18"`
	Note  string `json:"-" validate:"max=10"`
}

func TestValidate_Passes(t *testing.T) {
	errs := Validate(sample{Email: "ann@example.com", Age: 30})
	assert.Nil(t, errs)
}

func TestValidate_KeysByJSONName(t *testing.T) {
	errs := Validate(sample{Email: "not-an-email", Age: 12})

	assert.Len(t, errs, 2)
	assert.Equal(t, "email", errs["email"])
	assert.Equal(t, "gte", errs["age"])
}

func TestValidate_SkippedJSONTagFallsBackToFieldName(t *testing.T) {
	errs := Validate(sample{Email: "ann@example.com", Age: 30, Note: "far too long for the limit"})

	assert.Equal(t, "max", errs["Note"])
}
