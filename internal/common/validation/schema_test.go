package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"accessCode": {Type: "string", MinLength: IntPtr(1), MaxLength: IntPtr(100)},
			"notes":      {Type: "string"},
		},
		Required: []string{"accessCode"},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"accessCode": "ABC123"}, requestSchema())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.FirstError())
}

func TestValidateInput_MissingRequired(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"notes": "hello"}, requestSchema())

	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, result.FirstError(), "accessCode")
}

func TestValidateInput_WrongType(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"accessCode": 42}, requestSchema())

	assert.False(t, result.Valid)
	assert.Contains(t, result.FirstError(), "accessCode")
}

func TestValidateInput_EmptyStringFailsMinLength(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"accessCode": ""}, requestSchema())

	assert.False(t, result.Valid)
}

func TestValidateInput_OptionalFieldMayBeAbsent(t *testing.T) {
	result := ValidateInput(map[string]interface{}{"accessCode": "ok"}, requestSchema())

	assert.True(t, result.Valid)
}
