package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderDraft struct {
	UserName  string `validate:"required"`
	UserEmail string `validate:"required,email"`
	Address   string `validate:"required,min=10"`
}

func TestValidate_Valid(t *testing.T) {
	draft := orderDraft{
		UserName:  "Paul Atreides",
		UserEmail: "paul@arrakis.example",
		Address:   "House 12, Road 5, Dhaka",
	}

	assert.NoError(t, Validate(draft))
}

func TestValidate_MissingFields(t *testing.T) {
	err := Validate(orderDraft{})

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	fields := verr.Fields()
	assert.Equal(t, "is required", fields["UserName"])
	assert.Equal(t, "is required", fields["UserEmail"])
	assert.Equal(t, "is required", fields["Address"])
}

func TestValidate_BadEmail(t *testing.T) {
	err := Validate(orderDraft{
		UserName:  "Paul",
		UserEmail: "not-an-email",
		Address:   "House 12, Road 5, Dhaka",
	})

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be a valid email address", verr.Fields()["UserEmail"])
}

func TestValidate_TooShort(t *testing.T) {
	err := Validate(orderDraft{
		UserName:  "Paul",
		UserEmail: "paul@arrakis.example",
		Address:   "short",
	})

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at least 10 characters", verr.Fields()["Address"])
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(orderDraft{UserName: "Paul", UserEmail: "paul@arrakis.example"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Address")
	assert.Contains(t, err.Error(), "is required")
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("paul@arrakis.example", "email"))
	assert.Error(t, Var("nope", "email"))
	assert.Error(t, Var("", "required"))
}
