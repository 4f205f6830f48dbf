package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
)

type sample struct {
	Username string `json:"username" validate:"required,max=32,username"`
	Email    string `json:"email" validate:"required,email"`
	Dob      string `json:"dob" validate:"required,date"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
}

func validSample() sample {
	return sample{Username: "alice_1", Email: "alice@example.com", Dob: "1990-04-01"}
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(validSample()))
}

func TestStruct_ReportsFirstFailingField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sample)
		message string
	}{
		{"missing username", func(s *sample) { s.Username = "" }, "username is required"},
		{"bad charset", func(s *sample) { s.Username = "al ice" }, "username may contain only letters, digits, '_' and '-'"},
		{"bad email", func(s *sample) { s.Email = "nope" }, "email must be a valid email address"},
		{"bad dob", func(s *sample) { s.Dob = "01/04/1990" }, "dob must be a date in YYYY-MM-DD format"},
		{"bad avatar", func(s *sample) { s.Avatar = "not a url" }, "avatar must be a valid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSample()
			tt.mutate(&s)

			err := Struct(s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, commonerrors.ErrValidation))

			de, ok := commonerrors.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, de.Message())
		})
	}
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email", "bob@example.com", "required,email"))

	err := Var("email", "", "required,email")
	require.Error(t, err)
	de, ok := commonerrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "email is required", de.Message())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1990-04-01")
	require.NoError(t, err)
	assert.Equal(t, 1990, d.Year())

	d, err = ParseDate("1990-04-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "1990-04-01", d.Format(DateLayout))

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}
