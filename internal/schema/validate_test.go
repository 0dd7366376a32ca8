package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfile_Valid(t *testing.T) {
	doc := `{
		"personalInfo": {"firstName": "Jane", "email": "jane@example.com"},
		"totalYearsOfExperience": 4.5,
		"experience": [{"company": "Acme", "isCurrent": true, "highlights": ["Shipped"]}],
		"education": [{"institution": "MIT", "gpa": 3.9}],
		"skills": {"technical": ["Go"], "soft": [], "languages": [], "tools": []}
	}`

	assert.NoError(t, ValidateProfile([]byte(doc)))
}

func TestValidateProfile_PartialDocumentIsValid(t *testing.T) {
	assert.NoError(t, ValidateProfile([]byte(`{"summary": "Engineer"}`)))
}

func TestValidateProfile_WrongTypes(t *testing.T) {
	doc := `{"totalYearsOfExperience": "five", "skills": ["Go"], "experience": [{"highlights": "one"}]}`

	err := ValidateProfile([]byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 3)
	assert.Contains(t, validationErr.Fields(), "skills")
	assert.Contains(t, validationErr.Fields(), "totalYearsOfExperience")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateProfile_RootMustBeObject(t *testing.T) {
	err := ValidateProfile([]byte(`[1, 2]`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateProfile_MalformedJSON(t *testing.T) {
	err := ValidateProfile([]byte(`{"summary":`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}
