package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateTranslationsRequiresAtLeastOneBlock(t *testing.T) {
	err := ValidateTranslations(nil)
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "language block")
}

func TestValidateTranslationsRequiresOneNonEmptyName(t *testing.T) {
	err := ValidateTranslations([]Translation{
		{Language: "en", Name: "  "},
		{Language: "de", Name: ""},
	})
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, ValidateTranslations([]Translation{
		{Language: "en", Name: ""},
		{Language: "de", Name: "Projekt"},
	}))
}

func TestValidateTranslationsRejectsBadTagsAndDuplicates(t *testing.T) {
	require.ErrorIs(t, ValidateTranslations([]Translation{
		{Language: "not a tag!", Name: "x"},
	}), ErrValidation)

	require.ErrorIs(t, ValidateTranslations([]Translation{
		{Language: "en", Name: "x"},
		{Language: "en", Name: "y"},
	}), ErrValidation)
}

func TestCanonicalLanguage(t *testing.T) {
	tag, err := CanonicalLanguage("EN-us")
	require.NoError(t, err)
	require.Equal(t, "en-US", tag)

	_, err = CanonicalLanguage("zz_bad tag")
	require.ErrorIs(t, err, ErrValidation)
}
