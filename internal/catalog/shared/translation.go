package shared

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Translation is one locale-specific text block of a catalog entity.
type Translation struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ValidateTranslations enforces the multilingual entity rule: at least one
// block with a non-empty name, valid BCP-47 tags, no duplicate languages.
func ValidateTranslations(blocks []Translation) error {
	if len(blocks) == 0 {
		return fmt.Errorf("%w: at least one language block is required", ErrValidation)
	}
	seen := make(map[string]struct{}, len(blocks))
	named := false
	for _, block := range blocks {
		tag, err := language.Parse(block.Language)
		if err != nil {
			return fmt.Errorf("%w: invalid language tag %q", ErrValidation, block.Language)
		}
		key := tag.String()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate language %q", ErrValidation, key)
		}
		seen[key] = struct{}{}
		if strings.TrimSpace(block.Name) != "" {
			named = true
		}
	}
	if !named {
		return fmt.Errorf("%w: at least one language block needs a non-empty name", ErrValidation)
	}
	return nil
}

// CanonicalLanguage normalizes a BCP-47 tag to its canonical string form.
func CanonicalLanguage(raw string) (string, error) {
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: invalid language tag %q", ErrValidation, raw)
	}
	return tag.String(), nil
}
