package categorytypes

import (
	"fmt"
	"strings"

	"github.com/foliohq/folio/internal/catalog/shared"
)

func (s *Service) validate(ct CategoryType) error {
	if strings.TrimSpace(ct.Code) == "" {
		return fmt.Errorf("%w: category type code", shared.ErrRequiredField)
	}
	if strings.TrimSpace(ct.Name) == "" {
		return fmt.Errorf("%w: category type name", shared.ErrRequiredField)
	}
	return nil
}
