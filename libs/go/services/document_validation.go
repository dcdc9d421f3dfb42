package services

import (
	"fmt"
	"strings"

	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"go.uber.org/multierr"
)

// ValidateDraft reports every missing required field. A non-nil result blocks generation.
func ValidateDraft(draft *business.DocumentDraft) error {
	if draft == nil {
		return &ValidationError{Err: ErrNoLineItems, Field: "items"}
	}

	var err error
	if strings.TrimSpace(draft.Client.Name) == "" {
		err = multierr.Append(err, &ValidationError{
			Err:   ErrClientNameRequired,
			Field: "client.name",
		})
	}

	if len(draft.Items) == 0 {
		err = multierr.Append(err, &ValidationError{
			Err:   ErrNoLineItems,
			Field: "items",
		})
	}

	for i, item := range draft.Items {
		if strings.TrimSpace(item.Description) == "" {
			err = multierr.Append(err, &ValidationError{
				Err:     ErrItemDescriptionRequired,
				Field:   fmt.Sprintf("items[%d].description", i),
				Details: fmt.Sprintf("line item %d has no description", i+1),
			})
		}
	}

	return err
}
