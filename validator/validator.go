package validator

import (
	"fmt"

	"github.com/erraggy/oascheck/internal/pathutil"
)

// Validate runs one validation pass over doc, starting at the document
// root "#". It returns nil for a conformant document, a
// *oaserrors.ValidationError listing every finding in report order, or a
// *oaserrors.ConfigError for invalid options.
//
// Example:
//
//	err := validator.Validate(spec,
//	    validator.WithFlags(validator.NoFlags),
//	    validator.WithFlag(validator.IgnoreUnusedTags),
//	)
func Validate[D Validatable[D]](doc D, opts ...Option) error {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return fmt.Errorf("validator: invalid options: %w", err)
	}

	cfg.logger.Debug("validation started",
		"document", fmt.Sprintf("%T", doc),
		"flags", cfg.flags.String(),
	)

	ctx := NewContext(doc, cfg.flags)
	doc.ValidateWithContext(ctx, pathutil.Root)

	cfg.logger.Debug("validation finished",
		"errors", len(ctx.errors),
		"visited", ctx.VisitedCount(),
	)
	return ctx.Err()
}
