package ports

import (
	"context"
)

// TextGenerator produces free text from a natural-language prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
