package queries

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"intimacoes/internal/core/ports"
)

// ApologyDescription is returned whenever the assistant cannot produce a suggestion.
const ApologyDescription = "Desculpe, não foi possível gerar uma descrição agora. Preencha o campo manualmente."

// SuggestDescriptionQueryHandler drafts a description through a ports.TextGenerator.
// It never fails on assistant errors: the caller gets ApologyDescription instead. It does not
// touch the entity store, so a slow assistant cannot hold up any mutation.
type SuggestDescriptionQueryHandler struct {
	generator ports.TextGenerator
	timeout   time.Duration
	logger    *slog.Logger
}

// NewSuggestDescriptionQueryHandler creates the handler. A nil generator disables the
// assistant and a non-positive timeout leaves the deadline to the generator.
func NewSuggestDescriptionQueryHandler(
	generator ports.TextGenerator,
	timeout time.Duration,
	logger *slog.Logger,
) SuggestDescriptionQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return SuggestDescriptionQueryHandler{
		generator: generator,
		timeout:   timeout,
		logger:    logger.With("component", "description_assistant"),
	}
}

func (h SuggestDescriptionQueryHandler) Handle(
	ctx context.Context,
	query SuggestDescriptionQuery,
) (SuggestDescriptionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return SuggestDescriptionQueryResponse{}, err
	}

	apology := SuggestDescriptionQueryResponse{Description: ApologyDescription}
	if h.generator == nil {
		return apology, nil
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	text, err := h.generator.Generate(ctx, BuildDescriptionPrompt(query))
	if err != nil {
		h.logger.WarnContext(ctx, "description suggestion failed", "error", err)
		return apology, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return apology, nil
	}

	return SuggestDescriptionQueryResponse{Description: text, Generated: true}, nil
}

// BuildDescriptionPrompt renders the natural-language prompt sent to the assistant.
func BuildDescriptionPrompt(query SuggestDescriptionQuery) string {
	var b strings.Builder
	b.WriteString("Escreva uma descrição curta (até 2 frases) para um lote de intimações.\n")
	if query.CourierName() != "" {
		fmt.Fprintf(&b, "Oficial responsável: %s.\n", query.CourierName())
	}
	if query.Route() != "" {
		fmt.Fprintf(&b, "Rota: %s.\n", query.Route())
	}
	fmt.Fprintf(&b, "Intimações PGFN: %d. Intimações normais: %d.\n", query.PGFNInitial(), query.NormalInitial())
	if query.Notes() != "" {
		fmt.Fprintf(&b, "Observações: %s.\n", query.Notes())
	}
	return b.String()
}
