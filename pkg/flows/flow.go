package flows

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/tmc/langchaingo/llms"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/slangscope/slangscope/config"
	"github.com/slangscope/slangscope/internal"
	"github.com/slangscope/slangscope/pkg/models"
)

var log = internal.GetLogger()

var tracer = otel.Tracer("github.com/slangscope/slangscope/pkg/flows")

// ErrMalformedOutput is returned when a completion can't be decoded into, or
// fails validation against, the flow's output type.
var ErrMalformedOutput = errors.New("malformed model output")

const schemaInstructions = `

Respond only with a single JSON object that conforms to the JSON schema below.
Do not wrap the JSON in markdown and do not add any other text.

JSON schema:
%s
`

// Flow pairs a prompt template with the JSON schema of its output.
// In is the template data; Out is decoded from the model's completion.
type Flow[In any, Out any] struct {
	Name     string
	template string
	schema   string

	llm          models.SlangLLM
	validate     *validator.Validate
	maxRetries   int
	retryBackoff time.Duration
	maxTokens    int
}

func NewFlow[In any, Out any](
	name string,
	promptTemplate string,
	llm models.SlangLLM,
	cfg *config.Config,
) (*Flow[In, Out], error) {
	schema, err := outputSchema[Out]()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return &Flow[In, Out]{
		Name:         name,
		template:     promptTemplate,
		schema:       schema,
		llm:          llm,
		validate:     models.NewValidator(),
		maxRetries:   cfg.Flows.MaxRetries,
		retryBackoff: time.Duration(cfg.Flows.RetryBackoff) * time.Millisecond,
		maxTokens:    cfg.Flows.MaxTokens,
	}, nil
}

// Prompt renders the full prompt sent to the model for input.
func (f *Flow[In, Out]) Prompt(input In) (string, error) {
	prompt, err := internal.ParsePrompt(f.template, input)
	if err != nil {
		return "", fmt.Errorf("%s: failed to render prompt: %w", f.Name, err)
	}
	return prompt + fmt.Sprintf(schemaInstructions, f.schema), nil
}

// Schema returns the JSON schema of the flow's output.
func (f *Flow[In, Out]) Schema() string {
	return f.schema
}

// Run validates input, calls the model and decodes its completion. Malformed
// completions are retried; model errors and context cancellation are not.
func (f *Flow[In, Out]) Run(ctx context.Context, input In) (*Out, error) {
	ctx, span := tracer.Start(ctx, "flow."+f.Name)
	defer span.End()

	if err := f.validate.Struct(input); err != nil {
		return nil, models.NewBadRequestError(err.Error())
	}

	prompt, err := f.Prompt(input)
	if err != nil {
		return nil, err
	}

	options := []llms.CallOption{llms.WithTemperature(0)}
	if f.maxTokens > 0 {
		options = append(options, llms.WithMaxTokens(f.maxTokens))
	}

	attempts := 0
	var lastErr error
	result, err := failsafe.Get(func() (*Out, error) {
		attempts++
		if err := ctx.Err(); err != nil {
			lastErr = err
			return nil, err
		}

		completion, err := f.llm.Call(ctx, prompt, options...)
		if err != nil {
			lastErr = err
			return nil, err
		}

		out, err := f.decode(completion)
		if err != nil {
			log.Warnf(
				"%s: attempt %d returned malformed output: %v (%q)",
				f.Name, attempts, err, internal.Truncate(completion, 200),
			)
		}
		lastErr = err
		return out, err
	}, f.retryPolicy())

	span.SetAttributes(attribute.Int("flow.attempts", attempts))
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		span.RecordError(lastErr)
		span.SetStatus(codes.Error, lastErr.Error())
		return nil, fmt.Errorf("%s: %w", f.Name, lastErr)
	}

	return result, nil
}

func (f *Flow[In, Out]) retryPolicy() retrypolicy.RetryPolicy[*Out] {
	builder := retrypolicy.Builder[*Out]().
		HandleErrors(ErrMalformedOutput).
		WithMaxRetries(f.maxRetries)
	if f.retryBackoff > 0 {
		builder = builder.WithBackoff(f.retryBackoff, 10*f.retryBackoff)
	}
	return builder.Build()
}

func (f *Flow[In, Out]) decode(completion string) (*Out, error) {
	raw, err := extractJSON(completion)
	if err != nil {
		return nil, err
	}

	out := new(Out)
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	if err := f.validate.Struct(out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	return out, nil
}

func outputSchema[Out any]() (string, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	s := r.Reflect(new(Out))
	// The model only needs the shape, not the meta-schema reference.
	s.Version = ""

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to generate output schema: %w", err)
	}
	return string(b), nil
}
