package proposal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frencoae/upwork-responder/internal/ai"
	"github.com/frencoae/upwork-responder/internal/models"

	"go.uber.org/zap"
)

// FallbackModel is reported when the provider call failed and the
// deterministic fallback letter was substituted.
const FallbackModel = "fallback"

const systemPersona = "You are an expert freelancer who writes winning Upwork proposals that get high response rates. You understand client needs and provide specific, relevant examples."

// Result is the outcome of one generation call.
type Result struct {
	Text  string
	Model string
}

// Generator produces proposal drafts. It never returns an error: any
// provider failure, timeout or empty completion is replaced by the fallback
// letter. It has no side effects beyond the outbound provider call.
type Generator struct {
	provider ai.Provider
	timeout  time.Duration
	logger   *zap.Logger
}

func NewGenerator(provider ai.Provider, timeout time.Duration, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

// Generate calls the provider with the caller-supplied model parameters. The
// call is bounded by the generator's timeout; on timeout it falls back the
// same way as on a hard failure.
func (g *Generator) Generate(ctx context.Context, prompt string, settings models.AISettings, job models.JobPosting, userName string) Result {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.provider.Complete(ctx, ai.Request{
		System:      systemPersona,
		Prompt:      prompt,
		Model:       settings.Model,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})

	if err != nil || text == "" {
		g.logger.Warn("provider failed, using fallback proposal",
			zap.String("model", settings.Model),
			zap.String("job_title", job.Title),
			zap.Error(err),
		)
		return Result{
			Text:  FallbackProposal(job, userName),
			Model: FallbackModel,
		}
	}

	return Result{
		Text:  text,
		Model: settings.Model,
	}
}

// FallbackProposal builds the fixed-shape letter used when generation fails.
// Deterministic: it depends only on the client name, job title, the first
// two skills and the freelancer's name.
func FallbackProposal(job models.JobPosting, userName string) string {
	clientName := job.Client.Name
	if clientName == "" {
		clientName = "Client"
	}

	field := "this field"
	if len(job.Skills) > 0 {
		top := job.Skills
		if len(top) > 2 {
			top = top[:2]
		}
		field = strings.Join(top, " and ")
	}

	return fmt.Sprintf(`Dear %s,

I am writing to express my interest in your "%s" project. With my experience in %s, I am confident I can help you achieve your objectives.

I have successfully completed similar projects where I delivered [relevant achievement]. My approach focuses on [key methodology] to ensure [desired outcome].

I would be happy to discuss how I can contribute to your project's success. Please let me know a convenient time for a quick call.

Best regards,
%s`, clientName, job.Title, field, userName)
}
