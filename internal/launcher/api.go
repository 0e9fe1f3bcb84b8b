package launcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/bedrock"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/aws/aws-sdk-go-v2/config"
)

// apiSystemPrompt frames the payload for direct API execution, where there
// is no CLI harness to establish the agent's role.
const apiSystemPrompt = `You are the lead agent of a ServiceNow development swarm.
The user message is a swarm instruction document: a session identity, a
classified objective, a team roster, and a coordination protocol. Execute
the plan it describes, honoring the activation order and readiness-flag
protocol exactly as written.`

// APIConfig contains configuration for creating an APIRunner.
type APIConfig struct {
	// Model is the model to use. If empty, a current default is chosen.
	Model anthropic.Model
	// APIKey is the Anthropic API key. If empty, uses ANTHROPIC_API_KEY.
	APIKey string
	// UseAWSBedrock routes requests through AWS Bedrock instead of the
	// direct API.
	UseAWSBedrock bool
	// AWSRegion is the AWS region for Bedrock (e.g., "us-west-2").
	AWSRegion string
	// AWSProfile is the optional AWS profile name to use.
	AWSProfile string
}

// APIRunner hands the payload to the model directly through the Anthropic
// API, bypassing the agent CLI. Useful where the CLI is unavailable or a
// single-call execution is preferred.
type APIRunner struct {
	inner anthropic.Client
	model anthropic.Model
}

// NewAPIRunner creates an APIRunner from the given configuration.
func NewAPIRunner(cfg APIConfig) (*APIRunner, error) {
	var opts []option.RequestOption

	if cfg.UseAWSBedrock {
		ctx := context.Background()

		var loadOpts []func(*config.LoadOptions) error
		if cfg.AWSRegion != "" {
			loadOpts = append(loadOpts, config.WithRegion(cfg.AWSRegion))
		}
		if cfg.AWSProfile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.AWSProfile))
		}

		opts = append(opts, bedrock.WithLoadDefaultConfig(ctx, loadOpts...))
	} else {
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
		}
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	model := cfg.Model
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_20250514
	}

	return &APIRunner{
		inner: anthropic.NewClient(opts...),
		model: model,
	}, nil
}

// Run sends the payload as a single message and reports the outcome.
// API errors become a failed Result, not a returned error.
func (r *APIRunner) Run(ctx context.Context, sessionID, payload string) Result {
	start := time.Now()

	resp, err := r.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: 8192,
		System: []anthropic.TextBlockParam{
			{Text: apiSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(payload)),
		},
	})

	result := Result{
		SessionID: sessionID,
		Mode:      "api",
		Succeeded: err == nil,
		Duration:  time.Since(start),
	}
	if err != nil {
		result.Err = err.Error()
		return result
	}

	var text string
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text += variant.Text
		}
	}
	result.Output = tail(text, 4096)
	return result
}

// Verify both runners implement Runner at compile time.
var (
	_ Runner = (*CLIRunner)(nil)
	_ Runner = (*APIRunner)(nil)
)
