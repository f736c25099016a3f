package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	summaryModel       = "gemini-2.0-flash"
	maxTranscriptChars = 20000
)

// Analyzer turns raw call transcripts into short summaries. The genai client
// is created lazily on first use so the process can boot without a key and
// the call feature degrades instead of failing startup.
type Analyzer struct {
	apiKey     string
	clientOpts []option.ClientOption

	mu     sync.Mutex
	client *genai.Client
}

func NewAnalyzer(apiKey string, opts ...option.ClientOption) *Analyzer {
	return &Analyzer{
		apiKey:     apiKey,
		clientOpts: opts,
	}
}

func (a *Analyzer) AnalyzeTranscript(ctx context.Context, transcript string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", fmt.Errorf("transcript is empty")
	}
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	client, err := a.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(summaryModel)
	prompt := "Summarize this phone call transcript in two or three sentences. " +
		"Mention who called, what they wanted, and any follow-up action.\n\n" + transcript

	slog.DebugContext(ctx, "summarizing transcript", "model", summaryModel, "length", len(transcript))
	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		slog.ErrorContext(ctx, "transcript summarization failed", "error", err)
		return "", err
	}

	summary := extractText(res)
	if summary == "" {
		return "", fmt.Errorf("empty summary received")
	}
	return summary, nil
}

func (a *Analyzer) getClient(ctx context.Context) (*genai.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	opts := append(a.clientOpts, option.WithAPIKey(a.apiKey))
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func extractText(res *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range res.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
