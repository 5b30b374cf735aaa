package llm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dwalsh/recall/internal/config"
	"github.com/dwalsh/recall/internal/logger"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// Client talks to an OpenAI-compatible chat API. The active provider can be
// switched at runtime; word problems, math feedback and Q&A refinement
// always go to Gemini regardless of the active provider.
type Client struct {
	cfg     *config.Config
	log     *logger.Logger
	timeout time.Duration

	mu       sync.RWMutex
	provider string
	chat     *openai.Client
	gemini   *openai.Client
}

func NewClient(cfg *config.Config) *Client {
	log := logger.Default().WithPrefix("llm")
	log.Info("initializing client with provider: %s", cfg.LLMProvider)

	return &Client{
		cfg:      cfg,
		log:      log,
		timeout:  cfg.LLMTimeout,
		provider: cfg.LLMProvider,
		chat:     newProviderClient(cfg, cfg.LLMProvider),
		gemini:   newProviderClient(cfg, config.ProviderGemini),
	}
}

func newProviderClient(cfg *config.Config, provider string) *openai.Client {
	switch provider {
	case config.ProviderGemini:
		cc := openai.DefaultConfig(cfg.GeminiAPIKey)
		cc.BaseURL = geminiBaseURL
		return openai.NewClientWithConfig(cc)
	case config.ProviderOllama:
		cc := openai.DefaultConfig("ollama")
		cc.BaseURL = cfg.OllamaBaseURL
		return openai.NewClientWithConfig(cc)
	default:
		return openai.NewClient(cfg.OpenAIAPIKey)
	}
}

func (c *Client) Provider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.provider
}

func (c *Client) SetProvider(provider string) error {
	switch provider {
	case config.ProviderGemini, config.ProviderOpenAI, config.ProviderOllama:
	default:
		return fmt.Errorf("unknown llm provider: %q", provider)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.provider = provider
	c.chat = newProviderClient(c.cfg, provider)
	c.log.Info("provider switched to: %s", provider)
	return nil
}

func (c *Client) activeChat() (*openai.Client, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch c.provider {
	case config.ProviderGemini:
		return c.chat, c.cfg.GeminiModel
	case config.ProviderOllama:
		return c.chat, c.cfg.OllamaModel
	default:
		return c.chat, c.cfg.OpenAIModel
	}
}

func (c *Client) complete(ctx context.Context, client *openai.Client, model string, messages []openai.ChatCompletionMessage, temperature float32, maxTokens int) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("llm")

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error("request timed out after %v: model=%s", c.timeout, model)
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		log.Error("chat completion failed: model=%s, err=%v", model, err)
		return "", err
	}
	log.Debug("chat completion in %v: model=%s", time.Since(start), model)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices: model=%s", model)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const feedbackSystemPrompt = `You are a concise tutor. Compare the user's answer to the question.
%s
Respond in this exact format:

SCORE: [1-5]
VERDICT: [one sentence summary]
MISSING: [bullet list of key points the user missed, or "Nothing, great answer!" if complete]
TIP: [one actionable suggestion to improve their understanding]

Be encouraging but honest. Don't waffle.`

const rephraseSystemPrompt = `Rephrase the following question. Keep the exact same meaning and scope.
Do NOT add hints or change what is being asked. Just word it differently.
Return only the rephrased question, nothing else.`

func (c *Client) GradeAnswer(ctx context.Context, questionText, userAnswer string, referenceAnswer *string) (*Feedback, error) {
	referenceBlock := "There is no reference answer. Use your own knowledge to evaluate."
	if referenceAnswer != nil && *referenceAnswer != "" {
		referenceBlock = "The reference answer is:\n" + *referenceAnswer + "\n"
	}

	client, model := c.activeChat()
	raw, err := c.complete(ctx, client, model, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(feedbackSystemPrompt, referenceBlock)},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("QUESTION:\n%s\n\nUSER'S ANSWER:\n%s", questionText, userAnswer)},
	}, 0.3, 500)
	if err != nil {
		return nil, err
	}
	return ParseFeedback(raw), nil
}

func (c *Client) RephraseQuestion(ctx context.Context, questionText string) (string, error) {
	client, model := c.activeChat()
	raw, err := c.complete(ctx, client, model, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: rephraseSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: questionText},
	}, 0.7, 200)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return questionText, nil
	}
	return raw, nil
}

const wordProblemPrompt = `Create a fun, realistic word problem for this math concept.

Concept: %s
Parameters: %s
The student should calculate: %s

Style example (use a DIFFERENT scenario, be creative!): %s

Rules:
- Make it feel like a real-world situation
- Use the exact parameter values provided
- Be clear about what the student needs to calculate
- Keep it concise (2-3 sentences max)
- Don't reveal the answer or formula

Return only the word problem, nothing else.`

func (c *Client) RenderWordProblem(ctx context.Context, concept string, params map[string]float64, asksFor, example string) (string, error) {
	c.log.Debug("generating word problem for: %s", concept)

	prompt := fmt.Sprintf(wordProblemPrompt, concept, formatParams(params), asksFor, example)
	return c.complete(ctx, c.gemini, c.cfg.GeminiModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, 0.8, 300)
}

const mathFeedbackPrompt = `The student solved this math problem:

PROBLEM: %s

CONCEPT: %s
CORRECT ANSWER: %.6g
STUDENT'S ANSWER: %.6g
RESULT: %s

Give brief, helpful feedback (2-3 sentences). If wrong, hint at where they might have gone wrong without giving the full solution. If correct, give a quick "well done" with an optional insight about the concept.`

func (c *Client) MathFeedback(ctx context.Context, question, concept string, correctAnswer, userAnswer float64, isCorrect bool) (string, error) {
	result := "INCORRECT"
	if isCorrect {
		result = "CORRECT"
	}

	prompt := fmt.Sprintf(mathFeedbackPrompt, question, concept, correctAnswer, userAnswer, result)
	return c.complete(ctx, c.gemini, c.cfg.GeminiModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, 0.3, 200)
}

const refineQAPrompt = `You are creating comprehensive study material for a flashcard learning app.

TOPIC: %s

USER'S ROUGH QUESTION:
%s

USER'S ROUGH ANSWER:
%s

Your task is to transform this into HIGH-QUALITY study material:

FOR THE QUESTION:
- Make it clear, precise, and unambiguous
- Keep the original intent but improve the wording

FOR THE ANSWER:
- Create a COMPREHENSIVE reference answer (this will be used to grade recall attempts)
- Include ALL key concepts, definitions, and important details
- Structure it clearly with bullet points or numbered lists where helpful
- Add relevant examples if they aid understanding
- Include any common misconceptions or gotchas
- Use proper technical terminology
- Make it SELF-CONTAINED, assuming the grader has no external knowledge
- Aim for thorough coverage, not brevity

The answer should contain everything someone would need to know to fully understand this topic.
A simple model should be able to grade a user's recall attempt just by comparing against this reference.

Return in this exact format:
QUESTION:
[your improved question]

ANSWER:
[your comprehensive, self-contained reference answer]`

func (c *Client) RefineQA(ctx context.Context, topic, question, answer string) (*RefinedQA, error) {
	c.log.Debug("refining q&a for topic: %s", topic)

	answerBlock := answer
	if answerBlock == "" {
		answerBlock = "(no answer provided, generate a good reference answer)"
	}

	prompt := fmt.Sprintf(refineQAPrompt, topic, question, answerBlock)
	raw, err := c.complete(ctx, c.gemini, c.cfg.GeminiModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, 0.4, 1000)
	if err != nil {
		return nil, err
	}
	return ParseRefinedQA(raw, question, answer), nil
}

func formatParams(params map[string]float64) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" = "+strconv.FormatFloat(params[name], 'g', -1, 64))
	}
	return strings.Join(parts, ", ")
}

// ParseFeedback does a best-effort parse of the structured grading reply.
// Unrecognized lines are ignored; the raw text is always kept.
func ParseFeedback(raw string) *Feedback {
	fb := &Feedback{Raw: raw}
	for _, line := range strings.Split(raw, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		rest := ""
		if i := strings.Index(line, ":"); i >= 0 {
			rest = strings.TrimSpace(line[i+1:])
		}
		switch {
		case strings.HasPrefix(upper, "SCORE:"):
			for _, r := range rest {
				if r >= '0' && r <= '9' {
					fb.Score = int(r - '0')
					break
				}
			}
		case strings.HasPrefix(upper, "VERDICT:"):
			fb.Verdict = rest
		case strings.HasPrefix(upper, "MISSING:"):
			fb.Missing = rest
		case strings.HasPrefix(upper, "TIP:"):
			fb.Tip = rest
		}
	}
	return fb
}

// ParseRefinedQA splits the refinement reply on its QUESTION:/ANSWER:
// markers, keeping the originals when the reply is malformed.
func ParseRefinedQA(raw, originalQuestion, originalAnswer string) *RefinedQA {
	refined := &RefinedQA{Question: originalQuestion, Answer: originalAnswer, Raw: raw}

	if !strings.Contains(raw, "QUESTION:") || !strings.Contains(raw, "ANSWER:") {
		return refined
	}
	parts := strings.SplitN(raw, "ANSWER:", 2)
	question := strings.TrimSpace(strings.Replace(parts[0], "QUESTION:", "", 1))
	answer := ""
	if len(parts) > 1 {
		answer = strings.TrimSpace(parts[1])
	}
	if question != "" {
		refined.Question = question
	}
	if answer != "" {
		refined.Answer = answer
	}
	return refined
}
