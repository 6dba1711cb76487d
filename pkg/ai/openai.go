package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// maxAnswerChars bounds the written answer text sent for grading.
	maxAnswerChars = 2000
	// maxTranscriptChars bounds the transcript sent for interview analysis.
	maxTranscriptChars = 3000
	// interviewQuestionCount is the fixed number of generated interview questions.
	interviewQuestionCount = 5
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "buddybud",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of AI gateway requests",
	}, []string{"capability"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "buddybud",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of AI gateway request failures",
	}, []string{"capability"})
)

// OpenAIConfig defines configuration options for the OpenAI-backed gateway.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	WhisperModel   string
	MaxTokens      int
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// OpenAIGateway implements Gateway and Transcriber against the OpenAI API.
type OpenAIGateway struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGateway builds the gateway using the provided configuration. A
// missing API key is a construction error; callers decide whether that is
// fatal or leaves the gateway unavailable.
func NewOpenAIGateway(cfg OpenAIConfig) (*OpenAIGateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.WhisperModel == "" {
		cfg.WhisperModel = openai.Whisper1
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	tracer := otel.Tracer("github.com/buddybud/buddybud-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGateway{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// GradeWrittenWork grades the student's written answer against the assignment.
func (g *OpenAIGateway) GradeWrittenWork(ctx context.Context, meta AssignmentMeta, answerText string) (WrittenFeedback, error) {
	var feedback WrittenFeedback
	err := g.completeJSON(ctx, "grade_written",
		"You are an expert educational assessor who provides detailed, constructive feedback.",
		buildGradingPrompt(meta, truncate(answerText, maxAnswerChars)),
		g.cfg.MaxTokens,
		&feedback,
	)
	if err != nil {
		return WrittenFeedback{}, err
	}

	if feedback.OverallScore < 0 || feedback.OverallScore > 100 {
		return WrittenFeedback{}, fmt.Errorf("grade written: overall score %d out of range", feedback.OverallScore)
	}

	return feedback, nil
}

// GenerateInterviewQuestions asks for exactly five questions, one per fixed
// category, seeded by the weakest improvement areas from the written grading.
func (g *OpenAIGateway) GenerateInterviewQuestions(ctx context.Context, meta AssignmentMeta, weakAreas []string) ([]InterviewQuestion, error) {
	var payload struct {
		Questions []InterviewQuestion `json:"questions"`
	}

	err := g.completeJSON(ctx, "generate_questions",
		"You are an expert teacher creating assessment questions.",
		buildQuestionPrompt(meta, weakAreas),
		min(1000, g.cfg.MaxTokens),
		&payload,
	)
	if err != nil {
		return nil, err
	}

	if len(payload.Questions) != interviewQuestionCount {
		return nil, fmt.Errorf("generate questions: expected %d questions, got %d", interviewQuestionCount, len(payload.Questions))
	}

	categories := []string{"process", "concept", "application", "reflection", "extension"}
	for i := range payload.Questions {
		if strings.TrimSpace(payload.Questions[i].Question) == "" {
			return nil, fmt.Errorf("generate questions: question %d is empty", i+1)
		}
		// Numbering and category follow the fixed generation order.
		payload.Questions[i].Number = i + 1
		payload.Questions[i].Type = categories[i]
	}

	return payload.Questions, nil
}

// AnalyzeInterview scores the verbal interview from its transcript.
func (g *OpenAIGateway) AnalyzeInterview(ctx context.Context, meta AssignmentMeta, writtenScore, durationSeconds int, transcript string) (InterviewAnalysis, error) {
	if strings.TrimSpace(transcript) == "" {
		return InterviewAnalysis{}, fmt.Errorf("analyze interview: transcript is required")
	}

	var analysis InterviewAnalysis
	err := g.completeJSON(ctx, "analyze_interview",
		"You are analyzing a student's interview performance.",
		buildInterviewPrompt(meta, writtenScore, durationSeconds, truncate(transcript, maxTranscriptChars)),
		min(800, g.cfg.MaxTokens),
		&analysis,
	)
	if err != nil {
		return InterviewAnalysis{}, err
	}

	if analysis.InterviewScore < 0 || analysis.InterviewScore > 100 {
		return InterviewAnalysis{}, fmt.Errorf("analyze interview: score %d out of range", analysis.InterviewScore)
	}

	if len(analysis.Misconceptions) > 0 {
		g.logger.Warn().Int("count", len(analysis.Misconceptions)).Msg("misconceptions detected in interview")
	}

	return analysis, nil
}

// GenerateStudyPlan produces the personalized study plan from the combined scores.
func (g *OpenAIGateway) GenerateStudyPlan(ctx context.Context, scores ScoreSummary, weak, strong []TopicResult, subScores InterviewSubScores) (StudyPlan, error) {
	var plan StudyPlan
	err := g.completeJSON(ctx, "generate_study_plan",
		"You are creating a personalized study plan.",
		buildStudyPlanPrompt(scores, weak, strong, subScores),
		min(1000, g.cfg.MaxTokens),
		&plan,
	)
	if err != nil {
		return StudyPlan{}, err
	}

	return plan, nil
}

// Transcribe converts recorded interview media to text via the Whisper API.
func (g *OpenAIGateway) Transcribe(ctx context.Context, filename string, media io.Reader) (string, error) {
	ctx, span := g.tracer.Start(ctx, "openai.transcribe", trace.WithAttributes(
		attribute.String("model", g.cfg.WhisperModel),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    g.cfg.WhisperModel,
		FilePath: filename,
		Reader:   media,
	})
	aiDuration.WithLabelValues("transcribe").Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues("transcribe").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("transcribe: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		err := fmt.Errorf("transcribe: empty transcription returned")
		aiFailures.WithLabelValues("transcribe").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	g.logger.Info().Int("chars", len(text)).Msg("transcription completed")

	return text, nil
}

func (g *OpenAIGateway) completeJSON(parent context.Context, capability, system, user string, maxTokens int, out interface{}) error {
	ctx, span := g.tracer.Start(parent, "openai."+capability, trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.cfg.Model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	})
	aiDuration.WithLabelValues(capability).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(capability).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("openai %s: %w", capability, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("openai %s: no choices returned", capability)
		aiFailures.WithLabelValues(capability).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		aiFailures.WithLabelValues(capability).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("openai %s: parse response: %w", capability, err)
	}

	return nil
}

// truncate bounds text to limit characters, never splitting a rune.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
