package intent

import (
	"context"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/convstate"
	"github.com/campusbot/campus-linebot-go/internal/genai"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/stringutil"
)

// Options configures a Classifier.
type Options struct {
	// LLM labels messages the rules skip. nil disables the LLM step.
	LLM genai.Classifier

	// States lets a pending follow-up override classification. nil
	// disables the pending step.
	States *convstate.Store

	// Tools feeds the classification prompt.
	Tools []ToolInfo

	// CacheSize bounds the LLM label cache.
	CacheSize int

	// LLMTimeout bounds each LLM call.
	LLMTimeout time.Duration

	Logger  *logger.Logger
	Metrics *metrics.Metrics
}

// Classifier assigns each incoming message an intent.
type Classifier struct {
	llm     genai.Classifier
	states  *convstate.Store
	cache   *cache
	prompt  string
	timeout time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

const defaultLLMTimeout = 10 * time.Second

// New builds a classifier.
func New(opts Options) *Classifier {
	if opts.LLMTimeout <= 0 {
		opts.LLMTimeout = defaultLLMTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.New("info")
	}
	return &Classifier{
		llm:     opts.LLM,
		states:  opts.States,
		cache:   newCache(opts.CacheSize),
		prompt:  BuildPrompt(opts.Tools),
		timeout: opts.LLMTimeout,
		log:     log.WithModule("intent"),
		metrics: opts.Metrics,
	}
}

// Classify decides which tool handles the message. It never returns an
// error: every failure path degrades to the open QA intent.
func (c *Classifier) Classify(ctx context.Context, userID, text string) Result {
	if result, ok := c.fromPending(userID); ok {
		c.metrics.RecordClassification(string(result.Source), result.Intent.String())
		return result
	}

	if matched, ok := MatchRule(text); ok {
		c.metrics.RecordClassification(string(SourceRule), matched.String())
		return Result{Intent: matched, Source: SourceRule}
	}

	if result, ok := c.fromLLM(ctx, userID, text); ok {
		c.metrics.RecordClassification(string(result.Source), result.Intent.String())
		return result
	}

	c.metrics.RecordClassification(string(SourceDefault), IntentQA.String())
	return Result{Intent: IntentQA, Source: SourceDefault}
}

// fromPending routes a follow-up reply back to the tool that asked for it.
// The state itself is consumed later by the tool, not here.
func (c *Classifier) fromPending(userID string) (Result, bool) {
	if c.states == nil || userID == "" {
		return Result{}, false
	}
	state, ok := c.states.Peek(userID)
	if !ok {
		return Result{}, false
	}
	pending, ok := ParseIntent(state.PendingIntent)
	if !ok {
		c.log.Warnf("pending state names unknown intent %q, clearing", state.PendingIntent)
		c.states.Clear(userID)
		return Result{}, false
	}
	return Result{Intent: pending, Source: SourcePending}, true
}

func (c *Classifier) fromLLM(ctx context.Context, userID, text string) (Result, bool) {
	if c.llm == nil {
		return Result{}, false
	}

	key := stringutil.Normalize(text)
	if cached, ok := c.cache.get(key); ok {
		c.metrics.RecordCacheOp("hit")
		return Result{Intent: cached, Source: SourceCache}, true
	}
	c.metrics.RecordCacheOp("miss")

	llmCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	reply, err := c.llm.Classify(llmCtx, c.prompt, text)
	c.metrics.RecordClassificationDuration(time.Since(start).Seconds())
	if err != nil {
		c.log.WithUserID(userID).WithError(err).Warnf(
			"llm classification failed, falling back to qa")
		return Result{}, false
	}

	intent := parseReply(reply)
	c.cache.put(key, intent)
	return Result{Intent: intent, Source: SourceLLM}, true
}
