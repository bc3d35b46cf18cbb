package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/convstate"
	"github.com/campusbot/campus-linebot-go/internal/genai"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) Classify(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) Provider() genai.Provider { return genai.ProviderGroq }
func (f *fakeLLM) Close() error             { return nil }

var testTools = []ToolInfo{
	{Name: "location", Description: "find places on campus"},
	{Name: "locker", Description: "locker pickup hours"},
	{Name: "servery", Description: "meal service hours"},
	{Name: "handbook", Description: "download major handbooks"},
	{Name: "faq", Description: "curated campus answers"},
	{Name: "qa", Description: "open questions"},
}

func TestClassifyRules(t *testing.T) {
	c := New(Options{Tools: testTools})

	tests := []struct {
		text string
		want Intent
	}{
		{"when do lockers open?", IntentLocker},
		{"locker hours", IntentLocker},
		{"servery times at krupp", IntentServery},
		{"what time is dinner?", IntentServery},
		{"send me the physics handbook", IntentHandbook},
		{"how do i connect to the wifi", IntentFAQ},
		{"how do i get a locker", IntentFAQ},
		{"where is the ocean lab?", IntentLocation},
	}
	for _, tt := range tests {
		got := c.Classify(context.Background(), "user-1", tt.text)
		if got.Intent != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.text, got.Intent, tt.want)
		}
		if got.Source != SourceRule {
			t.Errorf("Classify(%q).Source = %v, want %v", tt.text, got.Source, SourceRule)
		}
	}
}

func TestClassifyPendingStateWins(t *testing.T) {
	states := convstate.NewStore(time.Minute, nil)
	states.Begin("user-1", convstate.State{
		PendingIntent: "locker",
		PendingSlot:   convstate.SlotCollege,
		OriginalQuery: "locker hours",
	})
	c := New(Options{States: states, Tools: testTools})

	// "nordmetall" matches no rule, but the pending state routes it.
	got := c.Classify(context.Background(), "user-1", "nordmetall")
	if got.Intent != IntentLocker {
		t.Errorf("Intent = %v, want %v", got.Intent, IntentLocker)
	}
	if got.Source != SourcePending {
		t.Errorf("Source = %v, want %v", got.Source, SourcePending)
	}

	// The pending step must not consume the state; the tool does that.
	if _, ok := states.Peek("user-1"); !ok {
		t.Error("pending state was consumed during classification")
	}
}

func TestClassifyPendingOverridesRules(t *testing.T) {
	states := convstate.NewStore(time.Minute, nil)
	states.Begin("user-1", convstate.State{
		PendingIntent: "servery",
		PendingSlot:   convstate.SlotCollege,
	})
	c := New(Options{States: states, Tools: testTools})

	got := c.Classify(context.Background(), "user-1", "locker hours")
	if got.Intent != IntentServery {
		t.Errorf("Intent = %v, want %v (pending beats rules)", got.Intent, IntentServery)
	}
}

func TestClassifyLLM(t *testing.T) {
	llm := &fakeLLM{reply: "location"}
	c := New(Options{LLM: llm, Tools: testTools})

	got := c.Classify(context.Background(), "user-1", "is there a pool on campus")
	if got.Intent != IntentLocation {
		t.Errorf("Intent = %v, want %v", got.Intent, IntentLocation)
	}
	if got.Source != SourceLLM {
		t.Errorf("Source = %v, want %v", got.Source, SourceLLM)
	}
}

func TestClassifyLLMCached(t *testing.T) {
	llm := &fakeLLM{reply: "faq"}
	c := New(Options{LLM: llm, Tools: testTools})

	first := c.Classify(context.Background(), "user-1", "some odd question")
	second := c.Classify(context.Background(), "user-2", "Some ODD question")

	if llm.calls != 1 {
		t.Errorf("llm.calls = %d, want 1", llm.calls)
	}
	if first.Intent != second.Intent {
		t.Errorf("cached intent %v != first intent %v", second.Intent, first.Intent)
	}
	if second.Source != SourceCache {
		t.Errorf("second Source = %v, want %v", second.Source, SourceCache)
	}
}

func TestClassifyLLMErrorFallsBack(t *testing.T) {
	llm := &fakeLLM{err: errors.New("rate limited")}
	c := New(Options{LLM: llm, Tools: testTools})

	got := c.Classify(context.Background(), "user-1", "some odd question")
	if got.Intent != IntentQA {
		t.Errorf("Intent = %v, want %v", got.Intent, IntentQA)
	}
	if got.Source != SourceDefault {
		t.Errorf("Source = %v, want %v", got.Source, SourceDefault)
	}
}

func TestClassifyWithoutLLMDefaultsToQA(t *testing.T) {
	c := New(Options{Tools: testTools})

	got := c.Classify(context.Background(), "user-1", "tell me a joke")
	if got.Intent != IntentQA {
		t.Errorf("Intent = %v, want %v", got.Intent, IntentQA)
	}
	if got.Source != SourceDefault {
		t.Errorf("Source = %v, want %v", got.Source, SourceDefault)
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		reply string
		want  Intent
	}{
		{"location", IntentLocation},
		{" Locker \n", IntentLocker},
		{`"servery"`, IntentServery},
		{"the right tool is handbook", IntentHandbook},
		{"faq", IntentFAQ},
		{"qa", IntentQA},
		{"use the faq tool", IntentFAQ},
		{"answer: qa", IntentQA},
		{"no idea", IntentQA},
		{"", IntentQA},
	}
	for _, tt := range tests {
		if got := parseReply(tt.reply); got != tt.want {
			t.Errorf("parseReply(%q) = %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestCacheEviction(t *testing.T) {
	c := newCache(2)
	c.put("a", IntentFAQ)
	c.put("b", IntentQA)
	c.put("c", IntentLocker)

	if c.len() != 2 {
		t.Fatalf("len = %d, want 2", c.len())
	}
	if _, ok := c.get("a"); ok {
		t.Error("oldest entry not evicted")
	}
	if intent, ok := c.get("c"); !ok || intent != IntentLocker {
		t.Errorf("get(c) = %v, %v", intent, ok)
	}
}

func TestCacheTouchOnGet(t *testing.T) {
	c := newCache(2)
	c.put("a", IntentFAQ)
	c.put("b", IntentQA)
	c.get("a")
	c.put("c", IntentLocker)

	if _, ok := c.get("a"); !ok {
		t.Error("recently used entry evicted")
	}
	if _, ok := c.get("b"); ok {
		t.Error("least recently used entry survived")
	}
}
