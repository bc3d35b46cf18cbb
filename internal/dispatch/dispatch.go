// Package dispatch routes classified messages to their tools.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/campusbot/campus-linebot-go/internal/channel"
	"github.com/campusbot/campus-linebot-go/internal/intent"
	"github.com/campusbot/campus-linebot-go/internal/logger"
	"github.com/campusbot/campus-linebot-go/internal/metrics"
	"github.com/campusbot/campus-linebot-go/internal/tools"
)

// Registry maps intent names to tools.
type Registry struct {
	byName []tools.Tool
	index  map[string]tools.Tool
}

// NewRegistry registers the given tools in order. Duplicate names panic:
// the tool set is fixed at startup and a duplicate is a programming
// error.
func NewRegistry(toolList ...tools.Tool) *Registry {
	r := &Registry{index: make(map[string]tools.Tool, len(toolList))}
	for _, t := range toolList {
		if _, dup := r.index[t.Name()]; dup {
			panic(fmt.Sprintf("dispatch: duplicate tool %q", t.Name()))
		}
		r.byName = append(r.byName, t)
		r.index[t.Name()] = t
	}
	return r
}

// Lookup finds a tool by name.
func (r *Registry) Lookup(name string) (tools.Tool, bool) {
	t, ok := r.index[name]
	return t, ok
}

// Infos describes the registered tools for the classifier prompt.
func (r *Registry) Infos() []intent.ToolInfo {
	infos := make([]intent.ToolInfo, 0, len(r.byName))
	for _, t := range r.byName {
		infos = append(infos, intent.ToolInfo{Name: t.Name(), Description: t.Description()})
	}
	return infos
}

// Classifier labels a message with an intent.
type Classifier interface {
	Classify(ctx context.Context, userID, text string) intent.Result
}

// Dispatcher classifies each message and runs the matching tool.
type Dispatcher struct {
	registry   *Registry
	classifier Classifier
	log        *logger.Logger
	metrics    *metrics.Metrics
}

// New builds a dispatcher.
func New(registry *Registry, classifier Classifier, log *logger.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		classifier: classifier,
		log:        log.WithModule("dispatch"),
		metrics:    m,
	}
}

const dispatchApology = "🙇 Something went wrong on my end. Please try again."

// HandleMessage answers one user message. It always returns a response:
// tool errors surface as an apology, never as a dropped message.
func (d *Dispatcher) HandleMessage(ctx context.Context, userID, text string) *channel.Response {
	result := d.classifier.Classify(ctx, userID, text)
	log := d.log.WithUserID(userID).WithField("intent", result.Intent.String())

	tool, ok := d.registry.Lookup(result.Intent.String())
	if !ok {
		// Unknown intents drain to the open QA tool.
		log.Warnf("no tool registered, rerouting to qa")
		tool, ok = d.registry.Lookup(intent.IntentQA.String())
		if !ok {
			d.metrics.RecordDispatch(result.Intent.String(), "unroutable", 0)
			return channel.NewText(dispatchApology)
		}
	}

	start := time.Now()
	resp, err := tool.Handle(ctx, &tools.Request{UserID: userID, Text: text})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		d.metrics.RecordDispatch(tool.Name(), "error", elapsed)
		log.WithError(err).Errorf("tool failed")
		return channel.NewText(dispatchApology)
	}
	if resp == nil {
		d.metrics.RecordDispatch(tool.Name(), "empty", elapsed)
		log.Warnf("tool returned no response")
		return channel.NewText(dispatchApology)
	}

	d.metrics.RecordDispatch(tool.Name(), "ok", elapsed)
	log.WithField("source", string(result.Source)).Debugf("dispatched")
	return resp
}
