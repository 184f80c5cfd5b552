// Package agent drives the research loop: model request, tool-call dispatch,
// transcript bookkeeping, and the termination/fallback policy.
package agent

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/researchbot/researchbot/internal/config"
	"github.com/researchbot/researchbot/internal/core"
	"github.com/researchbot/researchbot/internal/store"
	"github.com/researchbot/researchbot/internal/tools"
)

// Agent runs research sessions: transcript -> model with tools -> execute
// tool_calls -> repeat until a report exists or the iteration budget runs out.
type Agent struct {
	Config *config.Config
	Client core.LLMClient
	Tools  core.ToolExecutor
	DB     *store.DB // optional session archive; nil disables persistence
}

// New constructs an Agent over its collaborators. db may be nil.
func New(cfg *config.Config, client core.LLMClient, executor core.ToolExecutor, db *store.DB) *Agent {
	return &Agent{Config: cfg, Client: client, Tools: executor, DB: db}
}

// Research runs one session on the topic and returns the final report. The
// session is strictly sequential: one model request at a time, tool calls
// executed in the order received, and every tool call answered by exactly one
// tool message before the next model request.
//
// The return value is non-empty on every termination path: a model-compiled
// report, or the partial-report fallback built from the note ledger. The one
// exception is model failure on the very first iteration, which returns a
// neutral placeholder along with the error.
func (a *Agent) Research(ctx context.Context, topic string) (string, error) {
	sessionID := uuid.NewString()
	maxIterations := a.Config.MaxIterations

	log.Printf("[AGENT] Session %s: researching %q (model=%s, max_iterations=%d)",
		sessionID, topic, a.Config.Model, maxIterations)

	// Session-scoped state: fresh transcript, empty note ledger.
	a.Tools.Reset()
	messages := []core.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: topicPrompt(topic)},
	}

	if a.DB != nil {
		if err := a.DB.CreateSession(ctx, sessionID, topic, a.Config.Model); err != nil {
			log.Printf("[AGENT] Session archive unavailable: %v", err)
		} else {
			a.archive(ctx, sessionID, messages[0])
			a.archive(ctx, sessionID, messages[1])
		}
	}

	toolDefs := a.Tools.Definitions()
	var report string
	iterations := 0

	for iterations < maxIterations {
		iterations++
		log.Printf("[AGENT] Iteration %d/%d", iterations, maxIterations)

		content, toolCalls, err := a.Client.ChatCompletionWithTools(ctx, messages, toolDefs)
		if err != nil {
			// No retry here: the client owns transport retries. End the
			// session with whatever state exists.
			log.Printf("[AGENT] LLM error: %v", err)
			if iterations == 1 {
				a.finish(ctx, sessionID, store.StatusFailed, iterations)
				return noReportPlaceholder, err
			}
			break
		}

		if content != "" {
			log.Printf("[AGENT] Thinking: %s", firstN(content, 200))
		}

		assistantMsg := core.Message{Role: "assistant", Content: content, ToolCalls: toolCalls}
		messages = append(messages, assistantMsg)
		a.archive(ctx, sessionID, assistantMsg)

		// No tool calls: the model believes it is done. Whatever report
		// exists is final; none exists here, so the exhaustion fallback
		// below covers it.
		if len(toolCalls) == 0 {
			log.Printf("[AGENT] Model completed reasoning without a report")
			break
		}

		for _, tc := range toolCalls {
			log.Printf("[AGENT] Executing %s", tc.Function.Name)
			result, execErr := a.Tools.Execute(ctx, tc.Function.Name, tc.Function.Arguments)
			if execErr != nil {
				result = tools.ErrJSON(execErr)
			}

			toolMsg := core.Message{Role: "tool", Content: result, ToolCallID: tc.ID}
			messages = append(messages, toolMsg)
			a.archive(ctx, sessionID, toolMsg)

			if tools.Name(tc.Function.Name) == tools.CompileReport {
				if r, ok := tools.ParseReportResult(result); ok {
					report = r.Report
				}
			}
		}

		if report != "" {
			log.Printf("[AGENT] Report compiled after %d iterations", iterations)
			a.saveReport(ctx, sessionID, report, false)
			a.finish(ctx, sessionID, store.StatusReported, iterations)
			return report, nil
		}
	}

	// Exhaustion fallback: iteration budget spent, model stopped without a
	// report, or a mid-run model failure. Always yields a usable report.
	log.Printf("[AGENT] No report produced; compiling partial report from %d notes", len(a.Tools.Notes()))
	report = partialReport(a.Tools.Notes(), maxIterations)
	a.saveReport(ctx, sessionID, report, true)
	a.finish(ctx, sessionID, store.StatusExhausted, iterations)
	return report, nil
}

func (a *Agent) archive(ctx context.Context, sessionID string, msg core.Message) {
	if a.DB == nil {
		return
	}
	var tcs interface{}
	if len(msg.ToolCalls) > 0 {
		tcs = msg.ToolCalls
	}
	if err := a.DB.InsertMessage(ctx, sessionID, msg.Role, msg.Content, tcs, msg.ToolCallID); err != nil {
		log.Printf("[STORE] Archiving message failed: %v", err)
	}
}

func (a *Agent) saveReport(ctx context.Context, sessionID, report string, partial bool) {
	if a.DB == nil {
		return
	}
	if err := a.DB.SaveReport(ctx, sessionID, report, partial); err != nil {
		log.Printf("[STORE] Saving report failed: %v", err)
	}
}

func (a *Agent) finish(ctx context.Context, sessionID, status string, iterations int) {
	if a.DB == nil {
		return
	}
	if err := a.DB.FinishSession(ctx, sessionID, status, iterations); err != nil {
		log.Printf("[STORE] Finishing session failed: %v", err)
	}
}

func firstN(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
