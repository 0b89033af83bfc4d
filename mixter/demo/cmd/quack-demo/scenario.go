package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/command/message"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/query/quackcounter"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/query/timeline"
)

const deleteStep = "delete"

// step is either a quack with content or a delete.
type step struct {
	delete  bool
	content string
}

func parseSteps(args []string) []step {
	steps := make([]step, 0, len(args))
	for _, arg := range args {
		if strings.EqualFold(arg, deleteStep) {
			steps = append(steps, step{delete: true})
			continue
		}

		steps = append(steps, step{content: arg})
	}

	return steps
}

func defaultScenario() []step {
	return parseSteps([]string{"Hello", "World", deleteStep, deleteStep, "General Kenobi"})
}

func (a *app) runScenario(ctx context.Context, steps []step, out io.Writer) error {
	for _, s := range steps {
		if err := a.runStep(ctx, s, out); err != nil {
			return err
		}
	}

	return a.report(ctx, out)
}

func (a *app) runStep(ctx context.Context, s step, out io.Writer) error {
	if s.delete {
		result, err := a.delete.Handle(ctx, message.BuildDeleteCommand())
		if err != nil {
			return err
		}

		if result.Idempotent {
			_, _ = fmt.Fprintln(out, "delete: already deleted, nothing published")
			return nil
		}

		_, _ = fmt.Fprintf(out, "delete: published %s\n", result.PublishedEventType)

		return nil
	}

	result, err := a.quack.Handle(ctx, message.BuildQuackCommand(s.content))
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "quack %q: published %s\n", s.content, result.PublishedEventType)

	return nil
}

func (a *app) report(ctx context.Context, out io.Writer) error {
	timelineResult, err := a.timelineQuery.Handle(ctx, timeline.BuildQuery())
	if err != nil {
		return err
	}

	countResult, err := a.countQuery.Handle(ctx, quackcounter.BuildQuery())
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "timeline: %s\n", contentsOf(a.timeline.Messages()))
	_, _ = fmt.Fprintf(out, "quack count: %d\n", a.counter.Count())
	_, _ = fmt.Fprintf(
		out,
		"replayed from %d events: timeline %s, quack count %d\n",
		timelineResult.SequenceNumber,
		contentsOf(timelineResult.Messages),
		countResult.Count,
	)

	return nil
}

func contentsOf(messages []timeline.TimelineMessage) string {
	contents := make([]string, 0, len(messages))
	for _, m := range messages {
		contents = append(contents, fmt.Sprintf("%q", m.Content))
	}

	return "[" + strings.Join(contents, ", ") + "]"
}
