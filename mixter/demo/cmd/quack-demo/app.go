package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore/memengine"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/eventbus"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/command/message"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/query/quackcounter"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/features/query/timeline"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell/config"
	"github.com/AntonStoeckl/mixter-eventsourcing-go/mixter/shared/shell/observable"
)

// app bundles the wired components of one in-memory Mixter instance.
type app struct {
	bus           *eventbus.Bus
	counter       *quackcounter.QuackCounter
	timeline      *timeline.Timeline
	quack         *observable.CommandWrapper[message.QuackCommand]
	delete        *observable.CommandWrapper[message.DeleteCommand]
	timelineQuery *observable.QueryWrapper[timeline.Query, timeline.Result]
	countQuery    *observable.QueryWrapper[quackcounter.Query, quackcounter.QuackCount]
	providers     *config.ObservabilityProviders
}

func newApp(ctx context.Context, cfg config.Config, logOut io.Writer) (_ *app, err error) {
	slogger, err := config.NewLogger(cfg, logOut)
	if err != nil {
		return nil, err
	}

	dispatchPolicy, err := eventbus.ParseDispatchPolicy(cfg.DispatchPolicy)
	if err != nil {
		return nil, err
	}

	a := &app{}
	defer func() {
		if err != nil && a.providers != nil {
			err = errors.Join(err, a.providers.Shutdown(context.WithoutCancel(ctx)))
		}
	}()

	var (
		logger  eventstore.ContextualLogger = oteladapters.NewSlogBridgeLoggerWithHandler(slogger.Handler())
		metrics eventstore.MetricsCollector
		tracing eventstore.TracingCollector
	)

	if cfg.OTelEnabled {
		a.providers, err = config.NewObservabilityProviders(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to set up OpenTelemetry: %w", err)
		}

		metrics = a.providers.MetricsCollector(cfg.ServiceName)
		tracing = a.providers.TracingCollector(cfg.ServiceName)
	}

	a.bus, err = eventbus.New(
		eventbus.WithEventLogOptions(
			memengine.WithContextualLogger(logger),
			memengine.WithMetrics(metrics),
			memengine.WithTracing(tracing),
		),
		eventbus.WithDispatchPolicy(dispatchPolicy),
		eventbus.WithContextualLogger(logger),
		eventbus.WithMetrics(metrics),
		eventbus.WithTracing(tracing),
	)
	if err != nil {
		return nil, err
	}

	a.counter = quackcounter.NewQuackCounter()
	a.timeline = timeline.NewTimeline()

	if err = a.bus.Subscribe(a.counter); err != nil {
		return nil, err
	}

	if err = a.bus.Subscribe(a.timeline); err != nil {
		return nil, err
	}

	a.quack, err = observable.NewCommandWrapper[message.QuackCommand](
		message.NewQuackCommandHandler(a.bus, a.bus),
		observable.WithCommandContextualLogging[message.QuackCommand](logger),
		observable.WithCommandMetrics[message.QuackCommand](metrics),
		observable.WithCommandTracing[message.QuackCommand](tracing),
	)
	if err != nil {
		return nil, err
	}

	a.delete, err = observable.NewCommandWrapper[message.DeleteCommand](
		message.NewDeleteCommandHandler(a.bus, a.bus),
		observable.WithCommandContextualLogging[message.DeleteCommand](logger),
		observable.WithCommandMetrics[message.DeleteCommand](metrics),
		observable.WithCommandTracing[message.DeleteCommand](tracing),
	)
	if err != nil {
		return nil, err
	}

	a.timelineQuery, err = observable.NewQueryWrapper[timeline.Query, timeline.Result](
		timeline.NewQueryHandler(a.bus),
		observable.WithQueryContextualLogging[timeline.Query, timeline.Result](logger),
		observable.WithQueryMetrics[timeline.Query, timeline.Result](metrics),
		observable.WithQueryTracing[timeline.Query, timeline.Result](tracing),
	)
	if err != nil {
		return nil, err
	}

	a.countQuery, err = observable.NewQueryWrapper[quackcounter.Query, quackcounter.QuackCount](
		quackcounter.NewQueryHandler(a.bus),
		observable.WithQueryContextualLogging[quackcounter.Query, quackcounter.QuackCount](logger),
		observable.WithQueryMetrics[quackcounter.Query, quackcounter.QuackCount](metrics),
		observable.WithQueryTracing[quackcounter.Query, quackcounter.QuackCount](tracing),
	)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (a *app) shutdown(ctx context.Context) error {
	if a.providers == nil {
		return nil
	}

	return a.providers.Shutdown(ctx)
}
