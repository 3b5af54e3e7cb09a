package dashboard

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Options configures a Dashboard. Fetcher, Locator, Clock and Renderer are
// required.
type Options struct {
	Fetcher      Fetcher
	Locator      Locator
	Clock        Clock
	Renderer     Renderer
	Logger       *zap.SugaredLogger
	DefaultCity  string
	FetchTimeout time.Duration
}

// Dashboard runs the state machine. State is owned by the goroutine in Run;
// everything else talks to it through events.
type Dashboard struct {
	opts    Options
	machine Machine
	logger  *zap.SugaredLogger

	events chan Event
	done   chan struct{}

	// Loop goroutine only.
	state       State
	cancelFetch context.CancelFunc

	wg sync.WaitGroup
}

func New(opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Dashboard{
		opts:    opts,
		machine: Machine{DefaultCity: opts.DefaultCity},
		logger:  logger,
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
	}
}

// Run mounts the dashboard and processes events until it is torn down by
// Close or ctx is cancelled. It returns ctx.Err() in the latter case.
func (d *Dashboard) Run(ctx context.Context) error {
	defer d.wg.Wait()
	defer close(d.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.apply(ctx, Mounted{})
	for {
		select {
		case <-ctx.Done():
			d.apply(ctx, TornDown{})
			return ctx.Err()
		case ev := <-d.events:
			d.apply(ctx, ev)
			if d.state.TornDown {
				return nil
			}
		}
	}
}

// Search submits text as if typed into the search box.
func (d *Dashboard) Search(text string) {
	d.post(InputChanged{Text: text})
	d.post(SearchSubmitted{})
}

// Close tears the dashboard down and waits for Run to return. Run must have
// been started.
func (d *Dashboard) Close() {
	d.post(TornDown{})
	<-d.done
}

// Done is closed once Run has returned.
func (d *Dashboard) Done() <-chan struct{} { return d.done }

func (d *Dashboard) post(ev Event) {
	select {
	case d.events <- ev:
	case <-d.done:
	}
}

func (d *Dashboard) apply(ctx context.Context, ev Event) {
	next, effects := d.machine.Transition(d.state, ev)
	changed := next != d.state
	d.state = next

	for _, eff := range effects {
		d.execute(ctx, eff)
	}
	if changed {
		if err := d.opts.Renderer.Render(BuildView(d.state)); err != nil {
			d.logger.Warnw("Render failed", "error", err)
		}
	}
}

func (d *Dashboard) execute(ctx context.Context, eff Effect) {
	switch eff := eff.(type) {
	case StartClock:
		err := d.opts.Clock.Start(func(now time.Time) {
			// Ticks are dropped rather than queued when the loop is busy.
			select {
			case d.events <- Tick{Now: now}:
			default:
			}
		})
		if err != nil {
			d.logger.Errorw("Starting clock failed", "error", err)
		}

	case StopClock:
		d.opts.Clock.Stop()
		if d.cancelFetch != nil {
			d.cancelFetch()
			d.cancelFetch = nil
		}

	case RequestPosition:
		d.spawn(func() {
			pos, err := d.opts.Locator.Locate(ctx)
			if err != nil {
				d.logger.Infow("Position unavailable, using default city", "reason", err, "city", d.opts.DefaultCity)
				d.post(PositionUnavailable{Reason: err.Error()})
				return
			}
			d.post(PositionAcquired{Lat: pos.Lat, Lon: pos.Lon})
		})

	case Fetch:
		if d.cancelFetch != nil {
			d.cancelFetch()
		}
		fctx, cancel := d.fetchContext(ctx)
		d.cancelFetch = cancel

		d.spawn(func() {
			defer cancel()
			forecast, err := d.opts.Fetcher.Fetch(fctx, eff.Query)
			if err != nil {
				d.logger.Warnw("Fetching forecast failed", "query", eff.Query, "seq", eff.Seq, "error", err)
				d.post(FetchFailed{Seq: eff.Seq, Message: MessageFor(err)})
				return
			}
			d.post(FetchSucceeded{Seq: eff.Seq, Forecast: forecast})
		})
	}
}

func (d *Dashboard) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.opts.FetchTimeout > 0 {
		return context.WithTimeout(ctx, d.opts.FetchTimeout)
	}
	return context.WithCancel(ctx)
}

func (d *Dashboard) spawn(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn()
	}()
}
