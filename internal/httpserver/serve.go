package httpserver

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"

	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/model"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	Addr        string
	Spec        model.ChartSpec
	OpenBrowser bool
	Out         io.Writer // receives the "open this URL" notice
}

// Serve runs the chart server until ctx is cancelled, then shuts it down.
// A failure of the server itself ends Serve with a render error.
func Serve(ctx context.Context, aggregates []model.YearlyAggregate, o ServeOptions) error {
	if len(aggregates) == 0 {
		return model.NewError("render interactive", model.KindRender, chart.ErrNothingToPlot)
	}

	srv := NewServer(o.Addr, aggregates, o.Spec)
	if err := srv.Listen(); err != nil {
		return err
	}

	if o.Out != nil {
		fmt.Fprintf(o.Out, "Interactive chart at %s (Ctrl+C to stop)\n", srv.URL())
	}
	if o.OpenBrowser {
		if err := OpenBrowser(srv.URL()); err != nil {
			log.Printf("httpserver: open browser: %v", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})
	return g.Wait()
}

// CheckAddr reports whether addr can currently be bound.
func CheckAddr(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return model.NewError("render interactive", model.KindRender, fmt.Errorf("listen on %s: %w", addr, err))
	}
	return ln.Close()
}
