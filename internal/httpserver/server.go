package httpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/tinytelemetry/sheepcount/internal/chart"
	"github.com/tinytelemetry/sheepcount/internal/model"
)

// Server serves the interactive browser chart for one set of aggregates.
type Server struct {
	addr       string
	aggregates []model.YearlyAggregate
	spec       model.ChartSpec
	server     *http.Server
	listener   net.Listener
	ctx        context.Context
	cancel     context.CancelFunc
	startTime  time.Time
}

// NewServer creates a chart server. The aggregates are served as given.
func NewServer(addr string, aggregates []model.YearlyAggregate, spec model.ChartSpec) *Server {
	if addr == "" {
		addr = model.DefaultWebAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:       addr,
		aggregates: aggregates,
		spec:       spec,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleIndex)
	r.GET("/api/aggregates", s.handleAggregates)
	r.GET("/api/health", s.handleHealth)
	return r
}

// Listen binds the configured address without serving requests yet.
func (s *Server) Listen() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.routes(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return model.NewError("render interactive", model.KindRender, fmt.Errorf("listen on %s: %w", s.addr, err))
	}
	s.listener = listener
	s.startTime = time.Now()
	return nil
}

// Serve handles requests on the bound listener until Stop is called.
// It returns nil after a clean Stop.
func (s *Server) Serve() error {
	if s.listener == nil {
		return model.NewError("render interactive", model.KindRender, errors.New("server is not listening"))
	}
	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return model.NewError("render interactive", model.KindRender, fmt.Errorf("serve on %s: %w", s.Addr(), err))
	}
	return nil
}

// Start binds the listener and begins serving in the background.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	go func() {
		if err := s.Serve(); err != nil {
			log.Printf("httpserver: %v", err)
		}
	}()
	return nil
}

// Addr returns the bound address, which differs from the configured one for port 0.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// URL returns the chart page address.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/"
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := s.lineChart().Render(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

type point struct {
	Year  int   `json:"year"`
	Total int64 `json:"total"`
}

func (s *Server) handleAggregates(c *gin.Context) {
	points := make([]point, len(s.aggregates))
	for i, a := range s.aggregates {
		points[i] = point{Year: a.Year, Total: a.TotalCount}
	}

	c.JSON(http.StatusOK, gin.H{
		"title":  s.spec.Title,
		"y_min":  s.spec.YMin,
		"y_max":  s.spec.YMax,
		"points": points,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	var total int64
	for _, a := range s.aggregates {
		total += a.TotalCount
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).String(),
		"years":  len(s.aggregates),
		"total":  total,
	})
}

// lineChart builds the echarts line chart with fixed title and y bounds.
func (s *Server) lineChart() *charts.Line {
	years := make([]string, len(s.aggregates))
	data := make([]opts.LineData, len(s.aggregates))
	for i, a := range s.aggregates {
		years[i] = chart.FormatYear(float64(a.Year))
		data[i] = opts.LineData{Value: a.TotalCount}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: s.spec.Title,
			Width:     "1000px",
			Height:    "560px",
		}),
		charts.WithTitleOpts(opts.Title{Title: s.spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total count", Min: s.spec.YMin, Max: s.spec.YMax}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside"},
			opts.DataZoom{Type: "slider"},
		),
	)
	line.SetXAxis(years).AddSeries("total count", data)
	return line
}
