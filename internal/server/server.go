// Package server exposes schema encodings over HTTP.
//
//	GET  /healthz
//	GET  /schema?format=json|yaml|jsonschema&pretty=true&indent=4
//	POST /encode?format=...   (body: YAML schema definition)
package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	omnitree "github.com/reoring/omnitree"
	"github.com/reoring/omnitree/encode"
	"github.com/reoring/omnitree/i18n"
	"github.com/reoring/omnitree/jsonschema"
	"github.com/reoring/omnitree/schema"
	"github.com/reoring/omnitree/wire"
)

const (
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatJSONSchema = "jsonschema"
)

var contentTypes = map[string]string{
	FormatJSON:       "application/json; charset=utf-8",
	FormatYAML:       "application/yaml; charset=utf-8",
	FormatJSONSchema: "application/schema+json; charset=utf-8",
}

// Limits bounds the work done for one encoding request. Entity fields inline
// their target entity, so a small definition can expand exponentially.
type Limits struct {
	MaxNodes int   // schema nodes visited per encode
	MaxBytes int64 // encoded output size
}

// DefaultLimits are used unless WithLimits overrides them.
var DefaultLimits = Limits{MaxNodes: 100_000, MaxBytes: 8 << 20}

// Option configures the engine returned by New.
type Option func(*config)

type config struct{ limits Limits }

// WithLimits replaces DefaultLimits. Zero fields disable the matching limit.
func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

// New returns an engine serving pkg. pkg is shared read-only by all requests;
// every request encodes with its own encoder.
func New(pkg *schema.Package, log *slog.Logger, opts ...Option) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	cfg := config{limits: DefaultLimits}
	for _, opt := range opts {
		opt(&cfg)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestLog(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/schema", func(c *gin.Context) {
		render(c, log, cfg.limits, pkg)
	})
	r.POST("/encode", LoadDefinition(), func(c *gin.Context) {
		p, _ := PackageFromContext(c.Request.Context())
		render(c, log, cfg.limits, p)
	})
	return r
}

// Request holds the encoding query parameters.
type Request struct {
	Format string
	Opts   wire.Options
}

// ParseRequest reads format, pretty and indent from the query string.
func ParseRequest(c *gin.Context) (Request, error) {
	req := Request{Format: c.DefaultQuery("format", FormatJSON)}
	if _, ok := contentTypes[req.Format]; !ok {
		return req, errBadParam("format", req.Format)
	}
	if s := c.Query("pretty"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return req, errBadParam("pretty", s)
		}
		req.Opts.PrettyPrint = b
	}
	if s := c.Query("indent"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 16 {
			return req, errBadParam("indent", s)
		}
		req.Opts.IndentSize = n
	}
	return req, nil
}

type paramError struct{ name, value string }

func (e *paramError) Error() string { return "invalid " + e.name + " " + strconv.Quote(e.value) }

func errBadParam(name, value string) error { return &paramError{name: name, value: value} }

// errorBody carries the error text and, for encoder-level errors, its code
// and catalogue message.
func errorBody(err error) gin.H {
	body := gin.H{"error": err.Error()}
	if code := omnitree.ErrorCode(err); code != "" {
		body["code"] = code
		body["message"] = i18n.T(code, nil)
	}
	return body
}

// cappedBuffer fails writes that would grow it past max bytes.
type cappedBuffer struct {
	bytes.Buffer
	max int64
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if b.max > 0 && int64(b.Len()+len(p)) > b.max {
		return 0, fmt.Errorf("%w: more than %d bytes", omnitree.ErrLimitExceeded, b.max)
	}
	return b.Buffer.Write(p)
}

func render(c *gin.Context, log *slog.Logger, limits Limits, pkg *schema.Package) {
	req, err := ParseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buf := &cappedBuffer{max: limits.MaxBytes}
	switch req.Format {
	case FormatJSONSchema:
		doc, err := jsonschema.Export(pkg)
		if err == nil {
			var b []byte
			indent := ""
			if req.Opts.PrettyPrint {
				indent = strings.Repeat(" ", req.Opts.Indent())
			}
			if b, err = doc.MarshalIndent(indent); err == nil {
				_, err = buf.Write(b)
			}
		}
		if err != nil {
			log.Error("jsonschema.export", "err", err)
			c.JSON(statusOf(err), errorBody(err))
			return
		}
	default:
		var opts []encode.Option
		if limits.MaxNodes > 0 {
			opts = append(opts, encode.WithMaxNodes(limits.MaxNodes))
		}
		enc := encode.NewJSON(buf, req.Opts, opts...)
		if req.Format == FormatYAML {
			enc = encode.NewYAML(buf, req.Opts, opts...)
		}
		complete, err := enc.Encode(pkg)
		if err == nil && !complete {
			err = omnitree.ErrIncomplete
		}
		if err != nil {
			log.Error("encode", "format", req.Format, "err", err, "bytes", enc.Written())
			c.JSON(statusOf(err), errorBody(err))
			return
		}
		log.Debug("encode.done", "format", req.Format, "bytes", enc.Written())
	}
	c.Data(http.StatusOK, contentTypes[req.Format], buf.Bytes())
}

func statusOf(err error) int {
	if errors.Is(err, omnitree.ErrLimitExceeded) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
