package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/userprobe/internal/domain"
)

// Prober posts a Record to a URL and decodes the JSON reply.
type Prober struct {
	Client      *http.Client
	Logger      *zap.Logger
	DiagnoseDNS bool
}

// New builds a Prober. A zero timeout leaves the client without a deadline.
func New(logger *zap.Logger, timeout time.Duration, diagnoseDNS bool) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{
		Client:      &http.Client{Timeout: timeout},
		Logger:      logger,
		DiagnoseDNS: diagnoseDNS,
	}
}

// Outcome is a decoded reply. The status code is recorded, never checked.
type Outcome struct {
	StatusCode int
	LatencyMS  float64
	Value      any
}

// Post sends rec as JSON to target and decodes the whole reply body.
// Failures are *TransportError or *DecodeError.
func (p *Prober) Post(ctx context.Context, target string, rec domain.Record) (out Outcome, err error) {
	body, err := Encode(rec)
	if err != nil {
		return Outcome{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, p.transportError(ctx, target, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		return Outcome{}, p.transportError(ctx, target, err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(resp.Body))

	raw, err := io.ReadAll(resp.Body)
	latency := time.Since(start).Seconds() * 1000 // ms
	if err != nil {
		return Outcome{}, p.transportError(ctx, target, err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		p.Logger.Warn("probe_decode_error",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(raw)),
			zap.Error(err),
		)
		return Outcome{}, &DecodeError{URL: target, StatusCode: resp.StatusCode, Snippet: snippet(raw), Err: err}
	}

	p.Logger.Info("probe_sent",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Float64("latency_ms", latency),
		zap.Int("body_bytes", len(raw)),
	)
	return Outcome{StatusCode: resp.StatusCode, LatencyMS: latency, Value: v}, nil
}

func (p *Prober) transportError(ctx context.Context, target string, err error) error {
	te := &TransportError{URL: target, Err: err}
	fields := []zap.Field{zap.String("url", target), zap.Error(err)}
	if p.DiagnoseDNS {
		// the request context may already be done
		dns := CheckDNS(context.WithoutCancel(ctx), hostOf(target))
		te.DNSClass = dns.Class
		fields = append(fields,
			zap.String("dns_class", dns.Class),
			zap.Bool("has_ns", dns.HasNS),
			zap.String("resolver_error", dns.ResolverError),
		)
	}
	p.Logger.Warn("probe_transport_error", fields...)
	return te
}

// Encode returns the request body for rec.
func Encode(rec domain.Record) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return b, nil
}

// Render writes v once, in Go's default formatting.
func Render(w io.Writer, v any) error {
	_, err := fmt.Fprintln(w, v)
	return err
}
