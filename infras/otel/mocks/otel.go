// Package mocks provides an in-memory tracer whose scopes remember what was recorded on them.
package mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
)

// Span is what one scope recorded.
type Span struct {
	Scope      string
	Name       string
	Errors     []error
	Events     []string
	Attributes map[string]any
	Ended      bool
}

// Recorder implements otel.Otel and keeps every span it opened, in order.
type Recorder struct {
	mu    sync.Mutex
	spans []*Span
}

// NewOtel returns a Recorder typed as otel.Otel for callers that only need a tracer.
func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	span := &Span{Scope: scopeName, Name: spanName, Attributes: map[string]any{}}

	r.mu.Lock()
	r.spans = append(r.spans, span)
	r.mu.Unlock()

	return ctx, &scope{recorder: r, span: span}
}

func (r *Recorder) Shutdown(_ context.Context) error {
	return nil
}

// Spans returns a snapshot of the spans opened so far.
func (r *Recorder) Spans() []Span {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Span, len(r.spans))
	for i, span := range r.spans {
		result[i] = *span
	}

	return result
}

// Find returns the first span with the given name.
func (r *Recorder) Find(name string) (Span, bool) {
	for _, span := range r.Spans() {
		if span.Name == name {
			return span, true
		}
	}

	return Span{}, false
}

type scope struct {
	recorder *Recorder
	span     *Span
}

func (s *scope) End() {
	s.recorder.mu.Lock()
	s.span.Ended = true
	s.recorder.mu.Unlock()
}

func (s *scope) TraceError(err error) {
	if err == nil {
		return
	}

	s.recorder.mu.Lock()
	s.span.Errors = append(s.span.Errors, err)
	s.recorder.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}

func (s *scope) AddEvent(name string) {
	s.recorder.mu.Lock()
	s.span.Events = append(s.span.Events, name)
	s.recorder.mu.Unlock()
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	s.span.Attributes[key] = value
	s.recorder.mu.Unlock()
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}
