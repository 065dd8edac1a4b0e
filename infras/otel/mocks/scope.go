package mocks

import "go.opentelemetry.io/otel/attribute"

type scope struct {
	recorder *Recorder
}

func (s *scope) AddEvent(_ string, _ ...attribute.KeyValue) {}

func (s *scope) End() {}

func (s *scope) SetAttribute(_ string, _ any) {}

func (s *scope) SetAttributes(_ map[string]any) {}

func (s *scope) TraceError(err error) {
	if err != nil {
		s.recorder.record(err)
	}
}

func (s *scope) TraceIfError(err error) {
	s.TraceError(err)
}
