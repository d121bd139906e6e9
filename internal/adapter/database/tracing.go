package database

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

// spanner concentra a criação de spans dos repositórios
type spanner struct {
	tracer trace.Tracer
	table  string
	name   string
}

func newSpanner(table, repoName string) spanner {
	return spanner{
		tracer: otel.GetTracerProvider().Tracer("univoto.repository." + table),
		table:  table,
		name:   repoName,
	}
}

func (s spanner) start(ctx context.Context, method, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.operation", operation),
		attribute.String("db.table", s.table),
	)
	return s.tracer.Start(ctx, s.name+"."+method, trace.WithAttributes(attrs...))
}

// recordError marca o span com o erro do banco
func recordError(span trace.Span, err error) {
	span.SetStatus(codes.Error, "database error")
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	)
}

// recordNotFound marca o span para uma busca sem resultado, que não é falha do banco
func recordNotFound(span trace.Span) {
	span.SetAttributes(attribute.Bool("db.found", false))
}

// isDuplicateKey reconhece violação de unicidade. TranslateError cobre
// postgres, mysql e sqlite; o texto cobre drivers que não traduzem.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "Duplicate entry")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
