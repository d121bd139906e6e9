package model

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError indica dado de entrada inválido em um campo
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid cria um ValidationError
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Required falha no primeiro campo vazio, em ordem alfabética
func Required(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.TrimSpace(fields[name]) == "" {
			return Invalid(name, "campo obligatorio")
		}
	}
	return nil
}
