package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/suryansh-23/txguard/internal/config"
	"github.com/suryansh-23/txguard/internal/guard"
	"github.com/suryansh-23/txguard/internal/redact"
	"github.com/suryansh-23/txguard/internal/validate"
)

type appState struct {
	cfg       config.Config
	cfgFound  bool
	cfgPath   string
	logger    *zap.Logger
	redactor  *redact.Redactor
	validator *validate.Validator
	guard     *guard.Guard
}

type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.code)
}
