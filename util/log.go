// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Severity is the syslog-style severity of a log message
type Severity string

// Recognized log severities
const (
	INFO  Severity = "Info"
	ALERT Severity = "Alert"
	ERROR Severity = "Error"
)

// LogContext is the context for a set of related log messages
type LogContext interface {
	AppName() string
	SessionID() string
	LogRootDir() string
}

// BasicLogContext is a minimal LogContext for callers without an
// operation-specific context of their own
type BasicLogContext struct {
	sessionID string
}

// AppName returns an empty string
func (c *BasicLogContext) AppName() string {
	return ""
}

// SessionID returns a Session ID, creating one if needed
func (c *BasicLogContext) SessionID() string {
	if c.sessionID == "" {
		c.sessionID, _ = PsuUUID()
	}
	return c.sessionID
}

// LogRootDir returns an empty string
func (c *BasicLogContext) LogRootDir() string {
	return ""
}

func logMessage(context LogContext, severity Severity, message string) {
	prefix := ""
	if context.AppName() != "" {
		prefix = context.AppName() + " "
	}
	log.Printf("%s[%s] session=%s %s", prefix, severity, context.SessionID(), message)
}

// LogInfo logs an informational message
func LogInfo(context LogContext, message string) {
	logMessage(context, INFO, message)
}

// LogAlert logs a message that needs operator attention but is not
// necessarily an application error
func LogAlert(context LogContext, message string) {
	logMessage(context, ALERT, message)
}

// LogSimpleErr logs a message together with its underlying error and returns
// a single error wrapping both
func LogSimpleErr(context LogContext, message string, err error) error {
	logMessage(context, ERROR, fmt.Sprintf("%v %v", message, err))
	return fmt.Errorf("%v: %w", message, err)
}

// LogAuditInput is the structured input for an audit log entry
type LogAuditInput struct {
	Actor    string
	Action   string
	Actee    string
	Message  string
	Severity Severity
}

// LogAudit writes an audit-formatted log entry
func LogAudit(context LogContext, input LogAuditInput) {
	logMessage(context, input.Severity,
		fmt.Sprintf("audit actor=%s action=%s actee=%s :: %s", input.Actor, input.Action, input.Actee, input.Message))
}

// Error is an error with additional context for logging; SimpleMsg is what a
// caller-facing message should contain, LogMsg what the log should contain
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
	logged     bool
}

// Log logs the detailed message (with optional prefix) once and returns the
// caller-facing error; when an HTTP status is attached the returned error is
// an HTTPErr carrying it
func (err *Error) Log(context LogContext, prefix string) error {
	if !err.logged {
		message := err.LogMsg
		if prefix != "" {
			message = prefix + ": " + message
		}
		if err.URL != "" {
			message += fmt.Sprintf("\nURL: %v", err.URL)
		}
		if err.Response != "" {
			message += fmt.Sprintf("\nResponse: %v", err.Response)
		}
		logMessage(context, ERROR, message)
		err.logged = true
	}
	simpleMessage := err.SimpleMsg
	if simpleMessage == "" {
		simpleMessage = err.LogMsg
	}
	if err.HTTPStatus != 0 {
		return HTTPErr{Status: err.HTTPStatus, Message: simpleMessage}
	}
	return errors.New(simpleMessage)
}

// HTTPErr is an error that carries an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

func (err HTTPErr) Error() string {
	return err.Message
}

// PsuUUID returns a pseudorandom UUID-shaped string
func PsuUUID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X-%X-%X-%X-%X", b[0:4], b[4:6], b[6:8], b[8:10], b[10:]), nil
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// HTTPClient returns the shared HTTP client used for all outbound reads
func HTTPClient() *http.Client {
	return httpClient
}
