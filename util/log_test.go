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
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	buffer := &bytes.Buffer{}
	original := log.Writer()
	log.SetOutput(buffer)
	t.Cleanup(func() { log.SetOutput(original) })
	return buffer
}

func TestErrorLog(t *testing.T) {
	// Mock
	logged := captureLog(t)
	fetchErr := Error{
		LogMsg:    "request failed with details",
		SimpleMsg: "request failed",
		URL:       "https://example.com/doc.json",
		Response:  "not found",
	}

	// Tested code
	err := fetchErr.Log(&BasicLogContext{}, "fetch")

	// Asserts
	assert.Equal(t, "request failed", err.Error())
	assert.Contains(t, logged.String(), "fetch: request failed with details")
	assert.Contains(t, logged.String(), "URL: https://example.com/doc.json")
	assert.Contains(t, logged.String(), "Response: not found")

	// A second Log must not write another entry
	before := logged.Len()
	_ = fetchErr.Log(&BasicLogContext{}, "fetch")
	assert.Equal(t, before, logged.Len())
}

func TestErrorLog_HTTPStatus(t *testing.T) {
	// Mock
	captureLog(t)
	fetchErr := Error{LogMsg: "document fetch failed", HTTPStatus: 404}

	// Tested code
	err := fetchErr.Log(&BasicLogContext{}, "")

	// Asserts
	var httpErr HTTPErr
	assert.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 404, httpErr.Status)
	assert.Equal(t, "document fetch failed", httpErr.Message)
}

func TestLogSimpleErr(t *testing.T) {
	// Mock
	captureLog(t)
	cause := errors.New("underlying failure")

	// Tested code
	err := LogSimpleErr(&BasicLogContext{}, "Something broke.", cause)

	// Asserts
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "Something broke.")
}

func TestPsuUUID(t *testing.T) {
	first, err := PsuUUID()
	assert.Nil(t, err)
	second, err := PsuUUID()
	assert.Nil(t, err)
	assert.Len(t, first, 36)
	assert.NotEqual(t, first, second)
}
