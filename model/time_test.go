package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSceneTime(t *testing.T) {
	expected := time.Date(2018, 12, 31, 19, 3, 29, 48000000, time.UTC)

	for _, input := range []string{
		"2018-12-31T19:03:29.048Z",
		"2018-12-31T19:03:29.048",
	} {
		parsed, err := ParseSceneTime(input)
		assert.Nil(t, err, input)
		assert.True(t, expected.Equal(parsed), input)
	}

	parsed, err := ParseSceneTime("2018-12-31T19:03:29Z")
	assert.Nil(t, err)
	assert.True(t, time.Date(2018, 12, 31, 19, 3, 29, 0, time.UTC).Equal(parsed))
}

func TestParseSceneTime_Unparseable(t *testing.T) {
	_, err := ParseSceneTime("31/12/2018 19:03")
	assert.NotNil(t, err)
}
