package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModelJSONCodeFences(t *testing.T) {
	var target struct {
		Score int `json:"score"`
	}

	response := "```json\n{\"score\": 42}\n```"
	err := ParseModelJSON("test", response, &target)

	require.NoError(t, err)
	assert.Equal(t, 42, target.Score)
}

func TestParseModelJSONSurroundingProse(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	response := "Here is the result you asked for:\n{\"name\": \"Go\"}\nLet me know if you need anything else."
	err := ParseModelJSON("test", response, &target)

	require.NoError(t, err)
	assert.Equal(t, "Go", target.Name)
}

func TestParseModelJSONArray(t *testing.T) {
	var target []string

	err := ParseModelJSON("test", "```\n[\"a\", \"b\"]\n```", &target)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, target)
}

func TestParseModelJSONMalformed(t *testing.T) {
	var target struct{}

	err := ParseModelJSON("scoring", "not json at all", &target)

	require.Error(t, err)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "scoring", parseErr.Stage)
}
