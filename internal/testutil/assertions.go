// Package testutil provides common test utilities and assertions for registry tests.
package testutil

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertErrorIs asserts that err matches every target via errors.Is.
func AssertErrorIs(t *testing.T, err error, targets ...error) {
	t.Helper()
	require.Error(t, err)
	for _, target := range targets {
		assert.True(t, errors.Is(err, target), "error %q should match %v", err, target)
	}
}

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting.
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertSameElements asserts that actual holds exactly the expected
// references, in order, compared by identity for pointers.
func AssertSameElements(t *testing.T, expected, actual []any, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return
	}
	for i := range expected {
		assert.Equal(t, expected[i], actual[i], msgAndArgs...)
	}
}
