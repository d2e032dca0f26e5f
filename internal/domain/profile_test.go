package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNA(t *testing.T) {
	value := "The Octocat"
	empty := ""

	assert.Equal(t, "The Octocat", StringOrNA(&value))
	assert.Equal(t, AbsentPlaceholder, StringOrNA(&empty))
	assert.Equal(t, AbsentPlaceholder, StringOrNA(nil))
}
