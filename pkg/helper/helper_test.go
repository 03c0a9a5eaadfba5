package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type caller struct{}

func (caller) name() string {
	return GetFuncName()
}

func TestGetFuncName(t *testing.T) {
	assert.Equal(t, "helper.TestGetFuncName", GetFuncName())
	assert.Equal(t, "helper.caller.name", caller{}.name())
}
