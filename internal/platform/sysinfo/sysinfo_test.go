package sysinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectFillsEveryField(t *testing.T) {
	info := Collect()
	assert.NotEmpty(t, info.Platform)
	assert.NotEmpty(t, info.CPU)
	assert.NotEmpty(t, info.RAM)
	assert.Contains(t, info.String(), "platform=")
}
