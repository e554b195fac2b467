package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefault(t *testing.T) {
	var buf bytes.Buffer
	l := NewBufferLogger(&buf)
	prev := SetDefault(l)
	defer SetDefault(prev)

	require.Equal(t, l, Default())

	Debugf("not shown %d", 1)
	Infof("info %d", 2)
	Warnf("warn %s", "three")
	Errorf("error")

	out := buf.String()
	assert.NotContains(t, out, "not shown")
	assert.Contains(t, out, "level=info msg=\"info 2\"")
	assert.Contains(t, out, "level=warning msg=\"warn three\"")
	assert.Contains(t, out, "level=error msg=error")

	assert.False(t, IsDebug(l))
	l.SetLevel(logrus.DebugLevel)
	assert.True(t, IsDebug(l))
	Debugf("shown")
	assert.Contains(t, buf.String(), "level=debug msg=shown")
}

func TestNullLogger(t *testing.T) {
	l := NewNullLogger()
	prev := SetDefault(l)
	defer SetDefault(prev)
	Errorf("dropped")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
