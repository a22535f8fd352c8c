package container

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	"github.com/raushan165/Taskpilot/config"
	"github.com/raushan165/Taskpilot/internal/infrastructure/notify"
)

func TestOptionalClientsDisabled(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := &Container{Config: &config.Config{Env: "development", MailSendEnabled: true, GCSBucket: "b"}, Logger: logger}

	n, ok := c.Notifier().(*notify.LogNotifier)
	if assert.True(t, ok, "no publisher falls back to logging") {
		assert.True(t, n.ShowCodes)
	}
	assert.Nil(t, c.ContactIndex())
	assert.Nil(t, c.Avatars())
}

func TestLogNotifierHidesCodesOutsideDevelopment(t *testing.T) {
	logger, _ := test.NewNullLogger()
	c := &Container{Config: &config.Config{Env: "production"}, Logger: logger}

	n := c.Notifier().(*notify.LogNotifier)
	assert.False(t, n.ShowCodes)
}
