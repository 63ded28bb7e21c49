package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string {
	return f.name
}

func (f *fakeFeature) IsEnabled() bool {
	return f.enabled
}

func (f *fakeFeature) Load(_ fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		on := &fakeFeature{name: "on", enabled: true}
		off := &fakeFeature{name: "off"}

		mgr := NewManager()
		mgr.Register(on)
		mgr.Register(off)

		loaded, err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.Equal(t, []string{"on"}, loaded)
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		bad := &fakeFeature{name: "bad", enabled: true, err: errors.New("boom")}
		next := &fakeFeature{name: "next", enabled: true}

		mgr := NewManager()
		mgr.Register(bad)
		mgr.Register(next)

		loaded, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "bad")
		assert.Empty(t, loaded)
		assert.False(t, next.loaded)
	})
}
