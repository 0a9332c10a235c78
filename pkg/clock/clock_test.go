package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_NowUsesSiteZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	c := New(ist)

	now := c.Now()
	assert.Equal(t, ist, now.Location())
	assert.Equal(t, ist, c.Location())
}

func TestClock_NilLocationIsLocal(t *testing.T) {
	assert.Equal(t, time.Local, New(nil).Location())
}
