package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "-", RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))

	generated := RequestID(WithRequestID(context.Background(), ""))
	assert.NotEqual(t, "-", generated)
	assert.Len(t, generated, 36)
}

func TestTimeLogsOutcome(t *testing.T) {
	buf := captureLog(t)
	ctx := WithRequestID(context.Background(), "r1")

	func() (err error) {
		defer Time(ctx, "unit.ok")(&err)
		return nil
	}()
	assert.Contains(t, buf.String(), "req_id=r1 op=unit.ok dur=")
	assert.NotContains(t, buf.String(), "err=")

	buf.Reset()
	func() (err error) {
		defer Time(ctx, "unit.fail")(&err)
		return errors.New("boom")
	}()
	assert.Contains(t, buf.String(), "op=unit.fail")
	assert.Contains(t, buf.String(), "err=boom")
}
