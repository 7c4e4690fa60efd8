package drivers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/szeremeta1/pisag/transmit"
)

func TestBuildSelectsByKind(t *testing.T) {
	noop, err := Build(Config{Kind: KindNoop})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, noop)

	sub, err := Build(Config{Kind: KindSubprocess, Subprocess: SubprocessConfig{ScriptPath: "/bin/true"}})
	require.NoError(t, err)
	assert.IsType(t, &Subprocess{}, sub)

	_, err = Build(Config{Kind: "bogus"})
	assert.Error(t, err)
}

func TestNoopAlwaysConnected(t *testing.T) {
	n := NewNoop()
	ctx := context.Background()
	ok, err := n.Connect(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, n.IsConnected(ctx))
	assert.NoError(t, n.Configure(ctx, transmit.RadioConfig{}))
	assert.NoError(t, n.Transmit(ctx, nil))
}

func TestSubprocessDryRunSkipsExecution(t *testing.T) {
	s := NewSubprocess(SubprocessConfig{ScriptPath: "/nonexistent", DryRun: true})
	ran := false
	s.runner = func(context.Context, string, ...string) error {
		ran = true
		return nil
	}

	err := s.EncodeAndTransmit(context.Background(), transmit.BurstRequest{RIC: "1234567", Text: "TEST", BaudRate: 1200})
	require.NoError(t, err)
	assert.False(t, ran)
}

func TestSubprocessRunsEncoderWhenNotDryRun(t *testing.T) {
	s := NewSubprocess(SubprocessConfig{ScriptPath: "/bin/echo"})
	var gotArgs []string
	s.runner = func(_ context.Context, name string, args ...string) error {
		gotArgs = args
		return nil
	}

	err := s.EncodeAndTransmit(context.Background(), transmit.BurstRequest{RIC: "1234567", Text: "TEST", BaudRate: 1200})
	require.NoError(t, err)
	assert.Contains(t, gotArgs, "1234567")
}
