package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	radix int
	name  string
	calls []string
}

func withRadix(r int) *Func[*testConfig] {
	return New(func(c *testConfig) error {
		if r != 10 && r != 16 {
			return errors.New("unsupported radix")
		}
		c.radix = r
		c.calls = append(c.calls, "radix")

		return nil
	})
}

func withName(name string) *Func[*testConfig] {
	return NoError(func(c *testConfig) {
		c.name = name
		c.calls = append(c.calls, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply[*testConfig](cfg, withName("table"), withRadix(16))
		require.NoError(t, err)
		require.Equal(t, 16, cfg.radix)
		require.Equal(t, "table", cfg.name)
		require.Equal(t, []string{"name", "radix"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}

		err := Apply[*testConfig](cfg, withRadix(8), withName("skipped"))
		require.EqualError(t, err, "unsupported radix")
		require.Empty(t, cfg.name)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &testConfig{radix: 10}

		require.NoError(t, Apply[*testConfig](cfg))
		require.Equal(t, 10, cfg.radix)
		require.Empty(t, cfg.calls)
	})
}
