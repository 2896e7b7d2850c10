package cmdutil

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	PersistentFlags(flags)
	InputFlags(flags)

	require.NoError(t, flags.Parse([]string{"--debug", "--config", "strategy.yaml", "--format=metatrader"}))

	debug, err := flags.GetBool("debug")
	require.NoError(t, err)
	assert.True(t, debug)

	dotenv, err := flags.GetString("dotenv")
	require.NoError(t, err)
	assert.Equal(t, ".env.local", dotenv)

	format, err := flags.GetString("format")
	require.NoError(t, err)
	assert.Equal(t, "metatrader", format)
}
