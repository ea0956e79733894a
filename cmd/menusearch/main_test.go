package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/astrodine/menusearch/ai"
)

func TestAIConfigFromFlags(t *testing.T) {
	runWithArgs := func(t *testing.T, args ...string) (*ai.Config, error) {
		t.Helper()
		var config *ai.Config
		var configErr error
		app := &cli.App{
			Name:  "test",
			Flags: aiFlags(),
			Action: func(c *cli.Context) error {
				config, configErr = aiConfigFromFlags(c)
				return nil
			},
		}
		err := app.Run(append([]string{"test"}, args...))
		require.NoError(t, err)
		return config, configErr
	}

	t.Run("embedding host defaults to host", func(t *testing.T) {
		config, err := runWithArgs(t,
			"--host", "http://llm.example:8080/v1",
			"--embedding-model", "embeddinggemma",
			"--chat-model", "qwen2.5:3b",
		)
		require.NoError(t, err)
		assert.Equal(t, "http://llm.example:8080/v1", config.ChatHost)
		assert.Equal(t, "http://llm.example:8080/v1", config.EmbeddingHost)
	})

	t.Run("separate embedding host", func(t *testing.T) {
		config, err := runWithArgs(t,
			"--host", "http://chat.example/v1",
			"--embedding-host", "http://embed.example/v1",
			"--embedding-model", "embeddinggemma",
			"--chat-model", "qwen2.5:3b",
		)
		require.NoError(t, err)
		assert.Equal(t, "http://chat.example/v1", config.ChatHost)
		assert.Equal(t, "http://embed.example/v1", config.EmbeddingHost)
	})

	t.Run("hosts are normalized", func(t *testing.T) {
		config, err := runWithArgs(t,
			"--host", "http://llm.example:8080",
			"--embedding-model", "embeddinggemma",
			"--chat-model", "qwen2.5:3b",
		)
		require.NoError(t, err)
		assert.Equal(t, "http://llm.example:8080/v1", config.ChatHost)
		assert.Equal(t, "http://llm.example:8080/v1", config.EmbeddingHost)
	})
}

func TestSharedAIFlags(t *testing.T) {
	flags := aiFlags()

	findString := func(name string) *cli.StringFlag {
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
				return f
			}
		}
		return nil
	}

	t.Run("host has local default", func(t *testing.T) {
		hostFlag := findString("host")
		require.NotNil(t, hostFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
	})

	t.Run("embedding-model is required", func(t *testing.T) {
		modelFlag := findString("embedding-model")
		require.NotNil(t, modelFlag)
		assert.Empty(t, modelFlag.Value)
		assert.True(t, modelFlag.Required)
	})

	t.Run("chat-model is required", func(t *testing.T) {
		modelFlag := findString("chat-model")
		require.NotNil(t, modelFlag)
		assert.True(t, modelFlag.Required)
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func(before cli.BeforeFunc, action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: before,
			Action: action,
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := newApp(setupLogger, func(c *cli.Context) error {
					return nil
				})
				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				app := newApp(setupLogger, func(c *cli.Context) error {
					return nil
				})
				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := newApp(setupLogger, func(c *cli.Context) error {
			return nil
		})
		err := app.Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := newApp(setupLogger, func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		})
		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}
