// Copyright 2025 Astrodine Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/astrodine/menusearch"
	"github.com/astrodine/menusearch/ai"
	"github.com/astrodine/menusearch/ingestion"
	"github.com/astrodine/menusearch/reembed"
	"github.com/astrodine/menusearch/retrieval"
)

func main() {
	app := &cli.App{
		Name:  "menusearch",
		Usage: "Semantic search over galactic restaurant menus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Parse menu documents and load dishes into the catalog",
				ArgsUsage: "<documents-dir>",
				Action:    ingestCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "debug-dir",
						Usage: "Directory for extracted menu JSON dumps",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of documents to process concurrently",
					},
				),
			},
			{
				Name:      "retrieve",
				Usage:     "Answer a CSV of questions and write dish IDs per row",
				ArgsUsage: "<questions.csv>",
				Action:    retrieveCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "mapping",
						Aliases:  []string{"m"},
						Usage:    "Path to dish name to ID mapping JSON",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path for the result CSV",
						Value:   "results.csv",
					},
					&cli.StringFlag{
						Name:  "debug",
						Usage: "Path for a per-question debug JSON dump",
					},
					&cli.StringFlag{
						Name:  "difficulty",
						Usage: "Only answer questions with this difficulty label",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Number of questions to answer concurrently",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of candidates fetched per search attempt",
						Value: retrieval.DefaultTopK,
					},
				),
			},
			{
				Name:      "ask",
				Usage:     "Answer a single question and print matching dish names",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of candidates fetched per search attempt",
						Value: retrieval.DefaultTopK,
					},
				),
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all dishes with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags returns the flags shared by every command that talks to the
// chat and embedding services.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL for chat and embeddings",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (defaults to host)",
		},
		&cli.StringFlag{
			Name:     "embedding-model",
			Usage:    "Embedding model name",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "chat-model",
			Usage:    "Chat model name for extraction and verification",
			Required: true,
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	embeddingHost := c.String("embedding-host")
	if embeddingHost == "" {
		embeddingHost = c.String("host")
	}

	config := ai.NewConfig(
		ai.WithChatHost(c.String("host")),
		ai.WithEmbeddingHost(embeddingHost),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	documentsDir := c.Args().First()
	if documentsDir == "" {
		return fmt.Errorf("documents directory is required")
	}

	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := menusearch.NewDatabase(c.String("db"), menusearch.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var opts []ingestion.Option
	if dir := c.String("debug-dir"); dir != "" {
		opts = append(opts, ingestion.WithDebugDir(dir))
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	if err := pipeline.IngestDirectory(ctx, documentsDir); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	count, err := db.DishRepository().CountDishes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count dishes: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Catalog now holds %d dishes\n", count)

	return nil
}

func retrieveCommand(c *cli.Context) error {
	ctx := context.Background()

	questionsPath := c.Args().First()
	if questionsPath == "" {
		return fmt.Errorf("questions CSV path is required")
	}

	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	mapping, err := retrieval.LoadNameMapping(c.String("mapping"))
	if err != nil {
		return fmt.Errorf("failed to load name mapping: %w", err)
	}

	db, err := menusearch.NewDatabase(c.String("db"), menusearch.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var runnerOpts []retrieval.RunnerOption
	if difficulty := c.String("difficulty"); difficulty != "" {
		runnerOpts = append(runnerOpts, retrieval.WithDifficulty(difficulty))
	}
	if concurrency := c.Int("concurrency"); concurrency > 0 {
		runnerOpts = append(runnerOpts, retrieval.WithConcurrency(concurrency))
	}

	retriever := db.NewRetriever(retrieval.WithTopK(c.Int("top-k")))
	runner, err := retrieval.NewRunner(retriever, mapping, runnerOpts...)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}
	defer runner.Release()

	outputPath := c.String("output")
	if err := runner.RunFile(ctx, questionsPath, outputPath, c.String("debug")); err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Results written to %s\n", outputPath)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	config, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := menusearch.NewDatabase(c.String("db"), menusearch.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	retriever := db.NewRetriever(retrieval.WithTopK(c.Int("top-k")))
	names := retriever.Search(ctx, question)
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "No matching dishes found")
		return nil
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		// Chat values are unused here but required by validation.
		ai.WithChatHost(c.String("embedding-host")),
		ai.WithChatModel("dummy"),
	)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	reembedConfig := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if reembedConfig.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if reembedConfig.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if reembedConfig.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := menusearch.NewDatabase(c.String("db"), menusearch.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	reembedder := db.NewReembedder(reembedConfig, os.Stderr)

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
