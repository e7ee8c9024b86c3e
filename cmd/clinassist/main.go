// Copyright 2025 Poiesic Systems
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
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/clinassist"
	"github.com/poiesic/clinassist/ai"
	"github.com/poiesic/clinassist/answer"
	"github.com/poiesic/clinassist/config"
	"github.com/poiesic/clinassist/core"
	"github.com/poiesic/clinassist/fhir"
	"github.com/poiesic/clinassist/ingestion"
	"github.com/poiesic/clinassist/reembed"
	"github.com/poiesic/clinassist/server"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "clinassist",
		Usage: "Clinical assistant over FHIR patient notes",
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
				Name:  "serve",
				Usage: "Run the web API",
				Action: func(c *cli.Context) error {
					return serveCommand(c, cfg)
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the note store directory",
						Value:   cfg.Store.Path,
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "Port to serve the API on",
						Value:   cfg.Server.Port,
					},
				},
			},
			{
				Name:  "ask",
				Usage: "Ask clinical questions interactively",
				Action: func(c *cli.Context) error {
					return askCommand(c, cfg)
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the note store directory",
						Value:   cfg.Store.Path,
					},
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of context notes to retrieve",
						Value:   3,
					},
				},
			},
			{
				Name:  "ingest",
				Usage: "Fetch FHIR data and write patient summaries",
				Action: func(c *cli.Context) error {
					return ingestCommand(c, cfg)
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "fhir-url",
						Usage: "FHIR server base URL",
						Value: cfg.FHIR.BaseURL,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Path to write the summaries file",
						Value:   "patient_summaries.json",
					},
				},
			},
			{
				Name:  "embed",
				Usage: "Embed patient summaries and store them for search",
				Action: func(c *cli.Context) error {
					return embedCommand(c, cfg)
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the note store directory",
						Value:   cfg.Store.Path,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Path to the summaries file",
						Value:   "patient_summaries.json",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of summaries to embed in each batch",
						Value: 16,
					},
				},
			},
			{
				Name:  "reembed",
				Usage: "Regenerate embeddings for all stored notes",
				Action: func(c *cli.Context) error {
					return reembedCommand(c, cfg)
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the note store directory",
						Value:   cfg.Store.Path,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of notes to reembed in each batch",
						Value: 100,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiConfig builds the AI service configuration from process configuration.
func aiConfig(cfg *config.Config) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedding.Host),
		ai.WithEmbeddingModel(cfg.Embedding.Model),
		ai.WithGenerationHost(cfg.LLM.Host),
		ai.WithGenerationModel(cfg.LLM.Model),
		ai.WithAPIKey(cfg.LLM.APIKey),
		ai.WithMaxTokens(cfg.LLM.MaxLength),
		ai.WithTemperature(cfg.LLM.Temperature),
		ai.WithTopP(cfg.LLM.TopP),
	)
}

func openAssistant(dbPath string, cfg *config.Config) (*clinassist.Assistant, error) {
	conf := aiConfig(cfg)
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	assistant, err := clinassist.NewAssistant(dbPath, clinassist.WithAIConfig(conf))
	if err != nil {
		return nil, fmt.Errorf("failed to open note store: %w", err)
	}

	return assistant, nil
}

func serveCommand(c *cli.Context, cfg *config.Config) error {
	assistant, err := openAssistant(c.String("db"), cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	pipeline, err := assistant.NewAnswerPipeline()
	if err != nil {
		return err
	}

	srv, err := server.NewServer(pipeline, assistant.NoteRepository())
	if err != nil {
		return err
	}

	return srv.Run(c.Int("port"))
}

func askCommand(c *cli.Context, cfg *config.Config) error {
	ctx := context.Background()

	assistant, err := openAssistant(c.String("db"), cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	pipeline, err := assistant.NewAnswerPipeline()
	if err != nil {
		return err
	}

	opts := answer.DefaultAskOptions()
	opts.TopK = c.Int("top-k")

	fmt.Println("\n=== Clinical Assistant ===")
	fmt.Println("Type 'exit' to quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nEnter your clinical query: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(query, "exit") {
			break
		}

		result, err := pipeline.AskWithOptions(ctx, query, opts)
		if err != nil {
			fmt.Printf("Error: %s\n", err)
			fmt.Println("Please try again or type 'exit' to quit.")
			continue
		}

		fmt.Println("\nTop retrieved notes:")
		for i, sn := range result.Sources {
			fmt.Printf("%d. %s (score %.3f) - Patient %s\n", i+1, sn.Note.NoteID, sn.Score, sn.Note.Patient())
		}

		fmt.Println("\nGenerated answer:")
		fmt.Println(result.Response)
	}

	return scanner.Err()
}

func ingestCommand(c *cli.Context, cfg *config.Config) error {
	ctx := context.Background()

	client, err := fhir.NewClient(c.String("fhir-url"))
	if err != nil {
		return err
	}

	summaries, failed, err := client.ProcessPatients(ctx)
	if err != nil {
		return fmt.Errorf("failed to process patients: %w", err)
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return err
	}

	outPath := c.String("out")
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Saved %d patient summaries to %s\n", len(summaries), outPath)
	if len(failed) > 0 {
		fmt.Fprintf(os.Stderr, "Failed to process %d patients\n", len(failed))
	}

	return nil
}

func embedCommand(c *cli.Context, cfg *config.Config) error {
	ctx := context.Background()

	data, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("failed to read summaries (run ingest first): %w", err)
	}

	var summaries []core.NoteSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return fmt.Errorf("failed to parse summaries: %w", err)
	}

	assistant, err := openAssistant(c.String("db"), cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	pipeline, err := assistant.NewIngestionPipeline(ingestion.WithBatchSize(c.Int("batch-size")))
	if err != nil {
		return err
	}
	defer pipeline.Release()

	result, err := pipeline.IngestSummaries(ctx, summaries)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Completed: %d notes inserted, %d notes updated, %d failed\n",
		result.Inserted, result.Updated, result.Failed)

	return nil
}

func reembedCommand(c *cli.Context, cfg *config.Config) error {
	ctx := context.Background()

	assistant, err := openAssistant(c.String("db"), cfg)
	if err != nil {
		return err
	}
	defer assistant.Close()

	conf := reembed.DefaultConfig()
	conf.BatchSize = c.Int("batch-size")

	r := reembed.NewReembedder(assistant.NoteRepository(), assistant.Provider().Embedder(), conf, os.Stderr)
	return r.Run(ctx)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
