package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/mockexam/internal/backend"
	"github.com/pavelanni/mockexam/internal/catalog"
	"github.com/pavelanni/mockexam/internal/corpus"
	"github.com/pavelanni/mockexam/internal/examstore"
	"github.com/pavelanni/mockexam/internal/generate"
	"github.com/pavelanni/mockexam/internal/handler"
	"github.com/pavelanni/mockexam/internal/retrieval"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mockexam",
		Short: "Retrieval-augmented mock exam generator",
	}

	serve := serveCmd()
	root.AddCommand(serve, generateCmd(), streamsCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addCommonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("data-dir", "./app_data", "Root directory for seed corpora and generated exams")
	f.String("index-url", "http://localhost:8000", "Similarity index base URL")
	f.String("llm-provider", "ollama", "Generation backend (ollama, gemini)")
	f.String("ollama-url", "http://localhost:11434", "Ollama base URL")
	f.String("ollama-model", "granite4:3b-h", "Ollama model identifier")
	f.String("gemini-api-key", "", "Gemini API key (or set MOCKEXAM_GEMINI_API_KEY)")
	f.String("gemini-model", "gemini-2.5-flash", "Gemini model name")
	f.Duration("pacing", time.Second, "Delay between exam sections")
	f.Int("top-k", 3, "Exemplars retrieved per seed question")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP exam generation server",
		RunE:  runServe,
	}
	cmd.Flags().StringP("addr", "a", ":8080", "HTTP listen address")
	addCommonFlags(cmd)
	return cmd
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one mock exam and print it as JSON",
		RunE:  runGenerate,
	}
	f := cmd.Flags()
	f.StringP("exam", "e", "", "Exam type (CAT, GATE) (required)")
	f.StringP("stream", "s", "", "Stream code for stream-based exam types")
	f.IntP("year", "y", 0, "Restrict seed questions to a year")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addCommonFlags(cmd)

	_ = cmd.MarkFlagRequired("exam")

	return cmd
}

func streamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streams",
		Short: "List the supported GATE streams",
		Run: func(_ *cobra.Command, _ []string) {
			for _, code := range catalog.GateStreams {
				fmt.Printf("%s\t%s\n", code, catalog.StreamName(code))
			}
		},
	}
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("MOCKEXAM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("mockexam")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/mockexam")
	v.AddConfigPath("/etc/mockexam")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// buildService wires the generation core from configuration: corpora,
// retriever, backend, and exam cache.
func buildService(ctx context.Context, v *viper.Viper) (*generate.Service, error) {
	dataDir := v.GetString("data-dir")

	corpora, err := corpus.LoadAll(dataDir)
	if err != nil {
		return nil, fmt.Errorf("load seed corpora: %w", err)
	}

	retriever := retrieval.NewClient(v.GetString("index-url"))

	b, err := backend.New(ctx, backend.Config{
		Provider:     v.GetString("llm-provider"),
		OllamaURL:    v.GetString("ollama-url"),
		OllamaModel:  v.GetString("ollama-model"),
		GeminiAPIKey: v.GetString("gemini-api-key"),
		GeminiModel:  v.GetString("gemini-model"),
	})
	if err != nil {
		return nil, fmt.Errorf("create generation backend: %w", err)
	}

	store := examstore.New(filepath.Join(dataDir, "generated_questions"))

	svc := generate.New(corpora, retriever, b, store, generate.Config{
		Pacing: v.GetDuration("pacing"),
		TopK:   v.GetInt("top-k"),
	})
	return svc, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	svc, err := buildService(cmd.Context(), v)
	if err != nil {
		return err
	}

	h := handler.New(svc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"provider", v.GetString("llm-provider"),
		"index_url", v.GetString("index-url"),
		"data_dir", v.GetString("data-dir"),
	)
	return http.ListenAndServe(addr, r)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	svc, err := buildService(cmd.Context(), v)
	if err != nil {
		return err
	}

	doc, err := svc.GenerateFullExam(cmd.Context(), v.GetString("exam"), v.GetString("stream"), v.GetInt("year"))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal exam document: %w", err)
	}

	outPath := v.GetString("output")
	if outPath == "" || outPath == "-" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
