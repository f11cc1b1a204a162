package main

// Render the evaluation prompt for an idea file and optionally run it:
//   go run ./cmd/evalprompt -idea idea.json
//   go run ./cmd/evalprompt -idea idea.json -call -provider openai -model gpt-4o-mini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"seedrowz-backend/internal/evaluations"
	"seedrowz-backend/internal/llm"
	"seedrowz-backend/internal/shared/config"
)

func main() {
	config.Load()

	ideaPath := flag.String("idea", "", "Path to an idea submission JSON file")
	call := flag.Bool("call", false, "Send the prompt to the provider and print the normalized evaluation")
	outPath := flag.String("out", "", "Path to write the output (optional)")
	provider := flag.String("provider", llm.EnvSettings().Provider, "LLM provider (gemini or openai)")
	model := flag.String("model", "", "LLM model (defaults to the provider's configured model)")
	flag.Parse()

	if strings.TrimSpace(*ideaPath) == "" {
		exitErr("idea path is required")
	}
	ideaBytes, err := os.ReadFile(*ideaPath)
	if err != nil {
		exitErr(fmt.Sprintf("read idea: %v", err))
	}
	var req evaluations.Request
	if err := json.Unmarshal(ideaBytes, &req); err != nil {
		exitErr(fmt.Sprintf("invalid idea json: %v", err))
	}
	if err := evaluations.ValidateRequest(req); err != nil {
		exitErr(err.Error())
	}

	prompt := evaluations.BuildPrompt(req)
	out := []byte(prompt)
	if *call {
		settings := llm.SettingsFor(*provider)
		if m := strings.TrimSpace(*model); m != "" {
			settings.Model = m
		}
		out, err = evaluate(context.Background(), settings, prompt)
		if err != nil {
			exitErr(err.Error())
		}
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if _, err := os.Stdout.Write(out); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func evaluate(ctx context.Context, settings llm.Settings, prompt string) ([]byte, error) {
	client, err := llm.NewClient(settings)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return nil, fmt.Errorf("no API key for provider %s", settings.Provider)
		}
		return nil, fmt.Errorf("build client: %w", err)
	}
	raw, err := client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("llm call: %w", err)
	}
	evaluation, err := evaluations.ParseEvaluation(raw)
	if err != nil {
		return nil, fmt.Errorf("%w\nraw response:\n%s", err, raw)
	}
	return prettyJSON(evaluation)
}

func prettyJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
