package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmagar/panopto-cli/internal/helpers"
	"github.com/jmagar/panopto-cli/internal/model"
	"github.com/jmagar/panopto-cli/internal/ui"
	"github.com/rs/zerolog"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type urlExtractor interface {
	Extract(ctx context.Context, rawURL string) (model.Result, error)
}

type resultAnnotator interface {
	AnnotateResult(ctx context.Context, res model.Result) model.Result
}

type runner struct {
	extractor urlExtractor
	prober    resultAnnotator
	log       zerolog.Logger
}

// run extracts every configured URL, renders or serializes the results and
// returns the process exit code. One failing URL does not stop the others.
func (r *runner) run(ctx context.Context, cfg *model.Config) int {
	if len(cfg.Urls) == 0 {
		ui.PrintError("no URLs given")
		return exitUsage
	}

	var results []model.Result
	failed := 0
	for _, u := range cfg.Urls {
		if ctx.Err() != nil {
			ui.PrintWarning("interrupted, skipping remaining URLs")
			failed++
			break
		}
		res, err := r.extractor.Extract(ctx, u)
		if err != nil {
			failed++
			reportError(u, err)
			continue
		}
		if r.prober != nil {
			res = r.prober.AnnotateResult(ctx, res)
		}
		results = append(results, res)
		if !cfg.JSONOutput {
			ui.RenderResult(res)
		}
	}

	if len(results) > 0 {
		if err := r.emit(cfg, results); err != nil {
			ui.PrintError(err.Error())
			return exitFailure
		}
	}

	r.log.Info().Int("urls", len(cfg.Urls)).Int("failed", failed).Msg("run finished")
	if failed > 0 {
		return exitFailure
	}
	return exitOK
}

// emit prints JSON and/or writes the output file. A single result is
// serialized as an object, several as an array.
func (r *runner) emit(cfg *model.Config, results []model.Result) error {
	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}
	if cfg.JSONOutput {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(ui.Out, string(data))
	}
	if cfg.OutputPath != "" {
		if err := helpers.WriteJSONFile(cfg.OutputPath, payload); err != nil {
			return err
		}
		if !cfg.JSONOutput {
			ui.PrintSuccess("Wrote " + cfg.OutputPath)
		}
	}
	return nil
}

func reportError(rawURL string, err error) {
	var derr *model.DeliveryError
	switch {
	case errors.Is(err, model.ErrUnsupportedURL):
		ui.PrintWarning("Not a Panopto viewer or folder URL: " + rawURL)
	case errors.As(err, &derr) && derr.Expected():
		ui.PrintError(rawURL + ": " + derr.Error())
		ui.PrintInfo("This session is not public. panopto only reads publicly viewable sessions and does not sign in.")
	default:
		ui.PrintError(rawURL + ": " + err.Error())
	}
}
