package commands

import (
	"context"
	"fmt"
	"path"

	"github.com/rs/zerolog/log"

	"treewarden/internal/application"
	"treewarden/internal/domain"
	"treewarden/internal/ports"
)

// RemediateResult contains the result of moving unexpected folders
type RemediateResult struct {
	Summary *domain.RemediationSummary
	Message string
}

// RemediateCommand relocates unexpected top-level folders into the quarantine
type RemediateCommand struct {
	layout     ports.Layout
	schema     domain.Schema
	refresher  ports.Refresher
	BaseName   string
	Unexpected []string
}

// NewRemediateCommand creates a new RemediateCommand. unexpected is the
// list produced by the preceding validation pass.
func NewRemediateCommand(layout ports.Layout, schema domain.Schema, refresher ports.Refresher, baseName string, unexpected []string) *RemediateCommand {
	return &RemediateCommand{
		layout:     layout,
		schema:     schema,
		refresher:  refresher,
		BaseName:   baseName,
		Unexpected: unexpected,
	}
}

// Validate checks if the remediate operation is valid
func (c *RemediateCommand) Validate() error {
	if err := application.ValidateBaseName(c.BaseName); err != nil {
		return err
	}
	for _, u := range c.Unexpected {
		if path.Dir(u) != c.schema.Root {
			return &application.ValidationError{
				Field:   "source",
				Message: fmt.Sprintf("%s is not a top-level folder of %s", u, c.schema.Root),
			}
		}
	}
	return nil
}

// Execute moves each unexpected folder independently; a failed move is
// recorded in the summary and does not stop the others. The run only
// fails as a whole when the quarantine cannot be created. Afterwards the
// tree is validated again and the report embedded in the summary; if that
// pass fails the summary is still returned alongside the error.
func (c *RemediateCommand) Execute(ctx context.Context) (*RemediateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	quarantine := c.schema.QuarantinePath()
	summary := &domain.RemediationSummary{Quarantine: quarantine}

	if len(c.Unexpected) == 0 {
		summary.NothingToDo = true
		return &RemediateResult{Summary: summary, Message: summary.Message()}, nil
	}

	anchor := c.schema.QuarantineAnchor()
	if err := ensureDirectory(c.layout, c.schema.Root, path.Base(anchor), nil); err != nil {
		return nil, err
	}
	if err := ensureDirectory(c.layout, anchor, c.schema.Quarantine.Child, nil); err != nil {
		return nil, err
	}

	for _, src := range c.Unexpected {
		dst := path.Join(quarantine, path.Base(src))
		outcome := domain.MoveOutcome{Source: src, Destination: dst}

		if err := c.layout.MoveDirectory(src, dst); err != nil {
			outcome.Err = err
			log.Error().Err(err).Str("source", src).Str("destination", dst).Msg("failed to move folder")
		} else {
			log.Info().Str("source", src).Str("destination", dst).Msg("moved folder")
		}
		summary.Moves = append(summary.Moves, outcome)
	}

	c.recordMoves(ctx, summary.Moved())

	result := &RemediateResult{Summary: summary, Message: summary.Message()}

	validated, err := NewValidateCommand(c.layout, c.schema, c.BaseName).Execute(ctx)
	if err != nil {
		return result, fmt.Errorf("revalidate after remediation: %w", err)
	}
	summary.Report = validated.Report
	return result, nil
}

// recordMoves hands the completed moves to the hook. A hook that cannot
// apply moves, or fails to, refreshes in full instead.
func (c *RemediateCommand) recordMoves(ctx context.Context, moved []domain.MoveOutcome) {
	recorder, ok := c.refresher.(ports.MoveRecorder)
	if !ok {
		refresh(ctx, c.refresher, "remediate")
		return
	}
	if len(moved) == 0 {
		return
	}
	if err := recorder.RecordMoves(ctx, moved); err != nil {
		log.Warn().Err(err).Int("moves", len(moved)).Msg("recording moves failed, refreshing index")
		refresh(ctx, c.refresher, "remediate")
	}
}
