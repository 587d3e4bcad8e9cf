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

// CreateResult contains the result of provisioning the layout
type CreateResult struct {
	BaseName string
	Created  []string // directories created by this run, in creation order
	Message  string
}

// CreateCommand ensures every expected directory exists and carries a marker
type CreateCommand struct {
	layout    ports.Layout
	schema    domain.Schema
	refresher ports.Refresher
	BaseName  string
}

// NewCreateCommand creates a new CreateCommand. refresher may be nil.
func NewCreateCommand(layout ports.Layout, schema domain.Schema, refresher ports.Refresher, baseName string) *CreateCommand {
	return &CreateCommand{
		layout:    layout,
		schema:    schema,
		refresher: refresher,
		BaseName:  baseName,
	}
}

// Validate checks if the create operation is valid
func (c *CreateCommand) Validate() error {
	return application.ValidateBaseName(c.BaseName)
}

// Execute runs the create command. The first failure aborts the run;
// directories created before it are kept.
func (c *CreateCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &CreateResult{BaseName: c.BaseName}
	err := c.provision(result)

	if err == nil || len(result.Created) > 0 {
		refresh(ctx, c.refresher, "create")
	}
	if err != nil {
		return nil, err
	}

	if len(result.Created) == 0 {
		result.Message = "Structure already up to date"
	} else {
		result.Message = fmt.Sprintf("Structure created/updated: %d folder(s) created", len(result.Created))
	}
	return result, nil
}

func (c *CreateCommand) provision(result *CreateResult) error {
	res := c.schema.Resolve(c.BaseName)

	if err := ensureDirectory(c.layout, res.Root, c.BaseName, &result.Created); err != nil {
		return err
	}

	for _, a := range res.Anchors {
		if err := ensureDirectory(c.layout, path.Dir(a.Path), path.Base(a.Path), &result.Created); err != nil {
			return err
		}
		for _, child := range a.Children {
			if err := ensureDirectory(c.layout, a.Path, path.Base(child), &result.Created); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureDirectory creates parent/name when absent and writes its marker.
// An existing directory costs one marker write, which is itself a no-op
// when the marker is present.
func ensureDirectory(layout ports.Layout, parent, name string, created *[]string) error {
	p := path.Join(parent, name)

	if !layout.Exists(p) {
		if err := layout.CreateDirectory(parent, name); err != nil {
			return &application.StepError{Step: "create folder", Path: p, Err: err}
		}
		log.Debug().Str("path", p).Msg("created folder")
		if created != nil {
			*created = append(*created, p)
		}
	}

	if err := layout.WriteMarker(p); err != nil {
		return &application.StepError{Step: "write marker", Path: p, Err: err}
	}
	return nil
}

// refresh invokes the index hook. A failing hook is logged, the
// operation that triggered it has already completed.
func refresh(ctx context.Context, refresher ports.Refresher, op string) {
	if refresher == nil {
		return
	}
	if err := refresher.Refresh(ctx); err != nil {
		log.Warn().Err(err).Str("op", op).Msg("index refresh failed")
	}
}
