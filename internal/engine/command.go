package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexthissen/pact-net/internal/builder"
	"github.com/alexthissen/pact-net/internal/config"
	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pactfile"
	"github.com/alexthissen/pact-net/internal/store"
)

// Commands creates UpdateCommands bound to one store.
// It implements builder.CommandFactory.
type Commands struct {
	store   *store.Store
	logger  *slog.Logger
	metrics *Metrics
}

// NewCommands creates a command factory for s.
func NewCommands(s *store.Store, opts ...Option) *Commands {
	o := applyOptions(opts)
	return &Commands{
		store:   s,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// NewUpdateCommand implements builder.CommandFactory.
func (c *Commands) NewUpdateCommand(consumer, provider string, cfg config.Config, interaction ir.MessageInteraction, hosts builder.HostFactory) builder.Command {
	return &UpdateCommand{
		Participants: ir.Participants{Consumer: consumer, Provider: provider},
		Config:       cfg,
		Interaction:  interaction,
		Hosts:        hosts,
		store:        c.store,
		logger:       c.logger,
		metrics:      c.metrics,
	}
}

// UpdateCommand publishes one interaction to the store.
type UpdateCommand struct {
	Participants ir.Participants
	Config       config.Config
	Interaction  ir.MessageInteraction

	// Hosts, if set, starts a host that stays up while the interaction is
	// written.
	Hosts builder.HostFactory

	store   *store.Store
	logger  *slog.Logger
	metrics *Metrics
}

// Execute writes the interaction and, when Config.PactDir is set,
// re-exports the pact file. Unchanged interactions are not rewritten but
// the pact file is still exported.
func (c *UpdateCommand) Execute(ctx context.Context) (err error) {
	if c.Hosts != nil {
		host, herr := c.Hosts(ctx, c.Config)
		if herr != nil {
			return fmt.Errorf("start host: %w", herr)
		}
		if host != nil {
			defer func() {
				err = errors.Join(err, host.Close())
			}()
		}
	}

	specVersion := c.Config.SpecVersion
	if specVersion == "" {
		specVersion = ir.PactSpecVersion
	}

	pactID, err := c.store.UpsertPact(ctx, c.Participants, specVersion)
	if err != nil {
		return err
	}

	changed, err := c.store.WriteInteraction(ctx, pactID, c.Interaction)
	if err != nil {
		return err
	}
	if changed {
		c.metrics.notePublished(c.Participants.Consumer, c.Participants.Provider)
	}

	c.logger.Debug("interaction published",
		"consumer", c.Participants.Consumer,
		"provider", c.Participants.Provider,
		"interaction", c.Interaction.Description,
		"changed", changed,
	)

	if c.Config.PactDir == "" {
		return nil
	}
	_, err = exportPact(ctx, c.store, c.Config.PactDir, c.Participants)
	return err
}

// exportPact writes the stored pact for p to dir and returns the path.
func exportPact(ctx context.Context, s *store.Store, dir string, p ir.Participants) (string, error) {
	pact, err := s.ReadPact(ctx, p.Consumer, p.Provider)
	if err != nil {
		return "", fmt.Errorf("export pact: %w", err)
	}
	path, err := pactfile.Write(dir, pact)
	if err != nil {
		return "", fmt.Errorf("export pact: %w", err)
	}
	return path, nil
}
