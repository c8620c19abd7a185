package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexthissen/pact-net/internal/ir"
	"github.com/alexthissen/pact-net/internal/pactfile"
)

// ShowInteraction summarizes one message.
type ShowInteraction struct {
	Description    string   `json:"description"`
	ProviderStates []string `json:"provider_states,omitempty"`
	ContentHash    string   `json:"content_hash"`
}

// ShowResult summarizes a pact file.
type ShowResult struct {
	Path         string            `json:"path"`
	Consumer     string            `json:"consumer"`
	Provider     string            `json:"provider"`
	SpecVersion  string            `json:"spec_version"`
	Interactions []ShowInteraction `json:"interactions"`
}

// RenderText prints a header and one line per interaction.
func (r ShowResult) RenderText(w io.Writer) {
	fmt.Fprintf(w, "%s -> %s (pact specification %s)\n", r.Consumer, r.Provider, r.SpecVersion)
	fmt.Fprintf(w, "%d interaction(s)\n", len(r.Interactions))
	for _, in := range r.Interactions {
		fmt.Fprintf(w, "  - %s [%s]\n", in.Description, shortHash(in.ContentHash))
		if len(in.ProviderStates) > 0 {
			fmt.Fprintf(w, "      given: %s\n", strings.Join(in.ProviderStates, ", "))
		}
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pact-file>",
		Short: "List the interactions in a pact file",
		Long: `Show the participants and interactions of a pact file.

Each interaction is listed with its provider states and content hash. Two
interactions with the same hash have identical canonical content.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

func runShow(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	pact, err := pactfile.Read(path)
	if err != nil {
		return fail(formatter, GetExitCode(err), "failed to read pact file", err)
	}

	result := ShowResult{
		Path:         path,
		Consumer:     pact.Consumer,
		Provider:     pact.Provider,
		SpecVersion:  pact.SpecVersion,
		Interactions: make([]ShowInteraction, 0, len(pact.Messages)),
	}
	for _, m := range pact.Messages {
		hash, err := ir.InteractionHash(m)
		if err != nil {
			return fail(formatter, ExitFailure, "failed to hash interaction", err)
		}
		si := ShowInteraction{Description: m.Description, ContentHash: hash}
		for _, s := range m.ProviderStates {
			si.ProviderStates = append(si.ProviderStates, s.Name)
		}
		result.Interactions = append(result.Interactions, si)
	}

	return formatter.Success(result)
}
