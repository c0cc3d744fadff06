package main

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/topicscan/topicscan/internal/config"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify API credential configuration",
		Long: `Verify checks that API credentials are present and probes the search API
with a one-result test query.

Credentials are read from the environment or a .env file. The command
reports which credentials are present and the HTTP status the search API
returned for the probe. Credential values are never printed.`,
		Args: cobra.NoArgs,
		RunE: runVerifyCmd,
	}
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	setupLogger(cfg.Verbose)

	creds, err := config.LoadCredentials()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	out := cmd.OutOrStdout()
	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)

	fmt.Fprintln(out, "Testing API Configuration:")
	fmt.Fprintf(out, "  Groq API key present:          %s\n", presence(creds.GroqAPIKey != ""))
	fmt.Fprintf(out, "  Search API key present:        %s\n", presence(creds.SearchAPIKey != ""))
	fmt.Fprintf(out, "  Search engine ID present:      %s\n", presence(creds.SearchEngineID != ""))

	if err := creds.RequireSearch(); err != nil {
		return err
	}

	status, err := newSearchClient(cfg, creds).Verify(cmd.Context())
	fmt.Fprintf(out, "\nSearch API response status: %d\n", status)
	if err != nil {
		bad.Fprintln(out, "Search API configuration is not working.")
		return err
	}
	if status == http.StatusOK {
		ok.Fprintln(out, "Search API configuration is working!")
	}

	return nil
}

// presence formats a yes/no credential presence indicator.
func presence(present bool) string {
	if present {
		return "Yes"
	}
	return "No"
}
