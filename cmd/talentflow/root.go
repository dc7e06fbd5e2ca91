// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-a2a/talentflow"
)

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talentflow",
		Short: "Schema-bound generation flows for talent development",
		Long: `TalentFlow generates Individual Development Plans, analyzes team skill gaps,
extracts plan details from resumes and answers questions about the application.

Every flow validates its input, renders a prompt, calls the configured model
and validates the model output before returning it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format (text, json)")
	flags.StringVarP(&a.modelName, "model", "m", "", "Model name, overrides the config")

	cmd.AddCommand(
		newServeCmd(a),
		newFlowsCmd(a),
		newRunCmd(a),
		newBatchCmd(a),
		newResumeCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "talentflow version %s\n", talentflow.Version)
			},
		},
	)
	return cmd
}
