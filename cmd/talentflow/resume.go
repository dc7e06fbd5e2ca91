// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-a2a/talentflow/talent"
)

// resumeOutput adds the split skill lists to the extracted details.
type resumeOutput struct {
	talent.ResumeDetails
	CurrentSkillList    []string `json:"currentSkillList"`
	SkillsToDevelopList []string `json:"skillsToDevelopList"`
}

func newResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <file.pdf>",
		Short: "Extract development plan details from a PDF resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.context(cmd.Context())

			pdf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdf)

			client, err := a.client(ctx)
			if err != nil {
				return err
			}
			details, err := client.ExtractResume(ctx, talent.ResumeInput{ResumeDataURI: uri})
			if err != nil {
				return fmt.Errorf("extract %s: %w", args[0], err)
			}
			return writeJSON(cmd.OutOrStdout(), resumeOutput{
				ResumeDetails:       details,
				CurrentSkillList:    talent.SplitSkills(details.CurrentSkills),
				SkillsToDevelopList: talent.SplitSkills(details.SkillsToDevelop),
			})
		},
	}
}
