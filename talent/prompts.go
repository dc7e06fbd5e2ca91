// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package talent

import (
	"github.com/MakeNowJust/heredoc/v2"
)

var idpTemplate = heredoc.Doc(`
	You are an AI assistant specialized in generating personalized Individual Development Plans (IDPs) for employees.

	Based on the employee's role, performance data, career aspirations, manager feedback, and skill gap analysis, generate a comprehensive and actionable IDP.

	Employee Role: {{{employeeRole}}}
	Performance Data: {{{performanceData}}}
	Career Aspirations: {{{careerAspirations}}}
	Manager Feedback: {{{managerFeedback}}}
	Skill Gap Analysis: {{{skillGapAnalysis}}}

	Consider all the provided information to create an IDP that focuses on the most relevant skills and goals for the employee's development.
	The IDP should include specific development activities, timelines, and measurable outcomes.

	Ensure the IDP is well-structured, clear, and easy to follow.
	Make the output have a title of "Individual Development Plan" and bolded fields for each section.
	Make sure the information in each section comes from the input data provided.

	Output the complete IDP.
`)

// The output sections are left to the model; the template references input fields only.
var skillGapTemplate = heredoc.Doc(`
	You are a team management expert. Analyze the provided team description and future goals to identify skill gaps and suggest recommendations.

	Team Description: {{{teamDescription}}}
	Future Goals: {{{futureGoals}}}

	Describe the skill gaps of the team, then recommend training or development plans that address them.
`)

var resumeTemplate = heredoc.Doc(`
	You are an AI assistant specialized in analyzing resumes to create Individual Development Plans (IDPs).

	Based on the provided resume, extract the following information:
	- A primary career goal. Infer this from the summary, experience, and skills if not explicitly stated.
	- A brief summary for a development plan based on the skills and experience.
	- A comma-separated list of the candidate's current skills.
	- A comma-separated list of skills to develop for their career goal.
	- A summary of their professional experience.

	Resume (PDF): {{media url=resumeDataUri}}

	Extract the information and return it in the specified format.
`)

// AssistantPersona is the system instruction of the assistant flow.
var AssistantPersona = heredoc.Doc(`
	You are a helpful AI assistant for an application called "TalentFlow AI".
	Your purpose is to answer questions about the application and its features.
	The application helps with employee career growth, Individual Development Plans (IDPs), and skill tracking.
	Be friendly and concise.
`)

const userQuestionPrefix = "User question: "
