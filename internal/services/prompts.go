package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"docsync/internal/models"
)

// Branch names synthesized for publisher-agent commits.
const onboardingDocsBranch = "docs/onboarding-docs"

func updateBranchName(prNumber int) string {
	if prNumber == 0 {
		return "docs/update-pr-unknown"
	}
	return fmt.Sprintf("docs/update-pr-%d", prNumber)
}

// buildAnalysisPrompt composes the coordinator prompt from PR metadata only;
// diff content never leaves the repository.
func buildAnalysisPrompt(pr models.MergedPR) string {
	return fmt.Sprintf(
		"Analyze this PR diff and generate documentation updates:\n\n"+
			"PR Title: %s\nPR Author: %s\nPR Number: #%d\nBranch: %s\n"+
			"Files Changed: %d\nAdditions: +%d\nDeletions: -%d\nCategories: %s\n\n"+
			"Diff Content:\nNo diff content available - analyze based on PR metadata",
		pr.Title, pr.Author, pr.PRNumber, pr.Branch,
		pr.FilesChanged, pr.Additions, pr.Deletions, strings.Join(pr.Categories, ", "),
	)
}

func buildPublishPrompt(repoURL string, analysis *models.AnalysisResult, docs models.Documentation) string {
	content, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		content = []byte("{}")
	}
	return fmt.Sprintf(
		"Commit these documentation updates to the repository:\n\n"+
			"Repository: %s\nBranch: %s\nPR: #%d - %s\n\n"+
			"Documentation Content:\n%s",
		repoURL, updateBranchName(analysis.PR.PRNumber), analysis.PR.PRNumber, analysis.PR.Title, content,
	)
}

func buildOnboardingPrompt(cfg models.OnboardingConfig) string {
	includeList := strings.Join(includedSections(cfg.IncludeOptions), ", ")

	var sourceLabel, sourceInstruction string
	if cfg.SourceMode == models.SourceCommits {
		sourceLabel = "commits"
		sourceInstruction = fmt.Sprintf(
			"Source Mode: commits\n"+
				"IMPORTANT: This repository may have no pull requests. Read the recent commit history directly instead. "+
				"Analyze commit messages, changed files, and patterns in the last %d commits to build documentation.\n\n"+
				"Number of recent commits to analyze: %d",
			cfg.PRCount, cfg.PRCount,
		)
	} else {
		sourceLabel = "closed PRs"
		sourceInstruction = fmt.Sprintf(
			"Source Mode: pull_requests\nNumber of recent closed PRs to analyze: %d",
			cfg.PRCount,
		)
	}

	return fmt.Sprintf(
		"Analyze the repository and generate comprehensive project documentation for onboarding.\n\n"+
			"Repository: %s\nBranches: %s\n%s\nInclude: %s\n\n"+
			"Please analyze the recent %s from this repository and generate comprehensive documentation covering: "+
			"project overview, technology stack, API reference, setup guide, development patterns, and changelog summary.",
		cfg.RepoURL, strings.Join(cfg.Branches, ", "), sourceInstruction, includeList, sourceLabel,
	)
}

func buildOnboardingPublishPrompt(repoURL string, docs models.OnboardingDocs) string {
	content, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		content = []byte("{}")
	}
	return fmt.Sprintf(
		"Commit these comprehensive project documentation files to the repository:\n\n"+
			"Repository: %s\nBranch: %s\n\n"+
			"Documentation Content:\n%s\n\n"+
			"Please create a PR with all the generated documentation files including README.md, docs/architecture.md, "+
			"docs/api-reference.md, docs/setup-guide.md, docs/development-patterns.md, and CHANGELOG.md.",
		repoURL, onboardingDocsBranch, content,
	)
}

func includedSections(opts models.OnboardingIncludeOptions) []string {
	var sections []string
	if opts.Architecture {
		sections = append(sections, "architecture")
	}
	if opts.APIReference {
		sections = append(sections, "apiReference")
	}
	if opts.SetupGuide {
		sections = append(sections, "setupGuide")
	}
	if opts.TechStack {
		sections = append(sections, "techStack")
	}
	if opts.DevPatterns {
		sections = append(sections, "devPatterns")
	}
	if opts.Changelog {
		sections = append(sections, "changelog")
	}
	return sections
}
