package services

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"docsync/internal/models"
	"docsync/internal/utils"
)

// GitService reads local clones to feed the presentation layer: branch
// pickers and the dashboard's merged-PR list. It never writes to a repo.
type GitService struct {
	context context.Context
}

func (g *GitService) Startup(ctx context.Context) {
	g.context = ctx
}

func NewGitService() *GitService {
	return &GitService{}
}

// Open an existing repo
func (g *GitService) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// ValidateRepository checks if the given path is a valid git repository
func (g *GitService) ValidateRepository(repoPath string) error {
	if repoPath == "" {
		return fmt.Errorf("repository path cannot be empty")
	}
	if !utils.HasGitRepo(repoPath) {
		return fmt.Errorf("not a valid git repository: no .git directory at %s", repoPath)
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("not a valid git repository: %w", err)
	}

	_, err = repo.Head()
	if err != nil {
		return fmt.Errorf("repository is in an invalid state: %w", err)
	}

	return nil
}

// ListBranches returns all local branches and their last commit date for an opened repository.
func (g *GitService) ListBranches(repo *git.Repository) ([]models.BranchInfo, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo cannot be nil")
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var branches []models.BranchInfo
	if err := iter.ForEach(func(ref *plumbing.Reference) error {
		commit, cErr := repo.CommitObject(ref.Hash())
		if cErr != nil {
			return cErr
		}
		branches = append(branches, models.BranchInfo{
			Name:           ref.Name().Short(),
			LastCommitDate: commit.Author.When,
		})
		return nil
	}); err != nil {
		return nil, err
	}

	// Keep alphabetical order by branch name; frontend can sort by recency
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// ListBranchesByPath opens the repo at repoPath and returns all local branches.
func (g *GitService) ListBranchesByPath(repoPath string) ([]models.BranchInfo, error) {
	if repoPath == "" {
		return nil, fmt.Errorf("repository path cannot be empty")
	}
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", repoPath, err)
	}
	return g.ListBranches(repo)
}

var mergePRSubjectRe = regexp.MustCompile(`Merge pull request #(\d+)`)

// RecentMerges scans the monitored branches of a local clone and maps merge
// commits to dashboard rows, newest first. Branches that do not exist
// locally are skipped rather than failing the whole scan.
func (g *GitService) RecentMerges(repoPath string, branches []string, limit int) ([]models.MergedPR, error) {
	if repoPath == "" {
		return nil, fmt.Errorf("repository path cannot be empty")
	}
	if limit <= 0 {
		limit = 20
	}
	if !utils.HasGitRepo(repoPath) {
		return nil, fmt.Errorf("not a valid git repository: no .git directory at %s", repoPath)
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", repoPath, err)
	}

	var merged []models.MergedPR
	seen := map[string]bool{}
	for _, branch := range branches {
		branch = strings.TrimSpace(branch)
		if branch == "" {
			continue
		}
		ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
		if err != nil {
			continue
		}

		iter, err := repo.Log(&git.LogOptions{From: ref.Hash()})
		if err != nil {
			continue
		}
		count := 0
		_ = iter.ForEach(func(c *object.Commit) error {
			if count >= limit {
				return storer.ErrStop
			}
			count++
			if c.NumParents() < 2 || seen[c.Hash.String()] {
				return nil
			}
			seen[c.Hash.String()] = true
			merged = append(merged, g.mergedPRFromCommit(c, branch))
			return nil
		})
		iter.Close()
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].MergeDate > merged[j].MergeDate })
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

func (g *GitService) mergedPRFromCommit(c *object.Commit, branch string) models.MergedPR {
	subject := strings.SplitN(c.Message, "\n", 2)[0]

	prNumber := 0
	if m := mergePRSubjectRe.FindStringSubmatch(subject); m != nil {
		prNumber, _ = strconv.Atoi(m[1])
		// The PR title usually follows on the body's first non-empty line.
		if parts := strings.SplitN(c.Message, "\n\n", 2); len(parts) == 2 {
			if title := strings.TrimSpace(strings.SplitN(parts[1], "\n", 2)[0]); title != "" {
				subject = title
			}
		}
	}

	filesChanged, additions, deletions := 0, 0, 0
	categories := map[string]bool{}
	if stats, err := c.Stats(); err == nil {
		filesChanged = len(stats)
		for _, stat := range stats {
			additions += stat.Addition
			deletions += stat.Deletion
			categories[categorizePath(stat.Name)] = true
		}
	}

	cats := make([]string, 0, len(categories))
	for cat := range categories {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	return models.MergedPR{
		ID:           c.Hash.String(),
		Title:        subject,
		Author:       c.Author.Name,
		MergeDate:    c.Author.When.Format("2006-01-02"),
		Branch:       branch,
		FilesChanged: filesChanged,
		Additions:    additions,
		Deletions:    deletions,
		Categories:   cats,
		PRNumber:     prNumber,
		Status:       "pending",
	}
}

// categorizePath buckets a changed file into the dashboard's category
// vocabulary.
func categorizePath(path string) string {
	base := strings.ToLower(filepath.Base(path))
	lower := strings.ToLower(path)

	switch base {
	case "go.mod", "go.sum", "package.json", "package-lock.json", "yarn.lock",
		"requirements.txt", "gemfile", "gemfile.lock", "cargo.toml", "pom.xml":
		return "deps"
	}
	switch filepath.Ext(base) {
	case ".yml", ".yaml", ".toml", ".ini", ".env", ".conf":
		return "config"
	}
	if strings.Contains(lower, "migration") || strings.Contains(lower, "schema") {
		return "schema"
	}
	if strings.Contains(lower, "api") || strings.Contains(lower, "routes") || strings.Contains(lower, "handlers") {
		return "api"
	}
	return "code"
}
