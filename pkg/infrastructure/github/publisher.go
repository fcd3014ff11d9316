// Package github publishes quality gate verdicts to GitHub as commit
// statuses and pull request comments.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"
)

// StatusContext identifies the gate's commit status.
const StatusContext = "reqgate/quality-gate"

// maxDescription is GitHub's limit for commit status descriptions.
const maxDescription = 140

// Verdict is what gets published for one gate run.
type Verdict struct {
	Passed      bool
	Description string
	TargetURL   string
}

// Publisher talks to the GitHub REST API for one repository.
type Publisher struct {
	client *gh.Client
	owner  string
	repo   string
}

// NewPublisher builds a publisher authenticated with token for repository
// "owner/name".
func NewPublisher(ctx context.Context, token, repository string) (*Publisher, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return newPublisher(gh.NewClient(oauth2.NewClient(ctx, ts)), repository)
}

// NewPublisherWithBaseURL is NewPublisher against a GitHub Enterprise or test
// API endpoint.
func NewPublisherWithBaseURL(ctx context.Context, token, repository, baseURL string) (*Publisher, error) {
	p, err := NewPublisher(ctx, token, repository)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}
	p.client.BaseURL = u
	return p, nil
}

func newPublisher(client *gh.Client, repository string) (*Publisher, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository %q (want owner/name)", repository)
	}
	return &Publisher{client: client, owner: owner, repo: repo}, nil
}

// Repository returns "owner/name".
func (p *Publisher) Repository() string {
	return p.owner + "/" + p.repo
}

// SetStatus records the verdict as a commit status on ref.
func (p *Publisher) SetStatus(ctx context.Context, ref string, v Verdict) error {
	state := "failure"
	if v.Passed {
		state = "success"
	}
	desc := v.Description
	if r := []rune(desc); len(r) > maxDescription {
		desc = string(r[:maxDescription-3]) + "..."
	}

	status := &gh.RepoStatus{
		State:       gh.Ptr(state),
		Context:     gh.Ptr(StatusContext),
		Description: gh.Ptr(desc),
	}
	if v.TargetURL != "" {
		status.TargetURL = gh.Ptr(v.TargetURL)
	}

	if _, _, err := p.client.Repositories.CreateStatus(ctx, p.owner, p.repo, ref, status); err != nil {
		return fmt.Errorf("failed to create commit status: %w", err)
	}
	return nil
}

// Comment posts body on pull request number pr.
func (p *Publisher) Comment(ctx context.Context, pr int, body string) error {
	if _, _, err := p.client.Issues.CreateComment(ctx, p.owner, p.repo, pr, &gh.IssueComment{Body: gh.Ptr(body)}); err != nil {
		return fmt.Errorf("failed to comment on pull request #%d: %w", pr, err)
	}
	return nil
}
