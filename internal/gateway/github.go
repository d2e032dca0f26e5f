// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/miyakoshi-dev/gh-profile-stats/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchUser(ctx context.Context, username string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error)
	// FetchPinnedRepositories needs an authenticated client; without a token
	// it returns (nil, nil) instead of failing.
	FetchPinnedRepositories(ctx context.Context, username string) ([]domain.PinnedRepository, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
// The GraphQL client is nil when no token was configured.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *logrus.Entry
}

// pinnedItemsQuery fetches the repositories pinned to a user's profile.
type pinnedItemsQuery struct {
	User struct {
		PinnedItems struct {
			Nodes []struct {
				Typename   string `graphql:"__typename"`
				Repository struct {
					Name            string
					StargazerCount  int
					URL             string `graphql:"url"`
					PrimaryLanguage struct {
						Name string
					}
				} `graphql:"... on Repository"`
			}
		} `graphql:"pinnedItems(first: 6, types: [REPOSITORY])"`
	} `graphql:"user(login: $login)"`
}

// New is a constructor that creates a new instance of GitHubGateway.
// An empty token is tolerated: requests go out unauthenticated and are
// subject to the stricter anonymous rate limits.
func New(token string, logger *logrus.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	httpClient := &http.Client{Transport: rateLimitWaiter}
	var graphqlClient *githubv4.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   rateLimitWaiter,
				Source: ts,
			},
		}
		graphqlClient = githubv4.NewClient(httpClient)
	}

	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: graphqlClient,
		logger:        logger.WithField("component", "gateway"),
	}, nil
}

// FetchUser fetches the basic account information for a user.
func (g *GitHubGateway) FetchUser(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.Debug("[1/3] Fetching user profile...")
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %q: %w", username, err)
	}
	g.logger.Debug("Completed fetching user profile.")
	return &domain.Profile{
		Login:       user.GetLogin(),
		Name:        user.Name,
		Bio:         user.Bio,
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
		CreatedAt:   user.GetCreatedAt().Time,
	}, nil
}

// FetchRepositories fetches all repositories of a user, 100 per page,
// until a page comes back empty. Pages are concatenated in fetch order.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	g.logger.Debug("[2/3] Fetching repositories...")
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100, Page: 1},
	}
	repos := make([]domain.Repository, 0)
	for {
		page, _, err := g.restClient.Repositories.ListByUser(ctx, username, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch repositories for %q: %w", username, err)
		}
		if len(page) == 0 {
			break
		}
		for _, r := range page {
			repos = append(repos, domain.Repository{
				Name:     r.GetName(),
				Language: r.Language,
				Stars:    r.GetStargazersCount(),
				Forks:    r.GetForksCount(),
				URL:      r.GetHTMLURL(),
			})
		}
		opts.Page++
		g.logger.Debug("  Fetching next page of repositories...")
	}
	g.logger.Debugf("Completed fetching %d repositories.", len(repos))
	return repos, nil
}

// FetchPinnedRepositories fetches the user's pinned repositories via GraphQL.
func (g *GitHubGateway) FetchPinnedRepositories(ctx context.Context, username string) ([]domain.PinnedRepository, error) {
	if g.graphqlClient == nil {
		g.logger.Debug("No token configured, skipping pinned repositories.")
		return nil, nil
	}
	g.logger.Debug("[3/3] Fetching pinned repositories...")

	var q pinnedItemsQuery
	variables := map[string]interface{}{"login": githubv4.String(username)}
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for pinned repositories: %w", err)
	}

	pinned := make([]domain.PinnedRepository, 0, len(q.User.PinnedItems.Nodes))
	for _, node := range q.User.PinnedItems.Nodes {
		if node.Typename != "Repository" {
			continue
		}
		var language *string
		if name := node.Repository.PrimaryLanguage.Name; name != "" {
			language = &name
		}
		pinned = append(pinned, domain.PinnedRepository{
			Name:     node.Repository.Name,
			Language: language,
			Stars:    node.Repository.StargazerCount,
			URL:      node.Repository.URL,
		})
	}
	g.logger.Debug("Completed fetching pinned repositories.")
	return pinned, nil
}
