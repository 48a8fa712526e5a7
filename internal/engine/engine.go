package engine

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"repovitals/internal/config"
	"repovitals/internal/data"
	"repovitals/internal/fetcher"
	gh "repovitals/internal/github"
	"repovitals/internal/output"
	"repovitals/internal/scoring"
)

func exitCodeForRun(fatal bool) int {
	// Exit code contract:
	// 0 = run completed (per-repo failures are logged, not fatal)
	// 1 = fatal error (assessment did not run)
	// 2 = malformed input (handled by config validation before Run)
	if fatal {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.Format)); err != nil {
		outMgr.Close()
		return nil, err
	}

	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, "")
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	if cfg.Output.PDF != "" {
		ps, err := output.NewPDFSink(cfg.Output.PDF)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(ps); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

type Engine struct {
	Client *gh.Client

	// schedulerExecute is a test seam for streaming execution.
	// If nil, Engine uses the real fetcher + scheduler.
	schedulerExecute func(ctx context.Context, cfg *config.Config, plan *AssessmentPlan) (<-chan RepoExecutionResult, <-chan error)
}

func NewEngine(client *gh.Client) *Engine {
	return &Engine{
		Client: client,
	}
}

func (e *Engine) executePlanStream(ctx context.Context, cfg *config.Config, plan *AssessmentPlan) (<-chan RepoExecutionResult, <-chan error) {
	if e.schedulerExecute != nil {
		return e.schedulerExecute(ctx, cfg, plan)
	}

	budget := fetcher.NewRequestBudget()
	f := fetcher.NewFetcher(e.Client, budget)

	scheduler, err := NewScheduler(f, cfg.Runtime.Concurrency)
	if err != nil {
		resCh := make(chan RepoExecutionResult)
		errCh := make(chan error, 1)
		close(resCh)
		errCh <- err
		close(errCh)
		return resCh, errCh
	}
	return scheduler.Execute(ctx, plan)
}

func isExplicitReposOnly(cfg *config.Config) bool {
	return cfg.Targeting.Org == "" && cfg.Targeting.User == "" && len(cfg.Targeting.Repos) > 0
}

func (e *Engine) discoverRepos(ctx context.Context, cfg *config.Config, explicitReposOnly bool) ([]RepositoryRef, bool) {
	if cfg.Output.Format == "table" {
		if explicitReposOnly {
			fmt.Fprintln(os.Stderr, "Resolving repositories...")
		} else {
			fmt.Fprintln(os.Stderr, "Discovering repositories...")
		}
	}
	repos, err := ResolveRepos(ctx, e.Client, cfg)
	if err != nil {
		if explicitReposOnly {
			fmt.Fprintf(os.Stderr, "Error resolving repositories: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error discovering repositories: %v\n", err)
		}
		return nil, false
	}
	return repos, true
}

func filterReposIfNeeded(repos []RepositoryRef, cfg *config.Config, explicitReposOnly bool) []RepositoryRef {
	// Explicitly listed repos are assessed as given: archived/forks policies
	// only shape account-wide discovery.
	if explicitReposOnly {
		return repos
	}
	return FilterRepos(repos, cfg)
}

func buildPlanForRepos(ctx context.Context, repos []RepositoryRef, selected []scoring.Scorer) (*AssessmentPlan, bool) {
	plan := NewAssessmentPlan()
	for _, repo := range repos {
		if err := plan.AddRepo(ctx, repo, selected); err != nil {
			fmt.Fprintf(os.Stderr, "Error adding repo %s to plan: %v\n", repo.Name, err)
			return nil, false
		}
	}
	return plan, true
}

// assessStreamingResults receives streamed per-repo execution results (fetched
// dependencies + any fetch errors), runs the selected scorers against each
// repo's DataContext, and forwards assembled records/events to the output
// sinks. A repo whose fetch or scoring failed is logged and skipped; the run
// continues with the remaining repos.
func assessStreamingResults(ctx context.Context, cfg *config.Config, plan *AssessmentPlan, resCh <-chan RepoExecutionResult, outMgr *output.Manager) (failed int) {
	for res := range resCh {
		rp := plan.RepoPlans[res.RepoID]
		if rp == nil {
			failed++
			continue
		}

		repoFullName := rp.Repo.FullName()
		_ = outMgr.Write(output.Event{Type: "repo.started", Repo: repoFullName})

		dc := res.Data
		if dc == nil {
			dc = data.NewMapDataContext(map[data.DependencyKey]any{})
		}

		assessment, err := buildAssessment(ctx, rp, dc, res.DepErrs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error assessing %s: %v\n", repoFullName, err)
			_ = outMgr.Write(output.Event{Type: "repo.failed", Repo: repoFullName, Error: err.Error()})
			failed++
			continue
		}

		_ = outMgr.Write(output.NewRecord(assessment, cfg.Scoring.Details))
	}
	return failed
}

// buildAssessment runs every planned scorer for one repository and routes
// the resulting sub-scores into the assessment category they belong to.
func buildAssessment(ctx context.Context, rp *RepoPlan, dc data.DataContext, depErrs map[data.DependencyKey]error) (*scoring.Assessment, error) {
	assessment := &scoring.Assessment{
		Owner: rp.Repo.Owner,
		Name:  rp.Repo.Name,
	}

	for _, s := range rp.Scorers {
		deps, err := s.Dependencies(ctx, rp.Repo.Repo)
		if err != nil {
			return nil, fmt.Errorf("scorer %s: failed to determine dependencies: %w", s.ID(), err)
		}

		if err := missingDependencyError(dc, deps, depErrs); err != nil {
			return nil, fmt.Errorf("scorer %s: %w", s.ID(), err)
		}

		// Enforce the scorer contract: a scorer must not read dependency keys
		// it did not declare in Dependencies(). This prevents scorers from
		// implicitly relying on other scorers' dependencies.
		tracked := data.NewTrackingDataContext(dc)
		subs, err := s.Score(ctx, rp.Repo.Repo, tracked)
		undeclared := undeclaredDependencyAccesses(tracked.AccessedKeys(), deps)
		if len(undeclared) > 0 {
			msg := fmt.Sprintf("scorer %s accessed undeclared dependencies: %s; declare them in Dependencies()", s.ID(), strings.Join(undeclared, ", "))
			if err != nil {
				return nil, fmt.Errorf("%s (scoring error: %w)", msg, err)
			}
			return nil, fmt.Errorf("%s", msg)
		}
		if err != nil {
			return nil, fmt.Errorf("scorer %s: %w", s.ID(), err)
		}

		switch s.Category() {
		case scoring.CategoryDocumentation:
			if len(subs) > 0 {
				assessment.Documentation = subs[0]
			}
		case scoring.CategoryInfrastructure:
			assessment.Infrastructure = append(assessment.Infrastructure, subs...)
		case scoring.CategoryHealth:
			assessment.Health = append(assessment.Health, subs...)
		default:
			return nil, fmt.Errorf("scorer %s: unknown category %q", s.ID(), s.Category())
		}
	}

	return assessment, nil
}

// missingDependencyError reports the first problem with a scorer's declared
// dependencies: a recorded fetch failure, or a key absent from the context.
func missingDependencyError(dc data.DataContext, deps []data.DependencyKey, depErrs map[data.DependencyKey]error) error {
	var missing []string
	for _, d := range deps {
		if _, ok := dc.Get(d); ok {
			continue
		}
		if depErrs != nil {
			if depErr := depErrs[d]; depErr != nil {
				return fmt.Errorf("dependency %s: %w", d, depErr)
			}
		}
		missing = append(missing, string(d))
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing dependencies: %v", missing)
	}
	return nil
}

func undeclaredDependencyAccesses(accessed []data.DependencyKey, declared []data.DependencyKey) []string {
	if len(accessed) == 0 {
		return nil
	}
	decl := make(map[data.DependencyKey]struct{}, len(declared))
	for _, d := range declared {
		decl[d] = struct{}{}
	}

	var out []string
	for _, k := range accessed {
		if _, ok := decl[k]; ok {
			continue
		}
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

func resolveScorers(cfg *config.Config) ([]scoring.Scorer, bool) {
	selected, err := scoring.Resolve(cfg.Scoring.Selector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving scorers: %v\n", err)
		return nil, false
	}
	if cfg.Output.Format == "table" {
		fmt.Fprintf(os.Stderr, "Selected %d scorers.\n", len(selected))
	}
	return selected, true
}

func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	explicitReposOnly := isExplicitReposOnly(cfg)

	repos, ok := e.discoverRepos(ctx, cfg, explicitReposOnly)
	if !ok {
		return exitCodeForRun(true)
	}

	repos = filterReposIfNeeded(repos, cfg, explicitReposOnly)
	if cfg.Output.Format == "table" {
		fmt.Fprintf(os.Stderr, "Found %d repositories.\n", len(repos))
	}

	selected, ok := resolveScorers(cfg)
	if !ok {
		return exitCodeForRun(true)
	}

	plan, ok := buildPlanForRepos(ctx, repos, selected)
	if !ok {
		return exitCodeForRun(true)
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return exitCodeForRun(true)
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{Type: "run.started", Repos: len(plan.RepoPlans), Scorers: len(selected)})

	resCh, errCh := e.executePlanStream(ctx, cfg, plan)

	failed := assessStreamingResults(ctx, cfg, plan, resCh, outMgr)

	var schedErr error
	// Drain scheduler errors; we only need to know whether any fatal error occurred.
	for err := range errCh {
		if err != nil {
			schedErr = err
		}
	}
	if schedErr != nil {
		fmt.Fprintf(os.Stderr, "Error during assessment: %v\n", schedErr)
	}

	code := exitCodeForRun(schedErr != nil)
	_ = outMgr.Write(output.Event{Type: "run.finished", Repos: len(plan.RepoPlans), Failed: failed})
	return code
}
