package publish

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// Publisher stages, commits, and pushes converted catalog outputs to a
// version-control remote. Each step aborts the remaining ones on failure.
type Publisher struct {
	repoDir string
	remote  string
	branch  string
	paths   []string
}

// New creates a publisher operating in repoDir. paths are the files and
// directories staged on each publish; remote/branch may be empty to use the
// repository's configured upstream.
func New(repoDir, remote, branch string, paths ...string) *Publisher {
	return &Publisher{
		repoDir: repoDir,
		remote:  remote,
		branch:  branch,
		paths:   paths,
	}
}

// Publish runs the stage → commit → push sequence. A clean index after
// staging is not an error: there is simply nothing to publish.
func (p *Publisher) Publish(ctx context.Context) error {
	log.Printf("Publishing catalog outputs from %s", p.repoDir)

	args := append([]string{"add", "-A", "--"}, p.paths...)
	if err := p.git(ctx, args...); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}

	// Check if there are changes to commit
	if err := p.git(ctx, "diff", "--cached", "--quiet"); err == nil {
		log.Printf("No catalog changes to commit")
		return nil
	}

	msg := fmt.Sprintf("Catalog images: %s", time.Now().Format("2006-01-02 15:04:05"))
	if err := p.git(ctx, "commit", "-m", msg); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}

	pushArgs := []string{"push"}
	if p.remote != "" {
		pushArgs = append(pushArgs, p.remote)
		if p.branch != "" {
			pushArgs = append(pushArgs, p.branch)
		}
	}
	if err := p.git(ctx, pushArgs...); err != nil {
		return fmt.Errorf("git push failed: %w", err)
	}

	log.Printf("✓ Catalog outputs pushed")
	return nil
}

func (p *Publisher) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.repoDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w\nOutput: %s", err, string(output))
	}
	return nil
}
