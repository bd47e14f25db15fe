// Package publisher pushes the rendered artifacts to their target branches.
//
// The output branch is an orphan branch holding only the generated/ subtree
// of the source branch; the snake branch holds exactly the dist directory's
// contents. Both are force-pushed, and both are content-idempotent: an
// unchanged tree reuses the branch tip instead of minting a new commit,
// but the push still happens.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/naka-gawa/profilegen/internal/config"
)

// Publisher performs the git bookkeeping against the repository checkout.
type Publisher struct {
	cfg    *config.Config
	auth   transport.AuthMethod
	logger *log.Logger
}

// New creates a Publisher for the repository described by cfg. The token
// is used as HTTP basic auth for pushes; file and ssh-agent remotes work
// without it.
func New(cfg *config.Config, logger *log.Logger) *Publisher {
	var auth transport.AuthMethod
	if cfg.Token != "" {
		auth = &githttp.BasicAuth{
			Username: "token", // GitHub uses "token" as the username
			Password: cfg.Token,
		}
	}
	return &Publisher{cfg: cfg, auth: auth, logger: logger}
}

// CommitGenerated commits all working-tree changes on the current branch,
// then rebuilds the output branch as an orphan commit holding only the
// generated/ subtree of the source branch, and force-pushes it.
func (p *Publisher) CommitGenerated(ctx context.Context) error {
	repo, err := git.PlainOpen(p.cfg.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository at %s: %w", p.cfg.RepoPath, err)
	}

	if err := p.commitWorktree(repo); err != nil {
		return err
	}

	sourceCommit, err := p.sourceCommit(repo)
	if err != nil {
		return err
	}
	sourceTree, err := sourceCommit.Tree()
	if err != nil {
		return fmt.Errorf("failed to read source tree: %w", err)
	}
	entry, err := sourceTree.FindEntry(p.cfg.GeneratedDir)
	if err != nil {
		return fmt.Errorf("no %s/ subtree on branch %s: %w", p.cfg.GeneratedDir, p.cfg.SourceBranch, err)
	}

	treeHash, err := encodeTree(repo.Storer, []object.TreeEntry{*entry})
	if err != nil {
		return err
	}

	return p.publishTree(ctx, repo, treeHash, p.cfg.OutputBranch, "Publish generated images")
}

// PublishDir replaces the target branch's content with exactly the files
// under dir and force-pushes it.
func (p *Publisher) PublishDir(ctx context.Context, dir, branch string) error {
	repo, err := git.PlainOpen(p.cfg.RepoPath)
	if err != nil {
		return fmt.Errorf("failed to open repository at %s: %w", p.cfg.RepoPath, err)
	}

	treeHash, n, err := buildTreeFromDir(repo.Storer, dir)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("publish directory %s is empty", dir)
	}

	return p.publishTree(ctx, repo, treeHash, branch, fmt.Sprintf("Publish %s", branch))
}

// commitWorktree stages and commits all changes, tolerating a clean tree.
func (p *Publisher) commitWorktree(repo *git.Repository) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	sig := p.signature()
	_, err = wt.Commit("Update generated images", &git.CommitOptions{Author: &sig})
	if errors.Is(err, git.ErrEmptyCommit) {
		p.logger.Println("Publisher: nothing to commit on the working tree.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to commit working tree: %w", err)
	}
	p.logger.Println("Publisher: committed working-tree changes.")
	return nil
}

// publishTree points branch at a parent-less commit for treeHash, reusing
// the existing tip when the tree is unchanged, then force-pushes.
func (p *Publisher) publishTree(ctx context.Context, repo *git.Repository, treeHash plumbing.Hash, branch, message string) error {
	branchRef := plumbing.NewBranchReferenceName(branch)

	var commitHash plumbing.Hash
	if ref, err := repo.Reference(branchRef, true); err == nil {
		if tip, err := repo.CommitObject(ref.Hash()); err == nil && tip.TreeHash == treeHash {
			commitHash = ref.Hash()
			p.logger.Printf("Publisher: %s content unchanged, reusing commit %s.\n", branch, commitHash)
		}
	}

	if commitHash.IsZero() {
		sig := p.signature()
		commit := &object.Commit{
			Author:    sig,
			Committer: sig,
			Message:   message,
			TreeHash:  treeHash,
		}
		obj := repo.Storer.NewEncodedObject()
		if err := commit.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode commit: %w", err)
		}
		hash, err := repo.Storer.SetEncodedObject(obj)
		if err != nil {
			return fmt.Errorf("failed to store commit: %w", err)
		}
		commitHash = hash
		p.logger.Printf("Publisher: created commit %s on %s.\n", commitHash, branch)
	}

	if err := repo.Storer.SetReference(plumbing.NewHashReference(branchRef, commitHash)); err != nil {
		return fmt.Errorf("failed to update branch %s: %w", branch, err)
	}

	return p.forcePush(ctx, repo, branchRef)
}

func (p *Publisher) forcePush(ctx context.Context, repo *git.Repository, branchRef plumbing.ReferenceName) error {
	refspec := gitconfig.RefSpec(fmt.Sprintf("+%s:%s", branchRef, branchRef))
	err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: p.cfg.RemoteName,
		RefSpecs:   []gitconfig.RefSpec{refspec},
		Auth:       p.auth,
		Force:      true,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		p.logger.Printf("Publisher: remote %s already up to date.\n", branchRef.Short())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", branchRef.Short(), err)
	}
	p.logger.Printf("Publisher: pushed %s.\n", branchRef.Short())
	return nil
}

// sourceCommit resolves the configured source branch, falling back to HEAD
// when the branch does not exist locally.
func (p *Publisher) sourceCommit(repo *git.Repository) (*object.Commit, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(p.cfg.SourceBranch), true)
	if err != nil {
		ref, err = repo.Head()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve source branch %s: %w", p.cfg.SourceBranch, err)
		}
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read source commit: %w", err)
	}
	return commit, nil
}

func (p *Publisher) signature() object.Signature {
	return object.Signature{
		Name:  p.cfg.CommitName,
		Email: p.cfg.CommitEmail,
		When:  time.Now(),
	}
}

// buildTreeFromDir stores dir's files as blobs and returns the resulting
// tree hash along with the number of direct entries.
func buildTreeFromDir(s storer.EncodedObjectStorer, dir string) (plumbing.Hash, int, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return plumbing.ZeroHash, 0, fmt.Errorf("failed to read publish directory %s: %w", dir, err)
	}

	var entries []object.TreeEntry
	for _, de := range dirEntries {
		if de.Name() == ".git" {
			continue
		}
		path := filepath.Join(dir, de.Name())
		if de.IsDir() {
			hash, n, err := buildTreeFromDir(s, path)
			if err != nil {
				return plumbing.ZeroHash, 0, err
			}
			if n == 0 {
				continue // git does not track empty directories
			}
			entries = append(entries, object.TreeEntry{Name: de.Name(), Mode: filemode.Dir, Hash: hash})
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return plumbing.ZeroHash, 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
		hash, err := encodeBlob(s, data)
		if err != nil {
			return plumbing.ZeroHash, 0, err
		}
		entries = append(entries, object.TreeEntry{Name: de.Name(), Mode: filemode.Regular, Hash: hash})
	}

	hash, err := encodeTree(s, entries)
	if err != nil {
		return plumbing.ZeroHash, 0, err
	}
	return hash, len(entries), nil
}

func encodeBlob(s storer.EncodedObjectStorer, data []byte) (plumbing.Hash, error) {
	obj := s.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))
	w, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to open blob writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return plumbing.ZeroHash, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to close blob writer: %w", err)
	}
	return s.SetEncodedObject(obj)
}

func encodeTree(s storer.EncodedObjectStorer, entries []object.TreeEntry) (plumbing.Hash, error) {
	// Git sorts tree entries with directories compared as "name/".
	sort.Slice(entries, func(i, j int) bool {
		return treeSortKey(entries[i]) < treeSortKey(entries[j])
	})
	tree := &object.Tree{Entries: entries}
	obj := s.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode tree: %w", err)
	}
	hash, err := s.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store tree: %w", err)
	}
	return hash, nil
}

func treeSortKey(e object.TreeEntry) string {
	if e.Mode == filemode.Dir {
		return e.Name + "/"
	}
	return e.Name
}
