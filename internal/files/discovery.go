// Package files finds source files under a root directory and reads them as lines.
package files

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	log "github.com/sirupsen/logrus"
)

// DefaultInclude matches C# sources anywhere under the root.
const DefaultInclude = "**/*.cs"

// alwaysIgnored directories are never descended into.
var alwaysIgnored = map[string]bool{
	".git":          true,
	".classdiagram": true,
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// gitignoreRule is one line of a .gitignore file, relative to its directory.
type gitignoreRule struct {
	base     string // Directory holding the .gitignore, slash separated, "" for root
	dirOnly  bool   // Pattern ended with '/'
	anchored bool   // Pattern contains '/' and matches the relative path
	glob     glob.Glob
}

// Discovery walks a root directory and selects files by glob patterns.
type Discovery struct {
	rootDir      string
	includes     []compiledPattern
	ignores      []compiledPattern
	useGitIgnore bool
}

// NewDiscovery compiles include and ignore patterns. Patterns use '/' as the
// separator and are matched against paths relative to rootDir.
func NewDiscovery(rootDir string, includes, ignores []string, useGitIgnore bool) (*Discovery, error) {
	if len(includes) == 0 {
		includes = []string{DefaultInclude}
	}

	d := &Discovery{
		rootDir:      rootDir,
		useGitIgnore: useGitIgnore,
	}

	var err error
	if d.includes, err = compilePatterns(includes); err != nil {
		return nil, err
	}
	if d.ignores, err = compilePatterns(ignores); err != nil {
		return nil, err
	}
	return d, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	var out []compiledPattern
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		out = append(out, compiledPattern{pattern: pattern, glob: g})
	}
	return out, nil
}

// Discover returns matching file paths in lexical walk order.
func (d *Discovery) Discover() ([]string, error) {
	info, err := os.Stat(d.rootDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", d.rootDir)
	}

	found := []string{}
	var rules []gitignoreRule

	err = filepath.Walk(d.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithFields(log.Fields{"path": path, "error": err}).Warn("skipping unreadable path")
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(d.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath == "." {
				if d.useGitIgnore {
					rules = append(rules, loadGitIgnore(path, "")...)
				}
				return nil
			}
			if alwaysIgnored[info.Name()] || d.shouldIgnore(relPath) || ignoredByGit(rules, relPath, true) {
				return filepath.SkipDir
			}
			if d.useGitIgnore {
				rules = append(rules, loadGitIgnore(path, relPath)...)
			}
			return nil
		}

		if d.shouldIgnore(relPath) || ignoredByGit(rules, relPath, false) {
			return nil
		}
		if matchesAnyPattern(relPath, d.includes) {
			found = append(found, path)
		}
		return nil
	})

	return found, err
}

// shouldIgnore checks if a path matches any ignore pattern.
func (d *Discovery) shouldIgnore(relPath string) bool {
	if matchesAnyPattern(relPath, d.ignores) {
		return true
	}

	// "bin" should also match pattern "bin/**"
	return matchesAnyPattern(relPath+"/**", d.ignores)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Root files: "**/*.cs" should match "Program.cs" as well.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			if g, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/'); err == nil && g.Match(path) {
				return true
			}
		}
	}

	return false
}

// loadGitIgnore reads dir/.gitignore. Blank lines, comments and negations
// are skipped.
func loadGitIgnore(dir, relDir string) []gitignoreRule {
	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var rules []gitignoreRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || line == "/" {
			continue
		}
		if strings.HasPrefix(line, "!") {
			log.WithField("pattern", line).Debug("gitignore negation not supported")
			continue
		}

		rule := gitignoreRule{base: relDir}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.Contains(line, "/") {
			rule.anchored = true
			line = strings.TrimPrefix(line, "/")
		}

		g, err := glob.Compile(line, '/')
		if err != nil {
			log.WithFields(log.Fields{"pattern": line, "error": err}).Debug("invalid gitignore pattern")
			continue
		}
		rule.glob = g
		rules = append(rules, rule)
	}
	return rules
}

// ignoredByGit applies every rule whose directory contains relPath.
func ignoredByGit(rules []gitignoreRule, relPath string, isDir bool) bool {
	name := relPath
	if i := strings.LastIndex(relPath, "/"); i >= 0 {
		name = relPath[i+1:]
	}

	for _, r := range rules {
		if r.dirOnly && !isDir {
			continue
		}
		rel := relPath
		if r.base != "" {
			if !strings.HasPrefix(relPath, r.base+"/") {
				continue
			}
			rel = strings.TrimPrefix(relPath, r.base+"/")
		}
		if r.anchored {
			if r.glob.Match(rel) {
				return true
			}
			continue
		}
		if r.glob.Match(name) {
			return true
		}
	}
	return false
}
