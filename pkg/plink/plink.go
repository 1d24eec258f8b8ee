/*
Package plink runs the plink steps that rewrite a binary fileset (.bed, .bim,
.fam) onto the reference strand. Every step reads one fileset stem and writes
a new one, "<stem><suffix>", in the output directory.
*/
package plink

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultPath is the plink binary used when none is given
const DefaultPath = "plink"

// Output stem suffixes, one per step
const (
	UpdatedChromSuffix      = "_updated_chrom"
	UpdatedPosSuffix        = "_updated_pos"
	FilteredSuffix          = "_filtered"
	FlippedSuffix           = "_flipped"
	RealRefSuffix           = "_real_ref"
	AmbiguousExcludedSuffix = "_ambiguous_excluded"
)

// Executor runs one plink invocation
type Executor interface {
	Execute(ctx context.Context, path string, args []string) error
}

// Command runs plink as a subprocess, sending its stdout and stderr to Log
type Command struct {
	Log io.Writer
}

func (c Command) Execute(ctx context.Context, path string, args []string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = c.Log
	cmd.Stderr = c.Log
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", path, strings.Join(args, " "), err)
	}
	return nil
}

type Runner struct {
	Path   string
	OutDir string
	Exec   Executor
}

func NewRunner(path, outDir string, e Executor) *Runner {
	if path == "" {
		path = DefaultPath
	}
	return &Runner{Path: path, OutDir: outDir, Exec: e}
}

// step runs "plink --bfile <bfile> <flag> <file> --make-bed --out <out>"
// and returns the new stem
func (r *Runner) step(ctx context.Context, bfile, flag, file, suffix string) (string, error) {
	out := filepath.Join(r.OutDir, filepath.Base(bfile)+suffix)
	args := []string{"--bfile", bfile, flag, file, "--make-bed", "--out", out}

	log.Infof("plink %s %s -> %s", flag, file, out)
	if err := r.Exec.Execute(ctx, r.Path, args); err != nil {
		return "", err
	}
	return out, nil
}

// UpdateChr sets variant chromosomes from a "variant\tchrom" file
func (r *Runner) UpdateChr(ctx context.Context, bfile, chromFile string) (string, error) {
	return r.step(ctx, bfile, "--update-chr", chromFile, UpdatedChromSuffix)
}

// UpdateMap sets variant positions from a "variant\tposition" file
func (r *Runner) UpdateMap(ctx context.Context, bfile, posFile string) (string, error) {
	return r.step(ctx, bfile, "--update-map", posFile, UpdatedPosSuffix)
}

// Extract keeps only the variants listed in a file
func (r *Runner) Extract(ctx context.Context, bfile, listFile string) (string, error) {
	return r.step(ctx, bfile, "--extract", listFile, FilteredSuffix)
}

// Flip strand-flips the variants listed in a file
func (r *Runner) Flip(ctx context.Context, bfile, listFile string) (string, error) {
	return r.step(ctx, bfile, "--flip", listFile, FlippedSuffix)
}

// SetA1Allele sets allele 1 to the reference allele given in a
// "variant\tref" file
func (r *Runner) SetA1Allele(ctx context.Context, bfile, var2refFile string) (string, error) {
	return r.step(ctx, bfile, "--a1-allele", var2refFile, RealRefSuffix)
}

// Exclude drops the variants listed in a file
func (r *Runner) Exclude(ctx context.Context, bfile, listFile string) (string, error) {
	return r.step(ctx, bfile, "--exclude", listFile, AmbiguousExcludedSuffix)
}
