/*
Package pipeline puts a plink fileset onto the reference strand using a strand
report: it moves variants to their aligned chromosome and position, keeps only
the aligned variants, flips the variants on the other strand and sets allele 1
to the reference allele.
*/
package pipeline

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/array-qc/strandcheck/pkg/gfio"
	"github.com/array-qc/strandcheck/pkg/plink"
	"github.com/array-qc/strandcheck/pkg/reconcile"
	"github.com/array-qc/strandcheck/pkg/reference"
	"github.com/array-qc/strandcheck/pkg/strand"
)

// Suffixes of the files the pipeline writes next to the plink output
const (
	ChromMapSuffix  = ".var2chrom.tsv"
	PosMapSuffix    = ".var2pos.tsv"
	ExtractSuffix   = "_extract.txt"
	Var2RefSuffix   = "_var2ref.tsv"
	FlipSuffix      = "_flip.txt"
	AmbiguousSuffix = "_ambiguous_variants.txt"
)

var errEmptyReport = errors.New("strand report has no aligned variants")

type Options struct {
	BFile            string // input fileset stem
	StrandReport     io.Reader
	Lookup           reference.Lookup
	Flip             reconcile.FlipMode
	ExcludeAmbiguous bool
}

type Result struct {
	BFile  string // final fileset stem
	Report *reconcile.Report
	Flips  int
}

func writeFile(fl *gfio.Files, suffix string, fn func(io.Writer) error) (string, error) {
	w, err := fl.Create(suffix)
	if err != nil {
		return "", err
	}
	if err := fn(w); err != nil {
		return "", err
	}
	return fl.Stem + suffix, w.Flush()
}

func writeList(fl *gfio.Files, suffix string, lines []string) (string, error) {
	return writeFile(fl, suffix, func(w io.Writer) error { return gfio.WriteLines(w, lines) })
}

// Run runs the pipeline with r. Intermediate lists are written to r.OutDir,
// named after the input fileset.
func Run(ctx context.Context, opts Options, r *plink.Runner) (Result, error) {
	fl := &gfio.Files{Stem: filepath.Join(r.OutDir, filepath.Base(opts.BFile))}
	defer fl.Close()

	rows, err := strand.ReadReport(opts.StrandReport)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, errEmptyReport
	}

	var ambiguousFile string
	if opts.ExcludeAmbiguous {
		survey, err := surveyBim(opts.BFile + ".bim")
		if err != nil {
			return Result{}, err
		}
		log.Infof("%d variants with ambiguous alleles", len(survey.Ambiguous))
		if ambiguousFile, err = writeList(fl, AmbiguousSuffix, survey.Ambiguous); err != nil {
			return Result{}, err
		}
	}

	chromFile, err := writeFile(fl, ChromMapSuffix, func(w io.Writer) error { return strand.WriteChromMap(w, rows) })
	if err != nil {
		return Result{}, err
	}
	posFile, err := writeFile(fl, PosMapSuffix, func(w io.Writer) error { return strand.WritePosMap(w, rows) })
	if err != nil {
		return Result{}, err
	}
	extractFile, err := writeList(fl, ExtractSuffix, strand.Names(rows))
	if err != nil {
		return Result{}, err
	}

	bfile, err := r.UpdateChr(ctx, opts.BFile, chromFile)
	if err != nil {
		return Result{}, err
	}
	if bfile, err = r.UpdateMap(ctx, bfile, posFile); err != nil {
		return Result{}, err
	}
	if bfile, err = r.Extract(ctx, bfile, extractFile); err != nil {
		return Result{}, err
	}

	rep, err := reconcileBim(bfile+".bim", opts.Lookup)
	if err != nil {
		return Result{}, err
	}
	var2refFile, err := writeFile(fl, Var2RefSuffix, func(w io.Writer) error { return reconcile.WriteVar2Ref(w, rep) })
	if err != nil {
		return Result{}, err
	}

	flips := reconcile.Flips(opts.Flip, rep, strand.MinusStrand(rows))
	if len(flips) > 0 {
		flipFile, err := writeList(fl, FlipSuffix, flips)
		if err != nil {
			return Result{}, err
		}
		if bfile, err = r.Flip(ctx, bfile, flipFile); err != nil {
			return Result{}, err
		}
	} else if opts.Flip != reconcile.FlipNone {
		log.Infof("no variants to flip")
	}

	if bfile, err = r.SetA1Allele(ctx, bfile, var2refFile); err != nil {
		return Result{}, err
	}

	if opts.ExcludeAmbiguous {
		if bfile, err = r.Exclude(ctx, bfile, ambiguousFile); err != nil {
			return Result{}, err
		}
	}

	return Result{BFile: bfile, Report: rep, Flips: len(flips)}, fl.Close()
}

func surveyBim(path string) (*reconcile.Survey, error) {
	f, err := gfio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reconcile.SurveyAlleles(f)
}

func reconcileBim(path string, lookup reference.Lookup) (*reconcile.Report, error) {
	f, err := gfio.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return reconcile.Reconcile(f, lookup)
}
