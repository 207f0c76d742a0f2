package processor

import (
	"fmt"
	"time"

	"codeberg.org/snonux/abbrevkit/internal/chunker"
	"codeberg.org/snonux/abbrevkit/internal/features"
	"codeberg.org/snonux/abbrevkit/internal/filter"
	"codeberg.org/snonux/abbrevkit/internal/report"
	"codeberg.org/snonux/abbrevkit/internal/sheet"
)

// FilterResult describes a completed filter stage
type FilterResult struct {
	Output string
	Stats  filter.Stats
}

// FeaturesResult describes a completed features stage
type FeaturesResult struct {
	Output string
	Rows   int
}

// ChunkResult describes a completed chunk stage
type ChunkResult struct {
	Files      []string
	Tokens     int
	ArchivedTo string
}

func (p *Processor) filterStage() (FilterResult, error) {
	const stage = "filter"
	defer p.timed(stage, time.Now())

	input := p.path(p.flags.FilterInput)
	output := p.path(p.flags.FilterOutput)
	log := p.logger.With("stage", stage)
	log.Info("reading raw candidates", "input", input, "column", p.flags.FilterColumn)

	values, err := sheet.ReadValues(input, p.flags.FilterSheet, p.flags.FilterColumn)
	if err != nil {
		return FilterResult{}, fmt.Errorf("failed to read raw candidates: %w", err)
	}

	res := filter.Run(values, filter.Options{
		MaxLength: p.flags.MaxLength,
		Normalize: p.flags.Normalize,
	})

	err = sheet.WriteWorkbook(output,
		sheet.NewTable(p.flags.MatchingSheet, p.flags.TokenColumn, res.Matching),
		sheet.NewTable(p.flags.NonMatchingSheet, p.flags.TokenColumn, res.NonMatching),
	)
	if err != nil {
		return FilterResult{}, fmt.Errorf("failed to write filter output: %w", err)
	}

	s := res.Stats
	p.metrics.AddTokens(stage, "accepted", s.Accepted)
	p.metrics.AddTokens(stage, "rejected", s.Rejected)
	p.metrics.AddTokens(stage, "too_long", s.TooLong)
	p.metrics.AddRows(stage, s.Matching+s.NonMatching)

	log.Info("filter finished", "output", output, "matching", s.Matching, "non_matching", s.NonMatching)
	fmt.Fprintln(p.out, report.NewSummary("filter").
		Add("raw values", s.Values).
		Add("tokens", s.Tokens).
		Add("dropped (too long)", s.TooLong).
		Add("matching", s.Matching).
		Add("non-matching", s.NonMatching).
		AddText("output", output).
		Render())

	return FilterResult{Output: output, Stats: s}, nil
}

func (p *Processor) featuresStage() (FeaturesResult, error) {
	const stage = "features"
	defer p.timed(stage, time.Now())

	input := p.path(p.flags.FeaturesInput)
	output := p.path(p.flags.FeaturesOutput)
	log := p.logger.With("stage", stage)
	log.Info("reading matching tokens", "input", input, "sheet", p.flags.MatchingSheet)

	table, err := sheet.ReadTable(input, p.flags.MatchingSheet)
	if err != nil {
		return FeaturesResult{}, fmt.Errorf("failed to read matching tokens: %w", err)
	}

	featurized, _, err := features.AppendToTable(table, p.flags.TokenColumn)
	if err != nil {
		return FeaturesResult{}, fmt.Errorf("failed to extract features: %w", err)
	}
	featurized.Name = p.flags.FeaturesSheet

	if err := sheet.WriteWorkbook(output, featurized); err != nil {
		return FeaturesResult{}, fmt.Errorf("failed to write features output: %w", err)
	}

	rows := len(featurized.Rows)
	p.metrics.AddRows(stage, rows)

	log.Info("features finished", "output", output, "rows", rows)
	fmt.Fprintln(p.out, report.NewSummary("features").
		Add("rows", rows).
		Add("attributes", len(features.Columns())).
		AddText("output", output).
		Render())

	return FeaturesResult{Output: output, Rows: rows}, nil
}

func (p *Processor) chunkStage() (ChunkResult, error) {
	const stage = "chunk"
	defer p.timed(stage, time.Now())

	if p.flags.ChunkSize < 1 {
		return ChunkResult{}, fmt.Errorf("%w: %d", chunker.ErrInvalidSize, p.flags.ChunkSize)
	}

	input := p.path(p.flags.ChunkInput)
	outputDir := p.path(p.flags.ChunkOutputDir)
	log := p.logger.With("stage", stage)
	log.Info("reading matching tokens", "input", input, "sheet", p.flags.MatchingSheet)

	table, err := sheet.ReadTable(input, p.flags.MatchingSheet)
	if err != nil {
		return ChunkResult{}, fmt.Errorf("failed to read matching tokens: %w", err)
	}
	tokens, err := table.Column(p.flags.TokenColumn)
	if err != nil {
		return ChunkResult{}, fmt.Errorf("failed to read matching tokens: %w", err)
	}

	groups, err := chunker.Partition(chunker.Shuffle(tokens, p.flags.ChunkSeed), p.flags.ChunkSize)
	if err != nil {
		return ChunkResult{}, err
	}

	written, err := chunker.WriteChunks(outputDir, groups, chunker.WriteOptions{Archive: p.flags.ChunkArchive})
	if err != nil {
		return ChunkResult{}, fmt.Errorf("failed to write chunks: %w", err)
	}
	if written.ArchivedTo != "" {
		log.Info("previous chunks archived", "path", written.ArchivedTo)
	}

	p.metrics.AddChunks(len(written.Files))
	p.metrics.AddRows(stage, len(tokens))

	log.Info("chunk finished", "output", outputDir, "files", len(written.Files), "tokens", len(tokens))
	summary := report.NewSummary("chunk").
		Add("tokens", len(tokens)).
		Add("chunk size", p.flags.ChunkSize).
		Add("files", len(written.Files)).
		AddText("output", outputDir)
	if written.ArchivedTo != "" {
		summary.AddText("archived", written.ArchivedTo)
	}
	fmt.Fprintln(p.out, summary.Render())

	return ChunkResult{Files: written.Files, Tokens: len(tokens), ArchivedTo: written.ArchivedTo}, nil
}

// Inspect renders the features of ad-hoc tokens
func (p *Processor) Inspect(tokens []string) string {
	return report.Features(tokens, features.ExtractAll(tokens))
}
