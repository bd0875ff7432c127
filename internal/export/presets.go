/*
 * Copyright (c) 2025 by the gobookpress authors.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"gobookpress/internal/storage"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - If OutDir is empty or relative, it is created under <project>/exports/<preset>/.
//   - Outputs are named interior.pdf, cover.pdf and interior.html inside OutDir.
type BatchOptions struct {
	Preset        PresetName
	Formats       []string // allowed: pdf, cover, html; empty means preset defaults
	IncludeGuides *bool    // when set, overrides the preset's default for guides
	OutDir        string   // base directory for outputs (created per preset if relative)
}

// BatchExport runs exports according to the given preset.
func BatchExport(ph *storage.ProjectHandle, opt BatchOptions) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	if len(ph.Manifest.Book.Chapters) == 0 {
		return fmt.Errorf("book has no chapters")
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	if !filepath.IsAbs(baseOut) {
		baseOut = filepath.Join(ph.Root, "exports", baseOut)
	}

	guides := presetIncludeGuides(opt.Preset)
	if opt.IncludeGuides != nil {
		guides = *opt.IncludeGuides
	}

	for _, f := range formats {
		switch f {
		case "pdf":
			out := filepath.Join(baseOut, "interior.pdf")
			if err := ExportInteriorPDF(ph, out, PDFOptions{IncludeGuides: guides}); err != nil {
				return fmt.Errorf("interior pdf: %w", err)
			}
		case "cover":
			out := filepath.Join(baseOut, "cover.pdf")
			if err := ExportCoverPDF(ph, out, CoverOptions{IncludeGuides: guides}); err != nil {
				return fmt.Errorf("cover pdf: %w", err)
			}
		case "html":
			out := filepath.Join(baseOut, "interior.html")
			if err := ExportInteriorHTML(ph, out); err != nil {
				return fmt.Errorf("interior html: %w", err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"html"}
	case PresetPrint:
		return []string{"pdf", "cover"}
	default:
		return []string{"pdf"}
	}
}

func presetIncludeGuides(p PresetName) bool {
	switch p {
	case PresetWeb:
		return false
	case PresetPrint:
		return true
	default:
		return true
	}
}
