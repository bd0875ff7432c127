/*
 * Copyright (c) 2025 by the gobookpress authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gobookpress/internal/archive"
	"gobookpress/internal/backend"
	"gobookpress/internal/config"
	"gobookpress/internal/crash"
	"gobookpress/internal/domain"
	"gobookpress/internal/edit"
	"gobookpress/internal/export"
	"gobookpress/internal/layout"
	applog "gobookpress/internal/log"
	"gobookpress/internal/manuscript"
	"gobookpress/internal/storage"
	"gobookpress/internal/version"
)

func usage() {
	fmt.Println("GoBookPress — print book layout and export")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gobookpress version|-v|--version              Show version")
	fmt.Println("  gobookpress init <dir> <title>                Create a new book project at <dir>")
	fmt.Println("  gobookpress open <dir>                        Open project at <dir> and print summary")
	fmt.Println("  gobookpress import <dir> <manuscript.txt>     Parse a plain-text manuscript into the project")
	fmt.Println("  gobookpress layout <dir>                      Compute the page sequence and spine width")
	fmt.Println("  gobookpress export <dir> [pdf|html|cover|web|print]  Export interior/cover files")
	fmt.Println("  gobookpress edit <dir> <chapter-id> <file>    Replace a chapter's content from a text file")
	fmt.Println("  gobookpress undo <dir> <chapter-id>           Revert the most recent edit of a chapter")
	fmt.Println("  gobookpress search <dir> <query>              Full-text search across chapters")
	fmt.Println("  gobookpress reindex <dir>                     Rebuild the local search index")
	fmt.Println("  gobookpress projects                          List projects on the configured backend")
	fmt.Println("  gobookpress pull <dir> <project-id>           Fetch the latest book snapshot from the backend")
	fmt.Println("  gobookpress push <dir> <project-id>           Upload the book to the backend")
	fmt.Println("  gobookpress remote-extract <dir> <file>       Extract chapters via the hosted extraction API")
	fmt.Println("  gobookpress pack <dir> [out.zip]              Zip the project for sharing or backup")
	fmt.Println("  gobookpress unpack <archive.zip> <dir>        Extract a project archive into <dir>")
	fmt.Println("  gobookpress serve                             Run the sync backend (Postgres)")
}

func main() {
	// user config first; its logging section already carries the env overrides
	cfg, backendToken, cfgErr := config.Load()
	applog.Init(cfg.Logging.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("GoBookPress — print book layout and export")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <title>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			title := strings.Join(args[3:], " ")
			abs, _ := filepath.Abs(dir)
			l.Info("init project", slog.String("root", abs), slog.String("title", title))
			m := storage.NewManifest(domain.BookContent{Title: title, Chapters: []domain.Chapter{}})
			h, err := storage.InitProject(abs, m)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Println("Created project at", abs)
			return
		case "open":
			h := mustOpen(l, args, 3, "open requires <dir>")
			ph = h
			fmt.Printf("Opened book: %s\n", h.Manifest.Book.Title)
			fmt.Printf("Chapters: %d\n", len(h.Manifest.Book.Chapters))
			fmt.Printf("Trim: %s  Paper: %s\n", h.Manifest.Settings.TrimSize, h.Manifest.Settings.PaperType)
			fmt.Println("Root:", h.Root)
			return
		case "import":
			if len(args) < 4 {
				fmt.Println("import requires <dir> and <manuscript.txt>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args, 4, "")
			ph = h
			src := args[3]
			raw, err := os.ReadFile(src)
			if err != nil {
				l.Error("read manuscript failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			doc, perrs := manuscript.Parse(string(raw))
			for _, pe := range perrs {
				fmt.Printf("line %d: %s\n", pe.Line, pe.Message)
			}
			if len(perrs) > 0 {
				os.Exit(1)
			}
			h.Manifest.Book = manuscript.ToBook(doc, h.Manifest.Book.Title)
			if err := storage.Save(h); err != nil {
				l.Error("save after import failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			// keep a copy of the source text alongside the manifest
			dst := filepath.Join(h.Root, "manuscript", filepath.Base(src))
			if err := os.WriteFile(dst, raw, 0o644); err != nil {
				l.Warn("could not copy manuscript source", slog.Any("err", err))
			}
			if err := storage.RebuildIndex(context.Background(), h); err != nil {
				l.Warn("index rebuild failed", slog.Any("err", err))
			}
			fmt.Printf("Imported %d chapters into %s\n", len(h.Manifest.Book.Chapters), h.Root)
			return
		case "layout":
			h := mustOpen(l, args, 3, "layout requires <dir>")
			ph = h
			res, err := layout.Layout(h.Manifest.Book, h.Manifest.Settings)
			if err != nil {
				l.Error("layout failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			counts := map[layout.PageKind]int{}
			for _, p := range res.Pages {
				counts[p.Kind]++
			}
			fmt.Printf("Total pages: %d (title=%d toc=%d chapter=%d)\n",
				res.TotalPages, counts[layout.PageTitle], counts[layout.PageTOC], counts[layout.PageChapter])
			spine, err := layout.ResolveSpineWidth(res.TotalPages, h.Manifest.Settings.PaperType)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Estimated spine width: %.4f in", spine)
			if !layout.SpineFitsText(spine) {
				fmt.Print(" (too thin for spine text)")
			}
			fmt.Println()
			return
		case "export":
			h := mustOpen(l, args, 3, "export requires <dir>")
			ph = h
			target := "pdf"
			if len(args) >= 4 {
				target = args[3]
			}
			if err := runExport(h, target); err != nil {
				l.Error("export failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Export written to", filepath.Join(h.Root, "exports"))
			return
		case "search":
			if len(args) < 4 {
				fmt.Println("search requires <dir> and <query>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			abs, _ := filepath.Abs(dir)
			query := strings.Join(args[3:], " ")
			results, err := storage.Search(context.Background(), abs, storage.SearchQuery{Text: query})
			if err != nil {
				l.Error("search failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, r := range results {
				fmt.Printf("%s  #%d  %s  (%d words, ~%d pages)\n", r.ChapterID, r.Ord, r.Title, r.WordCount, r.EstPages)
				if r.Snippet != "" {
					fmt.Printf("    %s\n", r.Snippet)
				}
			}
			fmt.Printf("%d result(s)\n", len(results))
			return
		case "reindex":
			h := mustOpen(l, args, 3, "reindex requires <dir>")
			ph = h
			if err := storage.RebuildIndex(context.Background(), h); err != nil {
				l.Error("reindex failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Index rebuilt at", storage.IndexPath(h.Root))
			return
		case "edit":
			if len(args) < 5 {
				fmt.Println("edit requires <dir>, <chapter-id> and <file>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args, 5, "")
			ph = h
			raw, err := os.ReadFile(args[4])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			s := edit.NewSession(h)
			if err := s.ReplaceContent(context.Background(), args[3], string(raw)); err != nil {
				l.Error("edit failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Updated %s; run 'gobookpress undo %s %s' to revert\n", args[3], args[2], args[3])
			return
		case "undo":
			if len(args) < 4 {
				fmt.Println("undo requires <dir> and <chapter-id>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args, 4, "")
			ph = h
			s := edit.NewSession(h)
			ok, err := s.Undo(context.Background(), args[3])
			if err != nil {
				l.Error("undo failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if !ok {
				fmt.Println("Nothing to undo for", args[3])
				return
			}
			fmt.Println("Reverted last edit of", args[3])
			return
		case "projects":
			c := backend.NewClientFromConfig(cfg.Backend, backendToken)
			list, err := c.ListProjects(context.Background())
			if err != nil {
				l.Error("list projects failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, p := range list {
				fmt.Printf("%d  %s  v%d  %s\n", p.ID, p.Name, p.Version, p.UpdatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Printf("%d project(s) at %s\n", len(list), cfg.Backend.BaseURL)
			return
		case "pull":
			h, pid := mustOpenWithProjectID(l, args)
			ph = h
			c := backend.NewClientFromConfig(cfg.Backend, backendToken)
			env, err := c.GetBook(context.Background(), pid)
			if err != nil {
				l.Error("pull failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h.Manifest.Book = env.Book
			if err := storage.Save(h); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := storage.RebuildIndex(context.Background(), h); err != nil {
				l.Warn("index rebuild failed", slog.Any("err", err))
			}
			fmt.Printf("Pulled %q v%d (%d chapters)\n", env.Book.Title, env.Version, len(env.Book.Chapters))
			return
		case "push":
			h, pid := mustOpenWithProjectID(l, args)
			ph = h
			c := backend.NewClientFromConfig(cfg.Backend, backendToken)
			v, err := c.PushBook(context.Background(), pid, h.Manifest.Book)
			if err != nil {
				l.Error("push failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Pushed %q as v%d\n", h.Manifest.Book.Title, v)
			return
		case "remote-extract":
			if len(args) < 4 {
				fmt.Println("remote-extract requires <dir> and <file>")
				usage()
				os.Exit(2)
			}
			h := mustOpen(l, args, 4, "")
			ph = h
			raw, err := os.ReadFile(args[3])
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			c := backend.NewClientFromConfig(cfg.Backend, backendToken)
			book, err := c.Extract(context.Background(), h.Manifest.Book.Title, string(raw))
			if err != nil {
				l.Error("remote extract failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h.Manifest.Book = book
			if err := storage.Save(h); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if err := storage.RebuildIndex(context.Background(), h); err != nil {
				l.Warn("index rebuild failed", slog.Any("err", err))
			}
			fmt.Printf("Extracted %d chapters via %s\n", len(book.Chapters), cfg.Backend.BaseURL)
			return
		case "pack":
			h := mustOpen(l, args, 3, "pack requires <dir>")
			ph = h
			out := filepath.Join(h.Root, "exports", "book.zip")
			if len(args) >= 4 {
				out, _ = filepath.Abs(args[3])
			}
			if err := archive.PackProject(h.Root, out); err != nil {
				l.Error("pack failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Archive written to", out)
			return
		case "unpack":
			if len(args) < 4 {
				fmt.Println("unpack requires <archive.zip> and <dir>")
				usage()
				os.Exit(2)
			}
			src, _ := filepath.Abs(args[2])
			dest, _ := filepath.Abs(args[3])
			n, err := archive.UnpackProject(src, dest)
			if err != nil {
				l.Error("unpack failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Printf("Extracted %d file(s) into %s\n", n, dest)
			return
		case "serve":
			if err := backend.Start(); err != nil {
				l.Error("backend failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// mustOpen opens the project named by args[2], exiting with a usage hint or
// error message on failure. minArgs is the required total argument count.
func mustOpen(l *slog.Logger, args []string, minArgs int, hint string) *storage.ProjectHandle {
	if len(args) < minArgs {
		if hint != "" {
			fmt.Println(hint)
		}
		usage()
		os.Exit(2)
	}
	abs, _ := filepath.Abs(args[2])
	l.Info("open project", slog.String("root", abs))
	h, err := storage.Open(abs)
	if err != nil {
		l.Error("open failed", slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	return h
}

// mustOpenWithProjectID opens the project at args[2] and parses args[3] as a
// backend project id.
func mustOpenWithProjectID(l *slog.Logger, args []string) (*storage.ProjectHandle, int64) {
	if len(args) < 4 {
		fmt.Printf("%s requires <dir> and <project-id>\n", args[1])
		usage()
		os.Exit(2)
	}
	h := mustOpen(l, args, 4, "")
	pid, err := strconv.ParseInt(args[3], 10, 64)
	if err != nil {
		fmt.Println("Error: project id must be a number:", args[3])
		os.Exit(2)
	}
	return h, pid
}

func runExport(h *storage.ProjectHandle, target string) error {
	switch target {
	case "pdf":
		return export.ExportInteriorPDF(h, "interior.pdf", export.PDFOptions{})
	case "html":
		return export.ExportInteriorHTML(h, "interior.html")
	case "cover":
		return export.ExportCoverPDF(h, "cover.pdf", export.CoverOptions{IncludeGuides: true})
	case "web", "print":
		return export.BatchExport(h, export.BatchOptions{Preset: export.PresetName(target)})
	default:
		return fmt.Errorf("unknown export target %q (want pdf, html, cover, web or print)", target)
	}
}
