// Command godeck builds the Suistody pitch deck, or a deck described in a
// YAML/TOML file, and writes it as a .pptx file.
//
//	godeck                       # writes Suistody_Presentation.pptx
//	godeck -d deck.yaml -o out.pptx --preview previews
//	godeck inspect out.pptx
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	godeck "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/deckfile"
	"github.com/VantageDataChat/GoDeck/decks"
	"github.com/VantageDataChat/GoDeck/layout"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type buildFlags struct {
	out          string
	deck         string
	preview      string
	previewWidth int
	verbose      bool
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:           "godeck",
		Short:         "Build a PowerPoint deck from slide descriptions",
		Version:       godeck.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, flags.verbose)
			if err := runBuild(cmd, stdout, logger, flags); err != nil {
				logger.Error("build failed", "err", err)
				return err
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&flags.out, "out", "o", "", "output .pptx path (default "+decks.SuistodyOutput+")")
	f.StringVarP(&flags.deck, "deck", "d", "", "deck description file (.yaml, .yml or .toml); the built-in deck when empty")
	f.StringVar(&flags.preview, "preview", "", "directory to write one PNG preview per slide")
	f.IntVar(&flags.previewWidth, "preview-width", 1280, "preview image width in pixels")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")

	cmd.AddCommand(newInspectCmd(stdout, stderr, &flags.verbose))
	return cmd
}

func runBuild(cmd *cobra.Command, stdout io.Writer, logger *slog.Logger, flags buildFlags) error {
	pal := decks.SuistodyPalette()
	specs := decks.Suistody()
	opts := []layout.Option{layout.WithTitle(decks.SuistodyTitle), layout.WithCreator("GoDeck")}
	out := decks.SuistodyOutput

	if flags.deck != "" {
		file, err := deckfile.Load(flags.deck)
		if err != nil {
			return err
		}
		pal, specs, opts = file.Palette, file.Slides, file.Options
		if file.Output != "" {
			out = file.Output
		}
		logger.Debug("loaded deck file", "path", flags.deck, "slides", len(specs))
	}
	if cmd.Flags().Changed("out") {
		out = flags.out
	}

	deck := layout.NewAssembler(pal, append(opts, layout.WithLogger(logger))...).Build(specs)
	if err := layout.SaveDeck(deck, out); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "[OK] Saved to %s\n", out)

	if flags.preview == "" {
		return nil
	}
	paths, err := deck.Presentation().SaveSlidesAsImages(
		filepath.Join(flags.preview, "slide_%02d.png"),
		&godeck.RenderOptions{Width: flags.previewWidth, Format: godeck.ImageFormatPNG, Supersample: 2},
	)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	logger.Info("wrote previews", "dir", flags.preview, "count", len(paths))
	return nil
}

func newInspectCmd(stdout, stderr io.Writer, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pptx>",
		Short: "Print the slides, shapes and text of a .pptx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, *verbose)
			pres, err := godeck.Open(args[0])
			if err != nil {
				logger.Error("inspect failed", "path", args[0], "err", err)
				return err
			}
			printSummary(stdout, args[0], pres)
			return nil
		},
	}
}

func printSummary(w io.Writer, path string, pres *godeck.Presentation) {
	props := pres.GetDocumentProperties()
	size := pres.GetLayout()
	fmt.Fprintf(w, "%s\n", path)
	if props.Title != "" {
		fmt.Fprintf(w, "title: %s\n", props.Title)
	}
	fmt.Fprintf(w, "size: %.3fin x %.3fin\n", godeck.EMUToInch(size.CX), godeck.EMUToInch(size.CY))
	fmt.Fprintf(w, "slides: %d\n", pres.GetSlideCount())
	for i, slide := range pres.Slides() {
		name := slide.GetName()
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "\nslide %d (%s): %d shapes\n", i+1, name, slide.GetShapeCount())
		for _, line := range strings.Split(slide.ExtractText(), "\n") {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
}
