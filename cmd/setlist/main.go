// Package main provides the setlist CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/setlistmaker/internal/app/editor"
	"github.com/osa030/setlistmaker/internal/domain/timecode"
	"github.com/osa030/setlistmaker/internal/export/pdf"
	"github.com/osa030/setlistmaker/internal/export/text"
	"github.com/osa030/setlistmaker/internal/infra/config"
	"github.com/osa030/setlistmaker/internal/infra/logger"
	"github.com/osa030/setlistmaker/internal/ui"
)

var (
	app        = kingpin.New("setlist", "Setlist editor and program sheet exporter")
	configPath = app.Flag("config", "Path to config file").Default("config/setlist.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// edit command (default)
	editCmd  = app.Command("edit", "Open the interactive editor (default)").Default()
	editFile = editCmd.Arg("file", "Setlist file to open").String()

	// show command
	showCmd  = app.Command("show", "Print the plain-text summary")
	showFile = showCmd.Arg("file", "Setlist file").Required().String()

	// copy command
	copyCmd  = app.Command("copy", "Copy the plain-text summary to the clipboard")
	copyFile = copyCmd.Arg("file", "Setlist file").Required().String()

	// export command
	exportCmd  = app.Command("export", "Export the PDF program sheet")
	exportFile = exportCmd.Arg("file", "Setlist file").Required().String()
	exportOut  = exportCmd.Flag("output", "Output path (default: export dir, derived name)").Short('o').String()

	// total command
	totalCmd  = app.Command("total", "Print the total running time")
	totalFile = totalCmd.Arg("file", "Setlist file").Required().String()

	// bands commands
	bandsCmd       = app.Command("bands", "Manage the registered band list")
	bandsListCmd   = bandsCmd.Command("list", "List registered bands").Default()
	bandsAddCmd    = bandsCmd.Command("add", "Register a band")
	bandsAddName   = bandsAddCmd.Arg("name", "Band name").Required().String()
	bandsRemoveCmd = bandsCmd.Command("remove", "Remove a band")
	bandsRemName   = bandsRemoveCmd.Arg("name", "Band name").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// The interactive editor owns the terminal, so logs are discarded
	// there unless a log file is given.
	loggerConfig := logger.Config{Output: "stderr", Level: "info"}
	if command == editCmd.FullCommand() {
		loggerConfig.Output = "discard"
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(command, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, cfg *config.Config) error {
	switch command {
	case editCmd.FullCommand():
		return edit(cfg)
	case showCmd.FullCommand():
		return show(cfg, *showFile)
	case copyCmd.FullCommand():
		return copyText(cfg, *copyFile)
	case exportCmd.FullCommand():
		return exportPDF(cfg, *exportFile, *exportOut)
	case totalCmd.FullCommand():
		return total(cfg, *totalFile)
	case bandsListCmd.FullCommand():
		for _, b := range cfg.Bands {
			marker := "  "
			if b == cfg.Artist {
				marker = "* "
			}
			fmt.Println(marker + b)
		}
		return nil
	case bandsAddCmd.FullCommand():
		if !cfg.AddBand(*bandsAddName) {
			return errors.Newf("band %q is already registered", *bandsAddName)
		}
		return cfg.Save(*configPath)
	case bandsRemoveCmd.FullCommand():
		if !cfg.RemoveBand(*bandsRemName) {
			return errors.Newf("cannot remove band %q", *bandsRemName)
		}
		return cfg.Save(*configPath)
	}
	return nil
}

// loadSession opens path into a session carrying the configured
// artist and duration-mode preference.
func loadSession(cfg *config.Config, path string) (*editor.Session, error) {
	s := editor.NewSession(cfg.Artist, cfg.UseDuration)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

func edit(cfg *config.Config) error {
	for _, dir := range []string{cfg.Dirs.Setlists, cfg.Dirs.Export} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", dir)
		}
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return err
	}

	session := editor.NewSession(cfg.Artist, cfg.UseDuration)
	if *editFile != "" {
		if err := session.Load(*editFile); err != nil {
			return err
		}
	}

	if err := ui.Run(ui.Params{
		Session:   session,
		Exporter:  exporter,
		ExportDir: cfg.Dirs.Export,
		SaveDir:   cfg.Dirs.Setlists,
	}); err != nil {
		return errors.Wrap(err, "editor failed")
	}

	// Persist preference changes made inside the editor.
	changed := false
	if session.Doc.UseDuration != cfg.UseDuration {
		cfg.UseDuration = session.Doc.UseDuration
		changed = true
	}
	if session.Doc.Artist != "" && cfg.AddBand(session.Doc.Artist) {
		changed = true
	}
	if changed {
		return cfg.Save(*configPath)
	}
	return nil
}

func show(cfg *config.Config, path string) error {
	s, err := loadSession(cfg, path)
	if err != nil {
		return err
	}
	rendered, err := text.Render(s.Snapshot())
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

func copyText(cfg *config.Config, path string) error {
	s, err := loadSession(cfg, path)
	if err != nil {
		return err
	}
	rendered, err := text.Render(s.Snapshot())
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(rendered); err != nil {
		return errors.Wrap(err, "failed to write clipboard")
	}
	fmt.Println("Copied to clipboard.")
	return nil
}

func exportPDF(cfg *config.Config, path, out string) error {
	s, err := loadSession(cfg, path)
	if err != nil {
		return err
	}
	exporter, err := newExporter(cfg)
	if err != nil {
		return err
	}
	if out == "" {
		if err := os.MkdirAll(cfg.Dirs.Export, 0755); err != nil {
			return errors.Wrapf(err, "failed to create %s", cfg.Dirs.Export)
		}
		out = filepath.Join(cfg.Dirs.Export, s.DefaultFilename(".pdf"))
	}
	if err := exporter.ExportFile(s.Snapshot(), out); err != nil {
		return err
	}
	fmt.Printf("Exported %s\n", out)
	return nil
}

func total(cfg *config.Config, path string) error {
	s, err := loadSession(cfg, path)
	if err != nil {
		return err
	}
	fmt.Printf("Total Time: %s\n", timecode.Format(s.Doc.TotalSeconds()))
	return nil
}

func newExporter(cfg *config.Config) (*pdf.Exporter, error) {
	layout, err := pdf.DecodeSettings(cfg.PDF.Settings)
	if err != nil {
		return nil, err
	}
	font := pdf.ProbeFont(cfg.PDF.FontFamily, cfg.PDF.FontPaths)
	return pdf.NewExporter(layout, font), nil
}
