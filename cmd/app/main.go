package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/box1bs/lemmagen/configs"
	"github.com/box1bs/lemmagen/internal/lemmatizer"
	"github.com/box1bs/lemmagen/internal/model"
	"github.com/box1bs/lemmagen/internal/repository"
	srv "github.com/box1bs/lemmagen/internal/server"
	"github.com/box1bs/lemmagen/internal/textHandling"
	"github.com/box1bs/lemmagen/pkg/logger"
	"github.com/pkg/errors"
)

var (
	configFile = flag.String("config", "", "Path to JSON configuration file")
	envFile    = flag.String("env", ".env", "Path to .env file with LEMMAGEN_* overrides")
	rulesPath  = flag.String("rules", "", "Path to rule file (plain or gzip)")
	language   = flag.String("lang", "", "Language to load from (or import into) the catalog")
	catalogDir = flag.String("catalog", "", "Directory of the badger ruleset catalog")
	importPath = flag.String("import", "", "Import this rule file into the catalog under -lang and exit")
	htmlPath   = flag.String("html", "", "Lemmatize the visible text of this HTML file")
	serve      = flag.Bool("serve", false, "Run the REST server instead of reading stdin")
	httpPort   = flag.Int("srv-port", 0, "REST server port (overrides config)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lemmagen: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*configs.ConfigData, error) {
	cfg, err := configs.Load(*configFile, *envFile)
	if err != nil {
		return nil, err
	}
	if *rulesPath != "" {
		cfg.RulesPath = *rulesPath
	}
	if *language != "" {
		cfg.Language = *language
	}
	if *catalogDir != "" {
		cfg.CatalogPath = *catalogDir
	}
	if *httpPort != 0 {
		cfg.HTTPPort = *httpPort
	}
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "config")
	}

	log := logger.NewLogger(os.Stderr, os.Stderr, cfg.LogBuffer)
	log.SetDebug(cfg.Debug)
	defer log.Close()

	var catalog *repository.RulesetRepository
	if cfg.CatalogPath != "" {
		if catalog, err = repository.NewRulesetRepository(cfg.CatalogPath, log); err != nil {
			return err
		}
		defer catalog.Close()
	}

	if *importPath != "" {
		return runImport(catalog, cfg.Language, *importPath)
	}

	lib := lemmatizer.NewLibrary(
		lemmatizer.WithKeyLength(cfg.KeyLength),
		lemmatizer.WithCacheSize(cfg.CacheSize),
		lemmatizer.WithWorkers(cfg.WorkersCount, cfg.TasksCount),
		lemmatizer.WithLogger(log),
	)
	if err := loadInitial(lib, catalog, cfg); err != nil {
		return err
	}

	if *serve {
		var c model.Catalog
		if catalog != nil {
			c = catalog
		}
		return runServer(cfg.HTTPPort, lib, c, log)
	}

	snap, err := lib.Current()
	if err != nil {
		return errors.Wrap(err, "set -rules or -lang")
	}
	if *htmlPath != "" {
		return runHTML(snap, *htmlPath)
	}
	return runStdin(snap)
}

func loadInitial(lib *lemmatizer.Library, catalog *repository.RulesetRepository, cfg *configs.ConfigData) error {
	switch {
	case cfg.RulesPath != "":
		if err := lib.LoadFile(cfg.RulesPath); err != nil {
			return errors.Wrapf(err, "load %s (%s)", cfg.RulesPath, lemmatizer.StatusOf(err))
		}
	case cfg.Language != "":
		if catalog == nil {
			return errors.New("-lang needs -catalog")
		}
		entry, err := catalog.Get(cfg.Language)
		if err != nil {
			return err
		}
		if err := lib.LoadEntry(entry); err != nil {
			return errors.Wrapf(err, "load language %s", cfg.Language)
		}
	}
	return nil
}

func runImport(catalog *repository.RulesetRepository, lang, path string) error {
	if catalog == nil || lang == "" {
		return errors.New("-import needs -catalog and -lang")
	}
	entry, err := catalog.Import(lang, path)
	if err != nil {
		return err
	}
	fmt.Printf("imported %s: %d rules, fingerprint %016x\n", entry.Language, entry.Rules, entry.Fingerprint)
	return nil
}

func runServer(port int, lib *lemmatizer.Library, catalog model.Catalog, log *logger.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.StartServer(port, lib, catalog, log)
	}()

	select {
	case <-stop:
		log.Write(logger.NewMessage(logger.MAIN_LAYER, logger.INFO, "shutting down"))
		return nil
	case err := <-errChan:
		return err
	}
}

func runHTML(l model.Lemmatizer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	text, err := textHandling.ExtractText(file, "")
	if err != nil {
		return err
	}
	fmt.Println(textHandling.LemmatizeText(l, text))
	return nil
}

func runStdin(l model.Lemmatizer) error {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		fmt.Fprintln(out, textHandling.LemmatizeText(l, scanner.Text()))
	}
	return scanner.Err()
}
