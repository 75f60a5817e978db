package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/gdamore/tcell/v2"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ErikKalkoken/spacemap/internal/config"
	"github.com/ErikKalkoken/spacemap/internal/galaxy"
	"github.com/ErikKalkoken/spacemap/internal/httptransport"
	"github.com/ErikKalkoken/spacemap/internal/metrics"
	"github.com/ErikKalkoken/spacemap/internal/singleinstance"
	"github.com/ErikKalkoken/spacemap/internal/snapshotstore"
	"github.com/ErikKalkoken/spacemap/internal/spacetraders"
	"github.com/ErikKalkoken/spacemap/internal/tui"
	"github.com/ErikKalkoken/spacemap/internal/ui"
)

const (
	appID       = "io.github.erikkalkoken.spacemap"
	lockName    = "spacemap"
	lockTimeout = 2 * time.Second
)

// defined flags
var (
	levelFlag       logLevelFlag
	configFlag      = flag.String("config", "", "Path to a YAML config file")
	logFileFlag     = flag.Bool("logfile", true, "Write logs to a file instead of the console")
	metricsAddrFlag = flag.String("metrics-addr", "", "Expose Prometheus metrics at this address, e.g. localhost:9090")
	refreshFlag     = flag.Bool("refresh", false, "Download the galaxy again even when a local copy exists")
	showDirsFlag    = flag.Bool("show-dirs", false, "Show directories where user data is stored")
	tokenFlag       = flag.String("token", "", "Bearer token of a SpaceTraders agent")
	tuiFlag         = flag.Bool("tui", false, "Show the map in the terminal instead of a window")
	uninstallFlag   = flag.Bool("uninstall", false, "Uninstalls the app by deleting all user files")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	ad := newAppDirs()
	if *showDirsFlag {
		fmt.Printf("Data: %s\n", ad.data)
		fmt.Printf("Logs: %s\n", ad.log)
		fmt.Printf("Settings: %s\n", ad.settings)
		return
	}
	if *uninstallFlag {
		fmt.Print("Are you sure you want to uninstall this app and delete all user files (y/N)?")
		var input string
		fmt.Scanln(&input)
		if strings.ToLower(input) == "y" {
			if err := ad.deleteAll(); err != nil {
				log.Fatal(err)
			}
			fmt.Println("App uninstalled")
		} else {
			fmt.Println("Aborted")
		}
		return
	}
	if *logFileFlag {
		fn, err := ad.initLogFile()
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   fn,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}

	cfg, err := loadConfig(ad)
	if err != nil {
		log.Fatal(err)
	}
	slog.Info("Starting", "config", cfg)

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	lock, err := singleinstance.Acquire(ctx, lockName)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	defer lock.Release()

	var m *metrics.Metrics
	if *metricsAddrFlag != "" {
		m = metrics.New()
		go serveMetrics(*metricsAddrFlag, m)
	}

	rhc := spacetraders.NewHTTPClient(&httptransport.RateLimiter{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
	})
	rhc.ResponseLogHook = logResponse
	client := spacetraders.New(spacetraders.Params{
		BaseURL:    cfg.BaseURL,
		HTTPClient: rhc,
		Metrics:    m,
		Token:      cfg.Token,
	})
	store := snapshotstore.New(ad.snapshotPath())
	r, err := prepareSnapshot(context.Background(), client, store, *refreshFlag, cfg.Token)
	if err != nil {
		lock.Release()
		log.Fatalf("Failed to prepare galaxy: %s", err)
	}
	g := galaxy.New(r.snapshot)
	slog.Info("Galaxy ready", "systems", g.Len(), "radius", g.Radius())

	if *tuiFlag {
		if err := runTerminal(g, cfg.ZoomSensitivity); err != nil {
			lock.Release()
			log.Fatal(err)
		}
		return
	}
	u := ui.New(fyneapp.NewWithID(appID), g, ui.Params{
		Agent:       r.agent,
		Size:        fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)),
		Sensitivity: cfg.ZoomSensitivity,
	})
	u.ShowAndRun()
}

// loadConfig returns the configuration from the config file, the environment and the flags.
func loadConfig(ad appDirs) (config.Config, error) {
	path, required := ad.configPath(), false
	if *configFlag != "" {
		path, required = *configFlag, true
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)
	if *tokenFlag != "" {
		cfg.Token = *tokenFlag
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	slog.Info("Serving metrics", "address", addr)
	err := http.ListenAndServe(addr, mux)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server stopped", "error", err)
	}
}

func runTerminal(g *galaxy.Galaxy, sensitivity float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	tui.New(screen, g, sensitivity).Run()
	return nil
}
