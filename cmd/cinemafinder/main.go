package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/cinemamap/backend/internal/adapters/dataset"
	"github.com/cinemamap/backend/internal/adapters/providers/geolocation"
	"github.com/cinemamap/backend/internal/application/services"
	"github.com/cinemamap/backend/internal/domain/providers"
	"github.com/cinemamap/backend/pkg/config"
)

const defaultWidth = 100

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	repo, err := dataset.NewRepository(cfg.Dataset.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load cinema dataset")
	}

	var geocoder providers.GeolocationProvider
	if cfg.Geolocation.Provider == "mock" {
		geocoder = geolocation.NewMockGeolocationProvider()
	} else {
		geocoder = geolocation.NewAdresseGeolocationProviderWithOptions(cfg.Geolocation.BaseURL, &http.Client{Timeout: cfg.Geolocation.Timeout})
	}
	geocoder = geolocation.NewInstrumentedProvider(cfg.Geolocation.Provider, geocoder, nil)
	finder := services.NewCinemaFinderService(repo, geocoder, cfg.Search.NearestLimit, nil)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fmt.Fprintf(out, "Cinema finder: %d cinémas chargés\n", repo.Count())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(out, "\nVous êtes où ? Adresse ou CP (vide pour le résumé, Ctrl-D pour quitter) > ")
		}
		out.Flush()
		if !scanner.Scan() {
			break
		}
		run(context.Background(), out, finder, scanner.Text(), width)
	}
	if interactive {
		fmt.Fprintln(out)
	}
}

func run(ctx context.Context, out *bufio.Writer, finder *services.CinemaFinderService, line string, width int) {
	if strings.TrimSpace(line) == "" {
		renderDepartments(out, finder.Departments(), width)
		return
	}

	nearby, err := finder.Nearby(ctx, line)
	if err != nil {
		fmt.Fprintf(out, "Erreur: %v\n", err)
		return
	}
	renderNearby(out, nearby, width)
}
