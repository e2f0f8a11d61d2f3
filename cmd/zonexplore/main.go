// Package main implements zonexplore, a terminal client for the dhaka2070
// catalog: admin session management plus an interactive zone browser.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ashique01/dhaka2070/internal/client"
	"github.com/ashique01/dhaka2070/internal/explorer"
	"github.com/ashique01/dhaka2070/internal/session"
)

const usage = `zonexplore - browse and administer the dhaka2070 zone catalog

Usage:
  zonexplore [flags] <command> [args]

Commands:
  browse      interactively browse zones with filters
  register    create an admin account: register <username> <password>
  login       start an admin session: login <username> <password>
  logout      clear the local session
  dashboard   show the admin overview (requires login)

Flags:
  -api        API base URL (default http://localhost:8080, or DHAKA2070_API)
  -search     browse: free-text search
  -min-ai     browse: minimum AI integration level
  -min-sec    browse: minimum cyber security level
  -energy     browse: energy source filter
  -tech       browse: technology tag filter
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "zonexplore: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("zonexplore", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	apiURL := fs.String("api", defaultAPIURL(), "API base URL")
	search := fs.String("search", "", "free-text search")
	minAI := fs.Float64("min-ai", 0, "minimum AI integration level")
	minSec := fs.Float64("min-sec", 0, "minimum cyber security level")
	energy := fs.String("energy", "", "energy source filter")
	tech := fs.String("tech", "", "technology tag filter")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	store := session.NewStore(sessionPath())
	if err := store.Load(); err != nil {
		return err
	}

	opts := []client.Option{
		client.WithUnauthorizedHook(func() {
			// Stale token: drop the session so the next command starts clean
			_ = store.Clear()
		}),
	}
	if sess := store.Current(); sess != nil {
		opts = append(opts, client.WithToken(sess.Token))
	}
	api := client.NewClient(*apiURL, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd := fs.Arg(0); cmd {
	case "browse":
		return runBrowse(ctx, api, explorer.FilterState{
			Search:           *search,
			MinAILevel:       *minAI,
			MinSecurityLevel: *minSec,
			EnergySource:     *energy,
			Tech:             *tech,
		})
	case "register":
		return runRegister(ctx, api, store, fs.Args()[1:])
	case "login":
		return runLogin(ctx, api, store, fs.Args()[1:])
	case "logout":
		return runLogout(store)
	case "dashboard":
		return runDashboard(ctx, api, store)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func defaultAPIURL() string {
	if v := os.Getenv("DHAKA2070_API"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func sessionPath() string {
	if v := os.Getenv("DHAKA2070_SESSION"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".dhaka2070-session.json"
	}
	return filepath.Join(home, ".config", "dhaka2070", "session.json")
}

func runBrowse(ctx context.Context, api *client.Client, filters explorer.FilterState) error {
	zones, err := api.ListZones(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch zones: %w", err)
	}

	engine := explorer.NewEngine(zones)
	engine.SetSearch(filters.Search)
	engine.SetMinAILevel(filters.MinAILevel)
	engine.SetMinSecurityLevel(filters.MinSecurityLevel)
	engine.SetEnergySource(filters.EnergySource)
	engine.SetTech(filters.Tech)

	if len(engine.Filtered()) == 0 {
		fmt.Println("no zones found")
		return nil
	}

	reader := bufio.NewReader(os.Stdin)
	shown := 0
	for {
		visible := engine.Visible()
		for _, z := range visible[shown:] {
			printZone(z)
		}
		shown = len(visible)

		if !engine.HasMore() {
			fmt.Printf("%d zone(s) shown\n", shown)
			return nil
		}

		fmt.Print("show more? [y/N] ")
		line, err := reader.ReadString('\n')
		if err != nil || !strings.EqualFold(strings.TrimSpace(line), "y") {
			return nil
		}
		engine.RevealMore()
	}
}

func printZone(z client.Zone) {
	fmt.Printf("#%d %s\n", z.ID, z.Name)
	fmt.Printf("    %s\n", z.Description)
	fmt.Printf("    coords %.4f,%.4f  pop %d  AI %.1f  sec %.1f  energy %s\n",
		z.Coords.Lat, z.Coords.Lng, z.Population, z.AIIntegrationLevel, z.CyberSecurityLevel, z.EnergySource)
	if len(z.NotableTech) > 0 {
		fmt.Printf("    tech: %s\n", strings.Join(z.NotableTech, ", "))
	}
}

func runRegister(ctx context.Context, api *client.Client, store *session.Store, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: register <username> <password>")
	}

	sess, err := api.Register(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := store.Set(session.Session{ID: sess.ID, Username: sess.Username, Token: sess.Token}); err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s\n", sess.Username)
	return nil
}

func runLogin(ctx context.Context, api *client.Client, store *session.Store, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <username> <password>")
	}

	sess, err := api.Login(ctx, args[0], args[1])
	if err != nil {
		if errors.Is(err, client.ErrUnauthenticated) {
			return errors.New("invalid credentials")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	if err := store.Set(session.Session{ID: sess.ID, Username: sess.Username, Token: sess.Token}); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", sess.Username)
	return nil
}

func runLogout(store *session.Store) error {
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runDashboard(ctx context.Context, api *client.Client, store *session.Store) error {
	guard := session.NewGuard(store)
	switch guard.Check() {
	case session.Allow:
	case session.RedirectLogin:
		return errors.New("not logged in (run: zonexplore login <username> <password>)")
	default:
		return errors.New("session not resolved")
	}

	dash, err := api.Dashboard(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthenticated) {
			// The hook already cleared the stale session
			return errors.New("session expired, please login again")
		}
		return fmt.Errorf("failed to fetch dashboard: %w", err)
	}

	fmt.Printf("admin:  %s (#%d)\n", dash.Username, dash.ID)
	fmt.Printf("zones:  %d\n", dash.ZoneCount)
	fmt.Printf("admins: %d\n", dash.AdminCount)
	return nil
}
