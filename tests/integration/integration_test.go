// Package integration wires the full server stack together in-process and
// drives it through the API client: storage, auth, catalog, upload sink.
package integration

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/ashique01/dhaka2070/internal/admin"
	"github.com/ashique01/dhaka2070/internal/auth"
	"github.com/ashique01/dhaka2070/internal/catalog"
	"github.com/ashique01/dhaka2070/internal/client"
	"github.com/ashique01/dhaka2070/internal/explorer"
	"github.com/ashique01/dhaka2070/internal/storage"
	"github.com/ashique01/dhaka2070/internal/testutil/mocksink"
	"github.com/ashique01/dhaka2070/internal/upload"
)

type env struct {
	API     *client.Client
	Sink    *mocksink.Server
	BaseURL string
}

func setup(t *testing.T) *env {
	t.Helper()

	store, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	sink := mocksink.New("sink-secret")
	t.Cleanup(sink.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	issuer := auth.NewTokenIssuer("integration-secret", time.Hour)
	uploader := upload.NewClient(sink.URL, upload.WithAPIKey("sink-secret"))

	r := chi.NewRouter()
	r.Mount("/city", catalog.Routes(store, uploader, logger))
	r.Mount("/admin", admin.Routes(store, issuer, nil, logger))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &env{
		API:     client.NewClient(srv.URL),
		Sink:    sink,
		BaseURL: srv.URL,
	}
}

func TestFullZoneLifecycle(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	created, err := e.API.CreateZone(ctx, client.ZoneInput{
		Name:               "Cyber City",
		Description:        "Quantum grid metropolis",
		Lat:                23.8103,
		Lng:                90.4125,
		Population:         2500000,
		AIIntegrationLevel: 8,
		CyberSecurityLevel: 9,
		EnergySource:       "Fusion",
		NotableTech:        []string{"Quantum Mesh", "Neural Transit"},
	}, "skyline.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Contains(t, created.Image, "/i/", "image URL should come from the sink")
	require.Len(t, e.Sink.Uploads(), 1)

	got, err := e.API.GetZone(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Cyber City", got.Name)
	require.Equal(t, 23.8103, got.Coords.Lat)
	require.Equal(t, int64(2500000), got.Population)
	require.Equal(t, []string{"Quantum Mesh", "Neural Transit"}, got.NotableTech)

	name := "Cyber City Prime"
	level := 9.5
	updated, err := e.API.UpdateZone(ctx, created.ID, client.ZonePatch{
		Name:               &name,
		AIIntegrationLevel: &level,
	})
	require.NoError(t, err)
	require.Equal(t, "Cyber City Prime", updated.Name)
	require.Equal(t, 9.5, updated.AIIntegrationLevel)
	require.Equal(t, "Fusion", updated.EnergySource, "untouched field must survive")

	require.NoError(t, e.API.DeleteZone(ctx, created.ID))
	_, err = e.API.GetZone(ctx, created.ID)
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestAdminFlow(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	sess, err := e.API.Register(ctx, "ashique", "correct-horse-battery")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	// Duplicate registration conflicts
	_, err = e.API.Register(ctx, "ashique", "another-password")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)

	// Wrong password and unknown user fail identically
	_, err = e.API.Login(ctx, "ashique", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthenticated)
	_, err = e.API.Login(ctx, "nobody", "whatever")
	require.ErrorIs(t, err, client.ErrUnauthenticated)

	sess, err = e.API.Login(ctx, "ashique", "correct-horse-battery")
	require.NoError(t, err)

	dash, err := e.API.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, sess.ID, dash.ID)
	require.Equal(t, "ashique", dash.Username)
	require.Equal(t, 1, dash.AdminCount)
	require.Equal(t, 0, dash.ZoneCount)
}

func TestStaleTokenFiresUnauthorizedHook(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.API.Register(ctx, "ashique", "correct-horse-battery")
	require.NoError(t, err)

	hookFired := false
	stale := client.NewClient(e.BaseURL,
		client.WithToken("not-a-real-token"),
		client.WithUnauthorizedHook(func() { hookFired = true }))

	_, err = stale.Dashboard(ctx)
	require.ErrorIs(t, err, client.ErrUnauthenticated)
	require.True(t, hookFired)
}

func TestBrowseFetchedZones(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	for _, z := range []client.ZoneInput{
		{Name: "Cyber City", Description: "metropolis", Lat: 1, Lng: 2, AIIntegrationLevel: 8},
		{Name: "Eco Dome", Description: "habitat", Lat: 3, Lng: 4, AIIntegrationLevel: 3},
	} {
		_, err := e.API.CreateZone(ctx, z, "", nil)
		require.NoError(t, err)
	}

	zones, err := e.API.ListZones(ctx)
	require.NoError(t, err)
	require.Len(t, zones, 2)

	engine := explorer.NewEngine(zones)
	engine.SetMinAILevel(5)
	visible := engine.Visible()
	require.Len(t, visible, 1)
	require.Equal(t, "Cyber City", visible[0].Name)
}
