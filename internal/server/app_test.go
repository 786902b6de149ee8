package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/hrportal/internal/common"
	"github.com/dmitrijs2005/hrportal/internal/logging"
	"github.com/dmitrijs2005/hrportal/internal/server/auth"
	"github.com/dmitrijs2005/hrportal/internal/server/config"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.ListenAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_InMemory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.db)
	sess, err := app.userService.Login(context.Background(), "admin@hrportal.example", "hrportal-demo")
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.User.Role)
}

func TestNewApp_WithoutSeed(t *testing.T) {
	c := testConfig()
	c.SeedDemoData = false
	app, err := NewApp(context.Background(), c, logging.NewNop())
	require.NoError(t, err)

	_, err = app.userService.Login(context.Background(), "admin@hrportal.example", "hrportal-demo")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestNewApp_BadDSN(t *testing.T) {
	c := testConfig()
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := NewApp(context.Background(), c, logging.NewNop())
	assert.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestPurgeOnce_DropsExpiredSessions(t *testing.T) {
	c := testConfig()
	c.ExternalSessionValidity = time.Nanosecond
	app, err := NewApp(context.Background(), c, logging.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	id, err := app.userService.StartExternalSession(ctx, &auth.GoogleUser{ID: "g", Email: "late@hrportal.example"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	app.purgeOnce(ctx)

	_, err = app.userService.ConsumeExternalSession(ctx, id)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestPurgeInterval(t *testing.T) {
	app := &App{config: testConfig()}
	assert.Equal(t, 5*time.Minute, app.purgeInterval())

	app.config.ExternalSessionValidity = time.Second
	assert.Equal(t, minPurgeInterval, app.purgeInterval())
}
