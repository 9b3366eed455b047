package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/vbelov/tripline/internal/config"
	"github.com/vbelov/tripline/internal/model"
)

type TestApp struct {
	*App
	api *HttpApi
}

func NewTestApp() *TestApp {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg := config.NewAppConfig()
	_ = cfg.Set("db", ":memory:")

	app := &TestApp{
		App: NewApp(cfg),
	}

	if err := app.dbm.Migrate(); err != nil {
		panic(err)
	}

	app.api = NewHttpApi(app.App, "localhost:1234")

	return app
}

func (app *TestApp) addUser(t *testing.T, name string) *model.User {
	t.Helper()

	user := &model.User{Username: name, Email: name + "@example.com"}
	require.NoError(t, user.SetPassword(name+"_pass"))
	require.NoError(t, app.dbm.Create(user))

	return user
}

func (app *TestApp) login(t *testing.T, name string) string {
	t.Helper()

	resp, err := app.ReqJSON("POST", "/auth/login", "",
		fiber.Map{"username": name, "password": name + "_pass"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := make(map[string]string)
	readJSON(t, resp, &m)
	require.NotEmpty(t, m["access"])

	return m["access"]
}

func (app *TestApp) Req(method, url, token string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)

	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return app.api.f.Test(req, 3000)
}

func (app *TestApp) ReqJSON(method, url, token string, obj any) (*http.Response, error) {
	d, err := json.Marshal(obj)

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(d))

	if err != nil {
		return nil, err
	}

	req.Header.Add(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Add(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return app.api.f.Test(req, 3000)
}

func readJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	require.NotNil(t, resp.Body)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestStatus(t *testing.T) {
	app := NewTestApp()

	resp, err := app.Req("GET", "/", "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSignupAndLogin(t *testing.T) {
	app := NewTestApp()

	resp, err := app.ReqJSON("POST", "/auth/signup", "",
		fiber.Map{"username": "alice", "password": "alice_pass", "email": "alice@example.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	user := new(model.UserDTO)
	readJSON(t, resp, user)
	require.Equal(t, "alice", user.Username)

	// duplicate username
	resp, err = app.ReqJSON("POST", "/auth/signup", "",
		fiber.Map{"username": "alice", "password": "x"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// missing password
	resp, err = app.ReqJSON("POST", "/auth/signup", "", fiber.Map{"username": "bob"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.ReqJSON("POST", "/auth/login", "",
		fiber.Map{"username": "alice", "password": "wrong"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	token := app.login(t, "alice")

	resp, err = app.Req("GET", "/api/trips", token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	app := NewTestApp()

	for _, url := range []string{"/api/trips", "/api/polls", "/api/messages", "/api/itinerary-items"} {
		resp, err := app.Req("GET", url, "", nil)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, url)
	}

	resp, err := app.Req("GET", "/api/trips", "garbage-token", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRefresh(t *testing.T) {
	app := NewTestApp()
	app.addUser(t, "alice")

	resp, err := app.ReqJSON("POST", "/auth/login", "",
		fiber.Map{"username": "alice", "password": "alice_pass"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := make(map[string]string)
	readJSON(t, resp, &m)
	require.NotEmpty(t, m["refresh"])

	resp, err = app.ReqJSON("POST", "/auth/refresh", "", fiber.Map{"refresh": m["refresh"]})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m2 := make(map[string]string)
	readJSON(t, resp, &m2)
	require.NotEmpty(t, m2["access"])

	resp, err = app.Req("GET", "/api/trips", m2["access"], nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.ReqJSON("POST", "/auth/refresh", "", fiber.Map{"refresh": "garbage"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
