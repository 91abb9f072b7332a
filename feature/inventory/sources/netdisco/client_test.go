package netdisco

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Username:       "admin",
		Password:       "secret",
		TimeoutSeconds: 2,
		MaxRetries:     1,
	}
}

func newTestServer(t *testing.T, bareList bool) *httptest.Server {
	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "secret" {
			http.Error(w, "bad credentials", http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"api_key":"test-key"}`))
	})
	mux.HandleFunc("/api/v1/search/device", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		list := `[{"dns":"","name":"edge-fw","serial":"","model":"FortiGate 60F","vendor":"Fortinet","os_ver":"7.2","ip":"10.0.0.1"}]`
		if bareList {
			w.Write([]byte(list))
			return
		}
		w.Write([]byte(`{"devices":` + list + `}`))
	})
	mux.HandleFunc("/api/v1/object/device/10.0.0.1", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		// Detail supplies the serial and dns the search listing lacked.
		w.Write([]byte(`{"dns":"edge-fw.lab","serial":"FGT123456","ip":"10.0.0.1"}`))
	})
	mux.HandleFunc("/api/v1/object/device/10.0.0.1/nodes", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		w.Write([]byte(`[{"mac":""},{"mac":"00-1a-2b-3c-4d-02"}]`))
	})
	return httptest.NewServer(mux)
}

func TestGetDevices(t *testing.T) {
	for _, bare := range []bool{true, false} {
		name := "Wrapped listing"
		if bare {
			name = "Bare listing"
		}
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, bare)
			defer srv.Close()

			c := New(testConfig(srv.URL), nil)
			defer c.Close()

			devices, err := c.GetDevices(context.Background())
			require.NoError(t, err)
			require.Len(t, devices, 1)

			fw := devices[0]
			assert.Equal(t, "edge-fw.lab", fw.Hostname) // enriched from detail
			assert.Equal(t, "FGT123456", fw.SerialNumber)
			assert.Equal(t, "00:1A:2B:3C:4D:02", fw.MACAddress)
			assert.Equal(t, "10.0.0.1", fw.IPAddress)
			assert.Equal(t, "FortiGate 60F", fw.Model)
			assert.Equal(t, "Fortinet", fw.Vendor)
			assert.Equal(t, "7.2", fw.FirmwareVersion)
			assert.Equal(t, "netdisco", fw.Source)
			assert.Equal(t, "10.0.0.1", fw.SourceID)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	srv := newTestServer(t, true)
	defer srv.Close()

	t.Run("Valid credentials", func(t *testing.T) {
		c := New(testConfig(srv.URL), nil)
		defer c.Close()
		assert.True(t, c.Authenticate(context.Background()))
		assert.True(t, c.TestConnection(context.Background()))
	})

	t.Run("Bad credentials", func(t *testing.T) {
		cfg := testConfig(srv.URL)
		cfg.Password = "wrong"
		c := New(cfg, nil)
		defer c.Close()
		assert.False(t, c.Authenticate(context.Background()))
	})

	t.Run("Unconfigured", func(t *testing.T) {
		c := New(Config{}, nil)
		defer c.Close()
		assert.False(t, c.Authenticate(context.Background()))
		assert.False(t, c.TestConnection(context.Background()))
	})

	t.Run("Key under alternate field name", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"key":"other-key"}`))
		})
		alt := httptest.NewServer(mux)
		defer alt.Close()

		c := New(testConfig(alt.URL), nil)
		defer c.Close()
		assert.True(t, c.Authenticate(context.Background()))
	})
}

func TestGetDevices_AuthFailureYieldsEmpty(t *testing.T) {
	srv := newTestServer(t, true)
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Password = "wrong"

	c := New(cfg, nil)
	defer c.Close()

	devices, err := c.GetDevices(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, devices)
}

func TestGetDevices_TransportFailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"api_key":"test-key"}`))
	})
	mux.HandleFunc("/api/v1/search/device", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testConfig(srv.URL), nil)
	defer c.Close()

	_, err := c.GetDevices(context.Background())
	assert.Error(t, err)
}
