package listsrv

import (
	"net/http"
	"os"
	"strconv"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ListenAddr decides the address to listen on.
// This is Config.Addr if set, otherwise the env PORT or port 8080, on localhost unless ServeAll is set.
func (c *Config) ListenAddr() string {
	if c.Addr != "" {
		return c.Addr
	}

	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port <= 0 {
		port = 8080
	}

	host := "localhost"
	if c.ServeAll {
		host = ""
	}
	return host + ":" + strconv.Itoa(port)
}

// ListenAndServe serves the handler with h2c support on the configured address.
// If handler is nil, uses [http.DefaultServeMux].
func ListenAndServe(c *Config, handler http.Handler) error {
	if handler == nil {
		// h2c requires this to be passed
		handler = http.DefaultServeMux
	}
	h2s := &http2.Server{}
	s := http.Server{Addr: c.ListenAddr(), Handler: h2c.NewHandler(handler, h2s)}

	Log.WithField("addr", s.Addr).Info("serving")
	return s.ListenAndServe()
}
