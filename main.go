package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	port := flag.Int("port", 16666, "HTTP port for the streamable MCP endpoint, 0 serves stdio instead")
	debug := flag.Bool("debug", false, "enable debug logging")
	outputRoot := flag.String("output-root", outputRootFromEnv(), "restrict save paths to this directory, empty allows any absolute path")
	flag.Parse()

	log.SetOutput(os.Stderr)
	debugLog = *debug

	env := renderEnv{
		fonts:      LoadFonts(),
		outputRoot: *outputRoot,
		mermaid:    newMermaidConfig(),
	}
	s := New(env)

	if *port == 0 {
		if err := mcpserver.ServeStdio(s); err != nil {
			log.Fatalf("stdio server: %v", err)
		}
		return
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	if *debug {
		e.Use(middleware.Logger())
	}
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	h := mcpserver.NewStreamableHTTPServer(s, mcpserver.WithEndpointPath("/mcp"))
	e.Any("/mcp", echo.WrapHandler(h))

	go func() {
		addr := fmt.Sprintf(":%d", *port)
		log.Printf("serving MCP on http://localhost%s/mcp", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
