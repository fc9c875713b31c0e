package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// mermaidConfig selects between the two render branches: the local mmdc CLI
// when it is installed, and the mermaid.ink web service otherwise.
type mermaidConfig struct {
	mmdc    string
	inkBase string
	client  *retryablehttp.Client
}

func newMermaidConfig() mermaidConfig {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	client.HTTPClient.Timeout = 30 * time.Second
	return mermaidConfig{
		mmdc:    mmdcPath(),
		inkBase: mermaidInkBase(),
		client:  client,
	}
}

type MermaidChartArgs struct {
	Code     string `json:"mermaid_code" jsonschema:"description=Mermaid diagram source,required"`
	SavePath string `json:"save_path" jsonschema:"description=Absolute path to write the diagram to. Supported formats: png svg mmd,required"`
	Theme    string `json:"theme,omitempty" jsonschema:"description=Mermaid theme,enum=default,enum=forest,enum=dark,enum=neutral,enum=base"`
	Width    int    `json:"width,omitempty" jsonschema:"description=Image width in pixels (default 800),minimum=1"`
	Height   int    `json:"height,omitempty" jsonschema:"description=Image height in pixels (default 600),minimum=1"`
}

func (a *MermaidChartArgs) applyDefaults() {
	if a.Theme == "" {
		a.Theme = "default"
	}
	if a.Width == 0 {
		a.Width = 800
	}
	if a.Height == 0 {
		a.Height = 600
	}
}

var mermaidThemes = map[string]bool{
	"default": true, "forest": true, "dark": true, "neutral": true, "base": true,
}

// mermaidKeywords are the diagram openers a source must start with. The
// optional init directive and comment lines before them are skipped.
var mermaidKeywords = []string{
	"graph", "flowchart", "sequenceDiagram", "classDiagram", "stateDiagram",
	"erDiagram", "journey", "gantt", "pie", "mindmap", "timeline",
	"gitGraph", "quadrantChart", "requirementDiagram", "C4Context",
}

func validateMermaidSource(v *ValidationErrors, code string) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		v.add("mermaid_code", "required")
		return
	}
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		for _, kw := range mermaidKeywords {
			if strings.HasPrefix(line, kw) {
				return
			}
		}
		v.add("mermaid_code", "does not start with a known diagram type, e.g. %s", strings.Join(mermaidKeywords[:6], ", "))
		return
	}
	v.add("mermaid_code", "contains only directives and comments")
}

func validateMermaidChart(args *MermaidChartArgs, env renderEnv) error {
	var v ValidationErrors
	validateMermaidSource(&v, args.Code)
	checkSavePath(&v, args.SavePath, mermaidFormats, env.outputRoot)
	if !mermaidThemes[args.Theme] {
		v.add("theme", "unknown theme %q, supported: default, forest, dark, neutral, base", args.Theme)
	}
	if args.Width < 1 {
		v.add("width", "must be >= 1, got %d", args.Width)
	}
	if args.Height < 1 {
		v.add("height", "must be >= 1, got %d", args.Height)
	}
	return v.errOrNil()
}

func renderMermaidChart(ctx context.Context, env renderEnv, args MermaidChartArgs) (string, error) {
	args.applyDefaults()
	if err := validateMermaidChart(&args, env); err != nil {
		return "", err
	}

	if fileExt(args.SavePath) == "mmd" {
		if err := os.WriteFile(args.SavePath, []byte(args.Code), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", args.SavePath, err)
		}
		return args.SavePath, nil
	}

	var cliErr error
	if _, err := exec.LookPath(env.mermaid.mmdc); err == nil {
		cliErr = runMmdc(ctx, env.mermaid.mmdc, args)
		if cliErr == nil {
			return args.SavePath, nil
		}
		debugf("mmdc failed, falling back to mermaid.ink: %v", cliErr)
	} else {
		debugf("mmdc not found, using mermaid.ink")
	}

	if err := renderInk(ctx, env.mermaid, args); err != nil {
		if cliErr != nil {
			return "", fmt.Errorf("%v; fallback: %w", cliErr, err)
		}
		return "", err
	}
	return args.SavePath, nil
}

// runMmdc renders through the mermaid CLI with a temporary source file.
func runMmdc(ctx context.Context, mmdc string, args MermaidChartArgs) error {
	dir, err := os.MkdirTemp("", "plotmcp-mermaid-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "diagram.mmd")
	if err := os.WriteFile(src, []byte(args.Code), 0o644); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, mmdc,
		"-i", src,
		"-o", args.SavePath,
		"--width", strconv.Itoa(args.Width),
		"--height", strconv.Itoa(args.Height),
		"--theme", args.Theme,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mmdc: %w: %s", err, strings.TrimSpace(string(out)))
	}
	if fi, err := os.Stat(args.SavePath); err != nil || fi.Size() == 0 {
		return fmt.Errorf("mmdc produced no output at %s", args.SavePath)
	}
	return nil
}

// renderInk fetches the rendered diagram from the mermaid.ink service. The
// theme travels inside the source as an init directive since the image
// endpoints take no theme parameter.
func renderInk(ctx context.Context, cfg mermaidConfig, args MermaidChartArgs) error {
	code := args.Code
	if args.Theme != "default" && !strings.Contains(code, "%%{init") {
		code = fmt.Sprintf("%%%%{init: {\"theme\": %q}}%%%%\n%s", args.Theme, code)
	}
	encoded := base64.URLEncoding.EncodeToString([]byte(code))

	endpoint := "/img/"
	if fileExt(args.SavePath) == "svg" {
		endpoint = "/svg/"
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", cfg.inkBase+endpoint+encoded, nil)
	if err != nil {
		return err
	}
	resp, err := cfg.client.Do(req)
	if err != nil {
		return fmt.Errorf("mermaid.ink: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mermaid.ink returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mermaid.ink: %w", err)
	}
	if err := os.WriteFile(args.SavePath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", args.SavePath, err)
	}
	return nil
}
