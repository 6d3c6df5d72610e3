// Command rendercache renders a content block through an external command
// (or the built-in Markdown renderer) with content-addressed caching: the
// same input is only ever rendered once per cache directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/unkn0wn-root/rendercache"
	"github.com/unkn0wn-root/rendercache/codec"
	apexlog "github.com/unkn0wn-root/rendercache/log/apex"
	"github.com/unkn0wn-root/rendercache/renderer"
	"github.com/unkn0wn-root/rendercache/renderer/execrender"
	"github.com/unkn0wn-root/rendercache/renderer/markdown"
	"github.com/unkn0wn-root/rendercache/store/fs"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	initLogger()

	app := &cli.Command{
		Name:  "rendercache",
		Usage: "content-addressed render cache",
		Commands: []*cli.Command{
			renderCommand(),
			keyCommand(),
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "render FILE (or stdin) and print the cached artifact",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "cache-dir",
				Aliases: []string{"d"},
				Usage:   "directory holding rendered artifacts",
				Value:   ".render-cache",
				Sources: cli.NewValueSourceChain(cli.EnvVar("RENDERCACHE_DIR")),
			},
			&cli.StringFlag{
				Name:  "ext",
				Usage: "artifact filename extension",
				Value: ".html",
			},
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "external renderer command; use with --arg",
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "renderer argument; {input} and {output} expand to scratch file paths",
			},
			&cli.BoolFlag{
				Name:  "pipe",
				Usage: "feed content on the renderer's stdin and read its stdout",
			},
			&cli.BoolFlag{
				Name:    "markdown",
				Aliases: []string{"m"},
				Usage:   "render with the built-in Markdown renderer instead of a command",
			},
			&cli.BoolFlag{
				Name:  "gfm",
				Usage: "enable GitHub Flavored Markdown (with --markdown)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "renderer timeout",
				Value: 2 * time.Minute,
			},
		},
		Action: runRender,
	}
}

func keyCommand() *cli.Command {
	return &cli.Command{
		Name:      "key",
		Usage:     "print the cache key for FILE (or stdin)",
		ArgsUsage: "[FILE]",
		Action: func(_ context.Context, cmd *cli.Command) error {
			content, err := readContent(cmd)
			if err != nil {
				return err
			}
			fmt.Println(rendercache.SHA256Hex(content))
			return nil
		},
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	content, err := readContent(cmd)
	if err != nil {
		return err
	}

	r, err := buildRenderer(cmd)
	if err != nil {
		return err
	}

	st, err := fs.New(fs.Config{
		Dir: cmd.String("cache-dir"),
		Ext: cmd.String("ext"),
	})
	if err != nil {
		return err
	}

	cache, err := rendercache.New[[]byte](rendercache.Options[[]byte]{
		Store:         st,
		Renderer:      r,
		Codec:         codec.Bytes{},
		Logger:        apexlog.ApexLogger{L: log.Log},
		RenderTimeout: cmd.Duration("timeout"),
	})
	if err != nil {
		return err
	}
	defer cache.Close(ctx)

	log.Debugf("key %s", cache.Key(content))

	artifact, err := cache.Render(ctx, content)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(artifact)
	return err
}

func buildRenderer(cmd *cli.Command) (renderer.Renderer[[]byte], error) {
	if cmd.Bool("markdown") {
		if cmd.String("command") != "" {
			return nil, fmt.Errorf("--markdown and --command are mutually exclusive")
		}
		return markdown.New(markdown.Config{GFM: cmd.Bool("gfm")}), nil
	}
	command := cmd.String("command")
	if command == "" {
		return nil, fmt.Errorf("either --command or --markdown is required")
	}
	return execrender.New(execrender.Config{
		Command: command,
		Args:    cmd.StringSlice("arg"),
		Stdin:   cmd.Bool("pipe"),
	})
}

func readContent(cmd *cli.Command) ([]byte, error) {
	if path := cmd.Args().First(); path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(os.Stdin)
}

// initLogger sets up Apex with a custom handler and a log level from the
// RENDERCACHE_LOG env variable.
func initLogger() {
	level := strings.ToUpper(os.Getenv("RENDERCACHE_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&stderrHandler{})
	log.SetLevelFromString(level)
}

// stderrHandler formats log messages and writes to stderr, keeping stdout
// clean for the artifact bytes.
type stderrHandler struct{}

func (h *stderrHandler) HandleLog(e *log.Entry) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())
	fmt.Fprintf(os.Stderr, "%s %.1s %s\n", timestamp, level, e.Message)
	return nil
}
