package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/waterlens/tapcheck/pkg/cli/config"
	"github.com/waterlens/tapcheck/pkg/domain/model"
	"github.com/waterlens/tapcheck/pkg/domain/types"
	"github.com/waterlens/tapcheck/pkg/service/render"
	"github.com/waterlens/tapcheck/pkg/usecase"
	"github.com/waterlens/tapcheck/pkg/utils/logging"
)

type reportOptions struct {
	Zip         string
	PWSID       string
	Format      string
	Interactive bool
}

func cmdReport() *cli.Command {
	var (
		providerCfg config.Provider
		opts        reportOptions
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "zip",
			Aliases:     []string{"z"},
			Usage:       "Zip code to look up",
			Sources:     cli.EnvVars("TAPCHECK_ZIP"),
			Destination: &opts.Zip,
		},
		&cli.StringFlag{
			Name:        "pwsid",
			Aliases:     []string{"p"},
			Usage:       "Public water system ID; with --zip, selects one of the systems serving it",
			Sources:     cli.EnvVars("TAPCHECK_PWSID"),
			Destination: &opts.PWSID,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (text, json, yaml)",
			Value:       string(render.FormatText),
			Sources:     cli.EnvVars("TAPCHECK_FORMAT"),
			Destination: &opts.Format,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "Switch between the systems serving the zip code after the first report",
			Destination: &opts.Interactive,
		},
	}

	return &cli.Command{
		Name:  "report",
		Usage: "Print a water quality report",
		Flags: joinFlags(flags, providerCfg.Flags()),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, err := providerCfg.Configure(nil)
			if err != nil {
				return err
			}

			renderer, err := render.New()
			if err != nil {
				return goerr.Wrap(err, "failed to create renderer")
			}

			root := c.Root()
			return runReport(ctx, usecase.NewReport(client), renderer, opts, root.Reader, root.Writer)
		},
	}
}

func runReport(ctx context.Context, uc *usecase.Report, renderer *render.Renderer, opts reportOptions, in io.Reader, out io.Writer) error {
	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	if opts.Interactive && opts.Zip == "" {
		return goerr.New("--interactive requires --zip")
	}

	p := &printer{renderer: renderer, format: format, w: &syncWriter{w: out}}

	var result *model.ZipReport
	switch {
	case opts.Zip != "":
		result, err = uc.ForZip(ctx, types.ZipCode(opts.Zip), types.PWSID(opts.PWSID))
	case opts.PWSID != "":
		var report *model.Report
		report, err = uc.LoadByID(ctx, types.PWSID(opts.PWSID))
		result = &model.ZipReport{Report: report}
	default:
		return goerr.New("either --zip or --pwsid is required", goerr.T(model.ErrTagMissingInput))
	}
	if err != nil {
		p.message(model.UserMessage(err, opts.Zip))
		return err
	}

	if err := p.print(result); err != nil {
		return err
	}

	if opts.Interactive {
		return interact(ctx, uc, p, result, opts.Zip, in)
	}
	return nil
}

// interact reads selections from in and loads the chosen system in the
// background. Only the latest selection is printed.
func interact(ctx context.Context, uc *usecase.Report, p *printer, result *model.ZipReport, zip string, in io.Reader) error {
	systems := result.Systems.All()
	if len(systems) < 2 {
		return nil
	}

	view := usecase.NewReportView(usecase.WithRender(func(ctx context.Context, report *model.Report, err error) {
		if err != nil {
			p.message(model.UserMessage(err, zip))
			return
		}
		if err := p.print(&model.ZipReport{Systems: result.Systems, Report: report}); err != nil {
			ctxlog.From(ctx).Error("Failed to print report", "error", err)
		}
	}))

	prompt := logging.IsTerminal(in)
	scanner := bufio.NewScanner(in)
	for {
		if prompt {
			p.message(fmt.Sprintf("Select a water system [0-%d] or q to quit:", len(systems)-1))
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "q" || line == "quit" {
			break
		}

		i, err := strconv.Atoi(line)
		if err != nil || i < 0 || i >= len(systems) {
			p.message(fmt.Sprintf("Invalid selection %q", line))
			continue
		}
		uc.SelectAsync(ctx, view, systems[i])
	}
	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read selection")
	}

	return view.Wait(ctx)
}

type printer struct {
	renderer *render.Renderer
	format   render.Format
	w        io.Writer
}

// print writes one report in a single write so concurrent output never
// interleaves with it
func (p *printer) print(result *model.ZipReport) error {
	var buf bytes.Buffer
	var err error
	if p.format == render.FormatText {
		err = p.renderer.Text(&buf, result)
	} else {
		err = render.Encode(&buf, p.format, result)
	}
	if err != nil {
		return err
	}

	if _, err := p.w.Write(buf.Bytes()); err != nil {
		return goerr.Wrap(err, "failed to write report")
	}
	return nil
}

func (p *printer) message(msg string) {
	_, _ = fmt.Fprintln(p.w, msg)
}

// syncWriter serializes writes from the prompt loop and background renders
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(b)
}
