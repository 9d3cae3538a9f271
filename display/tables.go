package display

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"enhancer/config"
	"enhancer/models"
	"enhancer/planner"
)

func newTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	if title != "" {
		tw.SetTitle(title)
	}
	return tw
}

// RenderPlan renders the per-stream decisions of a plan.
func RenderPlan(plan *planner.EncodePlan) string {
	tw := newTable("Encode plan")
	tw.AppendHeader(table.Row{"Stream", "Action", "Source codec", "Filters"})
	tw.AppendRow(planRow("video", plan.Video))
	tw.AppendRow(planRow("audio", plan.Audio))

	if plan.Video.Mode() == planner.ModeEncode {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{
			"params",
			fmt.Sprintf("crf %d", plan.Params.CRF),
			plan.Params.Preset,
			"threads " + threadsLabel(plan.Params.Threads),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignLeft},
		{Number: 4, WidthMax: 72},
	})
	return tw.Render()
}

func planRow(stream string, action planner.Action) table.Row {
	switch act := action.(type) {
	case planner.Copy:
		return table.Row{stream, "copy", act.Codec, "-"}
	case planner.Encode:
		filters := act.Filters.String()
		if filters == "" {
			filters = "-"
		}
		label := "encode"
		if act.Reason == planner.ReasonContainer {
			label = "encode (container)"
		}
		return table.Row{stream, label, act.Codec, filters}
	default:
		return table.Row{stream, "skip", "absent", "-"}
	}
}

func threadsLabel(n int) string {
	if n == 0 {
		return "auto"
	}
	return strconv.Itoa(n)
}

// RenderConfig renders the effective configuration.
func RenderConfig(cfg *config.Config, source string) string {
	if source == "" {
		source = "(defaults)"
	}

	tw := newTable("Effective configuration")
	tw.AppendHeader(table.Row{"Setting", "Value"})
	rows := []table.Row{
		{"config file", source},
		{"input", orDash(cfg.Input)},
		{"output", orDash(cfg.Output)},
		{"speed", strconv.FormatFloat(cfg.Speed, 'f', -1, 64)},
	}
	for _, c := range cfg.Adjustments.Fields() {
		rows = append(rows, table.Row{c.Name, c.Value})
	}
	rows = append(rows,
		table.Row{"scale", scaleLabel(cfg.ScaleHeight)},
		table.Row{"video.codec", cfg.Video.Codec},
		table.Row{"video.crf", cfg.Video.CRF},
		table.Row{"video.preset", cfg.Video.Preset},
		table.Row{"video.threads", threadsLabel(cfg.Video.Threads)},
		table.Row{"video.pixel_format", cfg.Video.PixelFormat},
		table.Row{"audio.codec", cfg.Audio.Codec},
		table.Row{"audio.bitrate", cfg.Audio.Bitrate},
		table.Row{"audio.sample_rate", sourceOr(cfg.Audio.SampleRate, " Hz")},
		table.Row{"audio.channels", sourceOr(cfg.Audio.Channels, "")},
		table.Row{"tools.ffmpeg", orDash(cfg.Tools.FFmpeg)},
		table.Row{"tools.ffprobe", orDash(cfg.Tools.FFprobe)},
		table.Row{"logging", cfg.Logging.Level + " / " + cfg.Logging.Format},
	)
	tw.AppendRows(rows)
	return tw.Render()
}

// RenderResult renders the final report of a successful run.
func RenderResult(result *models.EncodeResult, mediaSeconds float64) string {
	tw := newTable("")
	tw.AppendRows([]table.Row{
		{"output", result.OutputPath},
		{"size", models.FormatBytes(result.OutputSize)},
		{"elapsed", result.Elapsed.Round(100 * time.Millisecond).String()},
	})
	if factor := result.RealtimeFactor(mediaSeconds); factor > 0 {
		tw.AppendRow(table.Row{"speed", fmt.Sprintf("%.2fx realtime", factor)})
	}
	return tw.Render()
}

func sourceOr(n int, unit string) string {
	if n == 0 {
		return "source"
	}
	return strconv.Itoa(n) + unit
}

func scaleLabel(h int) string {
	if h == 0 {
		return "original"
	}
	return fmt.Sprintf("%dp", h)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
