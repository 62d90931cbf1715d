package subtitle

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"

	"muxxy/internal/fileutil"
	"muxxy/internal/logging"
)

// ResampleRequest describes one resample invocation. A zero Source falls
// back to the script's PlayRes header (itself defaulted per dimension);
// Target must be fully specified. Force rescales even when source and target
// already agree, which is useful when the header is known to be wrong.
type ResampleRequest struct {
	Source   Resolution
	Target   Resolution
	Force    bool
	Disabled bool
}

// Resampler rescales ASS scripts between display resolutions. Vertical
// measures (font size, outline, shadow, vertical margins) scale by the
// height ratio and horizontal measures (side margins, spacing) by the width
// ratio, so anamorphic conversions keep text legible.
type Resampler struct {
	logger    *slog.Logger
	workspace *fileutil.Workspace
}

// NewResampler creates a resampler writing outputs into workspace. A nil
// logger disables logging.
func NewResampler(logger *slog.Logger, workspace *fileutil.Workspace) *Resampler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resampler{logger: logger, workspace: workspace}
}

// Resample returns the path of a rescaled copy of the subtitle file, or
// path itself when no rescaling is needed or possible. Non-ASS formats have
// no script resolution and pass through. Failures are logged and fall back
// to the original path.
func (r *Resampler) Resample(path string, req ResampleRequest) string {
	if req.Disabled || DetectFormat(path) != FormatASS {
		return path
	}
	if req.Target.Width <= 0 || req.Target.Height <= 0 {
		r.logger.Warn("resample target resolution unknown, skipping",
			logging.String(logging.FieldSubtitle, path))
		return path
	}

	out, err := r.resample(path, req)
	if err != nil {
		r.logger.Warn("resample failed, using original subtitle",
			logging.String(logging.FieldSubtitle, path),
			logging.Error(err))
		return path
	}
	return out
}

func (r *Resampler) resample(path string, req ResampleRequest) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return "", err
	}

	source := req.Source
	if source.IsZero() {
		source = doc.Info.Resolution()
	}
	if source.Width <= 0 || source.Height <= 0 {
		return "", fmt.Errorf("invalid source resolution %s", source)
	}
	if source == req.Target && !req.Force {
		r.logger.Debug("script resolution already matches target",
			logging.String(logging.FieldSubtitle, path),
			logging.String("resolution", source.String()))
		return path, nil
	}

	scaleX := float64(req.Target.Width) / float64(source.Width)
	scaleY := float64(req.Target.Height) / float64(source.Height)

	doc.SetPlayRes(req.Target)
	for i := range doc.Styles {
		if err := rescaleStyle(&doc.Styles[i], scaleX, scaleY); err != nil {
			return "", err
		}
	}
	for i := range doc.Events {
		ev := &doc.Events[i]
		text, ok := ev.Get("text")
		if !ok {
			continue
		}
		scaled, err := rescaleText(text, scaleX, scaleY)
		if err != nil {
			return "", err
		}
		if scaled != text {
			ev.Set("text", scaled)
		}
	}

	out, err := r.workspace.OutputPath(path, "resampled")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(out, doc.Serialize(), 0o644); err != nil {
		os.Remove(out)
		return "", err
	}
	r.logger.Info("resampled subtitle",
		logging.String(logging.FieldSubtitle, path),
		logging.String("source", source.String()),
		logging.String("target", req.Target.String()))
	return out, nil
}

// Style fields and the axis they scale on. Spacing appears only in V4+
// scripts and is skipped when the Format omits it. Margins are integral in
// the ASS grammar and get rounded; the size measures keep their fractions.
var (
	fractionalYFields = []string{"fontsize", "outline", "shadow"}
	integralXFields   = []string{"marginl", "marginr"}
	integralYFields   = []string{"marginv"}
)

func rescaleStyle(st *Style, scaleX, scaleY float64) error {
	for _, field := range fractionalYFields {
		if err := scaleField(st, field, scaleY, false); err != nil {
			return err
		}
	}
	for _, field := range integralXFields {
		if err := scaleField(st, field, scaleX, true); err != nil {
			return err
		}
	}
	for _, field := range integralYFields {
		if err := scaleField(st, field, scaleY, true); err != nil {
			return err
		}
	}
	if st.Has("spacing") {
		if err := scaleField(st, "spacing", scaleX, false); err != nil {
			return err
		}
	}
	return nil
}

func scaleField(st *Style, name string, factor float64, integral bool) error {
	raw, ok := st.Get(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("style %q field %s: %w", st.Name(), name, err)
	}
	v *= factor
	if integral {
		st.Set(name, strconv.Itoa(int(math.Round(v))))
	} else {
		st.Set(name, formatScaled(v))
	}
	return nil
}
