package formats

import (
	"uilint/internal/core/errors"
	"uilint/internal/engine/report"
)

const (
	StyleText    = "text"
	StyleRecords = "json"
	StyleSARIF   = "sarif"
	StyleTSV     = "tsv"
)

// Render projects a batch into the requested output style. Rendering never
// alters the batch: a failure here surfaces as FORMAT_ERROR while the
// caller's Report (and its verdict) stay intact.
func Render(style, projectRoot string, batch report.Batch, ruleTitles map[string]string) (string, error) {
	switch style {
	case StyleText, "":
		out, err := GenerateText(batch)
		return out, wrapFormatErr(err, style)
	case StyleRecords:
		out, err := GenerateRecords(batch)
		return string(out), wrapFormatErr(err, style)
	case StyleSARIF:
		out, err := GenerateSARIF(projectRoot, batch, ruleTitles)
		return string(out), wrapFormatErr(err, style)
	case StyleTSV:
		out, err := GenerateTSV(batch)
		return out, wrapFormatErr(err, style)
	}
	return "", errors.Newf(errors.CodeFormatError, "unknown output style %q", style)
}

func wrapFormatErr(err error, style string) error {
	if err == nil {
		return nil
	}
	return errors.AddContext(
		errors.Wrap(err, errors.CodeFormatError, "render failed"),
		errors.CtxFormat, style,
	)
}
