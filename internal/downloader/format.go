package downloader

import (
	"context"

	"github.com/calvez/qbzgrab/internal/constants"
)

// QualityDecision fixes the container format for a whole item before any
// naming or transfer happens, by probing the stream lookup once.
type QualityDecision struct {
	FileFormat   string
	Extension    string
	QualityMet   bool
	BitDepth     *int
	SamplingRate *float64
}

// decideFormat probes the catalog for one representative track and maps
// the answer to a container format. Quality tier 5 is the lossy tier and
// always yields MP3; a failed probe yields the undetermined format so
// naming can fall back to templates without lossless fields. Only an
// explicit availability restriction marks the quality as not met.
func (o *Orchestrator) decideFormat(ctx context.Context, trackID string) QualityDecision {
	if o.cfg.Quality == constants.QualityMP3 {
		return QualityDecision{
			FileFormat: constants.FormatMP3,
			Extension:  constants.ExtMP3,
			QualityMet: true,
		}
	}

	info, err := o.catalog.GetStreamInfo(ctx, trackID, o.cfg.Quality)
	if err != nil {
		o.log.Warn("Stream probe failed, container format undetermined", "track_id", trackID, "error", err)
		return QualityDecision{
			FileFormat: constants.FormatUnknown,
			Extension:  constants.ExtFLAC,
			QualityMet: true,
		}
	}

	dec := QualityDecision{
		FileFormat: constants.FormatFLAC,
		Extension:  constants.ExtFLAC,
		QualityMet: true,
	}
	if info.BitDepth > 0 {
		bd := info.BitDepth
		dec.BitDepth = &bd
	}
	if info.SamplingRate > 0 {
		sr := info.SamplingRate
		dec.SamplingRate = &sr
	}
	for _, r := range info.Restrictions {
		if r.Code == constants.RestrictionQualityDowngrade {
			dec.QualityMet = false
		}
	}
	return dec
}
