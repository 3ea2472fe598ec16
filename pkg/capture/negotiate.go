package capture

import (
	"fmt"
	"strings"

	"github.com/user/teapotcast/pkg/ports"
)

// Offers builds the producer's capability list in preference order:
// every resolution in order, each with every format in order.
func Offers(formats []ports.PixelFormat, resolutions []ports.Dimension, frameRate float64) []ports.Capability {
	offers := make([]ports.Capability, 0, len(formats)*len(resolutions))
	for _, r := range resolutions {
		if !r.Valid() {
			continue
		}
		for _, f := range formats {
			offers = append(offers, ports.Capability{
				Format:    f,
				Width:     r.Width,
				Height:    r.Height,
				FrameRate: frameRate,
			})
		}
	}
	return offers
}

// Negotiate asks the sink for its capabilities once and returns the first
// offer it accepts.
func Negotiate(offers []ports.Capability, sink ports.FrameSink) (ports.Capability, error) {
	accepted := sink.Capabilities()
	for _, offer := range offers {
		if accepted.Accepts(offer) {
			return offer, nil
		}
	}
	return ports.Capability{}, fmt.Errorf("%w: offered [%s]", ports.ErrSinkRejected, describe(offers))
}

func describe(offers []ports.Capability) string {
	parts := make([]string, len(offers))
	for i, o := range offers {
		parts[i] = o.String()
	}
	return strings.Join(parts, ", ")
}
