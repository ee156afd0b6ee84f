// Package journey supplies the cosmetic journey events logged while an order is in transit.
package journey

import (
	"math/rand/v2"
	"sync"

	"station/internal/core/domain/model/order"
	"station/internal/pkg/errs"
)

// DefaultProbability is the chance that a moved order logs an event on a tick.
const DefaultProbability = 0.15

// Template is one entry of the event catalog.
type Template struct {
	Kind    order.JourneyKind
	Message string
}

// DefaultCatalog returns the built-in event templates.
func DefaultCatalog() []Template {
	return []Template{
		{Kind: order.JourneyTraffic, Message: "Heavy traffic, convoy moving slowly"},
		{Kind: order.JourneyTraffic, Message: "Traffic cleared, back to normal speed"},
		{Kind: order.JourneyWeather, Message: "Heavy rain, driving with caution"},
		{Kind: order.JourneyWeather, Message: "Low visibility due to harmattan haze"},
		{Kind: order.JourneyInfoKind, Message: "Passed security checkpoint"},
		{Kind: order.JourneyInfoKind, Message: "Halfway waypoint reached"},
		{Kind: order.JourneyStop, Message: "Short stop for vehicle inspection"},
		{Kind: order.JourneyStop, Message: "Driver rest stop"},
		{Kind: order.JourneyRoadWork, Message: "Road works ahead, taking detour"},
	}
}

// RandomCatalog implements ports.JourneyEventSource by picking a template uniformly at
// random with a fixed probability per call.
type RandomCatalog struct {
	mu          sync.Mutex
	rng         *rand.Rand
	probability float64
	templates   []Template
}

// NewRandomCatalog creates a catalog seeded with seed. Probability must be in [0, 1]
// and the catalog must not be empty.
func NewRandomCatalog(probability float64, seed uint64, templates []Template) (*RandomCatalog, error) {
	if probability < 0 || probability > 1 {
		return nil, errs.NewValueIsOutOfRangeError("probability", probability, 0, 1)
	}
	if len(templates) == 0 {
		return nil, errs.NewValueIsRequiredError("templates")
	}
	for _, t := range templates {
		if err := t.Kind.Validate(); err != nil {
			return nil, err
		}
	}

	return &RandomCatalog{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint:gosec // cosmetic events
		probability: probability,
		templates:   append([]Template(nil), templates...),
	}, nil
}

// Next implements ports.JourneyEventSource.
func (c *RandomCatalog) Next() (order.JourneyKind, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rng.Float64() >= c.probability {
		return "", "", false
	}

	t := c.templates[c.rng.IntN(len(c.templates))]
	return t.Kind, t.Message, true
}
