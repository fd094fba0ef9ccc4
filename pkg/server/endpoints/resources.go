package endpoints

import (
	"github.com/gramsetu/contenthub/pkg/identity"
	"github.com/gramsetu/contenthub/pkg/server"
	"github.com/gramsetu/contenthub/pkg/server/store"
)

// Resources returns the descriptors for the four content collections.
func Resources() []Resource {
	return []Resource{
		{
			Kind:        store.KindTraining,
			Name:        "training",
			Display:     "Training",
			Singular:    "training",
			Filters:     []QueryFilter{{Param: "type", Exact: true}},
			PathFilters: []PathFilter{{Segment: "type", Exact: true}},
			NewPayload:  func() Payload { return &TrainingPayload{} },
			CreateRoles: []identity.Role{identity.RoleAdmin, identity.RoleEntrepreneur},
		},
		{
			Kind:         store.KindMarketplace,
			Name:         "marketplace",
			Display:      "Listing",
			Singular:     "listing",
			Filters:      []QueryFilter{{Param: "location"}},
			SearchFields: []string{"businessName", "productService", "location"},
			NewPayload:   func() Payload { return &MarketplacePayload{} },
		},
		{
			Kind:         store.KindSchemes,
			Name:         "schemes",
			Display:      "Scheme",
			Singular:     "scheme",
			Filters:      []QueryFilter{{Param: "category"}},
			PathFilters:  []PathFilter{{Segment: "category"}},
			SearchFields: []string{"title", "description", "category"},
			NewPayload:   func() Payload { return &SchemePayload{} },
			CreateRoles:  []identity.Role{identity.RoleAdmin},
			// Scheme mutation never consults ownership; only the role gate applies.
			ElevatedMutation: true,
		},
		{
			Kind:       store.KindJobs,
			Name:       "jobs",
			Display:    "Job",
			Singular:   "job",
			Filters:    []QueryFilter{{Param: "category"}, {Param: "location"}},
			NewPayload: func() Payload { return &JobPayload{} },
		},
	}
}

// RegisterContentEndpoints registers the routes for every content collection.
func RegisterContentEndpoints(s *server.Server) {
	for _, res := range Resources() {
		RegisterResourceEndpoints(s, res)
	}
}
