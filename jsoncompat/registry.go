package jsoncompat

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/rajesh-rajagopal/megam-api/models"
)

// Constructor inflates the fields of a tagged object into its model. Nested
// values have already been inflated when it runs.
type Constructor func(fields map[string]any) (models.Model, error)

// Registry maps json_claz tags to constructors. It is populated before first use
// and read-only afterwards, so lookups need no locking.
type Registry struct {
	entries map[string]Constructor
}

// NewRegistry returns a registry holding exactly the given entries.
func NewRegistry(entries map[string]Constructor) *Registry {
	r := &Registry{entries: make(map[string]Constructor, len(entries))}
	for claz, c := range entries {
		r.entries[claz] = c
	}
	return r
}

func (r *Registry) Lookup(claz string) (Constructor, bool) {
	if r == nil {
		return nil, false
	}
	c, ok := r.entries[claz]
	return c, ok && c != nil
}

// Tags lists the registered tags in sorted order.
func (r *Registry) Tags() []string {
	out := make([]string, 0, len(r.entries))
	for claz := range r.entries {
		out = append(out, claz)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Len() int { return len(r.entries) }

// Validate checks every entry: tags carry the Megam:: namespace, constructors are
// set, and the model a constructor builds reports the tag it is registered under.
func (r *Registry) Validate() error {
	var result *multierror.Error
	for _, claz := range r.Tags() {
		c := r.entries[claz]
		if !strings.HasPrefix(claz, "Megam::") {
			result = multierror.Append(result, fmt.Errorf("%q: missing Megam:: namespace", claz))
		}
		if c == nil {
			result = multierror.Append(result, fmt.Errorf("%q: nil constructor", claz))
			continue
		}
		m, err := c(map[string]any{})
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%q: %w", claz, err))
			continue
		}
		if got := m.JSONClaz(); got != claz {
			result = multierror.Append(result, fmt.Errorf("%q: constructor builds %q", claz, got))
		}
	}
	return result.ErrorOrNil()
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry(map[string]Constructor{
		models.ClazError:                         models.Inflate[models.Error],
		models.ClazAccount:                       models.Inflate[models.Account],
		models.ClazAssemblies:                    models.Inflate[models.Assemblies],
		models.ClazAssembliesCollection:          models.InflateCollection[*models.Assemblies](models.ClazAssembliesCollection),
		models.ClazAssembly:                      models.Inflate[models.Assembly],
		models.ClazAssemblyCollection:            models.InflateCollection[*models.Assembly](models.ClazAssemblyCollection),
		models.ClazComponents:                    models.Inflate[models.Components],
		models.ClazComponentsCollection:          models.InflateCollection[*models.Components](models.ClazComponentsCollection),
		models.ClazRequest:                       models.Inflate[models.Request],
		models.ClazRequestCollection:             models.InflateCollection[*models.Request](models.ClazRequestCollection),
		models.ClazSshKey:                        models.Inflate[models.SshKey],
		models.ClazSshKeyCollection:              models.InflateCollection[*models.SshKey](models.ClazSshKeyCollection),
		models.ClazEventsVm:                      models.Inflate[models.EventsVm],
		models.ClazEventsVmCollection:            models.InflateCollection[*models.EventsVm](models.ClazEventsVmCollection),
		models.ClazEventsContainer:               models.Inflate[models.EventsContainer],
		models.ClazEventsContainerCollection:     models.InflateCollection[*models.EventsContainer](models.ClazEventsContainerCollection),
		models.ClazEventsBilling:                 models.Inflate[models.EventsBilling],
		models.ClazEventsBillingCollection:       models.InflateCollection[*models.EventsBilling](models.ClazEventsBillingCollection),
		models.ClazEventsStorage:                 models.Inflate[models.EventsStorage],
		models.ClazEventsStorageCollection:       models.InflateCollection[*models.EventsStorage](models.ClazEventsStorageCollection),
		models.ClazMarketPlace:                   models.Inflate[models.MarketPlace],
		models.ClazMarketPlaceCollection:         models.InflateCollection[*models.MarketPlace](models.ClazMarketPlaceCollection),
		models.ClazOrganizations:                 models.Inflate[models.Organizations],
		models.ClazOrganizationsCollection:       models.InflateCollection[*models.Organizations](models.ClazOrganizationsCollection),
		models.ClazDomains:                       models.Inflate[models.Domains],
		models.ClazDomainsCollection:             models.InflateCollection[*models.Domains](models.ClazDomainsCollection),
		models.ClazSensors:                       models.Inflate[models.Sensors],
		models.ClazSensorsCollection:             models.InflateCollection[*models.Sensors](models.ClazSensorsCollection),
		models.ClazSnapshots:                     models.Inflate[models.Snapshots],
		models.ClazSnapshotsCollection:           models.InflateCollection[*models.Snapshots](models.ClazSnapshotsCollection),
		models.ClazBalances:                      models.Inflate[models.Balances],
		models.ClazBalancesCollection:            models.InflateCollection[*models.Balances](models.ClazBalancesCollection),
		models.ClazBilledhistories:               models.Inflate[models.Billedhistories],
		models.ClazBilledhistoriesCollection:     models.InflateCollection[*models.Billedhistories](models.ClazBilledhistoriesCollection),
		models.ClazBillingtranscations:           models.Inflate[models.Billingtranscations],
		models.ClazBillingtranscationsCollection: models.InflateCollection[*models.Billingtranscations](models.ClazBillingtranscationsCollection),
		models.ClazPromos:                        models.Inflate[models.Promos],
	})
})

// DefaultRegistry returns the table of every resource type the gateway emits.
func DefaultRegistry() *Registry { return defaultRegistry() }
