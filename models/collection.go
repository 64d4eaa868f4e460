package models

import (
	"encoding/json"
	"fmt"
)

// Collection is the envelope the gateway uses for lists, e.g.
//
//	{"json_claz": "Megam::DomainsCollection", "results": [{"json_claz": "Megam::Domains", ...}]}
type Collection[T Model] struct {
	Claz    string
	Results []T
	Extra   map[string]any
}

func (c Collection[T]) JSONClaz() string { return c.Claz }

func (c Collection[T]) Len() int { return len(c.Results) }

func (c Collection[T]) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+2)
	for k, v := range c.Extra {
		out[k] = v
	}
	results := make([]any, 0, len(c.Results))
	for _, r := range c.Results {
		results = append(results, r)
	}
	out["results"] = results
	out[ClazKey] = c.Claz
	return json.Marshal(out)
}

// InflateCollection returns a constructor for the collection tagged claz. Elements
// of "results" must already be inflated into T, which holds when objects are
// walked bottom-up.
func InflateCollection[T Model](claz string) func(map[string]any) (Model, error) {
	return func(fields map[string]any) (Model, error) {
		c := &Collection[T]{Claz: claz}
		for k, v := range fields {
			switch k {
			case ClazKey:
			case "results":
				items, ok := v.([]any)
				if !ok && v != nil {
					return nil, fmt.Errorf("inflate %s: results is %T, want array", claz, v)
				}
				c.Results = make([]T, 0, len(items))
				for i, item := range items {
					t, ok := item.(T)
					if !ok {
						return nil, fmt.Errorf("inflate %s: results[%d] is %T", claz, i, item)
					}
					c.Results = append(c.Results, t)
				}
			default:
				if c.Extra == nil {
					c.Extra = make(map[string]any)
				}
				c.Extra[k] = v
			}
		}
		return c, nil
	}
}

type (
	AssembliesCollection          = Collection[*Assemblies]
	AssemblyCollection            = Collection[*Assembly]
	BalancesCollection            = Collection[*Balances]
	BilledhistoriesCollection     = Collection[*Billedhistories]
	BillingtranscationsCollection = Collection[*Billingtranscations]
	ComponentsCollection          = Collection[*Components]
	DomainsCollection             = Collection[*Domains]
	MarketPlaceCollection         = Collection[*MarketPlace]
	OrganizationsCollection       = Collection[*Organizations]
	RequestCollection             = Collection[*Request]
	SensorsCollection             = Collection[*Sensors]
	SnapshotsCollection           = Collection[*Snapshots]
	SshKeyCollection              = Collection[*SshKey]
	EventsVmCollection            = Collection[*EventsVm]
	EventsContainerCollection     = Collection[*EventsContainer]
	EventsBillingCollection       = Collection[*EventsBilling]
	EventsStorageCollection       = Collection[*EventsStorage]
)
