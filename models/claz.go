package models

// json_claz values understood by the gateway.
const (
	ClazAccount                       = "Megam::Account"
	ClazAssemblies                    = "Megam::Assemblies"
	ClazAssembliesCollection          = "Megam::AssembliesCollection"
	ClazAssembly                      = "Megam::Assembly"
	ClazAssemblyCollection            = "Megam::AssemblyCollection"
	ClazBalances                      = "Megam::Balances"
	ClazBalancesCollection            = "Megam::BalancesCollection"
	ClazBilledhistories               = "Megam::Billedhistories"
	ClazBilledhistoriesCollection     = "Megam::BilledhistoriesCollection"
	ClazBillingtranscations           = "Megam::Billingtranscations"
	ClazBillingtranscationsCollection = "Megam::BillingtranscationsCollection"
	ClazComponents                    = "Megam::Components"
	ClazComponentsCollection          = "Megam::ComponentsCollection"
	ClazDomains                       = "Megam::Domains"
	ClazDomainsCollection             = "Megam::DomainsCollection"
	ClazError                         = "Megam::Error"
	ClazMarketPlace                   = "Megam::MarketPlace"
	ClazMarketPlaceCollection         = "Megam::MarketPlaceCollection"
	ClazOrganizations                 = "Megam::Organizations"
	ClazOrganizationsCollection       = "Megam::OrganizationsCollection"
	ClazRequest                       = "Megam::Request"
	ClazRequestCollection             = "Megam::RequestCollection"
	ClazSensors                       = "Megam::Sensors"
	ClazSensorsCollection             = "Megam::SensorsCollection"
	ClazSnapshots                     = "Megam::Snapshots"
	ClazSnapshotsCollection           = "Megam::SnapshotsCollection"
	ClazSshKey                        = "Megam::SshKey"
	ClazSshKeyCollection              = "Megam::SshKeyCollection"
	ClazEventsVm                      = "Megam::EventsVm"
	ClazEventsVmCollection            = "Megam::EventsVmCollection"
	ClazEventsContainer               = "Megam::EventsContainer"
	ClazEventsContainerCollection     = "Megam::EventsContainerCollection"
	ClazEventsBilling                 = "Megam::EventsBilling"
	ClazEventsBillingCollection       = "Megam::EventsBillingCollection"
	ClazEventsStorage                 = "Megam::EventsStorage"
	ClazEventsStorageCollection       = "Megam::EventsStorageCollection"
	ClazPromos                        = "Megam::Promos"
)
