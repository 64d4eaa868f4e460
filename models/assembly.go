package models

// Assemblies groups the assemblies launched together from one request.
type Assemblies struct {
	ID         string         `json:"id"`
	OrgID      string         `json:"org_id"`
	AccountID  string         `json:"account_id"`
	Name       string         `json:"name"`
	Password   string         `json:"password"`
	Assemblies []string       `json:"assemblies"`
	Inputs     KeyValueList   `json:"inputs"`
	CreatedAt  string         `json:"created_at"`
	Extra      map[string]any `json:",remain"`
}

func (Assemblies) JSONClaz() string                { return ClazAssemblies }
func (a Assemblies) MarshalJSON() ([]byte, error) { return marshalModel(a) }

// Assembly is a single deployed unit (a VM, a container or an app).
type Assembly struct {
	ID         string         `json:"id"`
	OrgID      string         `json:"org_id"`
	AccountID  string         `json:"account_id"`
	Name       string         `json:"name"`
	Components []string       `json:"components"`
	ToscaType  string         `json:"tosca_type"`
	Policies   []any          `json:"policies"`
	Inputs     KeyValueList   `json:"inputs"`
	Outputs    KeyValueList   `json:"outputs"`
	Status     string         `json:"status"`
	State      string         `json:"state"`
	CreatedAt  string         `json:"created_at"`
	Extra      map[string]any `json:",remain"`
}

func (Assembly) JSONClaz() string                { return ClazAssembly }
func (a Assembly) MarshalJSON() ([]byte, error) { return marshalModel(a) }

type Components struct {
	ID                string         `json:"id"`
	OrgID             string         `json:"org_id"`
	Name              string         `json:"name"`
	ToscaType         string         `json:"tosca_type"`
	Inputs            KeyValueList   `json:"inputs"`
	Outputs           KeyValueList   `json:"outputs"`
	Envs              KeyValueList   `json:"envs"`
	Artifacts         map[string]any `json:"artifacts"`
	RelatedComponents []string       `json:"related_components"`
	Operations        []any          `json:"operations"`
	Repo              map[string]any `json:"repo"`
	Status            string         `json:"status"`
	State             string         `json:"state"`
	CreatedAt         string         `json:"created_at"`
	Extra             map[string]any `json:",remain"`
}

func (Components) JSONClaz() string                { return ClazComponents }
func (c Components) MarshalJSON() ([]byte, error) { return marshalModel(c) }

type Snapshots struct {
	ID        string         `json:"id"`
	AsmID     string         `json:"asm_id"`
	OrgID     string         `json:"org_id"`
	AccountID string         `json:"account_id"`
	Name      string         `json:"name"`
	ImageID   string         `json:"image_id"`
	ToscaType string         `json:"tosca_type"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"created_at"`
	Extra     map[string]any `json:",remain"`
}

func (Snapshots) JSONClaz() string                { return ClazSnapshots }
func (s Snapshots) MarshalJSON() ([]byte, error) { return marshalModel(s) }

// Sensors carries metering samples collected for an assembly.
type Sensors struct {
	ID                   string         `json:"id"`
	AccountID            string         `json:"account_id"`
	SensorType           string         `json:"sensor_type"`
	AssemblyID           string         `json:"assembly_id"`
	AssemblyName         string         `json:"assembly_name"`
	AssembliesID         string         `json:"assemblies_id"`
	Node                 string         `json:"node"`
	System               string         `json:"system"`
	Status               string         `json:"status"`
	Source               string         `json:"source"`
	Message              string         `json:"message"`
	AuditPeriodBeginning string         `json:"audit_period_beginning"`
	AuditPeriodEnding    string         `json:"audit_period_ending"`
	AuditPeriodDelta     string         `json:"audit_period_delta"`
	Metrics              []any          `json:"metrics"`
	CreatedAt            string         `json:"created_at"`
	Extra                map[string]any `json:",remain"`
}

func (Sensors) JSONClaz() string                { return ClazSensors }
func (s Sensors) MarshalJSON() ([]byte, error) { return marshalModel(s) }

// Request is an operation (create, start, stop, ...) queued against an assembly.
type Request struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id"`
	CatID     string         `json:"cat_id"`
	CatType   string         `json:"cattype"`
	Name      string         `json:"name"`
	Action    string         `json:"action"`
	Category  string         `json:"category"`
	CreatedAt string         `json:"created_at"`
	Extra     map[string]any `json:",remain"`
}

func (Request) JSONClaz() string                { return ClazRequest }
func (r Request) MarshalJSON() ([]byte, error) { return marshalModel(r) }

type MarketPlace struct {
	ID           string         `json:"id"`
	SettingsName string         `json:"settings_name"`
	CatType      string         `json:"cattype"`
	Flavor       string         `json:"flavor"`
	Image        string         `json:"image"`
	CatOrder     string         `json:"catorder"`
	URL          string         `json:"url"`
	Envs         KeyValueList   `json:"envs"`
	Options      KeyValueList   `json:"options"`
	Plans        []any          `json:"plans"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"created_at"`
	Extra        map[string]any `json:",remain"`
}

func (MarketPlace) JSONClaz() string                { return ClazMarketPlace }
func (m MarketPlace) MarshalJSON() ([]byte, error) { return marshalModel(m) }
