package models

// Account is a user of the Megam gateway.
type Account struct {
	ID                    string         `json:"id"`
	Email                 string         `json:"email"`
	APIKey                string         `json:"api_key"`
	Name                  map[string]any `json:"name"`
	Phone                 map[string]any `json:"phone"`
	Password              map[string]any `json:"password"`
	States                map[string]any `json:"states"`
	Approval              map[string]any `json:"approval"`
	Suspend               map[string]any `json:"suspend"`
	Dates                 map[string]any `json:"dates"`
	RegistrationIPAddress string         `json:"registration_ip_address"`
	Extra                 map[string]any `json:",remain"`
}

func (Account) JSONClaz() string                { return ClazAccount }
func (a Account) MarshalJSON() ([]byte, error) { return marshalModel(a) }

type Organizations struct {
	ID          string         `json:"id"`
	AccountsID  string         `json:"accounts_id"`
	Name        string         `json:"name"`
	RelatedOrgs []string       `json:"related_orgs"`
	CreatedAt   string         `json:"created_at"`
	Extra       map[string]any `json:",remain"`
}

func (Organizations) JSONClaz() string                { return ClazOrganizations }
func (o Organizations) MarshalJSON() ([]byte, error) { return marshalModel(o) }

type Domains struct {
	ID        string         `json:"id"`
	OrgID     string         `json:"org_id"`
	Name      string         `json:"name"`
	CreatedAt string         `json:"created_at"`
	Extra     map[string]any `json:",remain"`
}

func (Domains) JSONClaz() string                { return ClazDomains }
func (d Domains) MarshalJSON() ([]byte, error) { return marshalModel(d) }

type SshKey struct {
	ID         string         `json:"id"`
	OrgID      string         `json:"org_id"`
	Name       string         `json:"name"`
	PrivateKey string         `json:"privatekey"`
	PublicKey  string         `json:"publickey"`
	CreatedAt  string         `json:"created_at"`
	Extra      map[string]any `json:",remain"`
}

func (SshKey) JSONClaz() string                { return ClazSshKey }
func (s SshKey) MarshalJSON() ([]byte, error) { return marshalModel(s) }

// Error is the body the gateway sends with non-2xx responses.
type Error struct {
	Code    string         `json:"code"`
	MsgType string         `json:"msg_type"`
	Msg     string         `json:"msg"`
	Links   string         `json:"links"`
	More    string         `json:"more"`
	Extra   map[string]any `json:",remain"`
}

func (Error) JSONClaz() string                { return ClazError }
func (e Error) MarshalJSON() ([]byte, error) { return marshalModel(e) }
