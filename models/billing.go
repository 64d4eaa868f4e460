package models

type Balances struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id"`
	Credit    string         `json:"credit"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
	Extra     map[string]any `json:",remain"`
}

func (Balances) JSONClaz() string                { return ClazBalances }
func (b Balances) MarshalJSON() ([]byte, error) { return marshalModel(b) }

type Billedhistories struct {
	ID            string         `json:"id"`
	AccountID     string         `json:"account_id"`
	AssemblyID    string         `json:"assembly_id"`
	BillType      string         `json:"bill_type"`
	BillingAmount string         `json:"billing_amount"`
	CurrencyType  string         `json:"currency_type"`
	CreatedAt     string         `json:"created_at"`
	Extra         map[string]any `json:",remain"`
}

func (Billedhistories) JSONClaz() string                { return ClazBilledhistories }
func (b Billedhistories) MarshalJSON() ([]byte, error) { return marshalModel(b) }

// Billingtranscations keeps the gateway's spelling of the resource name.
type Billingtranscations struct {
	ID           string         `json:"id"`
	AccountID    string         `json:"account_id"`
	Gateway      string         `json:"gateway"`
	AmountIn     string         `json:"amountin"`
	AmountOut    string         `json:"amountout"`
	Fees         string         `json:"fees"`
	TranID       string         `json:"tranid"`
	TranDate     string         `json:"trandate"`
	CurrencyType string         `json:"currency_type"`
	CreatedAt    string         `json:"created_at"`
	Extra        map[string]any `json:",remain"`
}

func (Billingtranscations) JSONClaz() string                { return ClazBillingtranscations }
func (b Billingtranscations) MarshalJSON() ([]byte, error) { return marshalModel(b) }

type Promos struct {
	ID        string         `json:"id"`
	Code      string         `json:"code"`
	Amount    string         `json:"amount"`
	CreatedAt string         `json:"created_at"`
	Extra     map[string]any `json:",remain"`
}

func (Promos) JSONClaz() string                { return ClazPromos }
func (p Promos) MarshalJSON() ([]byte, error) { return marshalModel(p) }
