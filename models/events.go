package models

// Event is the shape shared by the per-category event feeds.
type Event struct {
	AccountID  string         `json:"account_id"`
	AssemblyID string         `json:"assembly_id"`
	EventType  string         `json:"event_type"`
	Data       KeyValueList   `json:"data"`
	CreatedAt  string         `json:"created_at"`
	Extra      map[string]any `json:",remain"`
}

type EventsVm Event

func (EventsVm) JSONClaz() string                { return ClazEventsVm }
func (e EventsVm) MarshalJSON() ([]byte, error) { return marshalModel(e) }

type EventsContainer Event

func (EventsContainer) JSONClaz() string                { return ClazEventsContainer }
func (e EventsContainer) MarshalJSON() ([]byte, error) { return marshalModel(e) }

type EventsBilling Event

func (EventsBilling) JSONClaz() string                { return ClazEventsBilling }
func (e EventsBilling) MarshalJSON() ([]byte, error) { return marshalModel(e) }

type EventsStorage Event

func (EventsStorage) JSONClaz() string                { return ClazEventsStorage }
func (e EventsStorage) MarshalJSON() ([]byte, error) { return marshalModel(e) }
