package events

// CatalogChange é publicado no Kafka a cada mutação bem-sucedida do catálogo
type CatalogChange struct {
	ChangeID string `json:"change_id"` // uuid gerado pelo publisher
	Entity   string `json:"entity"`    // "sport" | "event" | "selection"
	EntityID int64  `json:"entity_id"`
	Action   string `json:"action"` // "created" | "updated" | "deleted"
	TsUnixMs int64  `json:"ts_unix_ms"`
}

// Ações possíveis de um CatalogChange
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// StatusNotice é transmitido via Redis pub/sub quando a engine de cascata
// desativa um pai (evento ou esporte) — front-ends usam para invalidar a visão
type StatusNotice struct {
	Entity   string `json:"entity"` // "sport" | "event"
	EntityID int64  `json:"entity_id"`
	Reason   string `json:"reason"` // "cascade"
	TsUnixMs int64  `json:"ts_unix_ms"`
}
