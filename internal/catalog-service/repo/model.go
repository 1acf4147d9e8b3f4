package repo

// Layout canônico dos timestamps zone-free do catálogo (UTC por convenção).
// Ordem lexicográfica == ordem cronológica, então BETWEEN funciona em TEXT.
const TimeLayout = "2006-01-02 15:04:05"

// Sport é o nível raiz do catálogo
type Sport struct {
	ID     int64
	Name   string
	Slug   string
	Active bool
}

// Tipo do evento: antes ou durante a partida
type EventType string

const (
	EventTypePreplay EventType = "preplay"
	EventTypeInplay  EventType = "inplay"
)

// Status do ciclo de vida do evento
type EventStatus string

const (
	EventStatusPending   EventStatus = "Pending"
	EventStatusStarted   EventStatus = "Started"
	EventStatusEnded     EventStatus = "Ended"
	EventStatusCancelled EventStatus = "Cancelled"
)

// Event pertence a um Sport
type Event struct {
	ID             int64
	Name           string
	Slug           string
	Active         bool
	Type           EventType
	SportID        int64
	Status         EventStatus
	ScheduledStart string  // layout TimeLayout, UTC
	ActualStart    *string // nil enquanto o evento não começou
}

// Resultado de uma seleção
type SelectionOutcome string

const (
	OutcomeUnsettled SelectionOutcome = "Unsettled"
	OutcomeVoid      SelectionOutcome = "Void"
	OutcomeLose      SelectionOutcome = "Lose"
	OutcomeWin       SelectionOutcome = "Win"
)

// Selection pertence a um Event
type Selection struct {
	ID      int64
	Name    string
	EventID int64
	Price   float64
	Active  bool
	Outcome SelectionOutcome
}

// SportActivity é a linha retornada pela busca agregada de esportes
// com eventos ativos acima de um limiar
type SportActivity struct {
	SportID      int64
	Name         string
	ActiveEvents int
}

// ValidEventType reporta se o valor é um tipo de evento aceito pelo schema
func ValidEventType(v string) bool {
	return v == string(EventTypePreplay) || v == string(EventTypeInplay)
}

// ValidEventStatus reporta se o valor é um status aceito pelo schema
func ValidEventStatus(v string) bool {
	switch EventStatus(v) {
	case EventStatusPending, EventStatusStarted, EventStatusEnded, EventStatusCancelled:
		return true
	}
	return false
}

// ValidOutcome reporta se o valor é um outcome aceito pelo schema
func ValidOutcome(v string) bool {
	switch SelectionOutcome(v) {
	case OutcomeUnsettled, OutcomeVoid, OutcomeLose, OutcomeWin:
		return true
	}
	return false
}
