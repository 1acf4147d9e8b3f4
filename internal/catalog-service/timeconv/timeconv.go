// Package timeconv normaliza timestamps locais do catálogo para instantes
// UTC zone-free. Todo timestamp armazenado/comparado no catálogo é UTC por
// convenção; a zona só existe na borda, na entrada do cliente.
package timeconv

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // zoneinfo embutida: não depende do tzdata do host
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrUnknownTimeZone  = errors.New("unknown time zone")
)

// Defaults usados quando o cliente não informa layout/zona
const (
	DefaultLayout = "2006-01-02 15:04:05"
	DefaultZone   = "Europe/London"
)

// ToUTC interpreta value com o layout dado na zona IANA dada e devolve o
// instante equivalente em UTC. Horários locais ambíguos (fim de horário de
// verão) resolvem pelo default do banco de zonas do Go — limitação conhecida
func ToUTC(value, layout, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownTimeZone, zone)
	}

	local, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match %q", ErrInvalidTimestamp, value, layout)
	}

	return local.UTC(), nil
}

// Canonical formata o instante no layout canônico zone-free do catálogo
func Canonical(t time.Time) string {
	return t.UTC().Format(DefaultLayout)
}
