package presentation

import "github.com/jhoicas/Customers-api/internal/domain/entity"

// Badge etiqueta y color con que se pinta el estado de un cliente.
type Badge struct {
	Label string
	Color string
}

var badges = map[entity.CustomerStatus]Badge{
	entity.StatusActive:               {Label: "Active", Color: "green"},
	entity.StatusInactive:             {Label: "Inactive", Color: "red"},
	entity.StatusWaitingForActivation: {Label: "Waiting for Activation", Color: "yellow"},
	entity.StatusDisabled:             {Label: "Disabled", Color: "gray"},
}

// BadgeFor devuelve el badge del estado. Un estado desconocido se muestra con su literal en gris.
func BadgeFor(status entity.CustomerStatus) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return Badge{Label: string(status), Color: "gray"}
}

// HasBadge informa si el estado tiene entrada propia en la tabla.
func HasBadge(status entity.CustomerStatus) bool {
	_, ok := badges[status]
	return ok
}
