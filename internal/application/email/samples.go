package email

import (
	"strings"

	domain "github.com/cerberus-dev/cerberus/internal/domain/email"
)

var sampleValues = map[string]any{
	"name":          "Cliente de Prueba",
	"clientName":    "Cliente de Prueba",
	"username":      "cliente.prueba",
	"password":      "Temporal-1234",
	"loginUrl":      "https://cerberusdev.pro/login",
	"ticketId":      123,
	"subject":       "Ticket de prueba",
	"category":      "support",
	"priority":      "medium",
	"message":       "Este es un mensaje de prueba.",
	"ticketUrl":     "https://cerberusdev.pro/cliente/tickets/123",
	"responderName": "Soporte Cerberus",
	"serviceName":   "Sitio Web",
	"percentage":    85.5,
	"usedMb":        4275.0,
	"limitMb":       5000.0,
	"portalUrl":     "https://cerberusdev.pro/cliente",
	"title":         "Mantenimiento programado",
	"startAt":       "lunes 1 de enero, 22:00",
	"endAt":         "martes 2 de enero, 02:00",
	"resetUrl":      "https://cerberusdev.pro/reset-password?token=ejemplo",
	"expiresIn":     "30 minutos",
	"oldStatus":     "pending",
	"newStatus":     "in_progress",
	"projectType":   "Landing Page",
	"actionUrl":     "https://cerberusdev.pro",
	"actionText":    "Abrir panel",
}

// SampleVars fills every variable a template declares with a demo value.
func SampleVars(def domain.Definition) map[string]any {
	out := make(map[string]any, len(def.Variables))
	for _, v := range def.Variables {
		key := strings.TrimSuffix(strings.TrimPrefix(v, "{{"), "}}")
		if val, ok := sampleValues[key]; ok {
			out[key] = val
		} else {
			out[key] = "Ejemplo"
		}
	}
	return out
}
