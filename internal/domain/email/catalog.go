// Package email describes outgoing email templates and the send log.
package email

// Template codes.
const (
	CodeUserCreated              = "user-created"
	CodeTicketCreated            = "ticket-created"
	CodeTicketResponse           = "ticket-response"
	CodeTicketClosed             = "ticket-closed"
	CodeStorageWarning           = "storage-warning"
	CodeStorageDanger            = "storage-danger"
	CodeStorageCritical          = "storage-critical"
	CodeMaintenanceNotice        = "maintenance-notice"
	CodePasswordReset            = "password-reset"
	CodePasswordRecovery         = "password-recovery"
	CodeTicketClientConfirmation = "ticket-client-confirmation"
	CodeImprovementStatus        = "improvement-status"
	CodeLeadAutoReply            = "lead-auto-reply"
	CodeNotification             = "notification"
)

// Definition is a built-in template: its default subject and the variables
// the body may reference.
type Definition struct {
	Code        string
	Name        string
	Subject     string
	Variables   []string
	Description string
}

var storageVars = []string{"{{clientName}}", "{{serviceName}}", "{{percentage}}", "{{usedMb}}", "{{limitMb}}", "{{portalUrl}}"}

var catalog = []Definition{
	{
		Code:        CodeUserCreated,
		Name:        "Bienvenida - Usuario Creado",
		Subject:     "Bienvenido a Cerberus Dev",
		Variables:   []string{"{{name}}", "{{username}}", "{{password}}", "{{loginUrl}}"},
		Description: "Se envía cuando se crea un nuevo usuario",
	},
	{
		Code:        CodeTicketCreated,
		Name:        "Ticket Creado",
		Subject:     "Ticket #{{ticketId}} creado: {{subject}}",
		Variables:   []string{"{{ticketId}}", "{{subject}}", "{{category}}", "{{priority}}", "{{message}}", "{{ticketUrl}}"},
		Description: "Se envía al crear un nuevo ticket",
	},
	{
		Code:        CodeTicketResponse,
		Name:        "Respuesta en Ticket",
		Subject:     "Respuesta en Ticket #{{ticketId}}: {{subject}}",
		Variables:   []string{"{{ticketId}}", "{{subject}}", "{{responderName}}", "{{message}}", "{{ticketUrl}}"},
		Description: "Se envía cuando hay una nueva respuesta",
	},
	{
		Code:        CodeTicketClosed,
		Name:        "Ticket Cerrado",
		Subject:     "Ticket #{{ticketId}} cerrado",
		Variables:   []string{"{{ticketId}}", "{{subject}}", "{{ticketUrl}}"},
		Description: "Se envía cuando se cierra un ticket",
	},
	{
		Code:        CodeStorageWarning,
		Name:        "Alerta de Almacenamiento (80%)",
		Subject:     "Aviso: Tu almacenamiento está al {{percentage}}%",
		Variables:   storageVars,
		Description: "Alerta cuando el storage llega al 80%",
	},
	{
		Code:        CodeStorageDanger,
		Name:        "Alerta de Almacenamiento (90%)",
		Subject:     "Urgente: Tu almacenamiento está al {{percentage}}%",
		Variables:   storageVars,
		Description: "Alerta urgente cuando el storage llega al 90%",
	},
	{
		Code:        CodeStorageCritical,
		Name:        "Almacenamiento Crítico (95%+)",
		Subject:     "CRÍTICO: Tu almacenamiento está al {{percentage}}%",
		Variables:   storageVars,
		Description: "Alerta crítica cuando el storage supera el 95%",
	},
	{
		Code:        CodeMaintenanceNotice,
		Name:        "Aviso de Mantenimiento",
		Subject:     "Aviso de Mantenimiento: {{title}}",
		Variables:   []string{"{{title}}", "{{message}}", "{{startAt}}", "{{endAt}}", "{{clientName}}"},
		Description: "Notificación de mantenimiento programado",
	},
	{
		Code:        CodePasswordReset,
		Name:        "Restablecer Contraseña",
		Subject:     "Restablece tu contraseña - Cerberus Dev",
		Variables:   []string{"{{name}}", "{{resetUrl}}", "{{expiresIn}}"},
		Description: "Email para restablecer contraseña (con link)",
	},
	{
		Code:        CodePasswordRecovery,
		Name:        "Recuperación de Contraseña",
		Subject:     "Recuperacion de Contrasena - Cerberus Dev",
		Variables:   []string{"{{name}}", "{{username}}", "{{password}}", "{{loginUrl}}"},
		Description: "Se envía al cliente con nueva contraseña temporal",
	},
	{
		Code:        CodeTicketClientConfirmation,
		Name:        "Confirmación de Ticket (Cliente)",
		Subject:     "Tu ticket #{{ticketId}} ha sido creado",
		Variables:   []string{"{{ticketId}}", "{{subject}}", "{{category}}", "{{priority}}", "{{message}}", "{{ticketUrl}}", "{{clientName}}"},
		Description: "Confirmación enviada al cliente cuando crea un ticket",
	},
	{
		Code:        CodeImprovementStatus,
		Name:        "Actualización de Mejora",
		Subject:     "Actualizacion de Mejora #{{ticketId}}: {{newStatus}}",
		Variables:   []string{"{{ticketId}}", "{{subject}}", "{{oldStatus}}", "{{newStatus}}", "{{ticketUrl}}"},
		Description: "Se envía al cliente cuando cambia el estado de una mejora",
	},
	{
		Code:        CodeLeadAutoReply,
		Name:        "Respuesta Automática de Contacto",
		Subject:     "Recibimos tu mensaje - Cerberus Dev",
		Variables:   []string{"{{name}}", "{{projectType}}", "{{message}}"},
		Description: "Acuse de recibo para el formulario de contacto",
	},
	{
		Code:        CodeNotification,
		Name:        "Notificación Genérica",
		Subject:     "{{subject}}",
		Variables:   []string{"{{subject}}", "{{title}}", "{{message}}", "{{actionUrl}}", "{{actionText}}"},
		Description: "Aviso genérico, usado para correos al administrador",
	},
}

var catalogIndex = func() map[string]int {
	m := make(map[string]int, len(catalog))
	for i, d := range catalog {
		m[d.Code] = i
	}
	return m
}()

// Catalog returns the built-in templates in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the built-in definition for code.
func Lookup(code string) (Definition, bool) {
	i, ok := catalogIndex[code]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

// StorageCode maps a storage status to its alert template code. The second
// return is false for statuses that do not alert.
func StorageCode(status string) (string, bool) {
	switch status {
	case "warning":
		return CodeStorageWarning, true
	case "danger":
		return CodeStorageDanger, true
	case "critical":
		return CodeStorageCritical, true
	}
	return "", false
}
